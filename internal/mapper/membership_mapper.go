package mapper

import (
	"gym-management-be/internal/entity"
	"gym-management-be/internal/model"
)

type MembershipMapper struct{}

func NewMembershipMapper() *MembershipMapper {
	return &MembershipMapper{}
}

func (m *MembershipMapper) ToEntity(mdl *model.Membership) *entity.Membership {
	if mdl == nil {
		return nil
	}
	e := &entity.Membership{
		Id:        mdl.Id,
		AccountId: mdl.AccountId,
		PackageId: mdl.PackageId,
		Status:    entity.MembershipStatus(mdl.Status),
		StartDate: mdl.StartDate,
		EndDate:   mdl.EndDate,
		CreatedAt: mdl.CreatedAt,
		UpdatedAt: mdl.UpdatedAt,
	}
	if mdl.Package != nil {
		e.PackageName = mdl.Package.Name
	}
	return e
}

func (m *MembershipMapper) ToModel(e *entity.Membership) *model.Membership {
	if e == nil {
		return nil
	}
	return &model.Membership{
		Id:        e.Id,
		AccountId: e.AccountId,
		PackageId: e.PackageId,
		Status:    string(e.Status),
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *MembershipMapper) ToEntities(models []*model.Membership) []*entity.Membership {
	entities := make([]*entity.Membership, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
