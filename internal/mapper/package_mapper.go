package mapper

import (
	"gym-management-be/internal/entity"
	"gym-management-be/internal/model"

	"gorm.io/datatypes"
)

type PackageMapper struct{}

func NewPackageMapper() *PackageMapper {
	return &PackageMapper{}
}

func (m *PackageMapper) ToEntity(mdl *model.Package) *entity.Package {
	if mdl == nil {
		return nil
	}
	features := []string(mdl.Features)
	if features == nil {
		features = []string{}
	}
	return &entity.Package{
		Id:           mdl.Id,
		Name:         mdl.Name,
		Description:  mdl.Description,
		Price:        mdl.Price,
		DurationDays: mdl.DurationDays,
		Features:     features,
		IsActive:     mdl.IsActive,
		CreatedAt:    mdl.CreatedAt,
		UpdatedAt:    mdl.UpdatedAt,
	}
}

func (m *PackageMapper) ToModel(e *entity.Package) *model.Package {
	if e == nil {
		return nil
	}
	return &model.Package{
		Id:           e.Id,
		Name:         e.Name,
		Description:  e.Description,
		Price:        e.Price,
		DurationDays: e.DurationDays,
		Features:     datatypes.JSONSlice[string](e.Features),
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (m *PackageMapper) ToEntities(models []*model.Package) []*entity.Package {
	entities := make([]*entity.Package, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
