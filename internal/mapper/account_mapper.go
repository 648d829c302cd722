package mapper

import (
	"gym-management-be/internal/entity"
	"gym-management-be/internal/model"
)

type AccountMapper struct{}

func NewAccountMapper() *AccountMapper {
	return &AccountMapper{}
}

func (m *AccountMapper) ToEntity(mdl *model.Account) *entity.Account {
	if mdl == nil {
		return nil
	}
	return &entity.Account{
		Id:               mdl.Id,
		Email:            mdl.Email,
		FullName:         mdl.FullName,
		Phone:            mdl.Phone,
		PasswordHash:     mdl.PasswordHash,
		Role:             entity.AccountRole(mdl.Role),
		Status:           entity.AccountStatus(mdl.Status),
		AuthProvider:     mdl.AuthProvider,
		TargetWeight:     mdl.TargetWeight,
		WorkoutFrequency: mdl.WorkoutFrequency,
		LastLoginAt:      mdl.LastLoginAt,
		CreatedAt:        mdl.CreatedAt,
		UpdatedAt:        mdl.UpdatedAt,
	}
}

func (m *AccountMapper) ToModel(e *entity.Account) *model.Account {
	if e == nil {
		return nil
	}
	provider := e.AuthProvider
	if provider == "" {
		provider = entity.AuthProviderLocal
	}
	return &model.Account{
		Id:               e.Id,
		Email:            e.Email,
		FullName:         e.FullName,
		Phone:            e.Phone,
		PasswordHash:     e.PasswordHash,
		Role:             string(e.Role),
		Status:           string(e.Status),
		AuthProvider:     provider,
		TargetWeight:     e.TargetWeight,
		WorkoutFrequency: e.WorkoutFrequency,
		LastLoginAt:      e.LastLoginAt,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func (m *AccountMapper) ToEntities(models []*model.Account) []*entity.Account {
	entities := make([]*entity.Account, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
