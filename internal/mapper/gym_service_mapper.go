package mapper

import (
	"gym-management-be/internal/entity"
	"gym-management-be/internal/model"
)

type GymServiceMapper struct{}

func NewGymServiceMapper() *GymServiceMapper {
	return &GymServiceMapper{}
}

func (m *GymServiceMapper) ToEntity(mdl *model.GymService) *entity.GymService {
	if mdl == nil {
		return nil
	}
	return &entity.GymService{
		Id:           mdl.Id,
		Name:         mdl.Name,
		Description:  mdl.Description,
		Price:        mdl.Price,
		BillingCycle: entity.BillingCycle(mdl.BillingCycle),
		Category:     mdl.Category,
		Capacity:     mdl.Capacity,
		IsActive:     mdl.IsActive,
		CreatedAt:    mdl.CreatedAt,
		UpdatedAt:    mdl.UpdatedAt,
	}
}

func (m *GymServiceMapper) ToModel(e *entity.GymService) *model.GymService {
	if e == nil {
		return nil
	}
	return &model.GymService{
		Id:           e.Id,
		Name:         e.Name,
		Description:  e.Description,
		Price:        e.Price,
		BillingCycle: string(e.BillingCycle),
		Category:     e.Category,
		Capacity:     e.Capacity,
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (m *GymServiceMapper) ToEntities(models []*model.GymService) []*entity.GymService {
	entities := make([]*entity.GymService, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}

func (m *GymServiceMapper) BookingToEntity(mdl *model.Booking) *entity.Booking {
	if mdl == nil {
		return nil
	}
	return &entity.Booking{
		Id:          mdl.Id,
		ServiceId:   mdl.ServiceId,
		AccountId:   mdl.AccountId,
		Status:      entity.BookingStatus(mdl.Status),
		ScheduledAt: mdl.ScheduledAt,
		CreatedAt:   mdl.CreatedAt,
		UpdatedAt:   mdl.UpdatedAt,
	}
}

func (m *GymServiceMapper) BookingToModel(e *entity.Booking) *model.Booking {
	if e == nil {
		return nil
	}
	return &model.Booking{
		Id:          e.Id,
		ServiceId:   e.ServiceId,
		AccountId:   e.AccountId,
		Status:      string(e.Status),
		ScheduledAt: e.ScheduledAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (m *GymServiceMapper) BookingsToEntities(models []*model.Booking) []*entity.Booking {
	entities := make([]*entity.Booking, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.BookingToEntity(mdl))
	}
	return entities
}
