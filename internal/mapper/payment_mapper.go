package mapper

import (
	"gym-management-be/internal/entity"
	"gym-management-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(mdl *model.Payment) *entity.Payment {
	if mdl == nil {
		return nil
	}
	return &entity.Payment{
		Id:           mdl.Id,
		AccountId:    mdl.AccountId,
		Plan:         mdl.Plan,
		Amount:       mdl.Amount,
		Currency:     mdl.Currency,
		Method:       entity.PaymentMethod(mdl.Method),
		Status:       entity.PaymentStatus(mdl.Status),
		ProcessorRef: mdl.ProcessorRef,
		QrReference:  mdl.QrReference,
		CompletedAt:  mdl.CompletedAt,
		CreatedAt:    mdl.CreatedAt,
		UpdatedAt:    mdl.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(e *entity.Payment) *model.Payment {
	if e == nil {
		return nil
	}
	return &model.Payment{
		Id:           e.Id,
		AccountId:    e.AccountId,
		Plan:         e.Plan,
		Amount:       e.Amount,
		Currency:     e.Currency,
		Method:       string(e.Method),
		Status:       string(e.Status),
		ProcessorRef: e.ProcessorRef,
		QrReference:  e.QrReference,
		CompletedAt:  e.CompletedAt,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (m *PaymentMapper) ToEntities(models []*model.Payment) []*entity.Payment {
	entities := make([]*entity.Payment, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
