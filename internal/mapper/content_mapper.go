package mapper

import (
	"gym-management-be/internal/entity"
	"gym-management-be/internal/model"
)

type ContentMapper struct{}

func NewContentMapper() *ContentMapper {
	return &ContentMapper{}
}

func (m *ContentMapper) TipToEntity(mdl *model.NutritionTip) *entity.NutritionTip {
	if mdl == nil {
		return nil
	}
	return &entity.NutritionTip{
		Id:        mdl.Id,
		Title:     mdl.Title,
		Summary:   mdl.Summary,
		Body:      mdl.Body,
		Category:  mdl.Category,
		Published: mdl.Published,
		CreatedAt: mdl.CreatedAt,
	}
}

func (m *ContentMapper) TipToModel(e *entity.NutritionTip) *model.NutritionTip {
	if e == nil {
		return nil
	}
	return &model.NutritionTip{
		Id:        e.Id,
		Title:     e.Title,
		Summary:   e.Summary,
		Body:      e.Body,
		Category:  e.Category,
		Published: e.Published,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ContentMapper) ProductToEntity(mdl *model.Product) *entity.Product {
	if mdl == nil {
		return nil
	}
	return &entity.Product{
		Id:          mdl.Id,
		Name:        mdl.Name,
		Description: mdl.Description,
		Price:       mdl.Price,
		Category:    mdl.Category,
		Stock:       mdl.Stock,
		ImageURL:    mdl.ImageURL,
		IsActive:    mdl.IsActive,
		CreatedAt:   mdl.CreatedAt,
	}
}

func (m *ContentMapper) ProductToModel(e *entity.Product) *model.Product {
	if e == nil {
		return nil
	}
	return &model.Product{
		Id:          e.Id,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Category:    e.Category,
		Stock:       e.Stock,
		ImageURL:    e.ImageURL,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
	}
}
