package contract

import (
	"context"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/repository/specification"
)

// ContentRepository serves the public site's static catalog.
type ContentRepository interface {
	CreateTip(ctx context.Context, tip *entity.NutritionTip) error
	CreateProduct(ctx context.Context, product *entity.Product) error
	FindTips(ctx context.Context, specs ...specification.Specification) ([]*entity.NutritionTip, error)
	FindProducts(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	CountTips(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
}
