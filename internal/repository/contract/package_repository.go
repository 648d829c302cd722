package contract

import (
	"context"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	Update(ctx context.Context, pkg *entity.Package) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Package, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Package, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
