package contract

import (
	"context"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/repository/specification"
)

type SystemLogRepository interface {
	Create(ctx context.Context, log *entity.SystemLog) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SystemLog, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SystemLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountGrouped counts rows per distinct value of column ("type" or "action").
	CountGrouped(ctx context.Context, column string) ([]entity.LogCount, error)
}
