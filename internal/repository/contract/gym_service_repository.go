package contract

import (
	"context"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GymServiceRepository interface {
	Create(ctx context.Context, service *entity.GymService) error
	Update(ctx context.Context, service *entity.GymService) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GymService, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GymService, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	Update(ctx context.Context, booking *entity.Booking) error
	DeleteByAccount(ctx context.Context, accountId uuid.UUID) error
	DeleteByService(ctx context.Context, serviceId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
