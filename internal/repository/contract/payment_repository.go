package contract

import (
	"context"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentTransition is a move out of pending.
type PaymentTransition struct {
	Status       entity.PaymentStatus
	ProcessorRef *string
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// TransitionFromPending updates only rows still pending and returns the affected count.
	TransitionFromPending(ctx context.Context, id uuid.UUID, t PaymentTransition) (int64, error)
	// SumCompleted totals completed payments matching specs.
	SumCompleted(ctx context.Context, specs ...specification.Specification) (decimal.Decimal, error)
}
