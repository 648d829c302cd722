package contract

import (
	"context"
	"time"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.Membership) error
	Update(ctx context.Context, membership *entity.Membership) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAccount(ctx context.Context, accountId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Membership, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindCurrent returns the latest membership started by at. When none has
	// started yet it returns the next upcoming one, or nil.
	FindCurrent(ctx context.Context, accountId uuid.UUID, at time.Time) (*entity.Membership, error)
	// ExpireActive marks every ACTIVE membership of the account EXPIRED.
	ExpireActive(ctx context.Context, accountId uuid.UUID) (int64, error)
	// ExpireOverdue flips ACTIVE memberships ended before now and returns only the rows it changed.
	ExpireOverdue(ctx context.Context, now time.Time) ([]*entity.Membership, error)
}
