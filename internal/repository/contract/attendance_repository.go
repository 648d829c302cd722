package contract

import (
	"context"
	"time"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AttendanceRepository interface {
	Create(ctx context.Context, attendance *entity.Attendance) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attendance, error)
	// FindAllWithAccount joins the account name. Specs must use unambiguous columns.
	FindAllWithAccount(ctx context.Context, specs ...specification.Specification) ([]*entity.Attendance, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Close sets check_out only while the row is still open. Zero rows means it was not open.
	Close(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
	AverageVisitMinutes(ctx context.Context, since time.Time) (float64, error)
}
