// FILE: internal/entity/payment_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string
type PaymentStatus string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodQR   PaymentMethod = "qr"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s.IsTerminal()
}

type Payment struct {
	Id           uuid.UUID
	AccountId    uuid.UUID
	Plan         string
	Amount       decimal.Decimal
	Currency     string
	Method       PaymentMethod
	Status       PaymentStatus
	ProcessorRef *string
	QrReference  *string
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RevenueSummary is a projection for the admin dashboard.
type RevenueSummary struct {
	CompletedAmount decimal.Decimal
	MonthAmount     decimal.Decimal
	CompletedCount  int64
	PendingCount    int64
}
