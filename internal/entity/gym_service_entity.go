// FILE: internal/entity/gym_service_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BillingCycle string

const (
	BillingCycleOneTime    BillingCycle = "one_time"
	BillingCyclePerSession BillingCycle = "per_session"
	BillingCycleMonthly    BillingCycle = "monthly"
)

// GymService is a bookable offering such as a class or personal training.
type GymService struct {
	Id           uuid.UUID
	Name         string
	Description  string
	Price        decimal.Decimal
	BillingCycle BillingCycle
	Category     string
	Capacity     int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "BOOKED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	Id          uuid.UUID
	ServiceId   uuid.UUID
	AccountId   uuid.UUID
	Status      BookingStatus
	ScheduledAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
