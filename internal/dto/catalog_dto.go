// FILE: internal/dto/catalog_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PackageRequest struct {
	Name         string           `json:"name" validate:"required,max=100"`
	Description  string           `json:"description"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	DurationDays int              `json:"duration_days" validate:"required,min=1"`
	Features     []string         `json:"features"`
	IsActive     *bool            `json:"is_active"`
}

type PackageResponse struct {
	Id           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days"`
	Features     []string        `json:"features"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type GymServiceRequest struct {
	Name         string           `json:"name" validate:"required,max=100"`
	Description  string           `json:"description"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	BillingCycle string           `json:"billing_cycle" validate:"required,oneof=one_time per_session monthly"`
	Category     string           `json:"category" validate:"omitempty,max=50"`
	Capacity     int              `json:"capacity" validate:"min=0"`
	IsActive     *bool            `json:"is_active"`
}

type GymServiceResponse struct {
	Id           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	BillingCycle string          `json:"billing_cycle"`
	Category     string          `json:"category"`
	Capacity     int             `json:"capacity"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type BookingRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type BookingResponse struct {
	Id          uuid.UUID `json:"id"`
	ServiceId   uuid.UUID `json:"service_id"`
	AccountId   uuid.UUID `json:"account_id"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type NutritionTipResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductResponse struct {
	Id          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url,omitempty"`
}
