package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GymService struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description  string          `gorm:"type:text"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BillingCycle string          `gorm:"type:varchar(20);not null"`
	Category     string          `gorm:"type:varchar(50);index"`
	Capacity     int             `gorm:"not null;default:0"`
	IsActive     bool            `gorm:"default:true"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (GymService) TableName() string {
	return "gym_services"
}

type Booking struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceId   uuid.UUID `gorm:"type:uuid;not null;index"`
	AccountId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(20);not null"`
	ScheduledAt time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}
