package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountId    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Plan         string          `gorm:"type:varchar(50);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency     string          `gorm:"type:varchar(3);not null"`
	Method       string          `gorm:"type:varchar(10);not null"`
	Status       string          `gorm:"type:varchar(20);not null;index"`
	ProcessorRef *string         `gorm:"type:varchar(255)"`
	QrReference  *string         `gorm:"type:varchar(64);uniqueIndex"`
	CompletedAt  *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
