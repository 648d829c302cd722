package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Membership struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountId uuid.UUID `gorm:"type:uuid;not null;index"`
	PackageId uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Package *Package `gorm:"foreignKey:PackageId"`
}

func (Membership) TableName() string {
	return "memberships"
}

type Package struct {
	Id           uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Name         string                      `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description  string                      `gorm:"type:text"`
	Price        decimal.Decimal             `gorm:"type:decimal(12,2);not null"`
	DurationDays int                         `gorm:"not null"`
	Features     datatypes.JSONSlice[string] `gorm:"type:json"`
	IsActive     bool                        `gorm:"default:true"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt    time.Time                   `gorm:"autoUpdateTime"`
}

func (Package) TableName() string {
	return "packages"
}
