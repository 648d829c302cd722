package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type NutritionTip struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Summary   string    `gorm:"type:text"`
	Body      string    `gorm:"type:text"`
	Category  string    `gorm:"type:varchar(50);index"`
	Published bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (NutritionTip) TableName() string {
	return "nutrition_tips"
}

type Product struct {
	Id          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category    string          `gorm:"type:varchar(50);index"`
	Stock       int             `gorm:"not null;default:0"`
	ImageURL    string          `gorm:"type:text"`
	IsActive    bool            `gorm:"default:true"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

func (Product) TableName() string {
	return "products"
}
