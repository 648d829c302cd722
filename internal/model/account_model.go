package model

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName         string    `gorm:"type:varchar(255);not null"`
	Phone            string    `gorm:"type:varchar(30)"`
	PasswordHash     *string   `gorm:"type:varchar(255)"`
	Role             string    `gorm:"type:varchar(20);not null;default:'member';index"`
	Status           string    `gorm:"type:varchar(20);not null;default:'active'"`
	AuthProvider     string    `gorm:"type:varchar(20);not null;default:'local'"`
	TargetWeight     *float64  `gorm:"type:numeric(5,1)"`
	WorkoutFrequency *int
	LastLoginAt      *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Account) TableName() string {
	return "accounts"
}
