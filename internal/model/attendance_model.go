package model

import (
	"time"

	"github.com/google/uuid"
)

// Attendance carries a partial unique index so an account has at most one open visit.
type Attendance struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountId uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:ux_attendances_open_account,where:check_out IS NULL"`
	CheckIn   time.Time  `gorm:"not null;index"`
	CheckOut  *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (Attendance) TableName() string {
	return "attendances"
}
