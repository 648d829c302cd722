package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SystemLog struct {
	Id               uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Type             string            `gorm:"type:varchar(30);not null;index"`
	Action           string            `gorm:"type:varchar(50);not null;index"`
	Description      string            `gorm:"type:text;not null"`
	SubjectAccountId *uuid.UUID        `gorm:"type:uuid;index"`
	ActorAccountId   *uuid.UUID        `gorm:"type:uuid;index"`
	Metadata         datatypes.JSONMap `gorm:"type:json"`
	CreatedAt        time.Time         `gorm:"autoCreateTime;not null;index"`
}

func (SystemLog) TableName() string {
	return "system_logs"
}
