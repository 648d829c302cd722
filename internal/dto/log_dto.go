// FILE: internal/dto/log_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type LogListQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Type      string `query:"type"`
	Action    string `query:"action"`
	AccountId string `query:"account_id"`
}

type SystemLogResponse struct {
	Id               uuid.UUID              `json:"id"`
	Type             string                 `json:"type"`
	Action           string                 `json:"action"`
	Description      string                 `json:"description"`
	SubjectAccountId *uuid.UUID             `json:"subject_account_id"`
	ActorAccountId   *uuid.UUID             `json:"actor_account_id"`
	Metadata         map[string]interface{} `json:"metadata"`
	CreatedAt        time.Time              `json:"created_at"`
}

type LogCountResponse struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type LogStatisticsResponse struct {
	Total    int64              `json:"total"`
	Last24h  int64              `json:"last_24h"`
	Last7d   int64              `json:"last_7d"`
	ByType   []LogCountResponse `json:"by_type"`
	ByAction []LogCountResponse `json:"by_action"`
}

type AppLogQuery struct {
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
	Level string `query:"level"`
}

type AppLogResponse struct {
	Id        string                 `json:"id"`
	Level     string                 `json:"level"`
	Module    string                 `json:"module"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
