// FILE: internal/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CheckInRequest struct {
	AccountId uuid.UUID `json:"account_id" validate:"required"`
}

type AttendanceResponse struct {
	Id              uuid.UUID  `json:"id"`
	AccountId       uuid.UUID  `json:"account_id"`
	AccountName     string     `json:"account_name,omitempty"`
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        *time.Time `json:"check_out"`
	DurationMinutes *float64   `json:"duration_minutes,omitempty"`
}

type AttendanceHistoryQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	AccountId string `query:"account_id"`
	// StartDate and EndDate filter by check-in; applied only when both are set.
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

type AttendanceStatsResponse struct {
	CurrentlyCheckedIn  int64   `json:"currently_checked_in"`
	TodayVisits         int64   `json:"today_visits"`
	AverageVisitMinutes float64 `json:"average_visit_minutes"`
}
