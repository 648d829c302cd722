// FILE: internal/entity/attendance_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is a single visit. CheckOut stays nil while the member is inside.
type Attendance struct {
	Id        uuid.UUID
	AccountId uuid.UUID
	CheckIn   time.Time
	CheckOut  *time.Time
	CreatedAt time.Time

	// Populated by read queries only
	AccountName string
}

func (a *Attendance) IsOpen() bool {
	return a.CheckOut == nil
}

// AttendanceStats is a projection for the attendance dashboard.
type AttendanceStats struct {
	CurrentlyCheckedIn  int64
	TodayVisits         int64
	AverageVisitMinutes float64
}
