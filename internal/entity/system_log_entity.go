// FILE: internal/entity/system_log_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	LogTypeAuth       = "AUTH"
	LogTypeMember     = "MEMBER"
	LogTypeMembership = "MEMBERSHIP"
	LogTypePackage    = "PACKAGE"
	LogTypeService    = "SERVICE"
	LogTypeBooking    = "BOOKING"
	LogTypeAttendance = "ATTENDANCE"
	LogTypePayment    = "PAYMENT"
)

// SystemLog is an append-only audit entry.
type SystemLog struct {
	Id               uuid.UUID
	Type             string
	Action           string
	Description      string
	SubjectAccountId *uuid.UUID
	ActorAccountId   *uuid.UUID
	Metadata         map[string]interface{}
	CreatedAt        time.Time
}

type LogCount struct {
	Key   string
	Count int64
}

type LogStatistics struct {
	Total    int64
	Last24h  int64
	Last7d   int64
	ByType   []LogCount
	ByAction []LogCount
}
