// FILE: internal/entity/membership_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "ACTIVE"
	MembershipStatusExpired   MembershipStatus = "EXPIRED"
	MembershipStatusCancelled MembershipStatus = "CANCELLED"
	MembershipStatusSuspended MembershipStatus = "SUSPENDED"
)

func (s MembershipStatus) IsValid() bool {
	switch s {
	case MembershipStatusActive, MembershipStatusExpired, MembershipStatusCancelled, MembershipStatusSuspended:
		return true
	}
	return false
}

type Membership struct {
	Id        uuid.UUID
	AccountId uuid.UUID
	PackageId uuid.UUID
	Status    MembershipStatus
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated by read queries only
	PackageName string
}

// IsUsableAt reports whether the membership grants gym access at t.
func (m *Membership) IsUsableAt(t time.Time) bool {
	return m.Status == MembershipStatusActive && !t.Before(m.StartDate) && !t.After(m.EndDate)
}

type Package struct {
	Id           uuid.UUID
	Name         string
	Description  string
	Price        decimal.Decimal
	DurationDays int
	Features     []string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
