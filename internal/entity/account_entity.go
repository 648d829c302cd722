// FILE: internal/entity/account_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type AccountRole string
type AccountStatus string

const (
	AccountRoleAdmin  AccountRole = "admin"
	AccountRoleMember AccountRole = "member"

	AccountStatusActive  AccountStatus = "active"
	AccountStatusBlocked AccountStatus = "blocked"

	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

// Account is one login identity, admin or member.
type Account struct {
	Id               uuid.UUID
	Email            string
	FullName         string
	Phone            string
	PasswordHash     *string // nil for OAuth-only accounts
	Role             AccountRole
	Status           AccountStatus
	AuthProvider     string
	// fitness goals, both optional
	TargetWeight     *float64
	WorkoutFrequency *int
	LastLoginAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (a *Account) IsAdmin() bool {
	return a.Role == AccountRoleAdmin
}
