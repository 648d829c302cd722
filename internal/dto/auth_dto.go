// FILE: internal/dto/auth_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// UpdateProfileRequest replaces the member-editable fields; nil goals are cleared.
type UpdateProfileRequest struct {
	FullName         string   `json:"full_name" validate:"required,min=2,max=255"`
	Phone            string   `json:"phone" validate:"omitempty,max=30"`
	TargetWeight     *float64 `json:"target_weight" validate:"omitempty,gt=0,lt=1000"`
	WorkoutFrequency *int     `json:"workout_frequency" validate:"omitempty,min=0,max=14"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}

type AccountResponse struct {
	Id               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	FullName         string     `json:"full_name"`
	Phone            string     `json:"phone,omitempty"`
	Role             string     `json:"role"`
	Status           string     `json:"status"`
	AuthProvider     string     `json:"auth_provider"`
	TargetWeight     *float64   `json:"target_weight,omitempty"`
	WorkoutFrequency *int       `json:"workout_frequency,omitempty"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type MeResponse struct {
	AccountResponse
	Membership *MembershipResponse `json:"membership"`
}

type GoogleLoginResponse struct {
	URL string `json:"url"`
}
