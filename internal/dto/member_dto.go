// FILE: internal/dto/member_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// ListQuery is the shared ?page=&limit=&q= shape.
type ListQuery struct {
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
	Q     string `query:"q"`
}

type CreateMemberRequest struct {
	FullName  string     `json:"full_name" validate:"required,min=2,max=255"`
	Email     string     `json:"email" validate:"required,email"`
	Phone     string     `json:"phone" validate:"omitempty,max=30"`
	Password  string     `json:"password" validate:"omitempty,min=8"`
	PackageId *uuid.UUID `json:"package_id"`
}

type UpdateMemberRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Status   string `json:"status" validate:"omitempty,oneof=active blocked"`
}

type MemberResponse struct {
	AccountResponse
	CurrentMembership *MembershipResponse `json:"current_membership"`
}

// AssignMembershipRequest either starts a new membership for a package,
// changes the status of the current one, or both.
type AssignMembershipRequest struct {
	PackageId *uuid.UUID `json:"package_id"`
	Status    string     `json:"status" validate:"omitempty,oneof=ACTIVE EXPIRED CANCELLED SUSPENDED"`
	StartDate *time.Time `json:"start_date"`
}

type MembershipResponse struct {
	Id          uuid.UUID `json:"id"`
	AccountId   uuid.UUID `json:"account_id"`
	PackageId   uuid.UUID `json:"package_id"`
	PackageName string    `json:"package_name,omitempty"`
	Status      string    `json:"status"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
}
