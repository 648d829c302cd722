// FILE: internal/entity/content_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type NutritionTip struct {
	Id        uuid.UUID
	Title     string
	Summary   string
	Body      string
	Category  string
	Published bool
	CreatedAt time.Time
}

type Product struct {
	Id          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       int
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
}

// DashboardStats is the admin overview projection.
type DashboardStats struct {
	TotalMembers       int64
	ActiveMemberships  int64
	CurrentlyCheckedIn int64
	TodayVisits        int64
	NewMembersMonth    int64
	ActiveServices     int64
	Revenue            RevenueSummary
}
