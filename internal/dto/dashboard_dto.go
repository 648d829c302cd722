// FILE: internal/dto/dashboard_dto.go
package dto

import "github.com/shopspring/decimal"

type DashboardResponse struct {
	TotalMembers       int64           `json:"total_members"`
	ActiveMemberships  int64           `json:"active_memberships"`
	CurrentlyCheckedIn int64           `json:"currently_checked_in"`
	TodayVisits        int64           `json:"today_visits"`
	NewMembersMonth    int64           `json:"new_members_this_month"`
	ActiveServices     int64           `json:"active_services"`
	CompletedRevenue   decimal.Decimal `json:"completed_revenue"`
	MonthRevenue       decimal.Decimal `json:"month_revenue"`
	CompletedPayments  int64           `json:"completed_payments"`
	PendingPayments    int64           `json:"pending_payments"`
	Currency           string          `json:"currency"`
	LiveAdminSockets   int             `json:"live_admin_sockets"`
}
