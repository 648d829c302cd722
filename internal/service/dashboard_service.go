// FILE: internal/service/dashboard_service.go
package service

import (
	"context"
	"time"

	"gym-management-be/internal/dto"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/pkg/admin/dashboard"
)

// SocketCounter reports how many admin sockets this instance holds.
type SocketCounter interface {
	ClientCount() int
}

type IDashboardService interface {
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator *dashboard.Aggregator
	sockets    SocketCounter
	currency   string
	logger     logger.ILogger
}

func NewDashboardService(uowFactory unitofwork.RepositoryFactory, aggregator *dashboard.Aggregator, sockets SocketCounter, currency string, log logger.ILogger) IDashboardService {
	return &dashboardService{
		uowFactory: uowFactory,
		aggregator: aggregator,
		sockets:    sockets,
		currency:   currency,
		logger:     log,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	stats, err := s.aggregator.GetStats(ctx, s.uowFactory.NewUnitOfWork(ctx), time.Now())
	if err != nil {
		return nil, storeError(s.logger, "DASHBOARD", "dashboard stats", err)
	}

	resp := &dto.DashboardResponse{
		TotalMembers:       stats.TotalMembers,
		ActiveMemberships:  stats.ActiveMemberships,
		CurrentlyCheckedIn: stats.CurrentlyCheckedIn,
		TodayVisits:        stats.TodayVisits,
		NewMembersMonth:    stats.NewMembersMonth,
		ActiveServices:     stats.ActiveServices,
		CompletedRevenue:   stats.Revenue.CompletedAmount,
		MonthRevenue:       stats.Revenue.MonthAmount,
		CompletedPayments:  stats.Revenue.CompletedCount,
		PendingPayments:    stats.Revenue.PendingCount,
		Currency:           s.currency,
	}
	if s.sockets != nil {
		resp.LiveAdminSockets = s.sockets.ClientCount()
	}
	return resp, nil
}
