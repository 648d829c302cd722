package dashboard

import (
	"context"
	"time"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/repository/specification"
	"gym-management-be/internal/repository/unitofwork"
)

// zap's ISO8601 encoder layout
const logTimeLayout = "2006-01-02T15:04:05.000Z0700"

// LogReader is the part of the zap logger that reads its own file back.
type LogReader interface {
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, int, error)
	GetLogById(id string) (*logger.LogEntry, error)
}

// AppLog is one parsed line of the application log file.
type AppLog struct {
	Id        string
	Level     string
	Module    string
	Message   string
	Details   map[string]interface{}
	CreatedAt time.Time
}

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats collects the admin overview counters.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork, now time.Time) (*entity.DashboardStats, error) {
	totalMembers, err := uow.AccountRepository().Count(ctx, specification.ByRole{Role: string(entity.AccountRoleMember)})
	if err != nil {
		return nil, err
	}

	activeMemberships, err := uow.MembershipRepository().Count(ctx, specification.ByStatus{Status: string(entity.MembershipStatusActive)})
	if err != nil {
		return nil, err
	}

	checkedIn, err := uow.AttendanceRepository().Count(ctx, specification.OpenAttendance{})
	if err != nil {
		return nil, err
	}

	y, m, d := now.Date()
	todayVisits, err := uow.AttendanceRepository().Count(ctx, specification.CheckInSince{Since: time.Date(y, m, d, 0, 0, 0, 0, now.Location())})
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	newMembers, err := uow.AccountRepository().Count(ctx,
		specification.ByRole{Role: string(entity.AccountRoleMember)},
		specification.CreatedSince{Since: monthStart},
	)
	if err != nil {
		return nil, err
	}

	activeServices, err := uow.GymServiceRepository().Count(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}

	revenue, err := a.revenue(ctx, uow, monthStart)
	if err != nil {
		return nil, err
	}

	return &entity.DashboardStats{
		TotalMembers:       totalMembers,
		ActiveMemberships:  activeMemberships,
		CurrentlyCheckedIn: checkedIn,
		TodayVisits:        todayVisits,
		NewMembersMonth:    newMembers,
		ActiveServices:     activeServices,
		Revenue:            *revenue,
	}, nil
}

func (a *Aggregator) revenue(ctx context.Context, uow unitofwork.UnitOfWork, monthStart time.Time) (*entity.RevenueSummary, error) {
	repo := uow.PaymentRepository()

	amount, err := repo.SumCompleted(ctx)
	if err != nil {
		return nil, err
	}
	month, err := repo.SumCompleted(ctx, specification.CreatedSince{Since: monthStart})
	if err != nil {
		return nil, err
	}
	completed, err := repo.Count(ctx, specification.ByStatus{Status: string(entity.PaymentStatusCompleted)})
	if err != nil {
		return nil, err
	}
	pending, err := repo.Count(ctx, specification.ByStatus{Status: string(entity.PaymentStatusPending)})
	if err != nil {
		return nil, err
	}

	return &entity.RevenueSummary{
		CompletedAmount: amount,
		MonthAmount:     month,
		CompletedCount:  completed,
		PendingCount:    pending,
	}, nil
}

// GetAppLogs reads one page of the application log file, newest first.
func (a *Aggregator) GetAppLogs(reader LogReader, page, limit int, level string) ([]AppLog, int, error) {
	entries, total, err := reader.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AppLog, 0, len(entries))
	for _, l := range entries {
		res = append(res, a.toAppLog(l))
	}
	return res, total, nil
}

// GetAppLog returns logger.ErrLogNotFound when id is not in the current file.
func (a *Aggregator) GetAppLog(reader LogReader, id string) (*AppLog, error) {
	entry, err := reader.GetLogById(id)
	if err != nil {
		return nil, err
	}
	res := a.toAppLog(*entry)
	return &res, nil
}

func (a *Aggregator) toAppLog(l logger.LogEntry) AppLog {
	ts, err := time.Parse(logTimeLayout, l.Timestamp)
	if err != nil {
		a.logger.Debug("DASHBOARD", "Unparsable log timestamp", map[string]interface{}{"timestamp": l.Timestamp})
	}
	return AppLog{
		Id:        l.Id,
		Level:     l.Level,
		Module:    l.Module,
		Message:   l.Message,
		Details:   l.Details,
		CreatedAt: ts,
	}
}
