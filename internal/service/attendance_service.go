// FILE: internal/service/attendance_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gym-management-be/internal/constant"
	"gym-management-be/internal/dto"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/repository/specification"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/pkg/audit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IAttendanceService interface {
	CheckIn(ctx context.Context, actorId, accountId uuid.UUID) (*dto.AttendanceResponse, error)
	CheckOut(ctx context.Context, actorId, attendanceId uuid.UUID) (*dto.AttendanceResponse, error)
	ListCurrent(ctx context.Context) ([]dto.AttendanceResponse, error)
	History(ctx context.Context, query dto.AttendanceHistoryQuery) (*serverutils.PagedResult[dto.AttendanceResponse], error)
	Statistics(ctx context.Context) (*dto.AttendanceStatsResponse, error)
	MyAttendance(ctx context.Context, accountId uuid.UUID, page, limit int) (*serverutils.PagedResult[dto.AttendanceResponse], error)
}

type attendanceService struct {
	uowFactory unitofwork.RepositoryFactory
	recorder   audit.Recorder
	logger     logger.ILogger
	now        func() time.Time
}

func NewAttendanceService(uowFactory unitofwork.RepositoryFactory, recorder audit.Recorder, log logger.ILogger) IAttendanceService {
	return &attendanceService{
		uowFactory: uowFactory,
		recorder:   recorder,
		logger:     log,
		now:        time.Now,
	}
}

func (s *attendanceService) CheckIn(ctx context.Context, actorId, accountId uuid.UUID) (*dto.AttendanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()

	account, err := uow.AccountRepository().FindOne(ctx, specification.ByID{ID: accountId})
	if err != nil {
		return nil, storeError(s.logger, "ATTENDANCE", "find account", err)
	}
	if account == nil {
		return nil, serverutils.NotFound("account %s not found", accountId)
	}
	if account.Status == entity.AccountStatusBlocked {
		return nil, serverutils.InvalidState("account %s is blocked", account.Email)
	}

	membership, err := uow.MembershipRepository().FindCurrent(ctx, account.Id, now)
	if err != nil {
		return nil, storeError(s.logger, "ATTENDANCE", "find membership", err)
	}
	if membership == nil {
		return nil, serverutils.InvalidState("member has no membership")
	}
	if membership.Status != entity.MembershipStatusActive {
		return nil, serverutils.InvalidState("membership is %s", membership.Status)
	}
	if now.Before(membership.StartDate) {
		return nil, serverutils.InvalidState("membership starts on %s", membership.StartDate.Format(time.DateOnly))
	}
	if !membership.IsUsableAt(now) {
		return nil, serverutils.InvalidState("membership expired on %s", membership.EndDate.Format(time.DateOnly))
	}

	open, err := uow.AttendanceRepository().Count(ctx,
		specification.ByAccountID{AccountID: account.Id},
		specification.OpenAttendance{},
	)
	if err != nil {
		return nil, storeError(s.logger, "ATTENDANCE", "count open visits", err)
	}
	if open > 0 {
		return nil, serverutils.Conflict("member is already checked in")
	}

	attendance := &entity.Attendance{
		AccountId: account.Id,
		CheckIn:   now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.Internal("begin transaction failed", err)
	}
	defer uow.Rollback()

	if err := uow.AttendanceRepository().Create(ctx, attendance); err != nil {
		// A concurrent check-in won the open-visit index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, serverutils.Conflict("member is already checked in")
		}
		return nil, storeError(s.logger, "ATTENDANCE", "check in", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, serverutils.Internal("commit failed", err)
	}
	attendance.AccountName = account.FullName

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypeAttendance,
		Action:           constant.ActionCheckIn,
		Description:      fmt.Sprintf("%s checked in", account.FullName),
		SubjectAccountId: audit.AccountRef(account.Id),
		ActorAccountId:   audit.AccountRef(actorId),
		Metadata:         map[string]interface{}{"attendance_id": attendance.Id.String()},
	})

	resp := toAttendanceResponse(attendance)
	return &resp, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, actorId, attendanceId uuid.UUID) (*dto.AttendanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	attendance, err := uow.AttendanceRepository().FindOne(ctx, specification.ByID{ID: attendanceId})
	if err != nil {
		return nil, storeError(s.logger, "ATTENDANCE", "find visit", err)
	}
	if attendance == nil {
		return nil, serverutils.NotFound("attendance %s not found", attendanceId)
	}
	if !attendance.IsOpen() {
		return nil, serverutils.Conflict("member is already checked out")
	}

	at := s.now()
	affected, err := uow.AttendanceRepository().Close(ctx, attendance.Id, at)
	if err != nil {
		return nil, storeError(s.logger, "ATTENDANCE", "check out", err)
	}
	if affected == 0 {
		return nil, serverutils.Conflict("member is already checked out")
	}
	attendance.CheckOut = &at

	resp := toAttendanceResponse(attendance)
	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypeAttendance,
		Action:           constant.ActionCheckOut,
		Description:      fmt.Sprintf("Visit %s closed after %.0f minutes", attendance.Id, *resp.DurationMinutes),
		SubjectAccountId: audit.AccountRef(attendance.AccountId),
		ActorAccountId:   audit.AccountRef(actorId),
		Metadata: map[string]interface{}{
			"attendance_id":    attendance.Id.String(),
			"duration_minutes": *resp.DurationMinutes,
		},
	})

	return &resp, nil
}

func (s *attendanceService) ListCurrent(ctx context.Context) ([]dto.AttendanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visits, err := uow.AttendanceRepository().FindAllWithAccount(ctx,
		specification.OpenAttendance{},
	)
	if err != nil {
		return nil, storeError(s.logger, "ATTENDANCE", "list current", err)
	}

	result := make([]dto.AttendanceResponse, 0, len(visits))
	for _, v := range visits {
		result = append(result, toAttendanceResponse(v))
	}
	return result, nil
}

func (s *attendanceService) History(ctx context.Context, query dto.AttendanceHistoryQuery) (*serverutils.PagedResult[dto.AttendanceResponse], error) {
	var filters []specification.Specification
	if query.AccountId != "" {
		accountId, err := parseUUID(query.AccountId, "account_id")
		if err != nil {
			return nil, err
		}
		filters = append(filters, specification.ByAccountID{AccountID: accountId})
	}
	if query.StartDate != "" && query.EndDate != "" {
		from, err := parseDate(query.StartDate, "start_date", false)
		if err != nil {
			return nil, err
		}
		to, err := parseDate(query.EndDate, "end_date", true)
		if err != nil {
			return nil, err
		}
		if from.After(to) {
			return nil, serverutils.ValidationError("start_date must not be after end_date")
		}
		filters = append(filters, specification.CheckInBetween{From: from, To: to})
	}
	return s.page(ctx, query.Page, query.Limit, filters)
}

func (s *attendanceService) MyAttendance(ctx context.Context, accountId uuid.UUID, page, limit int) (*serverutils.PagedResult[dto.AttendanceResponse], error) {
	return s.page(ctx, page, limit, []specification.Specification{specification.ByAccountID{AccountID: accountId}})
}

func (s *attendanceService) page(ctx context.Context, page, limit int, filters []specification.Specification) (*serverutils.PagedResult[dto.AttendanceResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, limit, offset := serverutils.NormalizePage(page, limit)

	total, err := uow.AttendanceRepository().Count(ctx, filters...)
	if err != nil {
		return nil, storeError(s.logger, "ATTENDANCE", "count visits", err)
	}

	specs := append(filters,
		specification.Pagination{Limit: limit, Offset: offset},
	)
	visits, err := uow.AttendanceRepository().FindAllWithAccount(ctx, specs...)
	if err != nil {
		return nil, storeError(s.logger, "ATTENDANCE", "list visits", err)
	}

	items := make([]dto.AttendanceResponse, 0, len(visits))
	for _, v := range visits {
		items = append(items, toAttendanceResponse(v))
	}
	return serverutils.NewPagedResult(items, total, page, limit), nil
}

func (s *attendanceService) Statistics(ctx context.Context) (*dto.AttendanceStatsResponse, error) {
	stats, err := attendanceStats(ctx, s.uowFactory.NewUnitOfWork(ctx), s.now())
	if err != nil {
		return nil, storeError(s.logger, "ATTENDANCE", "attendance statistics", err)
	}
	return &dto.AttendanceStatsResponse{
		CurrentlyCheckedIn:  stats.CurrentlyCheckedIn,
		TodayVisits:         stats.TodayVisits,
		AverageVisitMinutes: stats.AverageVisitMinutes,
	}, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// attendanceStats is shared with the dashboard.
func attendanceStats(ctx context.Context, uow unitofwork.UnitOfWork, now time.Time) (*entity.AttendanceStats, error) {
	repo := uow.AttendanceRepository()

	current, err := repo.Count(ctx, specification.OpenAttendance{})
	if err != nil {
		return nil, err
	}
	today, err := repo.Count(ctx, specification.CheckInSince{Since: startOfDay(now)})
	if err != nil {
		return nil, err
	}
	avg, err := repo.AverageVisitMinutes(ctx, now.Add(-constant.AttendanceStatsWindow))
	if err != nil {
		return nil, err
	}

	return &entity.AttendanceStats{
		CurrentlyCheckedIn:  current,
		TodayVisits:         today,
		AverageVisitMinutes: avg,
	}, nil
}
