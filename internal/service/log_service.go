// FILE: internal/service/log_service.go
package service

import (
	"context"
	"errors"
	"time"

	"gym-management-be/internal/dto"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/repository/specification"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/pkg/admin/dashboard"

	"github.com/google/uuid"
)

type ILogService interface {
	List(ctx context.Context, query dto.LogListQuery) (*serverutils.PagedResult[dto.SystemLogResponse], error)
	Statistics(ctx context.Context) (*dto.LogStatisticsResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.SystemLogResponse, error)
	AppLogs(ctx context.Context, query dto.AppLogQuery) (*serverutils.PagedResult[dto.AppLogResponse], error)
	AppLog(ctx context.Context, id string) (*dto.AppLogResponse, error)
}

type logService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator *dashboard.Aggregator
	reader     dashboard.LogReader
	logger     logger.ILogger
	now        func() time.Time
}

func NewLogService(uowFactory unitofwork.RepositoryFactory, aggregator *dashboard.Aggregator, reader dashboard.LogReader, log logger.ILogger) ILogService {
	return &logService{
		uowFactory: uowFactory,
		aggregator: aggregator,
		reader:     reader,
		logger:     log,
		now:        time.Now,
	}
}

func (s *logService) List(ctx context.Context, query dto.LogListQuery) (*serverutils.PagedResult[dto.SystemLogResponse], error) {
	var filters []specification.Specification
	if query.Type != "" {
		filters = append(filters, specification.ByLogType{Type: query.Type})
	}
	if query.Action != "" {
		filters = append(filters, specification.ByLogAction{Action: query.Action})
	}
	if query.AccountId != "" {
		accountId, err := parseUUID(query.AccountId, "account_id")
		if err != nil {
			return nil, err
		}
		filters = append(filters, specification.InvolvingAccount{AccountID: accountId})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, limit, offset := serverutils.NormalizePage(query.Page, query.Limit)

	total, err := uow.SystemLogRepository().Count(ctx, filters...)
	if err != nil {
		return nil, storeError(s.logger, "LOGS", "count logs", err)
	}

	specs := append(filters,
		specification.Pagination{Limit: limit, Offset: offset},
	)
	logs, err := uow.SystemLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, storeError(s.logger, "LOGS", "list logs", err)
	}

	items := make([]dto.SystemLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, toSystemLogResponse(l))
	}
	return serverutils.NewPagedResult(items, total, page, limit), nil
}

func (s *logService) Statistics(ctx context.Context) (*dto.LogStatisticsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.SystemLogRepository()
	now := s.now()

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, storeError(s.logger, "LOGS", "count logs", err)
	}
	last24h, err := repo.Count(ctx, specification.CreatedSince{Since: now.Add(-24 * time.Hour)})
	if err != nil {
		return nil, storeError(s.logger, "LOGS", "count logs", err)
	}
	last7d, err := repo.Count(ctx, specification.CreatedSince{Since: now.Add(-7 * 24 * time.Hour)})
	if err != nil {
		return nil, storeError(s.logger, "LOGS", "count logs", err)
	}
	byType, err := repo.CountGrouped(ctx, "type")
	if err != nil {
		return nil, storeError(s.logger, "LOGS", "group logs", err)
	}
	byAction, err := repo.CountGrouped(ctx, "action")
	if err != nil {
		return nil, storeError(s.logger, "LOGS", "group logs", err)
	}

	return &dto.LogStatisticsResponse{
		Total:    total,
		Last24h:  last24h,
		Last7d:   last7d,
		ByType:   toLogCounts(byType),
		ByAction: toLogCounts(byAction),
	}, nil
}

func toLogCounts(counts []entity.LogCount) []dto.LogCountResponse {
	res := make([]dto.LogCountResponse, 0, len(counts))
	for _, c := range counts {
		res = append(res, dto.LogCountResponse{Key: c.Key, Count: c.Count})
	}
	return res
}

func (s *logService) GetById(ctx context.Context, id uuid.UUID) (*dto.SystemLogResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	l, err := uow.SystemLogRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, storeError(s.logger, "LOGS", "find log", err)
	}
	if l == nil {
		return nil, serverutils.NotFound("log %s not found", id)
	}
	resp := toSystemLogResponse(l)
	return &resp, nil
}

func (s *logService) AppLogs(ctx context.Context, query dto.AppLogQuery) (*serverutils.PagedResult[dto.AppLogResponse], error) {
	page, limit, _ := serverutils.NormalizePage(query.Page, query.Limit)

	logs, total, err := s.aggregator.GetAppLogs(s.reader, page, limit, query.Level)
	if err != nil {
		return nil, serverutils.Internal("read application log failed", err)
	}

	items := make([]dto.AppLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, toAppLogResponse(l))
	}
	return serverutils.NewPagedResult(items, int64(total), page, limit), nil
}

func (s *logService) AppLog(ctx context.Context, id string) (*dto.AppLogResponse, error) {
	l, err := s.aggregator.GetAppLog(s.reader, id)
	if errors.Is(err, logger.ErrLogNotFound) {
		return nil, serverutils.NotFound("application log %s not found", id)
	}
	if err != nil {
		return nil, serverutils.Internal("read application log failed", err)
	}
	resp := toAppLogResponse(*l)
	return &resp, nil
}

func toAppLogResponse(l dashboard.AppLog) dto.AppLogResponse {
	return dto.AppLogResponse{
		Id:        l.Id,
		Level:     l.Level,
		Module:    l.Module,
		Message:   l.Message,
		Details:   l.Details,
		CreatedAt: l.CreatedAt,
	}
}
