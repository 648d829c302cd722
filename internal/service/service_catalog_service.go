// FILE: internal/service/service_catalog_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"gym-management-be/internal/constant"
	"gym-management-be/internal/dto"
	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/pkg/serverutils"
	"gym-management-be/internal/repository/memory"
	"gym-management-be/internal/repository/specification"
	"gym-management-be/internal/repository/unitofwork"
	"gym-management-be/pkg/audit"

	"github.com/google/uuid"
)

type IServiceCatalogService interface {
	List(ctx context.Context, query dto.ListQuery) (*serverutils.PagedResult[dto.GymServiceResponse], error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.GymServiceResponse, error)
	Create(ctx context.Context, actorId uuid.UUID, req *dto.GymServiceRequest) (*dto.GymServiceResponse, error)
	Update(ctx context.Context, actorId, id uuid.UUID, req *dto.GymServiceRequest) (*dto.GymServiceResponse, error)
	Delete(ctx context.Context, actorId, id uuid.UUID) error

	Book(ctx context.Context, accountId, serviceId uuid.UUID, req *dto.BookingRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, accountId, bookingId uuid.UUID) (*dto.BookingResponse, error)
	ListBookings(ctx context.Context, serviceId uuid.UUID) ([]dto.BookingResponse, error)
	MyBookings(ctx context.Context, accountId uuid.UUID) ([]dto.BookingResponse, error)
}

type serviceCatalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.CatalogCache
	recorder   audit.Recorder
	logger     logger.ILogger
}

func NewServiceCatalogService(uowFactory unitofwork.RepositoryFactory, cache *memory.CatalogCache, recorder audit.Recorder, log logger.ILogger) IServiceCatalogService {
	return &serviceCatalogService{
		uowFactory: uowFactory,
		cache:      cache,
		recorder:   recorder,
		logger:     log,
	}
}

func (s *serviceCatalogService) List(ctx context.Context, query dto.ListQuery) (*serverutils.PagedResult[dto.GymServiceResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, limit, offset := serverutils.NormalizePage(query.Page, query.Limit)
	search := specification.Search{Query: query.Q, Fields: []string{"name", "description", "category"}}

	total, err := uow.GymServiceRepository().Count(ctx, search)
	if err != nil {
		return nil, storeError(s.logger, "SERVICE", "count services", err)
	}

	services, err := uow.GymServiceRepository().FindAll(ctx,
		search,
		specification.OrderBy{Field: "name"},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, storeError(s.logger, "SERVICE", "list services", err)
	}

	items := make([]dto.GymServiceResponse, 0, len(services))
	for _, svc := range services {
		items = append(items, toGymServiceResponse(svc))
	}
	return serverutils.NewPagedResult(items, total, page, limit), nil
}

func (s *serviceCatalogService) find(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.GymService, error) {
	svc, err := uow.GymServiceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, storeError(s.logger, "SERVICE", "find service", err)
	}
	if svc == nil {
		return nil, serverutils.NotFound("service %s not found", id)
	}
	return svc, nil
}

func (s *serviceCatalogService) GetById(ctx context.Context, id uuid.UUID) (*dto.GymServiceResponse, error) {
	svc, err := s.find(ctx, s.uowFactory.NewUnitOfWork(ctx), id)
	if err != nil {
		return nil, err
	}
	resp := toGymServiceResponse(svc)
	return &resp, nil
}

func (s *serviceCatalogService) ensureNameFree(ctx context.Context, uow unitofwork.UnitOfWork, name string, exclude uuid.UUID) error {
	specs := []specification.Specification{specification.ByName{Name: name}}
	if exclude != uuid.Nil {
		specs = append(specs, specification.ExcludeID{ID: exclude})
	}
	count, err := uow.GymServiceRepository().Count(ctx, specs...)
	if err != nil {
		return storeError(s.logger, "SERVICE", "check name", err)
	}
	if count > 0 {
		return serverutils.Conflict("service %q already exists", name)
	}
	return nil
}

func applyServiceRequest(svc *entity.GymService, req *dto.GymServiceRequest) {
	svc.Name = strings.TrimSpace(req.Name)
	svc.Description = req.Description
	svc.Price = *req.Price
	svc.BillingCycle = entity.BillingCycle(req.BillingCycle)
	svc.Category = req.Category
	svc.Capacity = req.Capacity
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
}

func (s *serviceCatalogService) Create(ctx context.Context, actorId uuid.UUID, req *dto.GymServiceRequest) (*dto.GymServiceResponse, error) {
	if req.Price.IsNegative() {
		return nil, serverutils.ValidationError("price must not be negative")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ensureNameFree(ctx, uow, strings.TrimSpace(req.Name), uuid.Nil); err != nil {
		return nil, err
	}

	svc := &entity.GymService{IsActive: true}
	applyServiceRequest(svc, req)

	if err := uow.GymServiceRepository().Create(ctx, svc); err != nil {
		return nil, storeError(s.logger, "SERVICE", "create service", err)
	}
	s.cache.Invalidate(memory.CatalogKeyServices)

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:           entity.LogTypeService,
		Action:         constant.ActionCreate,
		Description:    fmt.Sprintf("Service %s created", svc.Name),
		ActorAccountId: audit.AccountRef(actorId),
		Metadata:       map[string]interface{}{"service_id": svc.Id.String(), "billing_cycle": svc.BillingCycle},
	})

	resp := toGymServiceResponse(svc)
	return &resp, nil
}

func (s *serviceCatalogService) Update(ctx context.Context, actorId, id uuid.UUID, req *dto.GymServiceRequest) (*dto.GymServiceResponse, error) {
	if req.Price.IsNegative() {
		return nil, serverutils.ValidationError("price must not be negative")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	svc, err := s.find(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != svc.Name {
		if err := s.ensureNameFree(ctx, uow, name, svc.Id); err != nil {
			return nil, err
		}
	}
	applyServiceRequest(svc, req)

	if err := uow.GymServiceRepository().Update(ctx, svc); err != nil {
		return nil, storeError(s.logger, "SERVICE", "update service", err)
	}
	s.cache.Invalidate(memory.CatalogKeyServices)

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:           entity.LogTypeService,
		Action:         constant.ActionUpdate,
		Description:    fmt.Sprintf("Service %s updated", svc.Name),
		ActorAccountId: audit.AccountRef(actorId),
		Metadata:       map[string]interface{}{"service_id": svc.Id.String()},
	})

	resp := toGymServiceResponse(svc)
	return &resp, nil
}

func (s *serviceCatalogService) Delete(ctx context.Context, actorId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	svc, err := s.find(ctx, uow, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return serverutils.Internal("begin transaction failed", err)
	}
	defer uow.Rollback()

	if err := uow.BookingRepository().DeleteByService(ctx, svc.Id); err != nil {
		return storeError(s.logger, "SERVICE", "delete bookings", err)
	}
	if err := uow.GymServiceRepository().Delete(ctx, svc.Id); err != nil {
		return storeError(s.logger, "SERVICE", "delete service", err)
	}
	if err := uow.Commit(); err != nil {
		return serverutils.Internal("commit failed", err)
	}
	s.cache.Invalidate(memory.CatalogKeyServices)

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:           entity.LogTypeService,
		Action:         constant.ActionDelete,
		Description:    fmt.Sprintf("Service %s deleted", svc.Name),
		ActorAccountId: audit.AccountRef(actorId),
		Metadata:       map[string]interface{}{"service_id": svc.Id.String()},
	})
	return nil
}

func (s *serviceCatalogService) Book(ctx context.Context, accountId, serviceId uuid.UUID, req *dto.BookingRequest) (*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	svc, err := s.find(ctx, uow, serviceId)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, serverutils.Conflict("service %s is not accepting bookings", svc.Name)
	}

	slot := req.ScheduledAt.UTC()

	if err := uow.Begin(ctx); err != nil {
		return nil, serverutils.Internal("begin transaction failed", err)
	}
	defer uow.Rollback()

	// Capacity zero means unlimited.
	if svc.Capacity > 0 {
		taken, err := uow.BookingRepository().Count(ctx,
			specification.ByServiceID{ServiceID: svc.Id},
			specification.ScheduledAt{At: slot},
			specification.ByStatus{Status: string(entity.BookingStatusBooked)},
		)
		if err != nil {
			return nil, storeError(s.logger, "BOOKING", "count bookings", err)
		}
		if taken >= int64(svc.Capacity) {
			return nil, serverutils.Conflict("slot %s for %s is full", slot.Format("2006-01-02 15:04"), svc.Name)
		}
	}

	booking := &entity.Booking{
		ServiceId:   svc.Id,
		AccountId:   accountId,
		Status:      entity.BookingStatusBooked,
		ScheduledAt: slot,
	}
	if err := uow.BookingRepository().Create(ctx, booking); err != nil {
		return nil, storeError(s.logger, "BOOKING", "create booking", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, serverutils.Internal("commit failed", err)
	}

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypeBooking,
		Action:           constant.ActionBook,
		Description:      fmt.Sprintf("Booked %s for %s", svc.Name, slot.Format("2006-01-02 15:04")),
		SubjectAccountId: audit.AccountRef(accountId),
		ActorAccountId:   audit.AccountRef(accountId),
		Metadata:         map[string]interface{}{"booking_id": booking.Id.String(), "service_id": svc.Id.String()},
	})

	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *serviceCatalogService) CancelBooking(ctx context.Context, accountId, bookingId uuid.UUID) (*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return nil, storeError(s.logger, "BOOKING", "find booking", err)
	}
	if booking == nil {
		return nil, serverutils.NotFound("booking %s not found", bookingId)
	}
	if booking.AccountId != accountId {
		return nil, serverutils.Forbidden("booking belongs to another member")
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, serverutils.Conflict("booking is already cancelled")
	}

	booking.Status = entity.BookingStatusCancelled
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, storeError(s.logger, "BOOKING", "cancel booking", err)
	}

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:             entity.LogTypeBooking,
		Action:           constant.ActionCancel,
		Description:      fmt.Sprintf("Booking %s cancelled", booking.Id),
		SubjectAccountId: audit.AccountRef(accountId),
		ActorAccountId:   audit.AccountRef(accountId),
		Metadata:         map[string]interface{}{"booking_id": booking.Id.String(), "service_id": booking.ServiceId.String()},
	})

	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *serviceCatalogService) ListBookings(ctx context.Context, serviceId uuid.UUID) ([]dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.find(ctx, uow, serviceId); err != nil {
		return nil, err
	}
	return s.bookings(ctx, uow, specification.ByServiceID{ServiceID: serviceId})
}

func (s *serviceCatalogService) MyBookings(ctx context.Context, accountId uuid.UUID) ([]dto.BookingResponse, error) {
	return s.bookings(ctx, s.uowFactory.NewUnitOfWork(ctx), specification.ByAccountID{AccountID: accountId})
}

func (s *serviceCatalogService) bookings(ctx context.Context, uow unitofwork.UnitOfWork, filter specification.Specification) ([]dto.BookingResponse, error) {
	bookings, err := uow.BookingRepository().FindAll(ctx, filter, specification.OrderBy{Field: "scheduled_at", Desc: true})
	if err != nil {
		return nil, storeError(s.logger, "BOOKING", "list bookings", err)
	}

	result := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, toBookingResponse(b))
	}
	return result, nil
}
