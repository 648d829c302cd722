// FILE: internal/service/package_service.go
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

type IPackageService interface {
	List(ctx context.Context, query dto.ListQuery) (*serverutils.PagedResult[dto.PackageResponse], error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.PackageResponse, error)
	Create(ctx context.Context, actorId uuid.UUID, req *dto.PackageRequest) (*dto.PackageResponse, error)
	Update(ctx context.Context, actorId, id uuid.UUID, req *dto.PackageRequest) (*dto.PackageResponse, error)
	Delete(ctx context.Context, actorId, id uuid.UUID) error
}

type packageService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.CatalogCache
	recorder   audit.Recorder
	logger     logger.ILogger
}

func NewPackageService(uowFactory unitofwork.RepositoryFactory, cache *memory.CatalogCache, recorder audit.Recorder, log logger.ILogger) IPackageService {
	return &packageService{
		uowFactory: uowFactory,
		cache:      cache,
		recorder:   recorder,
		logger:     log,
	}
}

func (s *packageService) List(ctx context.Context, query dto.ListQuery) (*serverutils.PagedResult[dto.PackageResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, limit, offset := serverutils.NormalizePage(query.Page, query.Limit)
	search := specification.Search{Query: query.Q, Fields: []string{"name", "description"}}

	total, err := uow.PackageRepository().Count(ctx, search)
	if err != nil {
		return nil, storeError(s.logger, "PACKAGE", "count packages", err)
	}

	packages, err := uow.PackageRepository().FindAll(ctx,
		search,
		specification.OrderBy{Field: "price"},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, storeError(s.logger, "PACKAGE", "list packages", err)
	}

	items := make([]dto.PackageResponse, 0, len(packages))
	for _, p := range packages {
		items = append(items, toPackageResponse(p))
	}
	return serverutils.NewPagedResult(items, total, page, limit), nil
}

func (s *packageService) find(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Package, error) {
	pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, storeError(s.logger, "PACKAGE", "find package", err)
	}
	if pkg == nil {
		return nil, serverutils.NotFound("package %s not found", id)
	}
	return pkg, nil
}

func (s *packageService) GetById(ctx context.Context, id uuid.UUID) (*dto.PackageResponse, error) {
	pkg, err := s.find(ctx, s.uowFactory.NewUnitOfWork(ctx), id)
	if err != nil {
		return nil, err
	}
	resp := toPackageResponse(pkg)
	return &resp, nil
}

func (s *packageService) ensureNameFree(ctx context.Context, uow unitofwork.UnitOfWork, name string, exclude uuid.UUID) error {
	specs := []specification.Specification{specification.ByName{Name: name}}
	if exclude != uuid.Nil {
		specs = append(specs, specification.ExcludeID{ID: exclude})
	}
	count, err := uow.PackageRepository().Count(ctx, specs...)
	if err != nil {
		return storeError(s.logger, "PACKAGE", "check name", err)
	}
	if count > 0 {
		return serverutils.Conflict("package %q already exists", name)
	}
	return nil
}

func (s *packageService) Create(ctx context.Context, actorId uuid.UUID, req *dto.PackageRequest) (*dto.PackageResponse, error) {
	if req.Price.IsNegative() {
		return nil, serverutils.ValidationError("price must not be negative")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, uow, name, uuid.Nil); err != nil {
		return nil, err
	}

	pkg := &entity.Package{
		Name:         name,
		Description:  req.Description,
		Price:        *req.Price,
		DurationDays: req.DurationDays,
		Features:     req.Features,
		IsActive:     true,
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	if err := uow.PackageRepository().Create(ctx, pkg); err != nil {
		return nil, storeError(s.logger, "PACKAGE", "create package", err)
	}
	s.cache.Invalidate(memory.CatalogKeyPackages)

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:           entity.LogTypePackage,
		Action:         constant.ActionCreate,
		Description:    fmt.Sprintf("Package %s created", pkg.Name),
		ActorAccountId: audit.AccountRef(actorId),
		Metadata:       map[string]interface{}{"package_id": pkg.Id.String(), "price": pkg.Price.String()},
	})

	resp := toPackageResponse(pkg)
	return &resp, nil
}

func (s *packageService) Update(ctx context.Context, actorId, id uuid.UUID, req *dto.PackageRequest) (*dto.PackageResponse, error) {
	if req.Price.IsNegative() {
		return nil, serverutils.ValidationError("price must not be negative")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pkg, err := s.find(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name != pkg.Name {
		if err := s.ensureNameFree(ctx, uow, name, pkg.Id); err != nil {
			return nil, err
		}
	}

	pkg.Name = name
	pkg.Description = req.Description
	pkg.Price = *req.Price
	pkg.DurationDays = req.DurationDays
	if req.Features != nil {
		pkg.Features = req.Features
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	if err := uow.PackageRepository().Update(ctx, pkg); err != nil {
		return nil, storeError(s.logger, "PACKAGE", "update package", err)
	}
	s.cache.Invalidate(memory.CatalogKeyPackages)

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:           entity.LogTypePackage,
		Action:         constant.ActionUpdate,
		Description:    fmt.Sprintf("Package %s updated", pkg.Name),
		ActorAccountId: audit.AccountRef(actorId),
		Metadata:       map[string]interface{}{"package_id": pkg.Id.String()},
	})

	resp := toPackageResponse(pkg)
	return &resp, nil
}

func (s *packageService) Delete(ctx context.Context, actorId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	pkg, err := s.find(ctx, uow, id)
	if err != nil {
		return err
	}

	inUse, err := uow.MembershipRepository().Count(ctx, specification.ByPackageID{PackageID: pkg.Id})
	if err != nil {
		return storeError(s.logger, "PACKAGE", "count memberships", err)
	}
	if inUse > 0 {
		return serverutils.Conflict("package %s is used by %d memberships", pkg.Name, inUse)
	}

	if err := uow.PackageRepository().Delete(ctx, pkg.Id); err != nil {
		return storeError(s.logger, "PACKAGE", "delete package", err)
	}
	s.cache.Invalidate(memory.CatalogKeyPackages)

	s.recorder.RecordEvent(ctx, audit.Entry{
		Type:           entity.LogTypePackage,
		Action:         constant.ActionDelete,
		Description:    fmt.Sprintf("Package %s deleted", pkg.Name),
		ActorAccountId: audit.AccountRef(actorId),
		Metadata:       map[string]interface{}{"package_id": pkg.Id.String()},
	})
	return nil
}
