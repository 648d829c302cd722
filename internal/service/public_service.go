// FILE: internal/service/public_service.go
package service

import (
	"context"

	"gym-management-be/internal/dto"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/repository/memory"
	"gym-management-be/internal/repository/specification"
	"gym-management-be/internal/repository/unitofwork"
)

// IPublicService serves the anonymous catalog, cached in memory.
type IPublicService interface {
	Packages(ctx context.Context) ([]dto.PackageResponse, error)
	Services(ctx context.Context) ([]dto.GymServiceResponse, error)
	NutritionTips(ctx context.Context) ([]dto.NutritionTipResponse, error)
	Products(ctx context.Context) ([]dto.ProductResponse, error)
}

type publicService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.CatalogCache
	logger     logger.ILogger
}

func NewPublicService(uowFactory unitofwork.RepositoryFactory, cache *memory.CatalogCache, log logger.ILogger) IPublicService {
	return &publicService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     log,
	}
}

// cached returns the value under key, loading and storing it on a miss.
func cached[T any](c *memory.CatalogCache, key string, load func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

func (s *publicService) Packages(ctx context.Context) ([]dto.PackageResponse, error) {
	return cached(s.cache, memory.CatalogKeyPackages, func() ([]dto.PackageResponse, error) {
		packages, err := s.uowFactory.NewUnitOfWork(ctx).PackageRepository().FindAll(ctx,
			specification.ActiveOnly{},
			specification.OrderBy{Field: "price"},
		)
		if err != nil {
			return nil, storeError(s.logger, "PUBLIC", "list packages", err)
		}
		res := make([]dto.PackageResponse, 0, len(packages))
		for _, p := range packages {
			res = append(res, toPackageResponse(p))
		}
		return res, nil
	})
}

func (s *publicService) Services(ctx context.Context) ([]dto.GymServiceResponse, error) {
	return cached(s.cache, memory.CatalogKeyServices, func() ([]dto.GymServiceResponse, error) {
		services, err := s.uowFactory.NewUnitOfWork(ctx).GymServiceRepository().FindAll(ctx,
			specification.ActiveOnly{},
			specification.OrderBy{Field: "name"},
		)
		if err != nil {
			return nil, storeError(s.logger, "PUBLIC", "list services", err)
		}
		res := make([]dto.GymServiceResponse, 0, len(services))
		for _, svc := range services {
			res = append(res, toGymServiceResponse(svc))
		}
		return res, nil
	})
}

func (s *publicService) NutritionTips(ctx context.Context) ([]dto.NutritionTipResponse, error) {
	return cached(s.cache, memory.CatalogKeyTips, func() ([]dto.NutritionTipResponse, error) {
		tips, err := s.uowFactory.NewUnitOfWork(ctx).ContentRepository().FindTips(ctx,
			specification.Published{},
		)
		if err != nil {
			return nil, storeError(s.logger, "PUBLIC", "list tips", err)
		}
		res := make([]dto.NutritionTipResponse, 0, len(tips))
		for _, t := range tips {
			res = append(res, dto.NutritionTipResponse{
				Id:        t.Id,
				Title:     t.Title,
				Summary:   t.Summary,
				Body:      t.Body,
				Category:  t.Category,
				CreatedAt: t.CreatedAt,
			})
		}
		return res, nil
	})
}

func (s *publicService) Products(ctx context.Context) ([]dto.ProductResponse, error) {
	return cached(s.cache, memory.CatalogKeyProducts, func() ([]dto.ProductResponse, error) {
		products, err := s.uowFactory.NewUnitOfWork(ctx).ContentRepository().FindProducts(ctx,
			specification.ActiveOnly{},
			specification.OrderBy{Field: "name"},
		)
		if err != nil {
			return nil, storeError(s.logger, "PUBLIC", "list products", err)
		}
		res := make([]dto.ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, dto.ProductResponse{
				Id:          p.Id,
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				Category:    p.Category,
				Stock:       p.Stock,
				ImageURL:    p.ImageURL,
			})
		}
		return res, nil
	})
}
