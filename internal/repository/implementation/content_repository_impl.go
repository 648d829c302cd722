package implementation

import (
	"context"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/mapper"
	"gym-management-be/internal/model"
	"gym-management-be/internal/repository/contract"
	"gym-management-be/internal/repository/scope"
	"gym-management-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentMapper
}

func NewContentRepository(db *gorm.DB) contract.ContentRepository {
	return &ContentRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentMapper(),
	}
}

func (r *ContentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ContentRepositoryImpl) CreateTip(ctx context.Context, tip *entity.NutritionTip) error {
	m := r.mapper.TipToModel(tip)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Select("*").Create(m).Error; err != nil {
		return err
	}
	*tip = *r.mapper.TipToEntity(m)
	return nil
}

func (r *ContentRepositoryImpl) CreateProduct(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ProductToModel(product)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Select("*").Create(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ProductToEntity(m)
	return nil
}

func (r *ContentRepositoryImpl) FindTips(ctx context.Context, specs ...specification.Specification) ([]*entity.NutritionTip, error) {
	var models []*model.NutritionTip
	if err := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	tips := make([]*entity.NutritionTip, 0, len(models))
	for _, m := range models {
		tips = append(tips, r.mapper.TipToEntity(m))
	}
	return tips, nil
}

func (r *ContentRepositoryImpl) FindProducts(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	if err := r.applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	products := make([]*entity.Product, 0, len(models))
	for _, m := range models {
		products = append(products, r.mapper.ProductToEntity(m))
	}
	return products, nil
}

func (r *ContentRepositoryImpl) CountTips(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.NutritionTip{}).Count(&count).Error
	return count, err
}

func (r *ContentRepositoryImpl) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}
