package implementation

import (
	"context"
	"errors"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/mapper"
	"gym-management-be/internal/model"
	"gym-management-be/internal/repository/contract"
	"gym-management-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PackageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PackageMapper
}

func NewPackageRepository(db *gorm.DB) contract.PackageRepository {
	return &PackageRepositoryImpl{
		db:     db,
		mapper: mapper.NewPackageMapper(),
	}
}

func (r *PackageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PackageRepositoryImpl) Create(ctx context.Context, pkg *entity.Package) error {
	m := r.mapper.ToModel(pkg)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	// Select("*") so an explicit is_active=false is not swallowed by the column default
	if err := r.db.WithContext(ctx).Select("*").Create(m).Error; err != nil {
		return err
	}
	*pkg = *r.mapper.ToEntity(m)
	return nil
}

func (r *PackageRepositoryImpl) Update(ctx context.Context, pkg *entity.Package) error {
	m := r.mapper.ToModel(pkg)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*pkg = *r.mapper.ToEntity(m)
	return nil
}

func (r *PackageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Package{}).Error
}

func (r *PackageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Package, error) {
	var m model.Package
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PackageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Package, error) {
	var models []*model.Package
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PackageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Package{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
