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

type GymServiceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GymServiceMapper
}

func NewGymServiceRepository(db *gorm.DB) contract.GymServiceRepository {
	return &GymServiceRepositoryImpl{
		db:     db,
		mapper: mapper.NewGymServiceMapper(),
	}
}

func (r *GymServiceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GymServiceRepositoryImpl) Create(ctx context.Context, service *entity.GymService) error {
	m := r.mapper.ToModel(service)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Select("*").Create(m).Error; err != nil {
		return err
	}
	*service = *r.mapper.ToEntity(m)
	return nil
}

func (r *GymServiceRepositoryImpl) Update(ctx context.Context, service *entity.GymService) error {
	m := r.mapper.ToModel(service)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*service = *r.mapper.ToEntity(m)
	return nil
}

func (r *GymServiceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GymService{}).Error
}

func (r *GymServiceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GymService, error) {
	var m model.GymService
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GymServiceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GymService, error) {
	var models []*model.GymService
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GymServiceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GymService{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Bookings

type BookingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GymServiceMapper
}

func NewBookingRepository(db *gorm.DB) contract.BookingRepository {
	return &BookingRepositoryImpl{
		db:     db,
		mapper: mapper.NewGymServiceMapper(),
	}
}

func (r *BookingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, booking *entity.Booking) error {
	m := r.mapper.BookingToModel(booking)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*booking = *r.mapper.BookingToEntity(m)
	return nil
}

func (r *BookingRepositoryImpl) Update(ctx context.Context, booking *entity.Booking) error {
	m := r.mapper.BookingToModel(booking)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*booking = *r.mapper.BookingToEntity(m)
	return nil
}

func (r *BookingRepositoryImpl) DeleteByAccount(ctx context.Context, accountId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("account_id = ?", accountId).Delete(&model.Booking{}).Error
}

func (r *BookingRepositoryImpl) DeleteByService(ctx context.Context, serviceId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("service_id = ?", serviceId).Delete(&model.Booking{}).Error
}

func (r *BookingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	var m model.Booking
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.BookingToEntity(&m), nil
}

func (r *BookingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var models []*model.Booking
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.BookingsToEntities(models), nil
}

func (r *BookingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Booking{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
