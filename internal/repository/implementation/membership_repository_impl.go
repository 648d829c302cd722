package implementation

import (
	"context"
	"errors"
	"time"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/mapper"
	"gym-management-be/internal/model"
	"gym-management-be/internal/repository/contract"
	"gym-management-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MembershipMapper
}

func NewMembershipRepository(db *gorm.DB) contract.MembershipRepository {
	return &MembershipRepositoryImpl{
		db:     db,
		mapper: mapper.NewMembershipMapper(),
	}
}

func (r *MembershipRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MembershipRepositoryImpl) Create(ctx context.Context, membership *entity.Membership) error {
	m := r.mapper.ToModel(membership)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	name := membership.PackageName
	*membership = *r.mapper.ToEntity(m)
	membership.PackageName = name
	return nil
}

func (r *MembershipRepositoryImpl) Update(ctx context.Context, membership *entity.Membership) error {
	m := r.mapper.ToModel(membership)
	if err := r.db.WithContext(ctx).Omit("Package").Save(m).Error; err != nil {
		return err
	}
	name := membership.PackageName
	*membership = *r.mapper.ToEntity(m)
	membership.PackageName = name
	return nil
}

func (r *MembershipRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Membership{}).Error
}

func (r *MembershipRepositoryImpl) DeleteByAccount(ctx context.Context, accountId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("account_id = ?", accountId).Delete(&model.Membership{}).Error
}

func (r *MembershipRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error) {
	var m model.Membership
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Package"), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MembershipRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Membership, error) {
	var models []*model.Membership
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Package"), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MembershipRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Membership{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MembershipRepositoryImpl) FindCurrent(ctx context.Context, accountId uuid.UUID, at time.Time) (*entity.Membership, error) {
	started, err := r.FindOne(ctx,
		specification.ByAccountID{AccountID: accountId},
		specification.StartedBy{At: at},
		specification.OrderBy{Field: "start_date", Desc: true},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil || started != nil {
		return started, err
	}
	return r.FindOne(ctx,
		specification.ByAccountID{AccountID: accountId},
		specification.OrderBy{Field: "start_date"},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (r *MembershipRepositoryImpl) ExpireActive(ctx context.Context, accountId uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("account_id = ? AND status = ?", accountId, string(entity.MembershipStatusActive)).
		Updates(map[string]interface{}{
			"status":     string(entity.MembershipStatusExpired),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *MembershipRepositoryImpl) ExpireOverdue(ctx context.Context, now time.Time) ([]*entity.Membership, error) {
	overdue, err := r.FindAll(ctx,
		specification.ByStatus{Status: string(entity.MembershipStatusActive)},
		specification.EndedBefore{At: now},
	)
	if err != nil {
		return nil, err
	}
	if len(overdue) == 0 {
		return overdue, nil
	}

	// Guard on status per row so a concurrent admin edit is neither overwritten nor reported
	expired := make([]*entity.Membership, 0, len(overdue))
	for _, m := range overdue {
		result := r.db.WithContext(ctx).Model(&model.Membership{}).
			Where("id = ? AND status = ?", m.Id, string(entity.MembershipStatusActive)).
			Updates(map[string]interface{}{
				"status":     string(entity.MembershipStatusExpired),
				"updated_at": now,
			})
		if result.Error != nil {
			return expired, result.Error
		}
		if result.RowsAffected == 0 {
			continue
		}
		m.Status = entity.MembershipStatusExpired
		m.UpdatedAt = now
		expired = append(expired, m)
	}
	return expired, nil
}
