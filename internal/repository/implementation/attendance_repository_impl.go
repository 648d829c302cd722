package implementation

import (
	"context"
	"errors"
	"time"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/mapper"
	"gym-management-be/internal/model"
	"gym-management-be/internal/repository/contract"
	"gym-management-be/internal/repository/scope"
	"gym-management-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AttendanceMapper
}

func NewAttendanceRepository(db *gorm.DB) contract.AttendanceRepository {
	return &AttendanceRepositoryImpl{
		db:     db,
		mapper: mapper.NewAttendanceMapper(),
	}
}

type attendanceWithAccount struct {
	model.Attendance
	AccountName string
}

func (r *AttendanceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AttendanceRepositoryImpl) Create(ctx context.Context, attendance *entity.Attendance) error {
	m := r.mapper.ToModel(attendance)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attendance = *r.mapper.ToEntity(m)
	return nil
}

func (r *AttendanceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attendance, error) {
	var m model.Attendance
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AttendanceRepositoryImpl) FindAllWithAccount(ctx context.Context, specs ...specification.Specification) ([]*entity.Attendance, error) {
	var rows []attendanceWithAccount
	query := r.db.WithContext(ctx).
		Table("attendances").
		Select("attendances.*, COALESCE(accounts.full_name, '') AS account_name").
		Joins("LEFT JOIN accounts ON accounts.id = attendances.account_id").
		Scopes(scope.OrderByCheckInDesc)
	query = r.applySpecifications(query, specs...)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]*entity.Attendance, 0, len(rows))
	for i := range rows {
		e := r.mapper.ToEntity(&rows[i].Attendance)
		e.AccountName = rows[i].AccountName
		result = append(result, e)
	}
	return result, nil
}

func (r *AttendanceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Attendance{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AttendanceRepositoryImpl) Close(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("id = ? AND check_out IS NULL", id).
		Update("check_out", at)
	return result.RowsAffected, result.Error
}

// AverageVisitMinutes is computed in Go since date arithmetic differs between drivers.
func (r *AttendanceRepositoryImpl) AverageVisitMinutes(ctx context.Context, since time.Time) (float64, error) {
	var visits []model.Attendance
	err := r.db.WithContext(ctx).
		Select("check_in", "check_out").
		Where("check_out IS NOT NULL AND check_in >= ?", since).
		Find(&visits).Error
	if err != nil {
		return 0, err
	}
	if len(visits) == 0 {
		return 0, nil
	}

	var total time.Duration
	for _, v := range visits {
		total += v.CheckOut.Sub(v.CheckIn)
	}
	return total.Minutes() / float64(len(visits)), nil
}
