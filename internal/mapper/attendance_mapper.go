package mapper

import (
	"gym-management-be/internal/entity"
	"gym-management-be/internal/model"
)

type AttendanceMapper struct{}

func NewAttendanceMapper() *AttendanceMapper {
	return &AttendanceMapper{}
}

func (m *AttendanceMapper) ToEntity(mdl *model.Attendance) *entity.Attendance {
	if mdl == nil {
		return nil
	}
	return &entity.Attendance{
		Id:        mdl.Id,
		AccountId: mdl.AccountId,
		CheckIn:   mdl.CheckIn,
		CheckOut:  mdl.CheckOut,
		CreatedAt: mdl.CreatedAt,
	}
}

func (m *AttendanceMapper) ToModel(e *entity.Attendance) *model.Attendance {
	if e == nil {
		return nil
	}
	return &model.Attendance{
		Id:        e.Id,
		AccountId: e.AccountId,
		CheckIn:   e.CheckIn,
		CheckOut:  e.CheckOut,
		CreatedAt: e.CreatedAt,
	}
}

func (m *AttendanceMapper) ToEntities(models []*model.Attendance) []*entity.Attendance {
	entities := make([]*entity.Attendance, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
