package mapper

import (
	"gym-management-be/internal/entity"
	"gym-management-be/internal/model"

	"gorm.io/datatypes"
)

type SystemLogMapper struct{}

func NewSystemLogMapper() *SystemLogMapper {
	return &SystemLogMapper{}
}

func (m *SystemLogMapper) ToEntity(mdl *model.SystemLog) *entity.SystemLog {
	if mdl == nil {
		return nil
	}
	metadata := map[string]interface{}(mdl.Metadata)
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return &entity.SystemLog{
		Id:               mdl.Id,
		Type:             mdl.Type,
		Action:           mdl.Action,
		Description:      mdl.Description,
		SubjectAccountId: mdl.SubjectAccountId,
		ActorAccountId:   mdl.ActorAccountId,
		Metadata:         metadata,
		CreatedAt:        mdl.CreatedAt,
	}
}

func (m *SystemLogMapper) ToModel(e *entity.SystemLog) *model.SystemLog {
	if e == nil {
		return nil
	}
	return &model.SystemLog{
		Id:               e.Id,
		Type:             e.Type,
		Action:           e.Action,
		Description:      e.Description,
		SubjectAccountId: e.SubjectAccountId,
		ActorAccountId:   e.ActorAccountId,
		Metadata:         datatypes.JSONMap(e.Metadata),
		CreatedAt:        e.CreatedAt,
	}
}

func (m *SystemLogMapper) ToEntities(models []*model.SystemLog) []*entity.SystemLog {
	entities := make([]*entity.SystemLog, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
