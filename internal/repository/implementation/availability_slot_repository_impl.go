package implementation

import (
	"context"
	"errors"

	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/mapper"
	"dentalcare-be/internal/model"
	"dentalcare-be/internal/repository/contract"
	"dentalcare-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilitySlotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ScheduleMapper
}

func NewAvailabilitySlotRepository(db *gorm.DB) contract.AvailabilitySlotRepository {
	return &AvailabilitySlotRepositoryImpl{
		db:     db,
		mapper: mapper.NewScheduleMapper(),
	}
}

func (r *AvailabilitySlotRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AvailabilitySlotRepositoryImpl) Create(ctx context.Context, slot *entity.AvailabilitySlot) error {
	m := r.mapper.ToModel(slot)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*slot = *r.mapper.ToEntity(m)
	return nil
}

func (r *AvailabilitySlotRepositoryImpl) Update(ctx context.Context, slot *entity.AvailabilitySlot) error {
	m := r.mapper.ToModel(slot)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*slot = *r.mapper.ToEntity(m)
	return nil
}

func (r *AvailabilitySlotRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.AvailabilitySlot{}, id).Error
}

func (r *AvailabilitySlotRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AvailabilitySlot, error) {
	var m model.AvailabilitySlot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AvailabilitySlotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AvailabilitySlot, error) {
	var models []*model.AvailabilitySlot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AvailabilitySlotRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AvailabilitySlot{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AvailabilitySlotRepositoryImpl) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool, reason *string) error {
	updates := map[string]interface{}{
		"is_blocked":   blocked,
		"block_reason": reason,
	}
	return r.db.WithContext(ctx).Model(&model.AvailabilitySlot{}).
		Where("id = ?", id).
		Updates(updates).Error
}
