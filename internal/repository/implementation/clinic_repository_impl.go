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

type ClinicRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClinicMapper
}

func NewClinicRepository(db *gorm.DB) contract.ClinicRepository {
	return &ClinicRepositoryImpl{
		db:     db,
		mapper: mapper.NewClinicMapper(),
	}
}

func (r *ClinicRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ClinicRepositoryImpl) Create(ctx context.Context, clinic *entity.Clinic) error {
	m := r.mapper.ToModel(clinic)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*clinic = *r.mapper.ToEntity(m)
	return nil
}

func (r *ClinicRepositoryImpl) Update(ctx context.Context, clinic *entity.Clinic) error {
	m := r.mapper.ToModel(clinic)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*clinic = *r.mapper.ToEntity(m)
	return nil
}

func (r *ClinicRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Clinic, error) {
	var m model.Clinic
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ClinicRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Clinic, error) {
	var models []*model.Clinic
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Clinic, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

type DentistRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClinicMapper
}

func NewDentistRepository(db *gorm.DB) contract.DentistRepository {
	return &DentistRepositoryImpl{
		db:     db,
		mapper: mapper.NewClinicMapper(),
	}
}

func (r *DentistRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DentistRepositoryImpl) Create(ctx context.Context, dentist *entity.Dentist) error {
	m := r.mapper.DentistToModel(dentist)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*dentist = *r.mapper.DentistToEntity(m)
	return nil
}

func (r *DentistRepositoryImpl) Update(ctx context.Context, dentist *entity.Dentist) error {
	m := r.mapper.DentistToModel(dentist)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*dentist = *r.mapper.DentistToEntity(m)
	return nil
}

func (r *DentistRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Dentist{}, id).Error
}

func (r *DentistRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Dentist, error) {
	var m model.Dentist
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DentistToEntity(&m), nil
}

func (r *DentistRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Dentist, error) {
	var models []*model.Dentist
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.DentistsToEntities(models), nil
}

func (r *DentistRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Dentist{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
