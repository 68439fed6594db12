package mapper

import (
	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/model"
)

type ClinicMapper struct{}

func NewClinicMapper() *ClinicMapper {
	return &ClinicMapper{}
}

func (m *ClinicMapper) ToEntity(c *model.Clinic) *entity.Clinic {
	if c == nil {
		return nil
	}
	return &entity.Clinic{
		Id:        c.Id,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Timezone:  c.Timezone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ClinicMapper) ToModel(c *entity.Clinic) *model.Clinic {
	if c == nil {
		return nil
	}
	return &model.Clinic{
		Id:        c.Id,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Timezone:  c.Timezone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ClinicMapper) DentistToEntity(d *model.Dentist) *entity.Dentist {
	if d == nil {
		return nil
	}
	return &entity.Dentist{
		Id:        d.Id,
		UserId:    d.UserId,
		ClinicId:  d.ClinicId,
		FullName:  d.FullName,
		Specialty: d.Specialty,
		Bio:       d.Bio,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (m *ClinicMapper) DentistToModel(d *entity.Dentist) *model.Dentist {
	if d == nil {
		return nil
	}
	return &model.Dentist{
		Id:        d.Id,
		UserId:    d.UserId,
		ClinicId:  d.ClinicId,
		FullName:  d.FullName,
		Specialty: d.Specialty,
		Bio:       d.Bio,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (m *ClinicMapper) DentistsToEntities(dentists []*model.Dentist) []*entity.Dentist {
	entities := make([]*entity.Dentist, len(dentists))
	for i, d := range dentists {
		entities[i] = m.DentistToEntity(d)
	}
	return entities
}
