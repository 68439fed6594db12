package mapper

import (
	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/model"
)

type AppointmentMapper struct{}

func NewAppointmentMapper() *AppointmentMapper {
	return &AppointmentMapper{}
}

func (m *AppointmentMapper) ToEntity(a *model.Appointment) *entity.Appointment {
	if a == nil {
		return nil
	}
	return &entity.Appointment{
		Id:          a.Id,
		PatientId:   a.PatientId,
		DentistId:   a.DentistId,
		ClinicId:    a.ClinicId,
		SlotId:      a.SlotId,
		Date:        a.Date,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Status:      entity.AppointmentStatus(a.Status),
		Reason:      a.Reason,
		CancelledAt: a.CancelledAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *AppointmentMapper) ToModel(a *entity.Appointment) *model.Appointment {
	if a == nil {
		return nil
	}
	return &model.Appointment{
		Id:          a.Id,
		PatientId:   a.PatientId,
		DentistId:   a.DentistId,
		ClinicId:    a.ClinicId,
		SlotId:      a.SlotId,
		Date:        a.Date,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Status:      string(a.Status),
		Reason:      a.Reason,
		CancelledAt: a.CancelledAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *AppointmentMapper) ToEntities(appointments []*model.Appointment) []*entity.Appointment {
	entities := make([]*entity.Appointment, len(appointments))
	for i, a := range appointments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
