package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookAppointmentRequest struct {
	DentistId uuid.UUID `json:"dentist_id" validate:"required"`
	SlotId    uuid.UUID `json:"slot_id" validate:"required"`
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
	Reason    string    `json:"reason" validate:"omitempty,max=500"`
}

type AppointmentResponse struct {
	Id          uuid.UUID  `json:"id"`
	PatientId   uuid.UUID  `json:"patient_id"`
	DentistId   uuid.UUID  `json:"dentist_id"`
	ClinicId    uuid.UUID  `json:"clinic_id"`
	SlotId      uuid.UUID  `json:"slot_id"`
	Date        string     `json:"date"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
