package entity

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	Id          uuid.UUID
	PatientId   uuid.UUID
	DentistId   uuid.UUID
	ClinicId    uuid.UUID
	SlotId      uuid.UUID
	Date        string // "YYYY-MM-DD"
	StartTime   string // "HH:MM"
	EndTime     string
	Status      AppointmentStatus
	Reason      string
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
