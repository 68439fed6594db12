package events

import (
	"time"

	"github.com/google/uuid"
)

// Event codes for the scheduling domain. Subscribers filter on
// "events.<code>" subjects.
const (
	TypeSlotCreated   = "SLOT_CREATED"
	TypeSlotBlocked   = "SLOT_BLOCKED"
	TypeSlotUnblocked = "SLOT_UNBLOCKED"
	TypeSlotDeleted   = "SLOT_DELETED"

	TypeAppointmentBooked    = "APPOINTMENT_BOOKED"
	TypeAppointmentCancelled = "APPOINTMENT_CANCELLED"
)

// NewSlotEvent builds a schedule event for the given slot. The dentist id is
// included so notification fan-out can target the owning dentist's dashboard.
func NewSlotEvent(eventType string, slotId, dentistId, clinicId uuid.UUID) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"slot_id":    slotId.String(),
			"dentist_id": dentistId.String(),
			"clinic_id":  clinicId.String(),
		},
		OccurredAt: time.Now(),
	}
}

// NewAppointmentEvent builds an appointment lifecycle event.
func NewAppointmentEvent(eventType string, appointmentId, patientId, dentistId uuid.UUID, date string) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"appointment_id": appointmentId.String(),
			"patient_id":     patientId.String(),
			"dentist_id":     dentistId.String(),
			"date":           date,
		},
		OccurredAt: time.Now(),
	}
}
