package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSlotRequest struct {
	DentistId      uuid.UUID `json:"dentist_id" validate:"required"`
	ClinicId       uuid.UUID `json:"clinic_id" validate:"required"`
	DayOfWeek      *int      `json:"day_of_week" validate:"omitempty,min=0,max=7"`
	StartTime      string    `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime        string    `json:"end_time" validate:"omitempty,datetime=15:04"`
	IsRecurring    *bool     `json:"is_recurring"`
	EffectiveFrom  string    `json:"effective_from" validate:"omitempty,datetime=2006-01-02"`
	EffectiveUntil string    `json:"effective_until" validate:"omitempty,datetime=2006-01-02"`
}

type SlotResponse struct {
	Id             uuid.UUID `json:"id"`
	DentistId      uuid.UUID `json:"dentist_id"`
	ClinicId       uuid.UUID `json:"clinic_id"`
	DayOfWeek      int       `json:"day_of_week"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	IsRecurring    bool      `json:"is_recurring"`
	EffectiveFrom  string    `json:"effective_from"`
	EffectiveUntil string    `json:"effective_until"`
	IsBlocked      bool      `json:"is_blocked"`
	BlockReason    string    `json:"block_reason,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

type BlockSlotRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// DayScheduleResponse is the resolved schedule for one dentist on one date.
type DayScheduleResponse struct {
	DentistId uuid.UUID      `json:"dentist_id"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

type SyncScheduleRequest struct {
	DentistId uuid.UUID `json:"dentist_id" validate:"required"`
	ClinicId  uuid.UUID `json:"clinic_id" validate:"required"`
}

type SyncScheduleResponse struct {
	Imported int `json:"imported"`
}
