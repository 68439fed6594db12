package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a dentist's working window. Recurring slots repeat on
// DayOfWeek (0=Sunday..6=Saturday) within the effective date range; one-time
// slots apply only on the EffectiveFrom date.
type AvailabilitySlot struct {
	Id             uuid.UUID
	DentistId      uuid.UUID
	ClinicId       uuid.UUID
	DayOfWeek      int
	StartTime      string // "HH:MM", 24h
	EndTime        string
	IsRecurring    bool
	EffectiveFrom  string // "YYYY-MM-DD"
	EffectiveUntil string
	IsBlocked      bool
	BlockReason    *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
