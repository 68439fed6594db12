package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilitySlot struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DentistId      uuid.UUID `gorm:"type:uuid;not null;index:idx_slots_dentist_day,priority:1"`
	ClinicId       uuid.UUID `gorm:"type:uuid;not null;index"`
	DayOfWeek      int       `gorm:"not null;index:idx_slots_dentist_day,priority:2"`
	StartTime      string    `gorm:"type:varchar(5);not null"`
	EndTime        string    `gorm:"type:varchar(5);not null"`
	// No column defaults on the flags: GORM drops zero-valued fields that
	// carry a default tag from the INSERT, which would turn a one-time slot
	// (IsRecurring false) into a recurring one. The service layer always
	// sets all three explicitly.
	IsRecurring    bool      `gorm:"not null"`
	EffectiveFrom  string    `gorm:"type:varchar(10);not null"`
	EffectiveUntil string    `gorm:"type:varchar(10);not null"`
	IsBlocked      bool      `gorm:"not null"`
	BlockReason    *string   `gorm:"type:text"`
	IsActive       bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (AvailabilitySlot) TableName() string {
	return "availability_slots"
}
