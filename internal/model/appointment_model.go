package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId   uuid.UUID `gorm:"type:uuid;not null;index"`
	DentistId   uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_dentist_date,priority:1"`
	ClinicId    uuid.UUID `gorm:"type:uuid;not null;index"`
	SlotId      uuid.UUID `gorm:"type:uuid;not null"`
	Date        string    `gorm:"type:varchar(10);not null;index:idx_appointments_dentist_date,priority:2"`
	StartTime   string    `gorm:"type:varchar(5);not null"`
	EndTime     string    `gorm:"type:varchar(5);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'booked'"`
	Reason      string    `gorm:"type:text"`
	CancelledAt *time.Time
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Appointment) TableName() string {
	return "appointments"
}
