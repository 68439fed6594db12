package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByDentistID struct {
	DentistID uuid.UUID
}

func (s ByDentistID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("dentist_id = ?", s.DentistID)
}

type ByClinicID struct {
	ClinicID uuid.UUID
}

func (s ByClinicID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("clinic_id = ?", s.ClinicID)
}

type ByPatientID struct {
	PatientID uuid.UUID
}

func (s ByPatientID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("patient_id = ?", s.PatientID)
}

// ActiveSlots keeps only slots a patient can still be offered.
type ActiveSlots struct{}

func (s ActiveSlots) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type ByDate struct {
	Date string
}

func (s ByDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date = ?", s.Date)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// DateBetween filters appointments inside an inclusive date range.
type DateBetween struct {
	From string
	To   string
}

func (s DateBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date BETWEEN ? AND ?", s.From, s.To)
}
