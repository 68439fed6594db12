package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Clinic struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Address   string    `gorm:"type:text"`
	Phone     string    `gorm:"type:varchar(30)"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:'UTC'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Clinic) TableName() string {
	return "clinics"
}

type Dentist struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	ClinicId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	FullName  string         `gorm:"type:varchar(255);not null"`
	Specialty string         `gorm:"type:varchar(100)"`
	Bio       string         `gorm:"type:text"`
	// Set explicitly on create; a default tag would make GORM skip the
	// field whenever it is false.
	IsActive  bool           `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Dentist) TableName() string {
	return "dentists"
}
