package entity

import (
	"time"

	"github.com/google/uuid"
)

type Clinic struct {
	Id        uuid.UUID
	Name      string
	Address   string
	Phone     string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Dentist is the professional profile layered on top of a user account
// with the dentist role.
type Dentist struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ClinicId  uuid.UUID
	FullName  string
	Specialty string
	Bio       string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
