package dto

import (
	"time"

	"github.com/google/uuid"
)

type ClinicResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateClinicRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Address string `json:"address" validate:"required,max=300"`
	Phone   string `json:"phone" validate:"omitempty,min=7,max=20"`
}

type DentistResponse struct {
	Id        uuid.UUID `json:"id"`
	ClinicId  uuid.UUID `json:"clinic_id"`
	FullName  string    `json:"full_name"`
	Specialty string    `json:"specialty,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	IsActive  bool      `json:"is_active"`
}

type CreateDentistRequest struct {
	UserId    uuid.UUID `json:"user_id" validate:"required"`
	ClinicId  uuid.UUID `json:"clinic_id" validate:"required"`
	FullName  string    `json:"full_name" validate:"required,min=3,max=120"`
	Specialty string    `json:"specialty" validate:"omitempty,max=120"`
	Bio       string    `json:"bio" validate:"omitempty,max=2000"`
}
