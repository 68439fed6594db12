package unitofwork

import (
	"context"

	"dentalcare-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ClinicRepository() contract.ClinicRepository
	DentistRepository() contract.DentistRepository
	AvailabilitySlotRepository() contract.AvailabilitySlotRepository
	AppointmentRepository() contract.AppointmentRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
