package contract

import (
	"context"

	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	Update(ctx context.Context, appointment *entity.Appointment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Appointment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Appointment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	Cancel(ctx context.Context, id uuid.UUID) error
}
