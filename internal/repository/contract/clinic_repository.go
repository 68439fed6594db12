package contract

import (
	"context"

	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ClinicRepository interface {
	Create(ctx context.Context, clinic *entity.Clinic) error
	Update(ctx context.Context, clinic *entity.Clinic) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Clinic, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Clinic, error)
}

type DentistRepository interface {
	Create(ctx context.Context, dentist *entity.Dentist) error
	Update(ctx context.Context, dentist *entity.Dentist) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Dentist, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Dentist, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
