package contract

import (
	"context"

	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AvailabilitySlotRepository interface {
	Create(ctx context.Context, slot *entity.AvailabilitySlot) error
	Update(ctx context.Context, slot *entity.AvailabilitySlot) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AvailabilitySlot, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AvailabilitySlot, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool, reason *string) error
}
