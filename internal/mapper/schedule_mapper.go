package mapper

import (
	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/model"
	"dentalcare-be/pkg/schedule"

	"github.com/google/uuid"
)

type ScheduleMapper struct{}

func NewScheduleMapper() *ScheduleMapper {
	return &ScheduleMapper{}
}

func (m *ScheduleMapper) ToEntity(s *model.AvailabilitySlot) *entity.AvailabilitySlot {
	if s == nil {
		return nil
	}
	return &entity.AvailabilitySlot{
		Id:             s.Id,
		DentistId:      s.DentistId,
		ClinicId:       s.ClinicId,
		DayOfWeek:      s.DayOfWeek,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		IsRecurring:    s.IsRecurring,
		EffectiveFrom:  s.EffectiveFrom,
		EffectiveUntil: s.EffectiveUntil,
		IsBlocked:      s.IsBlocked,
		BlockReason:    s.BlockReason,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (m *ScheduleMapper) ToModel(s *entity.AvailabilitySlot) *model.AvailabilitySlot {
	if s == nil {
		return nil
	}
	return &model.AvailabilitySlot{
		Id:             s.Id,
		DentistId:      s.DentistId,
		ClinicId:       s.ClinicId,
		DayOfWeek:      s.DayOfWeek,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		IsRecurring:    s.IsRecurring,
		EffectiveFrom:  s.EffectiveFrom,
		EffectiveUntil: s.EffectiveUntil,
		IsBlocked:      s.IsBlocked,
		BlockReason:    s.BlockReason,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (m *ScheduleMapper) ToEntities(slots []*model.AvailabilitySlot) []*entity.AvailabilitySlot {
	entities := make([]*entity.AvailabilitySlot, len(slots))
	for i, s := range slots {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

// ToResolverSlot converts a stored slot into the resolver's wire shape.
func (m *ScheduleMapper) ToResolverSlot(s *entity.AvailabilitySlot) schedule.Slot {
	day := s.DayOfWeek
	blocked := s.IsBlocked
	active := s.IsActive
	return schedule.Slot{
		Id:             schedule.ID(s.Id.String()),
		DentistId:      schedule.ID(s.DentistId.String()),
		ClinicId:       schedule.ID(s.ClinicId.String()),
		DayOfWeek:      &day,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		IsRecurring:    s.IsRecurring,
		EffectiveFrom:  s.EffectiveFrom,
		EffectiveUntil: s.EffectiveUntil,
		IsBlocked:      &blocked,
		IsActive:       &active,
		BlockReason:    derefOrEmpty(s.BlockReason),
	}
}

func (m *ScheduleMapper) ToResolverSlots(slots []*entity.AvailabilitySlot) []schedule.Slot {
	out := make([]schedule.Slot, len(slots))
	for i, s := range slots {
		out[i] = m.ToResolverSlot(s)
	}
	return out
}

// FromNormalized converts a normalized upstream slot into a local entity.
// Upstream ids that are not UUIDs get a fresh local id.
func (m *ScheduleMapper) FromNormalized(s schedule.Slot, dentistId, clinicId uuid.UUID) *entity.AvailabilitySlot {
	id, err := uuid.Parse(s.Id.String())
	if err != nil {
		id = uuid.New()
	}

	day := 0
	if s.DayOfWeek != nil {
		day = *s.DayOfWeek
	}

	var blockReason *string
	if s.BlockReason != "" {
		reason := s.BlockReason
		blockReason = &reason
	}

	return &entity.AvailabilitySlot{
		Id:             id,
		DentistId:      dentistId,
		ClinicId:       clinicId,
		DayOfWeek:      day,
		StartTime:      clockHHMM(s.StartTime),
		EndTime:        clockHHMM(s.EndTime),
		IsRecurring:    s.IsRecurring,
		EffectiveFrom:  s.EffectiveFrom,
		EffectiveUntil: s.EffectiveUntil,
		IsBlocked:      s.Blocked(),
		BlockReason:    blockReason,
		IsActive:       s.Active(),
	}
}

// clockHHMM trims the seconds from an HH:MM:SS time-of-day string. Upstream
// payloads carry seconds; the stored columns hold HH:MM.
func clockHHMM(s string) string {
	if len(s) == 8 && s[2] == ':' && s[5] == ':' {
		return s[:5]
	}
	return s
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
