package mapper

import (
	"testing"

	"dentalcare-be/internal/entity"
	"dentalcare-be/pkg/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToResolverSlotCarriesIdentityAndFlags(t *testing.T) {
	m := NewScheduleMapper()
	reason := "equipment maintenance"
	ent := &entity.AvailabilitySlot{
		Id:             uuid.New(),
		DentistId:      uuid.New(),
		ClinicId:       uuid.New(),
		DayOfWeek:      3,
		StartTime:      "09:00",
		EndTime:        "12:00",
		IsRecurring:    true,
		EffectiveFrom:  "2026-01-01",
		EffectiveUntil: "2026-12-31",
		IsBlocked:      true,
		BlockReason:    &reason,
		IsActive:       true,
	}

	got := m.ToResolverSlot(ent)

	assert.Equal(t, schedule.ID(ent.Id.String()), got.Id)
	require.NotNil(t, got.DayOfWeek)
	assert.Equal(t, 3, *got.DayOfWeek)
	assert.True(t, got.Blocked())
	assert.True(t, got.Active())
	assert.Equal(t, reason, got.BlockReason)
}

func TestFromNormalizedKeepsUpstreamUUID(t *testing.T) {
	m := NewScheduleMapper()
	upstreamId := uuid.New()
	dentistId := uuid.New()
	clinicId := uuid.New()

	day := 1
	blocked := false
	active := true
	got := m.FromNormalized(schedule.Slot{
		Id:             schedule.ID(upstreamId.String()),
		DayOfWeek:      &day,
		StartTime:      "08:00",
		EndTime:        "16:00",
		IsRecurring:    true,
		EffectiveFrom:  "2026-01-01",
		EffectiveUntil: "2026-06-30",
		IsBlocked:      &blocked,
		IsActive:       &active,
	}, dentistId, clinicId)

	assert.Equal(t, upstreamId, got.Id)
	assert.Equal(t, dentistId, got.DentistId)
	assert.Equal(t, clinicId, got.ClinicId)
	assert.Equal(t, 1, got.DayOfWeek)
	assert.False(t, got.IsBlocked)
	assert.True(t, got.IsActive)
}

func TestFromNormalizedMintsLocalIdForNonUUID(t *testing.T) {
	m := NewScheduleMapper()

	got := m.FromNormalized(schedule.Slot{
		Id:            schedule.ID("1042"),
		StartTime:     "10:00",
		EndTime:       "11:00",
		EffectiveFrom: "2026-03-05",
	}, uuid.New(), uuid.New())

	assert.NotEqual(t, uuid.Nil, got.Id)
}

func TestFromNormalizedTrimsSecondsFromTimes(t *testing.T) {
	m := NewScheduleMapper()

	got := m.FromNormalized(schedule.Slot{
		Id:            schedule.ID(uuid.New().String()),
		StartTime:     "09:00:00",
		EndTime:       "17:30:00",
		EffectiveFrom: "2026-03-05",
	}, uuid.New(), uuid.New())

	assert.Equal(t, "09:00", got.StartTime)
	assert.Equal(t, "17:30", got.EndTime)

	// Already-trimmed times pass through untouched.
	plain := m.FromNormalized(schedule.Slot{StartTime: "08:15", EndTime: "12:45"}, uuid.New(), uuid.New())
	assert.Equal(t, "08:15", plain.StartTime)
	assert.Equal(t, "12:45", plain.EndTime)
}

func TestFromNormalizedBlockReason(t *testing.T) {
	m := NewScheduleMapper()

	withReason := m.FromNormalized(schedule.Slot{BlockReason: "holiday"}, uuid.New(), uuid.New())
	require.NotNil(t, withReason.BlockReason)
	assert.Equal(t, "holiday", *withReason.BlockReason)

	without := m.FromNormalized(schedule.Slot{}, uuid.New(), uuid.New())
	assert.Nil(t, without.BlockReason)
}
