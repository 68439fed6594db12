package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSlots = `[
	{"id": 1, "dentistId": 12, "clinicId": 3, "dayOfWeek": 1,
	 "startTime": "09:00:00", "endTime": "17:00:00", "isRecurring": true,
	 "effectiveFrom": "2024-01-01", "effectiveUntil": "2024-12-31"},
	{"id": "2", "dentistId": "12", "clinicId": "3", "dayOfWeek": 7,
	 "startTime": "10:00:00", "endTime": "12:00:00", "isRecurring": true,
	 "effectiveFrom": "2024-01-01", "effectiveUntil": "2024-12-31"},
	{"id": 3, "dentistId": 12, "clinicId": 3, "dayOfWeek": 9,
	 "startTime": "09:00:00", "endTime": "17:00:00", "isRecurring": true,
	 "effectiveFrom": "2024-01-01", "effectiveUntil": "2024-12-31"},
	{"id": 4, "dentistId": 12, "clinicId": 3, "dayOfWeek": 2,
	 "startTime": "", "endTime": "17:00:00", "isRecurring": true,
	 "effectiveFrom": "2024-01-01", "effectiveUntil": "2024-12-31"}
]`

func TestNormalizePayloadEnvelopeShapes(t *testing.T) {
	r := NewResolver(nil)

	shapes := map[string][]byte{
		"canonical dataObject": []byte(`{"dataObject": ` + sampleSlots + `}`),
		"legacy data":          []byte(`{"data": ` + sampleSlots + `}`),
		"legacy bare array":    []byte(sampleSlots),
	}

	var reference []Slot
	for name, payload := range shapes {
		t.Run(name, func(t *testing.T) {
			got, err := r.NormalizePayload(payload)
			require.NoError(t, err)

			// Slots 3 (dayOfWeek out of range) and 4 (missing startTime)
			// never survive sanitization.
			require.Len(t, got, 2)
			assert.Equal(t, ID("1"), got[0].Id)
			assert.Equal(t, ID("2"), got[1].Id)

			// ISO Sunday is normalized on the way in.
			assert.Equal(t, 0, *got[1].DayOfWeek)

			if reference == nil {
				reference = got
			} else {
				assert.Equal(t, reference, got, "all envelope shapes must agree")
			}
		})
	}
}

func TestNormalizePayloadNumericAndStringIDsAgree(t *testing.T) {
	r := NewResolver(nil)
	got, err := r.NormalizePayload([]byte(`{"dataObject": ` + sampleSlots + `}`))
	require.NoError(t, err)
	require.Len(t, got, 2)

	// id 1 arrived as a number, id 2 as a string; both normalize to strings.
	assert.Equal(t, "1", got[0].Id.String())
	assert.Equal(t, "2", got[1].Id.String())

	n, ok := got[0].Id.Int64()
	require.True(t, ok)
	assert.EqualValues(t, 1, n)
}

func TestNormalizePayloadMalformedElementIsSkipped(t *testing.T) {
	r := NewResolver(nil)
	payload := []byte(`{"dataObject": [
		{"id": 1, "dentistId": 12, "clinicId": 3, "dayOfWeek": "monday"},
		{"id": 2, "dentistId": 12, "clinicId": 3, "dayOfWeek": 2,
		 "startTime": "09:00:00", "endTime": "17:00:00", "isRecurring": true,
		 "effectiveFrom": "2024-01-01", "effectiveUntil": "2024-12-31"}
	]}`)

	got, err := r.NormalizePayload(payload)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ID("2"), got[0].Id)
}

func TestNormalizePayloadUnknownShape(t *testing.T) {
	r := NewResolver(nil)

	_, err := r.NormalizePayload([]byte(`{"slots": []}`))
	assert.ErrorIs(t, err, ErrUnknownPayloadShape)

	_, err = r.NormalizePayload(nil)
	assert.ErrorIs(t, err, ErrUnknownPayloadShape)

	_, err = r.NormalizePayload([]byte(`{"dataObject": null, "data": null}`))
	assert.ErrorIs(t, err, ErrUnknownPayloadShape)
}

func TestNormalizePayloadFlagDefaults(t *testing.T) {
	r := NewResolver(nil)
	payload := []byte(`{"dataObject": [
		{"id": 1, "dentistId": 12, "clinicId": 3, "dayOfWeek": 1,
		 "startTime": "09:00:00", "endTime": "17:00:00", "isRecurring": true,
		 "effectiveFrom": "2024-01-01", "effectiveUntil": "2024-12-31",
		 "isBlocked": true, "isActive": false, "blockReason": "holiday"}
	]}`)

	got, err := r.NormalizePayload(payload)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Blocked())
	assert.False(t, got[0].Active())
	assert.Equal(t, "holiday", got[0].BlockReason)

	// Round-trip keeps explicit flags explicit.
	b, err := json.Marshal(got[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"isBlocked":true`)
}
