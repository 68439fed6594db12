package schedule

import (
	"io"
	"log"
	"time"
)

const dateLayout = "2006-01-02"

// FormatDate renders a calendar date as YYYY-MM-DD, the form used for
// one-time slot matching and for all wire-level date strings.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Normalize returns a normalized copy of the slot. The one coercion applied
// is dayOfWeek 7 (ISO Sunday) to 0; the input is never mutated. ok is false
// when dayOfWeek is missing or lands outside [0,6] after coercion, in which
// case the slot must be excluded from any date matching.
func Normalize(s Slot) (Slot, bool) {
	if s.DayOfWeek == nil {
		return s, false
	}
	day := *s.DayOfWeek
	if day == 7 {
		day = 0
	}
	if day < 0 || day > 6 {
		return s, false
	}
	out := s
	out.DayOfWeek = &day
	return out, true
}

// Validate reports whether a slot record carries every field required by the
// scheduling contract: identifiers for the slot, dentist and clinic, a
// dayOfWeek inside [0,6], both time-of-day strings, and both effective date
// strings. Callers normalize before validating so that ISO-Sunday records
// are not rejected.
func Validate(s Slot) bool {
	if s.Id.IsZero() || s.DentistId.IsZero() || s.ClinicId.IsZero() {
		return false
	}
	if s.DayOfWeek == nil || *s.DayOfWeek < 0 || *s.DayOfWeek > 6 {
		return false
	}
	if s.StartTime == "" || s.EndTime == "" {
		return false
	}
	if s.EffectiveFrom == "" || s.EffectiveUntil == "" {
		return false
	}
	return true
}

// Resolver answers "which slots apply on date D" queries. Malformed slots
// degrade per record: they are logged and excluded, and the query itself
// never fails.
type Resolver struct {
	logger *log.Logger
}

func NewResolver(logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Resolver{logger: logger}
}

// SlotsForDate filters the given slots down to those active on the target
// date, preserving the original relative order. Recurring slots match when
// their weekday equals the target's and the target falls inside the
// inclusive [effectiveFrom, effectiveUntil] window, compared date-only.
// One-time slots match only when effectiveFrom equals the target's
// YYYY-MM-DD form exactly. Matching slots are returned as normalized copies;
// the input slice is left untouched.
func (r *Resolver) SlotsForDate(slots []Slot, date time.Time) []Slot {
	target := truncateToDate(date)
	targetStr := FormatDate(target)
	weekday := int(target.Weekday())

	matched := make([]Slot, 0, len(slots))
	for _, raw := range slots {
		slot, ok := Normalize(raw)
		if !ok {
			r.logger.Printf("[WARN] slot %s: dayOfWeek out of range, skipping", raw.Id)
			continue
		}

		if !slot.IsRecurring {
			if slot.EffectiveFrom == targetStr {
				matched = append(matched, slot)
			}
			continue
		}

		if *slot.DayOfWeek != weekday {
			continue
		}
		from, err := parseDate(slot.EffectiveFrom)
		if err != nil {
			r.logger.Printf("[WARN] slot %s: bad effectiveFrom %q, skipping", slot.Id, slot.EffectiveFrom)
			continue
		}
		until, err := parseDate(slot.EffectiveUntil)
		if err != nil {
			r.logger.Printf("[WARN] slot %s: bad effectiveUntil %q, skipping", slot.Id, slot.EffectiveUntil)
			continue
		}
		if from.After(until) {
			// Inverted window: matches nothing. Kept observable in the logs
			// because it almost always means bad data upstream.
			r.logger.Printf("[WARN] slot %s: effectiveFrom after effectiveUntil", slot.Id)
			continue
		}
		if !target.Before(from) && !target.After(until) {
			matched = append(matched, slot)
		}
	}
	return matched
}

// parseDate reads the calendar-date prefix of a date string, ignoring any
// time-of-day component the backend may attach.
func parseDate(s string) (time.Time, error) {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
