package schedule

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an opaque identifier that arrives as either a JSON string or a JSON
// number depending on the backend revision. It is normalized to its string
// form on decode.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return id == "" }

// Int64 converts a numeric ID to its integer form. Non-numeric IDs return 0
// and false.
func (id ID) Int64() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Slot is a raw availability record as received from the scheduling API or a
// legacy upstream export. Fields that older payloads omit are pointers so that
// absence is distinguishable from a zero value.
type Slot struct {
	Id             ID     `json:"id"`
	DentistId      ID     `json:"dentistId"`
	ClinicId       ID     `json:"clinicId"`
	DayOfWeek      *int   `json:"dayOfWeek"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	IsRecurring    bool   `json:"isRecurring"`
	EffectiveFrom  string `json:"effectiveFrom"`
	EffectiveUntil string `json:"effectiveUntil"`
	IsBlocked      *bool  `json:"isBlocked"`
	IsActive       *bool  `json:"isActive"`
	BlockReason    string `json:"blockReason,omitempty"`
}

// Blocked reports the block flag, defaulting to false when the payload
// omitted it.
func (s Slot) Blocked() bool {
	return s.IsBlocked != nil && *s.IsBlocked
}

// Active reports the active flag, defaulting to true when the payload
// omitted it.
func (s Slot) Active() bool {
	return s.IsActive == nil || *s.IsActive
}
