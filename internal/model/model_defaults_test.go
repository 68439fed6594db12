package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// GORM omits zero-valued fields with a default tag from the INSERT, so a
// bool column declared default:true can never be stored as false. One-time
// slots (IsRecurring false) and deactivated dentists depend on the false
// value reaching the database.
func TestBoolColumnsCarryNoDatabaseDefault(t *testing.T) {
	for _, target := range []interface{}{AvailabilitySlot{}, Dentist{}} {
		s, err := schema.Parse(target, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)

		for _, field := range s.Fields {
			if field.DataType != schema.Bool {
				continue
			}
			require.False(t, field.HasDefaultValue,
				"%s.%s declares a column default; GORM would skip the field when it is false", s.Name, field.Name)
		}
	}
}
