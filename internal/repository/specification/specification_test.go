package specification

import (
	"testing"

	"dentalcare-be/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestDateBetweenBuildsInclusiveRange(t *testing.T) {
	db := dryRunDB(t)

	var out []model.Appointment
	tx := DateBetween{From: "2026-09-01", To: "2026-09-30"}.
		Apply(db.Model(&model.Appointment{})).
		Find(&out)

	assert.Contains(t, tx.Statement.SQL.String(), "date BETWEEN ? AND ?")
	assert.Contains(t, tx.Statement.Vars, "2026-09-01")
	assert.Contains(t, tx.Statement.Vars, "2026-09-30")
}

func TestActiveUsersFiltersOnStatus(t *testing.T) {
	db := dryRunDB(t)

	var out []model.User
	tx := ActiveUsers{}.
		Apply(db.Model(&model.User{}).Where("role = ?", "staff")).
		Find(&out)

	assert.Contains(t, tx.Statement.SQL.String(), "status = ?")
	assert.Contains(t, tx.Statement.Vars, "active")
}
