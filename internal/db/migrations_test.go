package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "omsp.db"))
	require.NoError(t, err)
	return database
}

func TestMigrationsApplyOnFreshDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "omsp.db")

	database, err := OpenSQLite(dbPath)
	require.NoError(t, err)

	versions := make([]string, 0)
	require.NoError(t, database.Raw(`SELECT version FROM schema_migrations ORDER BY version`).Scan(&versions).Error)
	assert.Equal(t, []string{"0001", "0002"}, versions)

	tables := make([]string, 0)
	require.NoError(t, database.Raw(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
	).Scan(&tables).Error)
	for _, table := range []string{
		"activity_logs", "app_states", "beneficiaries", "board_members",
		"fa_case_types", "fa_records", "monthly_budget_logs", "monthly_frequencies",
		"pa_categories", "pa_records", "secretary_assignments", "sessions", "users",
	} {
		assert.Contains(t, tables, table)
	}
}

func TestMigrationsAreIdempotentAcrossReopens(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "omsp.db")

	_, err := OpenSQLite(dbPath)
	require.NoError(t, err)

	// Reopening must not re-run anything or fail on existing objects.
	database, err := OpenSQLite(dbPath)
	require.NoError(t, err)

	var count int64
	require.NoError(t, database.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRedundantAddColumnIsSkipped(t *testing.T) {
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "omsp.db"))
	require.NoError(t, err)

	// archive_requested_at already exists after 0002; re-running the same
	// statement through the runner must be a no-op rather than an error.
	migration := migrationFile{
		version: "9999",
		order:   9999,
		name:    "9999_rerun_add_column.sql",
		sql:     "ALTER TABLE board_members ADD COLUMN archive_requested_at DATETIME",
	}
	require.NoError(t, runMigration(database, migration))

	var count int64
	require.NoError(t, database.Raw(
		`SELECT COUNT(*) FROM pragma_table_info('board_members') WHERE name = 'archive_requested_at'`,
	).Scan(&count).Error)
	assert.EqualValues(t, 1, count)
}
