package db

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/omspdev/omsp/migrations"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_.+\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

type migrationFile struct {
	version string
	order   int
	name    string
	sql     string
}

// Migrate applies every embedded migration not yet recorded in the
// schema_migrations table, in version order, each in its own transaction.
func Migrate(database *gorm.DB) error {
	const versionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
	if err := database.Exec(versionTable).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	pending, err := pendingMigrations(database)
	if err != nil {
		return err
	}
	for _, migration := range pending {
		if err := runMigration(database, migration); err != nil {
			return err
		}
	}
	return nil
}

func pendingMigrations(database *gorm.DB) ([]migrationFile, error) {
	appliedVersions := make([]string, 0)
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&appliedVersions).Error; err != nil {
		return nil, fmt.Errorf("load applied versions: %w", err)
	}
	applied := make(map[string]bool, len(appliedVersions))
	for _, version := range appliedVersions {
		applied[version] = true
	}

	entries, err := fs.ReadDir(migrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	pending := make([]migrationFile, 0, len(entries))
	for _, entry := range entries {
		matches := migrationNamePattern.FindStringSubmatch(entry.Name())
		if len(matches) != 2 {
			continue
		}
		version := matches[1]
		if applied[version] {
			continue
		}
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version %s: %w", entry.Name(), err)
		}
		raw, err := fs.ReadFile(migrations.Files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		pending = append(pending, migrationFile{
			version: version,
			order:   order,
			name:    entry.Name(),
			sql:     string(raw),
		})
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].order < pending[j].order })
	return pending, nil
}

func runMigration(database *gorm.DB, migration migrationFile) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range strings.Split(migration.sql, ";") {
			statement = strings.TrimSpace(statement)
			if statement == "" {
				continue
			}
			if redundantAddColumn(tx, statement) {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %w", migration.name, err)
			}
		}
		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.version, migration.name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.name, err)
		}
		return nil
	})
}

// redundantAddColumn reports whether the statement adds a column that is
// already present, which happens on databases that predate the version table.
func redundantAddColumn(tx *gorm.DB, statement string) bool {
	matches := addColumnPattern.FindStringSubmatch(statement)
	if len(matches) != 3 {
		return false
	}
	table := strings.Trim(matches[1], "\"`")
	column := strings.Trim(matches[2], "\"`")

	existing := make([]string, 0)
	if err := tx.Raw(`SELECT name FROM pragma_table_info(?)`, table).Scan(&existing).Error; err != nil {
		return false
	}
	for _, name := range existing {
		if strings.EqualFold(name, column) {
			return true
		}
	}
	return false
}
