package database

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the in-code migration registry, applied in version order.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_photos",
		SQL: `
			CREATE TABLE IF NOT EXISTS photos (
				id TEXT PRIMARY KEY,
				file_name TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				location TEXT NOT NULL DEFAULT '',
				country TEXT NOT NULL DEFAULT '',
				latitude REAL,
				longitude REAL,
				date_taken INTEGER,
				tags_json TEXT NOT NULL DEFAULT '[]',
				face_groups_json TEXT NOT NULL DEFAULT '[]',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_photos_date_taken ON photos(date_taken);
			CREATE INDEX IF NOT EXISTS idx_photos_coords ON photos(latitude, longitude);
		`,
	},
	{
		Version: 2,
		Name:    "create_people",
		SQL: `
			CREATE TABLE IF NOT EXISTS people (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				relation TEXT NOT NULL DEFAULT '',
				face_group_id TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_people_relation ON people(relation);
		`,
	},
}

// Migrate applies all pending migrations to the database
func Migrate(d *sql.DB) error {
	if err := initMigrationsTable(d); err != nil {
		return err
	}

	applied, err := appliedMigrations(d)
	if err != nil {
		return err
	}

	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, m := range pending {
		if err := applyMigration(d, m); err != nil {
			return err
		}
		log.Printf("Applied migration %d_%s", m.Version, m.Name)
	}

	return nil
}

// initMigrationsTable creates the migrations tracking table
func initMigrationsTable(d *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := d.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// appliedMigrations returns the set of applied migration versions
func appliedMigrations(d *sql.DB) (map[int]bool, error) {
	rows, err := d.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// applyMigration runs one migration inside a transaction
func applyMigration(d *sql.DB, m Migration) error {
	return Transaction(d, func(tx *sql.Tx) error {
		if _, err := tx.Exec(m.SQL); err != nil {
			return fmt.Errorf("failed to apply migration %d_%s: %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		return nil
	})
}
