package db

import (
	"fmt"
	"strings"
)

const namesTable = `
		CREATE TABLE IF NOT EXISTS names (
			kind TEXT NOT NULL CHECK(kind IN ('script', 'dm', 'npc', 'label')),
			name TEXT NOT NULL,
			PRIMARY KEY (kind, name)
		);
`

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS bookings (
			id                TEXT PRIMARY KEY,
			date              TEXT NOT NULL,
			room_id           TEXT NOT NULL,
			time_range        TEXT NOT NULL,
			slot              TEXT NOT NULL CHECK(slot IN ('morning', 'afternoon', 'evening')),
			script_name       TEXT NOT NULL,
			dms               TEXT NOT NULL DEFAULT '[]',
			npcs              TEXT NOT NULL DEFAULT '[]',
			organizer_name    TEXT NOT NULL,
			organizer_contact TEXT NOT NULL DEFAULT '',
			notes             TEXT NOT NULL DEFAULT '',
			deposit_amount    INTEGER NOT NULL DEFAULT 0,
			deposit_label     TEXT NOT NULL DEFAULT '',
			created_at        TEXT NOT NULL,
			updated_at        TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings(date);
		CREATE INDEX IF NOT EXISTS idx_bookings_lane ON bookings(room_id, date, slot);

		CREATE TABLE IF NOT EXISTS rooms (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			capacity INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS holidays (
			date TEXT PRIMARY KEY
		);
	` + namesTable

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	if err := s.migrateNameKinds(); err != nil {
		return fmt.Errorf("migrating names table: %w", err)
	}

	return nil
}

// migrateNameKinds rebuilds a names table created before deposit labels
// existed. SQLite cannot alter a CHECK constraint in place.
func (s *SQLite) migrateNameKinds() error {
	var ddl string
	err := s.db.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'names'`).Scan(&ddl)
	if err != nil {
		return err
	}
	if strings.Contains(ddl, "'label'") {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	steps := []string{
		`ALTER TABLE names RENAME TO names_old`,
		namesTable,
		`INSERT INTO names (kind, name) SELECT kind, name FROM names_old`,
		`DROP TABLE names_old`,
	}
	for _, step := range steps {
		if _, err := tx.Exec(step); err != nil {
			return err
		}
	}
	return tx.Commit()
}
