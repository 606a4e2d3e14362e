package db

import (
	"context"
	"fmt"

	"github.com/javiermolinar/larpcal/internal/dateutil"
	"github.com/javiermolinar/larpcal/internal/venue"
)

// LoadSettings returns every venue reference list. Rooms keep the order
// they were first added in; names are sorted.
func (s *SQLite) LoadSettings(ctx context.Context) (*venue.Settings, error) {
	settings := &venue.Settings{}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, capacity FROM rooms ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying rooms: %w", err)
	}
	for rows.Next() {
		var r venue.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Capacity); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		settings.Rooms = append(settings.Rooms, r)
	}
	err = rows.Err()
	_ = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("iterating rooms: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT kind, name FROM names ORDER BY kind, name`)
	if err != nil {
		return nil, fmt.Errorf("querying names: %w", err)
	}
	for rows.Next() {
		var (
			kind venue.NameKind
			name string
		)
		if err := rows.Scan(&kind, &name); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scanning name: %w", err)
		}
		switch kind {
		case venue.KindScript:
			settings.Scripts = append(settings.Scripts, name)
		case venue.KindDM:
			settings.DMs = append(settings.DMs, name)
		case venue.KindNPC:
			settings.NPCs = append(settings.NPCs, name)
		case venue.KindLabel:
			settings.Labels = append(settings.Labels, name)
		}
	}
	err = rows.Err()
	_ = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("iterating names: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT date FROM holidays ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("querying holidays: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		settings.Holidays = append(settings.Holidays, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}

	return settings, nil
}

// SaveRoom creates a room or renames an existing one in place.
func (s *SQLite) SaveRoom(ctx context.Context, r venue.Room) error {
	if err := r.Validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO rooms (id, name, capacity) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, capacity = excluded.capacity
	`
	if _, err := s.db.ExecContext(ctx, query, r.ID, r.Name, r.Capacity); err != nil {
		return fmt.Errorf("saving room: %w", err)
	}
	return nil
}

// DeleteRoom removes a room. Bookings that reference it are left alone.
func (s *SQLite) DeleteRoom(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", venue.ErrRoomNotFound, id)
	}
	return nil
}

// AddName adds a name to a reference list.
func (s *SQLite) AddName(ctx context.Context, kind venue.NameKind, name string) error {
	name, err := venue.CleanName(name)
	if err != nil {
		return err
	}
	if _, err := venue.ParseNameKind(string(kind)); err != nil {
		return err
	}
	query := `INSERT INTO names (kind, name) VALUES (?, ?) ON CONFLICT(kind, name) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, kind, name); err != nil {
		return fmt.Errorf("adding %s name: %w", kind, err)
	}
	return nil
}

// RemoveName removes a name from a reference list. Removing a missing
// name is not an error.
func (s *SQLite) RemoveName(ctx context.Context, kind venue.NameKind, name string) error {
	name, err := venue.CleanName(name)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM names WHERE kind = ? AND name = ?`, kind, name); err != nil {
		return fmt.Errorf("removing %s name: %w", kind, err)
	}
	return nil
}

// SetHoliday marks or unmarks a date as a holiday.
func (s *SQLite) SetHoliday(ctx context.Context, date string, holiday bool) error {
	if _, err := dateutil.ParseDay(date); err != nil {
		return err
	}

	query := `INSERT INTO holidays (date) VALUES (?) ON CONFLICT(date) DO NOTHING`
	if !holiday {
		query = `DELETE FROM holidays WHERE date = ?`
	}
	if _, err := s.db.ExecContext(ctx, query, date); err != nil {
		return fmt.Errorf("updating holiday %s: %w", date, err)
	}
	return nil
}
