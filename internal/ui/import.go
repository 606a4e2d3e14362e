package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/larpcal/internal/db"
	"github.com/javiermolinar/larpcal/internal/scheduler"
	"github.com/javiermolinar/larpcal/internal/venue"
)

func (a *App) importCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import bookings from another database",
		Long: `Import bookings, rooms, names and holidays from another larpcal database.

Each booking goes through the same checks as a new one: bookings that
conflict with what is already here, or reuse an existing ID, are skipped
and reported. Existing rooms are not renamed.

Example:
  larpcal import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			desk, err := a.ensureDesk()
			if err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return fmt.Errorf("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			ctx := context.Background()
			result, err := importDatabase(ctx, desk, a.store, sourcePath)
			if err != nil {
				return err
			}

			a.printf("Imported %d bookings from %s\n", result.Imported, sourcePath)
			if n := len(result.Skipped); n > 0 {
				a.printf("Skipped %d\n", n)
				if verbose {
					settings := a.settings(ctx)
					for _, s := range result.Skipped {
						a.printf("  %s %s %s: %s\n", s.Booking.Date, s.Booking.TimeRange,
							s.Booking.ScriptName, formatConflict(explainWith(settings, s.Reason).Error()))
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every skipped booking")
	return cmd
}

// importDatabase copies the venue lists and then the bookings of the
// database at sourcePath.
func importDatabase(ctx context.Context, desk *scheduler.Desk, dest venue.Store, sourcePath string) (scheduler.ImportResult, error) {
	source, err := db.New(sourcePath)
	if err != nil {
		return scheduler.ImportResult{}, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = source.Close() }()

	if err := importSettings(ctx, source, dest); err != nil {
		return scheduler.ImportResult{}, err
	}

	bookings, err := source.ListAllBookings(ctx)
	if err != nil {
		return scheduler.ImportResult{}, fmt.Errorf("listing source bookings: %w", err)
	}
	return desk.Import(ctx, bookings)
}

// importSettings merges reference lists. Rooms already present keep their
// current name and capacity.
func importSettings(ctx context.Context, source, dest venue.Store) error {
	from, err := source.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("loading source settings: %w", err)
	}
	current, err := dest.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	for _, r := range from.Rooms {
		if _, ok := current.Room(r.ID); ok {
			continue
		}
		if err := dest.SaveRoom(ctx, r); err != nil {
			return fmt.Errorf("importing room %s: %w", r.ID, err)
		}
	}
	for _, kind := range venue.NameKinds() {
		for _, name := range from.Names(kind) {
			if err := dest.AddName(ctx, kind, name); err != nil {
				return fmt.Errorf("importing %s %q: %w", kind, name, err)
			}
		}
	}
	for _, date := range from.Holidays {
		if err := dest.SetHoliday(ctx, date, true); err != nil {
			return fmt.Errorf("importing holiday %s: %w", date, err)
		}
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
