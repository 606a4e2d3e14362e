package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/config"
	"github.com/javiermolinar/larpcal/internal/db"
	"github.com/javiermolinar/larpcal/internal/debuglog"
	"github.com/javiermolinar/larpcal/internal/scheduler"
	"github.com/javiermolinar/larpcal/internal/tui"
	"github.com/javiermolinar/larpcal/internal/venue"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// Store is the persistence the CLI works against.
type Store interface {
	booking.Repository
	venue.Store
}

// App holds the CLI application state.
type App struct {
	store   Store
	owned   bool // store was opened by the app and must be closed
	desk    *scheduler.Desk
	config  *config.Config
	root    *cobra.Command
	out     io.Writer
	log     *debuglog.Logger
	debug   bool // Enable debug logging
	noColor bool
}

// NewApp creates a new CLI application with the given store and config.
// A nil store is opened from the configured database path on first use.
func NewApp(store Store, cfg *config.Config) *App {
	a := &App{store: store, config: cfg, out: os.Stdout}

	a.root = &cobra.Command{
		Use:   "larpcal",
		Short: "Room booking calendar for LARP sessions",
		Long: `larpcal keeps the venue's room calendar.

Each day has a morning, afternoon and evening lane per room. A booking is
only saved when it does not collide with another booking in the same room,
with another run of the same script, or with a DM or NPC already working
elsewhere at that time.

Run without a subcommand to open the day view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			setupColor(a.noColor)
			if a.debug && a.log == nil {
				l, err := debuglog.Open(debuglog.DefaultPath)
				if err != nil {
					return err
				}
				a.log = l
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			desk, err := a.ensureDesk()
			if err != nil {
				return err
			}
			return tui.Run(tui.Options{
				Desk:   desk,
				Store:  a.store,
				Config: a.config,
				Logger: a.log,
			})
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+debuglog.DefaultPath+")")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.searchCmd())
	a.root.AddCommand(a.freeCmd())
	a.root.AddCommand(a.statsCmd())
	a.root.AddCommand(a.roomCmd())
	a.root.AddCommand(a.nameCmd(venue.KindScript, "script", "Manage known scripts"))
	a.root.AddCommand(a.nameCmd(venue.KindDM, "dm", "Manage the DM roster"))
	a.root.AddCommand(a.nameCmd(venue.KindNPC, "npc", "Manage the NPC roster"))
	a.root.AddCommand(a.nameCmd(venue.KindLabel, "label", "Manage deposit waiver labels"))
	a.root.AddCommand(a.holidayCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(a.out, "larpcal %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store if the app opened it, and the debug log.
func (a *App) Close() error {
	var errs []error
	if a.owned && a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
		a.desk = nil
	}
	errs = append(errs, a.log.Close())
	a.log = nil
	return errors.Join(errs...)
}

// ensureRepo opens the configured database when no store was injected.
func (a *App) ensureRepo() error {
	if a.store != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if path == "" {
		return fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	a.store = repo
	a.owned = true
	return nil
}

// ensureDesk returns the booking desk, opening storage if needed.
func (a *App) ensureDesk() (*scheduler.Desk, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	if a.desk == nil {
		a.desk = scheduler.New(a.store, a.store, scheduler.Options{
			Detector: a.config.Detector(),
			Ranges:   a.config.SlotRanges(),
			Logger:   a.log,
		})
	}
	return a.desk, nil
}

// settings loads the venue reference lists. Display code only needs them
// for names, so a failed load falls back to empty lists.
func (a *App) settings(ctx context.Context) *venue.Settings {
	if err := a.ensureRepo(); err != nil {
		return &venue.Settings{}
	}
	s, err := a.store.LoadSettings(ctx)
	if err != nil || s == nil {
		a.log.Error("load settings", err)
		return &venue.Settings{}
	}
	return s
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}
