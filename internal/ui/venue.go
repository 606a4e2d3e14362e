package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/larpcal/internal/dateutil"
	"github.com/javiermolinar/larpcal/internal/venue"
)

func (a *App) roomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage rooms",
	}

	var capacity int
	add := &cobra.Command{
		Use:     "add <id> <name>",
		Short:   "Add a room, or rename an existing one",
		Example: `  larpcal room add hall "Great Hall" --capacity=12`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			r := venue.Room{
				ID:       strings.TrimSpace(args[0]),
				Name:     strings.TrimSpace(args[1]),
				Capacity: capacity,
			}
			if err := a.store.SaveRoom(context.Background(), r); err != nil {
				return err
			}
			a.printf("Saved room %s (%s)\n", r.ID, r.Name)
			return nil
		},
	}
	add.Flags().IntVar(&capacity, "capacity", 0, "Number of players the room holds")

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a room. Existing bookings keep their room ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.store.DeleteRoom(context.Background(), args[0]); err != nil {
				return err
			}
			a.printf("Removed room %s\n", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List rooms",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			settings, err := a.store.LoadSettings(context.Background())
			if err != nil {
				return err
			}
			if len(settings.Rooms) == 0 {
				a.println("No rooms configured.")
				return nil
			}
			for _, r := range settings.Rooms {
				line := fmt.Sprintf("  %-12s %s", r.ID, r.Name)
				if r.Capacity > 0 {
					line += formatMuted(fmt.Sprintf(" (%d)", r.Capacity))
				}
				a.println(line)
			}
			return nil
		},
	}

	cmd.AddCommand(add, remove, list)
	return cmd
}

// nameCmd manages one of the script, DM, NPC or waiver label lists.
func (a *App) nameCmd(kind venue.NameKind, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	add := &cobra.Command{
		Use:   "add <name>...",
		Short: "Add names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			for _, name := range args {
				if err := a.store.AddName(context.Background(), kind, name); err != nil {
					return err
				}
			}
			a.printf("Added %d %s name(s)\n", len(args), kind)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <name>...",
		Short: "Remove names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			for _, name := range args {
				if err := a.store.RemoveName(context.Background(), kind, name); err != nil {
					return err
				}
			}
			a.printf("Removed %d %s name(s)\n", len(args), kind)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List names",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			settings, err := a.store.LoadSettings(context.Background())
			if err != nil {
				return err
			}
			names := settings.Names(kind)
			if len(names) == 0 {
				a.printf("No %s names yet.\n", kind)
				return nil
			}
			for _, n := range names {
				a.println("  " + n)
			}
			return nil
		},
	}

	cmd.AddCommand(add, remove, list)
	return cmd
}

func (a *App) holidayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage public holidays",
	}

	set := func(holiday bool) func(*cobra.Command, []string) error {
		return func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			for _, arg := range args {
				t, err := dateutil.ParseRelativeDate(arg, time.Now())
				if err != nil {
					return err
				}
				date := dateutil.FormatDate(t)
				if err := a.store.SetHoliday(context.Background(), date, holiday); err != nil {
					return err
				}
				if holiday {
					a.printf("Marked %s as a holiday\n", date)
				} else {
					a.printf("Unmarked %s\n", date)
				}
			}
			return nil
		}
	}

	add := &cobra.Command{
		Use:   "add <date>...",
		Short: "Mark dates as holidays",
		Args:  cobra.MinimumNArgs(1),
		RunE:  set(true),
	}
	remove := &cobra.Command{
		Use:   "remove <date>...",
		Short: "Unmark holidays",
		Args:  cobra.MinimumNArgs(1),
		RunE:  set(false),
	}

	var year string
	list := &cobra.Command{
		Use:   "list",
		Short: "List holidays",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			settings, err := a.store.LoadSettings(context.Background())
			if err != nil {
				return err
			}
			shown := 0
			for _, d := range settings.Holidays {
				if year != "" && !strings.HasPrefix(d, year+"-") {
					continue
				}
				a.println("  " + d)
				shown++
			}
			if shown == 0 {
				a.println("No holidays.")
			}
			return nil
		},
	}
	list.Flags().StringVar(&year, "year", "", "Only holidays in this year (YYYY)")

	cmd.AddCommand(add, remove, list)
	return cmd
}
