package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/larpcal/internal/dateutil"
	"github.com/javiermolinar/larpcal/internal/tui"
)

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

func (a *App) showCmd() *cobra.Command {
	var copyText bool

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show one day's rooms by slot",
		Long: `Show every room's morning, afternoon and evening lane for a day.

The date defaults to today and accepts the same words as --date on add:
tomorrow, saturday, next-friday and so on.`,
		Example: `  larpcal show
  larpcal show saturday --copy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			desk, err := a.ensureDesk()
			if err != nil {
				return err
			}

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			t, err := dateutil.ParseRelativeDate(input, time.Now())
			if err != nil {
				return err
			}

			day, err := desk.Day(ctx, dateutil.FormatDate(t))
			if err != nil {
				return err
			}
			settings := a.settings(ctx)
			text := renderDay(day, settings, desk.Detector(), termWidth())
			a.printf("%s", text)

			if copyText {
				if err := clipboardWrite(tui.DaySummary(day, settings, desk.Detector())); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				a.println(formatMuted("Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyText, "copy", false, "Copy a plain-text summary to the clipboard")
	return cmd
}
