package ui

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/config"
	"github.com/javiermolinar/larpcal/internal/db"
	"github.com/javiermolinar/larpcal/internal/venue"
)

type testEnv struct {
	repo *db.SQLite
	cfg  *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "larpcal.db")
	repo, err := db.New(path)
	if err != nil {
		t.Fatalf("creating repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	cfg := config.Default()
	cfg.Storage.DBPath = path
	return &testEnv{repo: repo, cfg: cfg}
}

// run executes one command on a fresh App so flag state never leaks
// between calls.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp(e.repo, e.cfg)
	app.out = &out
	app.root.SetArgs(append(args, "--no-color"))
	err := app.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func (e *testEnv) onlyBooking(t *testing.T) *booking.Booking {
	t.Helper()
	all, err := e.repo.ListAllBookings(context.Background())
	if err != nil {
		t.Fatalf("ListAllBookings: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(all))
	}
	return all[0]
}

var nightTrain = []string{
	"add", "--date=2026-10-17", "--room=hall", "--time=19:00-02:00",
	"--script=Night Train", "--dm=Alice", "--npc=Carol,TBD", "--organizer=Mark",
}

func TestVersion(t *testing.T) {
	e := newTestEnv(t)
	if out := e.mustRun(t, "version"); !strings.HasPrefix(out, "larpcal dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestAddAndShow(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "room", "add", "hall", "Great Hall", "--capacity=12")
	e.mustRun(t, "room", "add", "attic", "Attic")

	out := e.mustRun(t, nightTrain...)
	if !strings.Contains(out, "Booked Night Train in Great Hall on 2026-10-17") {
		t.Errorf("unexpected add output: %q", out)
	}

	b := e.onlyBooking(t)
	if b.Slot() != booking.SlotEvening || len(b.NPCs) != 2 {
		t.Errorf("stored booking = %+v", b)
	}

	out = e.mustRun(t, "show", "2026-10-17")
	for _, want := range []string{"=== 2026-10-17 Saturday ===", "weekend", "Evening", "Great Hall", "Night Train", "DM: Alice", "NPC: Carol, TBD", "free"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in show output:\n%s", want, out)
		}
	}

	settings, err := e.repo.LoadSettings(context.Background())
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if len(settings.Scripts) != 1 || settings.Scripts[0] != "Night Train" {
		t.Errorf("scripts = %v, want the booked script recorded", settings.Scripts)
	}
}

func TestAddWithSlotDefault(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "add", "--date=2026-10-17", "--room=hall", "--slot=morning",
		"--script=Echoes", "--dm=Bob", "--organizer=Li")
	if got := e.onlyBooking(t).TimeRange; got != "08:00-13:00" {
		t.Errorf("TimeRange = %q, want the morning default", got)
	}
}

func TestAddRequiresTimeOrSlot(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.run(t, "add", "--date=2026-10-17", "--room=hall", "--script=Echoes", "--dm=Bob", "--organizer=Li")
	if err == nil || !strings.Contains(err.Error(), "--time or --slot") {
		t.Errorf("err = %v", err)
	}
}

func TestAddConflicts(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name: "room taken",
			args: []string{"add", "--date=2026-10-17", "--room=hall", "--time=20:00-22:00",
				"--script=Echoes", "--dm=Bob", "--organizer=Li"},
			wantErr: booking.ErrRoomConflict,
			wantMsg: "Great Hall",
		},
		{
			name: "script already running",
			args: []string{"add", "--date=2026-10-17", "--room=attic", "--time=20:00-22:00",
				"--script=Night Train", "--dm=Bob", "--organizer=Li"},
			wantErr: booking.ErrScriptConflict,
			wantMsg: "Night Train",
		},
		{
			name: "staff double-booked",
			args: []string{"add", "--date=2026-10-17", "--room=attic", "--time=18:00-20:00",
				"--script=Echoes", "--dm=Bob", "--npc=Carol", "--organizer=Li"},
			wantErr: booking.ErrStaffConflict,
			wantMsg: "Carol",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			e.mustRun(t, "room", "add", "hall", "Great Hall")
			e.mustRun(t, nightTrain...)

			_, err := e.run(t, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			var c *booking.Conflict
			if !errors.As(err, &c) {
				t.Fatal("expected a *booking.Conflict in the chain")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("message %q should mention %q", err.Error(), tt.wantMsg)
			}
			e.onlyBooking(t)
		})
	}
}

func TestPendingStaffNeverConflicts(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, nightTrain...)
	e.mustRun(t, "add", "--date=2026-10-17", "--room=attic", "--time=20:00-23:00",
		"--script=Echoes", "--dm=Bob", "--npc=TBD", "--organizer=Li")
}

func TestBackToBackIsAllowed(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, nightTrain...)
	e.mustRun(t, "add", "--date=2026-10-17", "--room=hall", "--time=15:00-19:00",
		"--script=Echoes", "--dm=Alice", "--organizer=Li")
}

func TestCheckDoesNotSave(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, nightTrain...)

	out := e.mustRun(t, "check", "--date=2026-10-17", "--room=hall", "--time=13:00-17:00",
		"--script=Echoes", "--dm=Bob", "--organizer=Li")
	if !strings.Contains(out, "ok:") {
		t.Errorf("check output = %q", out)
	}

	out, err := e.run(t, "check", "--date=2026-10-17", "--room=hall", "--time=18:00-20:00",
		"--script=Echoes", "--dm=Bob", "--organizer=Li")
	if !errors.Is(err, booking.ErrRoomConflict) {
		t.Fatalf("err = %v, want room conflict", err)
	}
	if !strings.Contains(out, "conflict:") {
		t.Errorf("check output = %q", out)
	}
	e.onlyBooking(t)
}

func TestCheckInvalidRange(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.run(t, "check", "--date=2026-10-17", "--room=hall", "--time=7pm-late",
		"--script=Echoes", "--dm=Bob", "--organizer=Li")
	if !errors.Is(err, booking.ErrInvalidTimeRange) {
		t.Errorf("err = %v, want ErrInvalidTimeRange", err)
	}
}

func TestEditAndDelete(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, nightTrain...)
	b := e.onlyBooking(t)

	// Moving within its own time never conflicts with itself.
	e.mustRun(t, "edit", b.ID, "--time=19:30-02:30", "--npc=Carol,Dan")
	got := e.onlyBooking(t)
	if got.TimeRange != "19:30-02:30" || strings.Join(got.NPCs, ",") != "Carol,Dan" {
		t.Errorf("edited booking = %+v", got)
	}
	if got.ScriptName != "Night Train" || got.OrganizerName != "Mark" {
		t.Errorf("unchanged fields were lost: %+v", got)
	}
	if !got.CreatedAt.Equal(b.CreatedAt) {
		t.Errorf("CreatedAt changed from %v to %v", b.CreatedAt, got.CreatedAt)
	}

	out := e.mustRun(t, "delete", shortID(b.ID))
	if !strings.Contains(out, "Deleted") {
		t.Errorf("delete output = %q", out)
	}
	all, _ := e.repo.ListAllBookings(context.Background())
	if len(all) != 0 {
		t.Errorf("expected no bookings, got %d", len(all))
	}
}

func TestEditTrimsRoom(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, nightTrain...)
	e.mustRun(t, "add", "--date=2026-10-17", "--room=attic", "--time=20:00-22:00",
		"--script=Echoes", "--dm=Bob", "--organizer=Li")

	all, err := e.repo.ListAllBookings(context.Background())
	if err != nil {
		t.Fatalf("ListAllBookings: %v", err)
	}
	var echoes *booking.Booking
	for _, b := range all {
		if b.ScriptName == "Echoes" {
			echoes = b
		}
	}
	if echoes == nil {
		t.Fatal("Echoes booking not stored")
	}

	_, err = e.run(t, "edit", echoes.ID, "--room=hall ")
	if !errors.Is(err, booking.ErrRoomConflict) {
		t.Fatalf("edit err = %v, want room conflict", err)
	}
	got, err := e.repo.GetBooking(context.Background(), echoes.ID)
	if err != nil || got == nil {
		t.Fatalf("GetBooking: %v, %v", got, err)
	}
	if got.RoomID != "attic" {
		t.Errorf("RoomID = %q, want attic unchanged", got.RoomID)
	}
}

func TestDeleteUnknown(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.run(t, "delete", "nope")
	if !errors.Is(err, booking.ErrBookingNotFound) {
		t.Errorf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestListAndSearch(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, nightTrain...)
	e.mustRun(t, "add", "--date=2026-10-18", "--room=hall", "--time=13:00-17:00",
		"--script=Echoes", "--dm=Bob", "--organizer=Li")

	out := e.mustRun(t, "list", "--start=2026-10-01", "--end=2026-10-31")
	if strings.Index(out, "2026-10-17") > strings.Index(out, "2026-10-18") {
		t.Errorf("list should be in date order:\n%s", out)
	}

	out = e.mustRun(t, "list", "--start=2026-10-01", "--end=2026-10-31", "--pending")
	if !strings.Contains(out, "Night Train") || strings.Contains(out, "Echoes") {
		t.Errorf("pending list:\n%s", out)
	}

	out = e.mustRun(t, "search", "bob", "--month=2026-10")
	if !strings.Contains(out, "Echoes") || strings.Contains(out, "Night Train") || !strings.Contains(out, "1 found") {
		t.Errorf("search output:\n%s", out)
	}

	out = e.mustRun(t, "search", "echoes", "--month=2026-11")
	if !strings.Contains(out, "No bookings match") {
		t.Errorf("search in another month:\n%s", out)
	}

	out = e.mustRun(t, "search", "2026-10", "--all")
	if strings.Index(out, "2026-10-18") > strings.Index(out, "2026-10-17") {
		t.Errorf("search results should be newest first:\n%s", out)
	}
}

func TestFree(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "room", "add", "hall", "Great Hall")
	e.mustRun(t, nightTrain...)

	out := e.mustRun(t, "free", "--room=hall", "--month=2026-10")
	var line string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "2026-10-17") {
			line = l
		}
	}
	if line == "" {
		t.Fatalf("expected a line for 2026-10-17:\n%s", out)
	}
	if strings.Contains(line, "evening") || !strings.Contains(line, "morning 08:00-13:00") {
		t.Errorf("free line = %q", line)
	}

	if _, err := e.run(t, "free", "--room=cellar", "--month=2026-10"); !errors.Is(err, venue.ErrRoomNotFound) {
		t.Errorf("unknown room err = %v", err)
	}
}

func TestStats(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "dm", "add", "Alice", "Zed")
	e.mustRun(t, nightTrain...)

	out := e.mustRun(t, "stats", "--month=2026-10")
	for _, want := range []string{"=== 2026-10 ===", "Sessions:  1", "NPC seats: 2", "Night Train", "Zed"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in stats:\n%s", want, out)
		}
	}
}

func TestNameAndHolidayCommands(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "npc", "add", "Carol", "Dan")
	e.mustRun(t, "npc", "remove", "Dan")
	if out := e.mustRun(t, "npc", "list"); strings.TrimSpace(out) != "Carol" {
		t.Errorf("npc list = %q", out)
	}

	e.mustRun(t, "holiday", "add", "2026-12-25", "2027-01-01")
	if out := e.mustRun(t, "holiday", "list", "--year=2026"); strings.TrimSpace(out) != "2026-12-25" {
		t.Errorf("holiday list = %q", out)
	}
	e.mustRun(t, "holiday", "remove", "2026-12-25")
	if out := e.mustRun(t, "holiday", "list", "--year=2026"); !strings.Contains(out, "No holidays") {
		t.Errorf("holiday list after remove = %q", out)
	}

	e.mustRun(t, "label", "add", "Staff discount")
	e.mustRun(t, append(nightTrain, "--deposit-label=Paid on site")...)
	if out := e.mustRun(t, "label", "list"); out != "  Paid on site\n  Staff discount\n" {
		t.Errorf("label list = %q", out)
	}
	e.mustRun(t, "label", "remove", "Staff discount")
	if out := e.mustRun(t, "label", "list"); strings.TrimSpace(out) != "Paid on site" {
		t.Errorf("label list after remove = %q", out)
	}

	if _, err := e.run(t, "room", "remove", "cellar"); !errors.Is(err, venue.ErrRoomNotFound) {
		t.Errorf("room remove err = %v", err)
	}
}

func TestShowCopy(t *testing.T) {
	var copied string
	prev := clipboardWrite
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWrite = prev })

	e := newTestEnv(t)
	e.mustRun(t, "room", "add", "hall", "Great Hall")
	e.mustRun(t, nightTrain...)

	out := e.mustRun(t, "show", "2026-10-17", "--copy")
	if !strings.Contains(out, "Copied to clipboard.") {
		t.Errorf("show output = %q", out)
	}
	if !strings.Contains(copied, "Great Hall: 19:00-02:00 Night Train") || strings.Contains(copied, "\x1b[") {
		t.Errorf("clipboard text = %q", copied)
	}
}
