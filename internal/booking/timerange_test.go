package booking

import (
	"errors"
	"testing"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "08:00", want: 480},
		{name: "single digit hour", input: "9:30", want: 570},
		{name: "afternoon", input: "18:30", want: 1110},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "end of day", input: "24:00", want: 1440},
		{name: "full-width colon", input: "13：00", want: 780},
		{name: "surrounding spaces", input: " 19:00 ", want: 1140},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	inputs := []string{"", "13", "13:0", "ab:cd", "1300", "25:00", "24:30", "12:60", "-1:00", "+9:00", "123:00"}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimeOfDay(input)
			if !errors.Is(err, ErrInvalidTimeOfDay) {
				t.Errorf("ParseTimeOfDay(%q) error = %v, want %v", input, err, ErrInvalidTimeOfDay)
			}
		})
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{input: 0, want: "00:00"},
		{input: 570, want: "09:30"},
		{input: 1439, want: "23:59"},
		{input: -10, want: "00:00"},
		{input: 2000, want: "24:00"},
	}
	for _, tt := range tests {
		if got := MinutesToTime(tt.input); got != tt.want {
			t.Errorf("MinutesToTime(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Interval
	}{
		{name: "afternoon", input: "13:00-17:00", want: Interval{Start: 780, End: 1020}},
		{name: "spaces around parts", input: "13:00 - 17:00", want: Interval{Start: 780, End: 1020}},
		{name: "overnight", input: "22:00-03:00", want: Interval{Start: 1320, End: 1620}},
		{name: "evening into night", input: "19:00-02:00", want: Interval{Start: 1140, End: 1560}},
		{name: "zero length", input: "10:00-10:00", want: Interval{Start: 600, End: 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if err != nil {
				t.Fatalf("ParseRange(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	inputs := []string{"", "garbage", "13:00", "13:00-15:00-17:00", "13:00-", "xx:00-17:00", "13:00-17"}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRange(input)
			if !errors.Is(err, ErrInvalidTimeRange) {
				t.Errorf("ParseRange(%q) error = %v, want %v", input, err, ErrInvalidTimeRange)
			}
		})
	}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "back to back", a: "10:00-13:00", b: "13:00-17:00", want: false},
		{name: "gap between", a: "10:00-12:00", b: "13:00-17:00", want: false},
		{name: "partial", a: "10:00-13:00", b: "12:00-14:00", want: true},
		{name: "contained", a: "10:00-18:30", b: "13:00-17:00", want: true},
		{name: "same range", a: "13:00-17:00", b: "13:00-17:00", want: true},
		{name: "overnight overlaps late evening", a: "22:00-03:00", b: "23:00-23:30", want: true},
		{name: "overnight after day session", a: "19:00-02:00", b: "10:00-18:30", want: false},
		{name: "zero length at boundary", a: "13:00-13:00", b: "10:00-13:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseRange(tt.a)
			if err != nil {
				t.Fatal(err)
			}
			b, err := ParseRange(tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("%s overlaps %s = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := b.Overlaps(a); got != tt.want {
				t.Errorf("overlap is not symmetric for %s and %s", tt.a, tt.b)
			}
		})
	}
}

func TestInterval_Overnight(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "19:00-23:00", want: false},
		{input: "20:00-00:00", want: false},
		{input: "10:00-24:00", want: false},
		{input: "22:00-03:00", want: true},
		{input: "23:59-00:01", want: true},
	}
	for _, tt := range tests {
		iv, err := ParseRange(tt.input)
		if err != nil {
			t.Fatal(err)
		}
		if got := iv.Overnight(); got != tt.want {
			t.Errorf("ParseRange(%q).Overnight() = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInterval_String(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "9:00-12:30", want: "09:00-12:30"},
		{input: "22:00-03:00", want: "22:00-03:00"},
		{input: "10:00-24:00", want: "10:00-24:00"},
	}
	for _, tt := range tests {
		iv, err := ParseRange(tt.input)
		if err != nil {
			t.Fatal(err)
		}
		if got := iv.String(); got != tt.want {
			t.Errorf("ParseRange(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClassifySlot(t *testing.T) {
	tests := []struct {
		input string
		want  Slot
	}{
		{input: "08:00-12:30", want: SlotMorning},
		{input: "08:00-13:00", want: SlotMorning},
		{input: "08:00-13:01", want: SlotAfternoon},
		{input: "13:00-18:30", want: SlotAfternoon},
		{input: "19:00-23:00", want: SlotEvening},
		{input: "14:00-19:00", want: SlotEvening},
		{input: "10:00-18:30", want: SlotAfternoon},
		{input: "22:00-03:00", want: SlotEvening},
		{input: "19:00-02:00", want: SlotEvening},
		{input: "garbage", want: SlotAfternoon},
		{input: "", want: SlotAfternoon},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ClassifySlot(tt.input)
			if got != tt.want {
				t.Errorf("ClassifySlot(%q) = %s, want %s", tt.input, got, tt.want)
			}
			if again := ClassifySlot(tt.input); again != got {
				t.Errorf("ClassifySlot(%q) not deterministic: %s then %s", tt.input, got, again)
			}
		})
	}
}

func TestParseSlot(t *testing.T) {
	for _, s := range Slots() {
		got, err := ParseSlot(" " + s.Label() + " ")
		if err != nil {
			t.Fatalf("ParseSlot(%q): %v", s.Label(), err)
		}
		if got != s {
			t.Errorf("ParseSlot(%q) = %s, want %s", s.Label(), got, s)
		}
	}
	if _, err := ParseSlot("night"); err == nil {
		t.Error("expected error for unknown slot")
	}
}
