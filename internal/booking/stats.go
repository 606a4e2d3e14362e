package booking

import (
	"cmp"
	"slices"
	"strings"
)

// Count is a name with the number of bookings it appears in.
type Count struct {
	Name  string
	Count int
}

// MonthStats summarizes one month of bookings.
type MonthStats struct {
	Month    string
	Bookings int
	NPCSeats int
	Scripts  []Count
	DMs      []Count
}

// BuildMonthStats counts bookings in month ("YYYY-MM").
// knownDMs are listed even when they ran nothing that month.
func BuildMonthStats(month string, bookings []*Booking, knownDMs []string) MonthStats {
	stats := MonthStats{Month: month}
	scripts := make(map[string]int)
	dms := make(map[string]int)
	for _, dm := range knownDMs {
		dms[dm] = 0
	}

	for _, b := range bookings {
		if b == nil || !strings.HasPrefix(b.Date, month+"-") {
			continue
		}
		stats.Bookings++
		stats.NPCSeats += len(b.NPCs)
		if b.ScriptName != "" {
			scripts[b.ScriptName]++
		}
		for _, dm := range b.DMs {
			dms[dm]++
		}
	}

	stats.Scripts = sortCounts(scripts)
	stats.DMs = sortCounts(dms)
	return stats
}

// sortCounts orders by count descending, then name.
func sortCounts(m map[string]int) []Count {
	result := make([]Count, 0, len(m))
	for name, n := range m {
		result = append(result, Count{Name: name, Count: n})
	}
	slices.SortFunc(result, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// Max returns the largest count, or 1 when empty, for scaling bars.
func Max(counts []Count) int {
	m := 1
	for _, c := range counts {
		m = max(m, c.Count)
	}
	return m
}
