package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNthWeekdayOfMonth(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		wd      time.Weekday
		ordinal int
		want    string
		ok      bool
	}{
		{"first monday april 2024", 2024, time.April, time.Monday, 1, "2024-04-01", true},
		{"second tuesday april 2024", 2024, time.April, time.Tuesday, 2, "2024-04-09", true},
		{"fifth monday april 2024 exists", 2024, time.April, time.Monday, 5, "2024-04-29", true},
		{"fifth monday february 2024 missing", 2024, time.February, time.Monday, 5, "", false},
		{"last friday february 2024", 2024, time.February, time.Friday, LastOrdinal, "2024-02-23", true},
		{"last thursday february 2024", 2024, time.February, time.Thursday, LastOrdinal, "2024-02-29", true},
		{"fourth sunday december 2023", 2023, time.December, time.Sunday, 4, "2023-12-24", true},
		{"ordinal zero", 2024, time.April, time.Monday, 0, "", false},
		{"ordinal six", 2024, time.April, time.Monday, 6, "", false},
		{"ordinal minus two", 2024, time.April, time.Monday, -2, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NthWeekdayOfMonth(tt.year, tt.month, tt.wd, tt.ordinal)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.ISO())
			if ok {
				assert.Equal(t, tt.wd, got.Weekday())
			}
		})
	}
}

func TestNthWeekdayOfMonth_LastAlwaysExists(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			got, ok := NthWeekdayOfMonth(2025, m, wd, LastOrdinal)
			require.True(t, ok)
			assert.Equal(t, wd, got.Weekday())
			assert.Greater(t, got.Day()+7, DaysIn(2025, m))
		}
	}
}

func TestAdvanceNthWeekdayMonthly(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		step    int
		wd      time.Weekday
		ordinal int
		want    string
	}{
		{"second tuesday next month", "2024-04-09", 1, time.Tuesday, 2, "2024-05-14"},
		{"last friday in two months", "2024-01-26", 2, time.Friday, LastOrdinal, "2024-03-29"},
		{"step below one is one", "2024-04-09", 0, time.Tuesday, 2, "2024-05-14"},
		{"skips months without fifth monday", "2024-01-15", 1, time.Monday, 5, "2024-04-29"},
		{"crosses year", "2024-12-10", 1, time.Tuesday, 2, "2025-01-14"},
		{"quarterly first monday", "2024-01-01", 3, time.Monday, 1, "2024-04-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdvanceNthWeekdayMonthly(ParseISO(tt.from), tt.step, tt.wd, tt.ordinal)
			assert.Equal(t, tt.want, got.ISO())
		})
	}
}

func TestAdvanceNthWeekdayMonthly_FifthWeekdayAlwaysFound(t *testing.T) {
	start := ParseISO("2024-01-01")
	for step := 1; step <= 12; step++ {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			got := AdvanceNthWeekdayMonthly(start, step, wd, 5)
			require.True(t, got.Valid(), "step=%d wd=%s", step, wd)
			assert.Equal(t, wd, got.Weekday())
			assert.GreaterOrEqual(t, got.Day(), 29)
		}
	}
}

func TestAdvanceNthWeekdayMonthly_ImpossibleOrdinalTerminates(t *testing.T) {
	got := AdvanceNthWeekdayMonthly(ParseISO("2024-01-01"), 1, time.Monday, 6)
	assert.False(t, got.Valid())
}

func TestAlignToMonthlyNth(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		wd      time.Weekday
		ordinal int
		want    string
	}{
		{"base is the occurrence", "2024-04-08", time.Monday, 2, "2024-04-08"},
		{"occurrence later this month", "2024-04-02", time.Monday, 2, "2024-04-08"},
		{"occurrence already passed", "2024-04-10", time.Monday, 2, "2024-05-13"},
		{"last friday", "2024-02-01", time.Friday, LastOrdinal, "2024-02-23"},
		{"fifth monday skips ahead", "2024-02-01", time.Monday, 5, "2024-04-29"},
		{"invalid base", "not-a-date", time.Monday, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AlignToMonthlyNth(tt.base, tt.wd, tt.ordinal))
		})
	}
}

func TestOrdinalOf(t *testing.T) {
	assert.Equal(t, 1, OrdinalOf(ParseISO("2024-04-01")))
	assert.Equal(t, 2, OrdinalOf(ParseISO("2024-04-09")))
	assert.Equal(t, 4, OrdinalOf(ParseISO("2024-04-28")))
	assert.Equal(t, LastOrdinal, OrdinalOf(ParseISO("2024-04-29")))
}
