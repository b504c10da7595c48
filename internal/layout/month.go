package layout

import (
	"time"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
)

// MonthGridDays is the number of cells in a month view: six Monday-first weeks
const MonthGridDays = 6 * DaysPerWeek

// Week is one row of a month view
type Week struct {
	Start calendar.Date
	Days  []calendar.Date
	Lanes []Lane
}

// MonthGrid returns the 42 days of the Monday-first grid containing the
// month of d.
func MonthGrid(d calendar.Date) []calendar.Date {
	if !d.Valid() {
		return nil
	}
	first := calendar.NewDate(d.Year(), d.Month(), 1, d.Location())
	start := calendar.StartOfWeek(first)
	days := make([]calendar.Date, MonthGridDays)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// WeekDays returns the seven days starting at the Monday of d's week
func WeekDays(d calendar.Date) []calendar.Date {
	if !d.Valid() {
		return nil
	}
	start := calendar.StartOfWeek(d)
	days := make([]calendar.Date, DaysPerWeek)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// MonthWeeks splits the month grid into weeks with lanes laid out per week
func MonthWeeks(d calendar.Date, tasks []domain.Task) []Week {
	grid := MonthGrid(d)
	weeks := make([]Week, 0, len(grid)/DaysPerWeek)
	for i := 0; i < len(grid); i += DaysPerWeek {
		start := grid[i]
		weeks = append(weeks, Week{
			Start: start,
			Days:  grid[i : i+DaysPerWeek],
			Lanes: WeekLanes(start, tasks),
		})
	}
	return weeks
}

// TasksByDate indexes single-day tasks by their NextDue. Multi-day tasks are
// left to the lane layout.
func TasksByDate(tasks []domain.Task) map[string][]domain.Task {
	out := make(map[string][]domain.Task)
	for _, t := range tasks {
		start := calendar.ParseISO(t.NextDue)
		if !start.Valid() {
			continue
		}
		end := calendar.ParseISO(t.SpanEnd())
		if end.Valid() && end.After(start) {
			continue
		}
		out[start.ISO()] = append(out[start.ISO()], t)
	}
	return out
}

// WeekdayHeaders returns Monday-first short weekday names
func WeekdayHeaders() []string {
	out := make([]string, DaysPerWeek)
	for i := range out {
		out[i] = time.Weekday((i + 1) % 7).String()[:3]
	}
	return out
}
