// Package recurrence computes the next occurrence of repeating tasks.
//
// All functions are pure: they read only the task handed to them and never
// consult a clock.
package recurrence

import (
	"fmt"
	"time"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
)

// Occurrence is an inclusive date span in ISO form
type Occurrence struct {
	Start string
	End   string
}

// Valid reports whether the occurrence has a start date
func (o Occurrence) Valid() bool {
	return o.Start != ""
}

// Next returns the occurrence after the task's current one. A task whose
// NextDue is not a date yields the zero Occurrence.
func Next(t domain.Task) Occurrence {
	return NextFrom(t, calendar.ParseISO(t.NextDue))
}

// NextFrom advances from base instead of the stored NextDue, keeping the
// task's span length.
func NextFrom(t domain.Task, base calendar.Date) Occurrence {
	if !base.Valid() {
		return Occurrence{}
	}
	start := advance(t, base)
	if !start.Valid() {
		return Occurrence{}
	}
	return Occurrence{
		Start: start.ISO(),
		End:   start.AddDays(SpanDays(t)).ISO(),
	}
}

// SpanDays returns the number of days between NextDue and EndDate, 0 for
// single-day tasks or unparseable dates.
func SpanDays(t domain.Task) int {
	start := calendar.ParseISO(t.NextDue)
	end := calendar.ParseISO(t.EndDate)
	if !start.Valid() || !end.Valid() {
		return 0
	}
	return max(0, calendar.DaysBetween(start, end))
}

func advance(t domain.Task, base calendar.Date) calendar.Date {
	n := max(1, t.RepeatIntervalDays)

	switch t.Repeat {
	case domain.RepeatDaily, domain.RepeatCustom:
		return base.AddDays(n)
	case domain.RepeatWeekdays:
		return base.AddWeekdays(n)
	case domain.RepeatWeekly:
		return base.AddDays(7 * n).OnOrAfter(Weekday(t, base))
	case domain.RepeatMonthly:
		return base.AddMonths(n)
	case domain.RepeatMonthlyNth:
		return calendar.AdvanceNthWeekdayMonthly(base, n, Weekday(t, base), Nth(t, base))
	default:
		return base
	}
}

// Weekday returns the task's anchor weekday, defaulting to base's weekday
// when unset or out of range.
func Weekday(t domain.Task, base calendar.Date) time.Weekday {
	if t.RepeatWeekday != nil && *t.RepeatWeekday >= 0 && *t.RepeatWeekday <= 6 {
		return time.Weekday(*t.RepeatWeekday)
	}
	return base.Weekday()
}

// Nth returns the task's ordinal, deriving it from base when unset
func Nth(t domain.Task, base calendar.Date) int {
	if t.RepeatNth == 0 {
		return calendar.OrdinalOf(base)
	}
	return t.RepeatNth
}

// Align snaps a monthly-nth task's NextDue onto its rule, shifting EndDate by
// the same number of days. Other tasks are returned unchanged.
func Align(t domain.Task) domain.Task {
	if t.Repeat != domain.RepeatMonthlyNth {
		return t
	}
	base := calendar.ParseISO(t.NextDue)
	if !base.Valid() {
		return t
	}
	aligned := calendar.AlignDateToMonthlyNth(base, Weekday(t, base), Nth(t, base))
	if !aligned.Valid() || aligned.Equal(base) {
		return t
	}
	out := t.Clone()
	out.NextDue = aligned.ISO()
	out.EndDate = aligned.AddDays(SpanDays(t)).ISO()
	return out
}

// Preview lists up to n occurrences following the current one
func Preview(t domain.Task, n int) []Occurrence {
	if !t.Repeat.IsRecurring() {
		return nil
	}
	var out []Occurrence
	cur := t.Clone()
	for i := 0; i < n; i++ {
		occ := Next(cur)
		if !occ.Valid() {
			break
		}
		out = append(out, occ)
		cur.NextDue, cur.EndDate = occ.Start, occ.End
	}
	return out
}

var ordinalNames = map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 5: "5th", calendar.LastOrdinal: "last"}

// Describe renders the repeat rule for display, e.g. "every 2 weeks on Mon"
func Describe(t domain.Task) string {
	n := max(1, t.RepeatIntervalDays)
	base := calendar.ParseISO(t.NextDue)
	wd := Weekday(t, base).String()[:3]

	switch t.Repeat {
	case domain.RepeatDaily, domain.RepeatCustom:
		return plural(n, "day")
	case domain.RepeatWeekdays:
		if n == 1 {
			return "every weekday"
		}
		return fmt.Sprintf("every %d weekdays", n)
	case domain.RepeatWeekly:
		return plural(n, "week") + " on " + wd
	case domain.RepeatMonthly:
		return plural(n, "month")
	case domain.RepeatMonthlyNth:
		name, ok := ordinalNames[Nth(t, base)]
		if !ok {
			name = "?"
		}
		return fmt.Sprintf("%s %s, %s", name, wd, plural(n, "month"))
	default:
		return "once"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "every " + unit
	}
	return fmt.Sprintf("every %d %ss", n, unit)
}
