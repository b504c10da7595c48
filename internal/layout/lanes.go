// Package layout computes calendar geometry: per-week span segments and the
// lanes they are stacked into.
package layout

import (
	"sort"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
)

// DaysPerWeek is the width of a calendar week row
const DaysPerWeek = 7

// Segment is the part of a task's span that falls inside one week
type Segment struct {
	Task        domain.Task
	Column      int // 0 = Monday
	Span        int // days, inclusive, >= 1
	IsSpanStart bool
	IsSpanEnd   bool
}

// LastColumn returns the final column the segment covers
func (s Segment) LastColumn() int {
	return s.Column + s.Span - 1
}

// Overlaps reports whether two segments share a column
func (s Segment) Overlaps(o Segment) bool {
	return s.Column <= o.LastColumn() && o.Column <= s.LastColumn()
}

// Covers reports whether the segment occupies column col
func (s Segment) Covers(col int) bool {
	return col >= s.Column && col <= s.LastColumn()
}

// Lane is a row of mutually non-overlapping segments
type Lane []Segment

// fits reports whether seg can join the lane without overlapping
func (l Lane) fits(seg Segment) bool {
	for _, s := range l {
		if s.Overlaps(seg) {
			return false
		}
	}
	return true
}

// At returns the segment covering col, if any
func (l Lane) At(col int) (Segment, bool) {
	for _, s := range l {
		if s.Covers(col) {
			return s, true
		}
	}
	return Segment{}, false
}

// WeekSegments clamps every task overlapping the week starting at weekStart
// (normalized to its Monday) into a Segment. Tasks without a valid NextDue
// are skipped; an EndDate before NextDue is treated as a single day.
func WeekSegments(weekStart calendar.Date, tasks []domain.Task) []Segment {
	if !weekStart.Valid() {
		return nil
	}
	monday := calendar.StartOfWeek(weekStart)
	sunday := monday.AddDays(DaysPerWeek - 1)

	var segs []Segment
	for _, t := range tasks {
		start := calendar.ParseISOIn(t.NextDue, monday.Location())
		if !start.Valid() {
			continue
		}
		end := calendar.ParseISOIn(t.SpanEnd(), monday.Location())
		if !end.Valid() || end.Before(start) {
			end = start
		}
		if end.Before(monday) || start.After(sunday) {
			continue
		}

		clampedStart, clampedEnd := start, end
		if clampedStart.Before(monday) {
			clampedStart = monday
		}
		if clampedEnd.After(sunday) {
			clampedEnd = sunday
		}

		segs = append(segs, Segment{
			Task:        t,
			Column:      calendar.DaysBetween(monday, clampedStart),
			Span:        calendar.DaysBetween(clampedStart, clampedEnd) + 1,
			IsSpanStart: clampedStart.Equal(start),
			IsSpanEnd:   clampedEnd.Equal(end),
		})
	}
	return segs
}

// AssignLanes sorts segments by (Column asc, Span desc) and places each in
// the first lane it fits, opening a new lane when none does. Remaining ties
// are broken by CreatedAt and ID so the result is deterministic.
func AssignLanes(segs []Segment) []Lane {
	sorted := make([]Segment, len(segs))
	copy(sorted, segs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Span != b.Span {
			return a.Span > b.Span
		}
		if !a.Task.CreatedAt.Equal(b.Task.CreatedAt) {
			return a.Task.CreatedAt.Before(b.Task.CreatedAt)
		}
		return a.Task.ID < b.Task.ID
	})

	var lanes []Lane
	for _, seg := range sorted {
		placed := false
		for i := range lanes {
			if lanes[i].fits(seg) {
				lanes[i] = append(lanes[i], seg)
				placed = true
				break
			}
		}
		if !placed {
			lanes = append(lanes, Lane{seg})
		}
	}
	return lanes
}

// WeekLanes is WeekSegments followed by AssignLanes
func WeekLanes(weekStart calendar.Date, tasks []domain.Task) []Lane {
	return AssignLanes(WeekSegments(weekStart, tasks))
}
