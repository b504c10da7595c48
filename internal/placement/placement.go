// Package placement decides which board column a task belongs in.
package placement

import (
	"time"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
)

// UpcomingWindowDays is how far past the end of today a task may start and
// still count as upcoming.
const UpcomingWindowDays = 7

// AutoStatus classifies t against now. Rules are evaluated in order: done is
// sticky, undated tasks go to the backlog, overdue spans and spans touching
// today go to today, spans starting within the upcoming window are upcoming,
// everything else is backlog.
func AutoStatus(t domain.Task, now time.Time) domain.Status {
	if t.IsDone() {
		return domain.StatusDone
	}

	loc := now.Location()
	start, ok := calendar.DueInstant(t.NextDue, t.Time, loc)
	if !ok {
		return domain.StatusBacklog
	}
	end := spanEnd(t, loc)

	startOfToday := calendar.StartOfDay(now)
	endOfToday := calendar.EndOfDay(now)
	endOfWindow := endOfToday.AddDate(0, 0, UpcomingWindowDays)

	switch {
	case end.Before(startOfToday):
		return domain.StatusToday
	case !start.After(endOfToday) && !end.Before(startOfToday):
		return domain.StatusToday
	case !start.After(endOfWindow):
		return domain.StatusUpcoming
	default:
		return domain.StatusBacklog
	}
}

// EffectiveStatus returns the column t is displayed in. Manual tasks keep
// their stored status (today when empty); everything else is classified.
func EffectiveStatus(t domain.Task, now time.Time) domain.Status {
	if t.StatusMode.IsManual() {
		if t.Status == "" {
			return domain.StatusToday
		}
		return t.Status
	}
	return AutoStatus(t, now)
}

// IsOverdue reports whether an unfinished task's span ended before today
func IsOverdue(t domain.Task, now time.Time) bool {
	if t.IsDone() {
		return false
	}
	if !calendar.ParseISOIn(t.NextDue, now.Location()).Valid() {
		return false
	}
	return spanEnd(t, now.Location()).Before(calendar.StartOfDay(now))
}

// spanEnd returns the last instant of t's span. A missing end, or one
// before NextDue, ends the span on NextDue like the week layout does.
func spanEnd(t domain.Task, loc *time.Location) time.Time {
	clock := calendar.EndOfSpanClock.String()
	first, _ := calendar.DueInstant(t.NextDue, clock, loc)
	end, ok := calendar.DueInstant(t.SpanEnd(), clock, loc)
	if !ok || end.Before(first) {
		return first
	}
	return end
}
