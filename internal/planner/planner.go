// Package planner applies task lifecycle transitions: completion, column
// moves and the save path. Every function returns a new Task and leaves its
// input untouched.
package planner

import (
	"fmt"
	"time"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/placement"
	"github.com/riordanpawley/aurora/internal/recurrence"
)

// Complete marks t complete at now. Repeating tasks advance to their next
// occurrence and return to auto placement; one-off tasks are pinned to done.
func Complete(t domain.Task, now time.Time) domain.Task {
	out := t.Clone()
	at := now
	out.LastCompletedAt = &at

	if !t.Repeat.IsRecurring() {
		out.Status = domain.StatusDone
		out.StatusMode = domain.ModeManual
		return out
	}

	base := calendar.ParseISOIn(t.NextDue, now.Location())
	if !base.Valid() {
		base = calendar.DateOf(now)
	}
	if occ := recurrence.NextFrom(t, base); occ.Valid() {
		out.NextDue = occ.Start
		out.EndDate = occ.End
	}
	out.StatusMode = domain.ModeAuto
	// a repeating task never stays done
	if out.Status == domain.StatusDone {
		out.Status = domain.StatusToday
	}
	out.Status = placement.AutoStatus(out, now)
	return out
}

// Move applies a drag to column to: the task is pinned there manually
func Move(t domain.Task, to domain.Status) domain.Task {
	out := t.Clone()
	out.Status = to
	out.StatusMode = domain.ModeManual
	return out
}

// UseAutoPlacement returns t to automatic placement. A task pinned to done
// is reopened first, otherwise the sticky done rule would keep it there.
func UseAutoPlacement(t domain.Task, now time.Time) domain.Task {
	out := t.Clone()
	out.StatusMode = domain.ModeAuto
	if out.Status == domain.StatusDone {
		out.Status = domain.StatusToday
	}
	out.Status = placement.AutoStatus(out, now)
	return out
}

// Reopen moves a done task back into the active rotation under auto placement
func Reopen(t domain.Task, now time.Time) domain.Task {
	if !t.IsDone() {
		return t
	}
	return UseAutoPlacement(t, now)
}

// Prepare is the save path: normalize, validate, align monthly-nth rules and
// refresh the stored status of auto-placed tasks.
func Prepare(t domain.Task, now time.Time) (domain.Task, error) {
	out := domain.Normalize(t)
	if out.ID == "" {
		out.ID = domain.NewID()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	if err := domain.Validate(out); err != nil {
		return t, fmt.Errorf("prepare task: %w", err)
	}
	out = recurrence.Align(out)
	if !out.StatusMode.IsManual() {
		out.Status = placement.AutoStatus(out, now)
	}
	return out, nil
}

// NewTask returns a blank task due today
func NewTask(now time.Time) domain.Task {
	t := domain.New(now)
	t.NextDue = calendar.DateOf(now).ISO()
	t.EndDate = t.NextDue
	return t
}

// ToggleChecklistItem flips the done flag of the item with id
func ToggleChecklistItem(t domain.Task, id string) (domain.Task, bool) {
	out := t.Clone()
	for i := range out.Checklist {
		if out.Checklist[i].ID == id {
			out.Checklist[i].Done = !out.Checklist[i].Done
			return out, true
		}
	}
	return t, false
}
