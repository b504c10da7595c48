package reminder

import (
	"time"

	"github.com/riordanpawley/aurora/internal/domain"
)

// firedRetention bounds how long fired keys are remembered
const firedRetention = 48 * time.Hour

// Tracker turns periodic checks into fire-once reminders. It is driven by
// the caller's tick and is not safe for concurrent use.
type Tracker struct {
	window  time.Duration
	last    time.Time
	fired   map[string]time.Time
	snoozed []Reminder
}

// NewTracker returns a Tracker using window for due-now reminders
func NewTracker(window time.Duration) *Tracker {
	if window <= 0 {
		window = DefaultDueNowWindow
	}
	return &Tracker{window: window, fired: make(map[string]time.Time)}
}

// Fire returns the reminders that became due since the previous call. The
// first call only announces tasks that are due now; later calls also fire
// lead and due reminders whose instant fell inside (previous, now].
func (tr *Tracker) Fire(tasks []domain.Task, now time.Time) []Reminder {
	if tr.last.IsZero() || now.Before(tr.last) {
		tr.last = now
	}

	var out []Reminder
	for _, t := range tasks {
		due, ok := DueAt(t, now.Location())
		if !ok {
			continue
		}
		for _, r := range schedule(t, due) {
			if r.At.After(tr.last) && !r.At.After(now) {
				out = tr.emit(out, r)
			}
		}
		if !due.After(now) && now.Sub(due) < tr.window {
			out = tr.emit(out, Reminder{TaskID: t.ID, Title: t.Title, Kind: KindDueNow, At: now, Due: due})
		}
	}

	pending := tr.snoozed[:0]
	for _, r := range tr.snoozed {
		if r.At.After(now) {
			pending = append(pending, r)
			continue
		}
		out = append(out, r)
	}
	tr.snoozed = pending

	tr.prune(now)
	tr.last = now
	sortReminders(out)
	return out
}

// Snooze queues r to fire again d after now
func (tr *Tracker) Snooze(r Reminder, now time.Time, d time.Duration) Reminder {
	s := Snooze(r, now, d)
	tr.snoozed = append(tr.snoozed, s)
	return s
}

// Pending returns the number of queued snoozes
func (tr *Tracker) Pending() int {
	return len(tr.snoozed)
}

func (tr *Tracker) emit(out []Reminder, r Reminder) []Reminder {
	k := r.key()
	if _, done := tr.fired[k]; done {
		return out
	}
	tr.fired[k] = r.Due
	return append(out, r)
}

func (tr *Tracker) prune(now time.Time) {
	cutoff := now.Add(-firedRetention)
	for k, due := range tr.fired {
		if due.Before(cutoff) {
			delete(tr.fired, k)
		}
	}
}
