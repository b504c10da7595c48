// Package reminder plans in-app reminders from task due instants.
package reminder

import (
	"fmt"
	"sort"
	"time"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
)

// DefaultDueNowWindow is how long after its due instant a task still
// announces itself as due now
const DefaultDueNowWindow = 30 * time.Minute

// DefaultSnooze is the snooze offered on every reminder
const DefaultSnooze = 10 * time.Minute

// Kind identifies what a reminder announces
type Kind int

const (
	KindDueNow  Kind = iota // due instant passed within the window
	KindLead                // RemindBefore minutes ahead of due
	KindDue                 // the due instant itself
	KindSnoozed             // a snoozed reminder coming back
)

// String returns a short label for logs
func (k Kind) String() string {
	switch k {
	case KindDueNow:
		return "due-now"
	case KindLead:
		return "lead"
	case KindDue:
		return "due"
	case KindSnoozed:
		return "snoozed"
	default:
		return "unknown"
	}
}

// Reminder is one notification for one task
type Reminder struct {
	TaskID  string
	Title   string
	Kind    Kind
	At      time.Time // when it fires
	Due     time.Time // the task's due instant
	Minutes int       // lead minutes for KindLead
}

// Message is the toast text
func (r Reminder) Message() string {
	switch r.Kind {
	case KindDueNow:
		return fmt.Sprintf("%s is due now", r.Title)
	case KindLead:
		return fmt.Sprintf("%s due in %d min", r.Title, r.Minutes)
	case KindSnoozed:
		return fmt.Sprintf("%s: snooze ended", r.Title)
	default:
		return fmt.Sprintf("%s is due", r.Title)
	}
}

// key identifies a reminder across re-plans. Due and due-now share a key so
// a task announces its due instant once.
func (r Reminder) key() string {
	group := r.Kind
	if group == KindDueNow {
		group = KindDue
	}
	return fmt.Sprintf("%s|%d|%d|%d", r.TaskID, group, r.Minutes, r.Due.Unix())
}

// DueAt returns the due instant of t in loc. Done tasks and tasks without a
// valid NextDue have none.
func DueAt(t domain.Task, loc *time.Location) (time.Time, bool) {
	if t.IsDone() {
		return time.Time{}, false
	}
	return calendar.DueInstant(t.NextDue, t.Time, loc)
}

// Plan lists the reminders of tasks as seen at now: a due-now reminder for
// tasks whose due instant passed less than window ago, then every lead and
// due reminder still in the future. The result is ordered by firing time.
func Plan(tasks []domain.Task, now time.Time, window time.Duration) []Reminder {
	if window <= 0 {
		window = DefaultDueNowWindow
	}
	var out []Reminder
	for _, t := range tasks {
		due, ok := DueAt(t, now.Location())
		if !ok {
			continue
		}
		if !due.After(now) && now.Sub(due) < window {
			out = append(out, Reminder{TaskID: t.ID, Title: t.Title, Kind: KindDueNow, At: now, Due: due})
		}
		for _, r := range schedule(t, due) {
			if r.At.After(now) {
				out = append(out, r)
			}
		}
	}
	sortReminders(out)
	return out
}

// schedule returns the lead and due reminders of t regardless of now
func schedule(t domain.Task, due time.Time) []Reminder {
	out := make([]Reminder, 0, len(t.RemindBefore)+1)
	for _, mins := range t.RemindBefore {
		if mins <= 0 {
			continue
		}
		out = append(out, Reminder{
			TaskID:  t.ID,
			Title:   t.Title,
			Kind:    KindLead,
			At:      due.Add(-time.Duration(mins) * time.Minute),
			Due:     due,
			Minutes: mins,
		})
	}
	return append(out, Reminder{TaskID: t.ID, Title: t.Title, Kind: KindDue, At: due, Due: due})
}

// Snooze returns r rescheduled d after now
func Snooze(r Reminder, now time.Time, d time.Duration) Reminder {
	if d <= 0 {
		d = DefaultSnooze
	}
	r.Kind = KindSnoozed
	r.At = now.Add(d)
	r.Minutes = 0
	return r
}

func sortReminders(rs []Reminder) {
	sort.SliceStable(rs, func(i, j int) bool {
		if !rs[i].At.Equal(rs[j].At) {
			return rs[i].At.Before(rs[j].At)
		}
		if rs[i].TaskID != rs[j].TaskID {
			return rs[i].TaskID < rs[j].TaskID
		}
		return rs[i].Kind < rs[j].Kind
	})
}
