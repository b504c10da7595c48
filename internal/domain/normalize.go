package domain

import (
	"slices"
	"strings"

	"github.com/riordanpawley/aurora/internal/calendar"
)

// Normalize returns a copy of t with save-time invariants applied: trimmed
// title, tag set semantics, sorted positive reminder offsets, clamped repeat
// interval, legacy defaults filled in and EndDate clamped up to NextDue.
func Normalize(t Task) Task {
	n := t.Clone()
	n.Title = strings.TrimSpace(n.Title)
	n.Notes = strings.TrimSpace(n.Notes)
	n.Tags = NormalizeTags(n.Tags)
	n.RemindBefore = normalizeReminders(n.RemindBefore)
	n.RepeatIntervalDays = ClampInterval(n.RepeatIntervalDays)

	if n.Status == "" {
		n.Status = StatusToday
	}
	if n.StatusMode != ModeManual {
		n.StatusMode = ModeAuto
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if n.Repeat == "" {
		n.Repeat = RepeatNone
	}

	if n.Time != "" {
		if c, ok := calendar.ParseClock(n.Time); ok {
			n.Time = c.String()
		}
	}

	start := calendar.ParseISO(n.NextDue)
	if start.Valid() {
		n.NextDue = start.ISO()
		end := calendar.ParseISO(n.EndDate)
		if !end.Valid() || end.Before(start) {
			end = start
		}
		n.EndDate = end.ISO()
	}

	for i := range n.Checklist {
		n.Checklist[i].Text = strings.TrimSpace(n.Checklist[i].Text)
		if n.Checklist[i].ID == "" {
			n.Checklist[i].ID = NewID()
		}
	}
	return n
}

// ClampInterval bounds a repeat interval to [MinInterval, MaxInterval]
func ClampInterval(n int) int {
	return max(MinInterval, min(MaxInterval, n))
}

// NormalizeTags trims tags, drops empties and collapses duplicates while
// keeping first-seen order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseTags splits a comma separated tag list
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

func normalizeReminders(mins []int) []int {
	out := make([]int, 0, len(mins))
	for _, m := range mins {
		if m > 0 {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}
