package planner

import (
	"time"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
)

// SampleTasks returns the starter set seeded into an empty store
func SampleTasks(now time.Time) []domain.Task {
	today := calendar.DateOf(now).ISO()

	sample := func(offset time.Duration, title, notes string, status domain.Status, p domain.Priority, tags []string, clock string, remind []int, repeat domain.Repeat) domain.Task {
		t := domain.New(now.Add(offset))
		t.Title = title
		t.Notes = notes
		t.Status = status
		t.Priority = p
		t.Tags = tags
		t.NextDue = today
		t.EndDate = today
		t.Time = clock
		t.RemindBefore = remind
		t.Repeat = repeat
		return t
	}

	stretch := sample(3*time.Millisecond, "Morning stretch", "5-10 minutes of mobility", domain.StatusToday, domain.PriorityLow,
		[]string{"wellness"}, "08:00", []int{10}, domain.RepeatWeekdays)
	stretch.Checklist = []domain.ChecklistItem{
		{ID: domain.NewID(), Text: "Neck rolls"},
		{ID: domain.NewID(), Text: "Hamstrings"},
	}

	return []domain.Task{
		stretch,
		sample(2*time.Millisecond, "Inbox zero", "Clear 10 emails", domain.StatusToday, domain.PriorityMedium,
			[]string{"work"}, "09:00", []int{5}, domain.RepeatDaily),
		sample(time.Millisecond, "Pay bills", "Utilities + phone", domain.StatusUpcoming, domain.PriorityHigh,
			[]string{"finance"}, "18:00", []int{60, 10}, domain.RepeatMonthly),
		sample(0, "Deep clean kitchen", "Stove, sink, counters, floor", domain.StatusBacklog, domain.PriorityMedium,
			[]string{"home"}, "", nil, domain.RepeatWeekly),
	}
}
