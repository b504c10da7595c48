package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
)

func task(repeat domain.Repeat, nextDue string, interval int) domain.Task {
	return domain.Task{
		ID:                 "t-1",
		Title:              "recurring",
		Repeat:             repeat,
		NextDue:            nextDue,
		EndDate:            nextDue,
		RepeatIntervalDays: interval,
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
		want string
	}{
		{"daily", task(domain.RepeatDaily, "2024-04-03", 1), "2024-04-04"},
		{"daily every 3", task(domain.RepeatDaily, "2024-04-03", 3), "2024-04-06"},
		{"daily unclamped zero treated as one", task(domain.RepeatDaily, "2024-04-03", 0), "2024-04-04"},
		{"custom 10 days", task(domain.RepeatCustom, "2024-02-25", 10), "2024-03-06"},
		{"weekdays from friday", task(domain.RepeatWeekdays, "2024-04-05", 1), "2024-04-08"},
		{"weekdays 3 from thursday", task(domain.RepeatWeekdays, "2024-04-04", 3), "2024-04-09"},
		{"weekly keeps weekday", task(domain.RepeatWeekly, "2024-04-03", 1), "2024-04-10"},
		{"biweekly", task(domain.RepeatWeekly, "2024-04-03", 2), "2024-04-17"},
		{"monthly leap day", task(domain.RepeatMonthly, "2024-02-29", 1), "2024-03-29"},
		{"monthly clamps", task(domain.RepeatMonthly, "2024-01-31", 1), "2024-02-29"},
		{"quarterly", task(domain.RepeatMonthly, "2024-11-30", 3), "2025-02-28"},
		{"none returns base", task(domain.RepeatNone, "2024-04-03", 1), "2024-04-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Next(tt.task)
			assert.Equal(t, tt.want, got.Start)
			assert.Equal(t, tt.want, got.End)
		})
	}
}

func TestNext_WeeklySnapsToRepeatWeekday(t *testing.T) {
	// Wednesday due date moved off a Monday cycle
	tk := task(domain.RepeatWeekly, "2024-04-03", 1)
	tk.RepeatWeekday = domain.IntPtr(int(time.Monday))

	got := Next(tk)
	require.True(t, got.Valid())
	start := calendar.ParseISO(got.Start)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.NotEqual(t, "2024-04-10", got.Start)
	assert.Equal(t, "2024-04-15", got.Start)
}

func TestNext_MonthlyNth(t *testing.T) {
	tk := task(domain.RepeatMonthlyNth, "2024-04-09", 1)
	tk.RepeatWeekday = domain.IntPtr(int(time.Tuesday))
	tk.RepeatNth = 2
	assert.Equal(t, "2024-05-14", Next(tk).Start)

	tk.RepeatNth = calendar.LastOrdinal
	tk.RepeatWeekday = domain.IntPtr(int(time.Friday))
	tk.NextDue, tk.EndDate = "2024-01-26", "2024-01-26"
	tk.RepeatIntervalDays = 2
	assert.Equal(t, "2024-03-29", Next(tk).Start)
}

func TestNext_MonthlyNthFifthMondaySkipsMonths(t *testing.T) {
	tk := task(domain.RepeatMonthlyNth, "2024-01-15", 1)
	tk.RepeatWeekday = domain.IntPtr(int(time.Monday))
	tk.RepeatNth = 5

	got := Next(tk)
	assert.Equal(t, "2024-04-29", got.Start)

	for i := 0; i < 24; i++ {
		tk.NextDue, tk.EndDate = got.Start, got.End
		got = Next(tk)
		require.True(t, got.Valid())
		d := calendar.ParseISO(got.Start)
		assert.Equal(t, time.Monday, d.Weekday())
		assert.GreaterOrEqual(t, d.Day(), 29)
	}
}

func TestNext_MonthlyNthDerivesDefaults(t *testing.T) {
	// 2024-04-09 is the 2nd Tuesday
	tk := task(domain.RepeatMonthlyNth, "2024-04-09", 1)
	assert.Equal(t, "2024-05-14", Next(tk).Start)
}

func TestNext_PreservesSpan(t *testing.T) {
	tk := task(domain.RepeatWeekly, "2024-04-05", 1)
	tk.EndDate = "2024-04-07"

	got := Next(tk)
	assert.Equal(t, "2024-04-12", got.Start)
	assert.Equal(t, "2024-04-14", got.End)
}

func TestNext_InvalidNextDue(t *testing.T) {
	assert.False(t, Next(task(domain.RepeatDaily, "", 1)).Valid())
	assert.False(t, Next(task(domain.RepeatDaily, "2024-13-01", 1)).Valid())
}

func TestNext_UnclampedIntervalsTerminate(t *testing.T) {
	for _, r := range []domain.Repeat{
		domain.RepeatDaily, domain.RepeatWeekdays, domain.RepeatWeekly,
		domain.RepeatMonthly, domain.RepeatMonthlyNth, domain.RepeatCustom,
	} {
		t.Run(string(r), func(t *testing.T) {
			got := Next(task(r, "2024-04-03", 100_000))
			assert.True(t, got.Valid())
		})
	}
}

func TestNext_ImpossibleOrdinalYieldsInvalid(t *testing.T) {
	tk := task(domain.RepeatMonthlyNth, "2024-04-03", 1)
	tk.RepeatNth = 6
	assert.False(t, Next(tk).Valid())
}

func TestNext_DoesNotMutateInput(t *testing.T) {
	tk := task(domain.RepeatDaily, "2024-04-03", 1)
	_ = Next(tk)
	assert.Equal(t, "2024-04-03", tk.NextDue)
}

func TestSpanDays(t *testing.T) {
	assert.Equal(t, 0, SpanDays(domain.Task{NextDue: "2024-04-03"}))
	assert.Equal(t, 2, SpanDays(domain.Task{NextDue: "2024-04-03", EndDate: "2024-04-05"}))
	assert.Equal(t, 0, SpanDays(domain.Task{NextDue: "2024-04-05", EndDate: "2024-04-03"}))
}

func TestAlign(t *testing.T) {
	tk := task(domain.RepeatMonthlyNth, "2024-04-10", 1)
	tk.EndDate = "2024-04-11"
	tk.RepeatWeekday = domain.IntPtr(int(time.Monday))
	tk.RepeatNth = 2

	got := Align(tk)
	assert.Equal(t, "2024-05-13", got.NextDue)
	assert.Equal(t, "2024-05-14", got.EndDate)
	assert.Equal(t, "2024-04-10", tk.NextDue, "input untouched")

	onRule := Align(got)
	assert.Equal(t, got.NextDue, onRule.NextDue)

	weekly := task(domain.RepeatWeekly, "2024-04-10", 1)
	assert.Equal(t, weekly, Align(weekly))
}

func TestPreview(t *testing.T) {
	tk := task(domain.RepeatMonthly, "2024-01-31", 1)
	got := Preview(tk, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "2024-02-29", got[0].Start)
	assert.Equal(t, "2024-03-29", got[1].Start)
	assert.Equal(t, "2024-04-29", got[2].Start)

	assert.Nil(t, Preview(task(domain.RepeatNone, "2024-01-31", 1), 3))
}

func TestDescribe(t *testing.T) {
	weekly := task(domain.RepeatWeekly, "2024-04-03", 2)
	weekly.RepeatWeekday = domain.IntPtr(1)

	nth := task(domain.RepeatMonthlyNth, "2024-04-09", 1)

	tests := []struct {
		task domain.Task
		want string
	}{
		{task(domain.RepeatNone, "2024-04-03", 1), "once"},
		{task(domain.RepeatDaily, "2024-04-03", 1), "every day"},
		{task(domain.RepeatCustom, "2024-04-03", 10), "every 10 days"},
		{task(domain.RepeatWeekdays, "2024-04-03", 1), "every weekday"},
		{weekly, "every 2 weeks on Mon"},
		{task(domain.RepeatMonthly, "2024-04-03", 3), "every 3 months"},
		{nth, "2nd Tue, every month"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Describe(tt.task))
	}
}
