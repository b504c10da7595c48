package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
)

// week of Monday 2024-04-01 .. Sunday 2024-04-07
var monday = calendar.ParseISO("2024-04-01")

func span(id, start, end string) domain.Task {
	return domain.Task{ID: id, Title: id, NextDue: start, EndDate: end}
}

func TestWeekSegments(t *testing.T) {
	tasks := []domain.Task{
		span("inside", "2024-04-02", "2024-04-04"),
		span("single", "2024-04-05", ""),
		span("from-before", "2024-03-28", "2024-04-02"),
		span("past-end", "2024-04-06", "2024-04-10"),
		span("covers", "2024-03-25", "2024-04-14"),
		span("before", "2024-03-20", "2024-03-31"),
		span("after", "2024-04-08", "2024-04-09"),
		span("undated", "", ""),
		span("reversed", "2024-04-03", "2024-04-01"),
	}

	segs := WeekSegments(monday, tasks)
	byID := make(map[string]Segment)
	for _, s := range segs {
		byID[s.Task.ID] = s
	}
	require.Len(t, segs, 6)

	tests := []struct {
		id         string
		column     int
		span       int
		start, end bool
	}{
		{"inside", 1, 3, true, true},
		{"single", 4, 1, true, true},
		{"from-before", 0, 2, false, true},
		{"past-end", 5, 2, true, false},
		{"covers", 0, 7, false, false},
		{"reversed", 2, 1, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, ok := byID[tt.id]
			require.True(t, ok)
			assert.Equal(t, tt.column, s.Column)
			assert.Equal(t, tt.span, s.Span)
			assert.Equal(t, tt.start, s.IsSpanStart)
			assert.Equal(t, tt.end, s.IsSpanEnd)
		})
	}
}

func TestWeekSegments_NormalizesToMonday(t *testing.T) {
	thursday := calendar.ParseISO("2024-04-04")
	segs := WeekSegments(thursday, []domain.Task{span("mon", "2024-04-01", "2024-04-01")})
	require.Len(t, segs, 1)
	assert.Equal(t, 0, segs[0].Column)
}

func TestWeekSegments_InvalidWeek(t *testing.T) {
	assert.Nil(t, WeekSegments(calendar.Date{}, []domain.Task{span("a", "2024-04-01", "")}))
}

func TestWeekLanes_TwoFullWeekTasksNeedTwoLanes(t *testing.T) {
	tasks := []domain.Task{
		span("a", "2024-04-01", "2024-04-07"),
		span("b", "2024-04-01", "2024-04-07"),
	}

	lanes := WeekLanes(monday, tasks)
	require.Len(t, lanes, 2)
	assert.Len(t, lanes[0], 1)
	assert.Len(t, lanes[1], 1)
	assert.NotEqual(t, lanes[0][0].Task.ID, lanes[1][0].Task.ID)
}

func TestAssignLanes_FillsGaps(t *testing.T) {
	tasks := []domain.Task{
		span("short-late", "2024-04-05", "2024-04-06"),
		span("long", "2024-04-01", "2024-04-04"),
		span("mid", "2024-04-02", "2024-04-03"),
		span("sunday", "2024-04-07", ""),
	}

	lanes := WeekLanes(monday, tasks)
	require.Len(t, lanes, 2)
	assert.Equal(t, []string{"long", "short-late", "sunday"}, laneIDs(lanes[0]))
	assert.Equal(t, []string{"mid"}, laneIDs(lanes[1]))
}

func TestAssignLanes_SortOrder(t *testing.T) {
	created := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	a := span("a", "2024-04-01", "2024-04-02")
	a.CreatedAt = created.Add(time.Hour)
	b := span("b", "2024-04-01", "2024-04-02")
	b.CreatedAt = created
	c := span("c", "2024-04-01", "2024-04-05")

	lanes := WeekLanes(monday, []domain.Task{a, b, c})
	require.Len(t, lanes, 3)
	assert.Equal(t, "c", lanes[0][0].Task.ID, "longer span first")
	assert.Equal(t, "b", lanes[1][0].Task.ID, "older first on ties")
	assert.Equal(t, "a", lanes[2][0].Task.ID)
}

func TestAssignLanes_Invariants(t *testing.T) {
	var tasks []domain.Task
	start := calendar.ParseISO("2024-03-28")
	for i := 0; i < 30; i++ {
		s := start.AddDays(i % 11)
		e := s.AddDays((i * 7) % 5)
		tasks = append(tasks, span(string(rune('a'+i%26))+s.ISO()+e.ISO(), s.ISO(), e.ISO()))
	}

	segs := WeekSegments(monday, tasks)
	lanes := AssignLanes(segs)

	seen := make(map[string]int)
	for _, lane := range lanes {
		for i := range lane {
			seen[lane[i].Task.ID]++
			for j := i + 1; j < len(lane); j++ {
				assert.False(t, lane[i].Overlaps(lane[j]), "%s overlaps %s", lane[i].Task.ID, lane[j].Task.ID)
			}
		}
	}
	total := 0
	for _, n := range seen {
		total += n
	}
	assert.Equal(t, len(segs), total, "every segment placed exactly once")
}

func TestLane_At(t *testing.T) {
	lanes := WeekLanes(monday, []domain.Task{span("a", "2024-04-02", "2024-04-03")})
	require.Len(t, lanes, 1)

	_, ok := lanes[0].At(0)
	assert.False(t, ok)
	s, ok := lanes[0].At(2)
	assert.True(t, ok)
	assert.Equal(t, "a", s.Task.ID)
}

func TestAssignLanes_Empty(t *testing.T) {
	assert.Empty(t, AssignLanes(nil))
}

func laneIDs(l Lane) []string {
	out := make([]string, len(l))
	for i, s := range l {
		out[i] = s.Task.ID
	}
	return out
}
