package week

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

// Wednesday
var now = time.Date(2024, time.April, 3, 10, 0, 0, 0, time.UTC)

func task(id, title, start, end string) domain.Task {
	t := domain.New(now.Add(-time.Hour))
	t.ID = id
	t.Title = title
	t.NextDue = start
	t.EndDate = end
	return t
}

func weekTasks() []domain.Task {
	dentist := task("d", "Dentist", "2024-04-03", "2024-04-03")
	dentist.Time = "14:30"
	return []domain.Task{
		task("trip", "Trip", "2024-04-02", "2024-04-05"),
		dentist,
		task("spill", "Spill", "2024-03-30", "2024-04-02"),
		task("far", "Far away", "2024-05-01", ""),
		task("none", "Someday", "", ""),
	}
}

func TestNewWeek(t *testing.T) {
	w := NewWeek(calendar.DateOf(now), weekTasks())

	assert.Equal(t, "2024-04-01", w.Start.ISO())
	require.Len(t, w.Days, 7)
	assert.Equal(t, "2024-04-07", w.Days[6].ISO())
	require.Len(t, w.Lanes, 2)
	assert.Equal(t, "Apr 1 – Apr 7, 2024", w.Title())
}

func TestWeek_TaskAt(t *testing.T) {
	w := NewWeek(calendar.DateOf(now), weekTasks())

	tests := []struct {
		name   string
		cursor Cursor
		wantID string
		wantOK bool
	}{
		{"single day", Cursor{Day: 2, Lane: 0}, "d", true},
		{"clipped span", Cursor{Day: 0, Lane: 0}, "spill", true},
		{"inside span", Cursor{Day: 4, Lane: 1}, "trip", true},
		{"empty cell", Cursor{Day: 6, Lane: 0}, "", false},
		{"lane out of range", Cursor{Day: 2, Lane: 5}, "", false},
		{"negative lane", Cursor{Day: 2, Lane: -1}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := w.TaskAt(tt.cursor)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestRender(t *testing.T) {
	w := NewWeek(calendar.DateOf(now), weekTasks())
	out := ansi.Strip(Render(w, Cursor{Day: 2}, now, styles.New(), 140, 10))

	for _, want := range []string{"Mon 1", "Wed 3", "Sun 7", "14:30 Dentist", "◀ Spill", "Trip"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Far away")
	assert.NotContains(t, out, "Someday")
}

func TestRender_Overflow(t *testing.T) {
	w := NewWeek(calendar.DateOf(now), weekTasks())
	out := ansi.Strip(Render(w, Cursor{}, now, styles.New(), 140, 2))

	assert.Contains(t, out, "+2 more lanes")
	assert.NotContains(t, out, "Dentist")
}

func TestRender_EmptyWeek(t *testing.T) {
	w := NewWeek(calendar.DateOf(now), nil)
	out := ansi.Strip(Render(w, Cursor{}, now, styles.New(), 140, 10))

	assert.Contains(t, out, "Nothing scheduled this week")
}

func TestBarLabel(t *testing.T) {
	w := NewWeek(calendar.DateOf(now), []domain.Task{task("x", "Conference", "2024-03-31", "2024-04-09")})
	require.Len(t, w.Lanes, 1)
	seg := w.Lanes[0][0]

	assert.Equal(t, 7, seg.Span)
	assert.Equal(t, "◀ Conference ▶", barLabel(seg, 40))
	assert.Equal(t, "◀ Co… ▶", barLabel(seg, 8))
}
