package board

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/placement"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

var now = time.Date(2024, time.April, 3, 10, 0, 0, 0, time.UTC)

// stripANSI removes ANSI escape codes from a string for testing
func stripANSI(s string) string {
	return ansi.Strip(s)
}

func sampleTasks() []domain.Task {
	mk := func(id, title, due string, age time.Duration) domain.Task {
		t := domain.New(now.Add(-age))
		t.ID = id
		t.Title = title
		t.NextDue = due
		t.EndDate = due
		return t
	}
	today := mk("t1", "Inbox zero", "2024-04-03", time.Hour)
	soon := mk("t2", "Pay bills", "2024-04-06", 2*time.Hour)
	soon.Priority = domain.PriorityHigh
	later := mk("t3", "Deep clean kitchen", "2024-05-01", 3*time.Hour)
	done := mk("t4", "Call mum", "2024-04-01", 4*time.Hour)
	done.Status = domain.StatusDone
	done.StatusMode = domain.ModeManual
	return []domain.Task{today, soon, later, done}
}

func TestFromBoard(t *testing.T) {
	cols := FromBoard(placement.Group(sampleTasks(), now), nil)
	require.Len(t, cols, 4)

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
		require.Len(t, c.Tasks, 1, c.Title)
	}
	assert.Equal(t, []string{"Today", "Upcoming", "Backlog", "Done"}, titles)
	assert.Equal(t, "t2", cols[1].Tasks[0].ID)
}

func TestFromBoard_Order(t *testing.T) {
	tasks := sampleTasks()
	tasks[1].NextDue, tasks[1].EndDate = "2024-04-03", "2024-04-03"
	b := placement.Group(tasks, now)

	cols := FromBoard(b, func(ts []domain.Task) []domain.Task {
		return domain.Sort{Field: domain.SortByPriority, Order: domain.SortDesc}.Apply(ts)
	})
	require.Len(t, cols[0].Tasks, 2)
	assert.Equal(t, "t2", cols[0].Tasks[0].ID)
}

func TestRender(t *testing.T) {
	s := styles.New()
	cols := FromBoard(placement.Group(sampleTasks(), now), nil)

	tests := []struct {
		name   string
		cursor Cursor
		width  int
		height int
	}{
		{"default_cursor_at_origin", Cursor{Column: 0, Task: 0}, 120, 30},
		{"cursor_in_done_column", Cursor{Column: 3, Task: 0}, 120, 30},
		{"narrow_terminal", Cursor{}, 80, 24},
		{"cursor_column_out_of_bounds", Cursor{Column: 99, Task: 0}, 120, 30},
		{"cursor_task_out_of_bounds", Cursor{Column: 0, Task: 99}, 120, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(Render(cols, tt.cursor, map[string]bool{}, now, s, tt.width, tt.height))
			for _, want := range []string{"Today (1)", "Upcoming (1)", "Backlog (1)", "Done (1)"} {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestRenderEmptyBoard(t *testing.T) {
	s := styles.New()
	got := Render([]Column{}, Cursor{}, make(map[string]bool), now, s, 120, 30)
	if got != "" {
		t.Errorf("Render() with empty columns should return empty string, got: %q", got)
	}
}

func TestRenderCard_Basic(t *testing.T) {
	s := styles.New()
	task := sampleTasks()[1]
	task.Tags = []string{"finance"}
	task.Time = "18:00"

	stripped := stripANSI(RenderCard(task, false, false, now, 30, s))
	for _, want := range []string{"Pay bills", "H", "#finance", "Sat Apr 6 18:00"} {
		if !strings.Contains(stripped, want) {
			t.Errorf("card should contain %q, got: %s", want, stripped)
		}
	}
	if strings.Contains(stripped, "▶") {
		t.Errorf("non-cursor card should not show cursor marker, got: %s", stripped)
	}
}

func TestRenderCard_CursorAndBadges(t *testing.T) {
	s := styles.New()
	task := sampleTasks()[0]
	task.Repeat = domain.RepeatDaily
	task.StatusMode = domain.ModeManual
	task.Checklist = []domain.ChecklistItem{{ID: "a", Done: true}, {ID: "b"}}

	stripped := stripANSI(RenderCard(task, true, false, now, 30, s))
	for _, want := range []string{"▶", "↻", "◆", "☑ 1/2"} {
		if !strings.Contains(stripped, want) {
			t.Errorf("card should contain %q, got: %s", want, stripped)
		}
	}
}

func TestRenderCard_OverdueAndSpan(t *testing.T) {
	s := styles.New()

	overdue := sampleTasks()[0]
	overdue.NextDue, overdue.EndDate = "2024-04-01", "2024-04-02"
	stripped := stripANSI(RenderCard(overdue, false, false, now, 40, s))
	assert.Contains(t, stripped, "Apr 1 → Apr 2")
	assert.Contains(t, stripped, "overdue")

	undated := sampleTasks()[0]
	undated.NextDue, undated.EndDate = "", ""
	assert.Contains(t, stripANSI(RenderCard(undated, false, false, now, 30, s)), "no date")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated title", 6, "trunc…"},
		{"émoji ✓ text", 7, "émoji …"},
		{"x", 0, ""},
		{"abc", 1, "…"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
