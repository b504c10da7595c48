package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/aurora/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestView(t *testing.T) {
	m, _ := newTestModel(t, fixtureTasks())
	m.toasts = nil

	tests := []struct {
		name string
		view types.View
		want []string
	}{
		{"kanban", types.ViewKanban, []string{"Today (1)", "Upcoming (2)", "Pay rent", "KANBAN", "5/5 tasks"}},
		{"calendar", types.ViewCalendar, []string{"Apr 1 – Apr 7, 2024", "Wed 3", "Conference", "CALENDAR"}},
		{"split", types.ViewSplit, []string{"Today (1)", "Apr 1 – Apr 7, 2024", "SPLIT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.view = tt.view
			view := ansi.Strip(m.View())
			for _, want := range tt.want {
				assert.Contains(t, strings.ToUpper(view), strings.ToUpper(want))
			}
		})
	}
}

func TestViewLoading(t *testing.T) {
	m, _ := newTestModel(t, fixtureTasks())

	m.width = 0
	assert.Equal(t, "Loading...", m.View())

	m.width = 80
	m.loading = true
	assert.Contains(t, m.View(), "Loading tasks...")
}

func TestViewStatusInfo(t *testing.T) {
	m, _ := newTestModel(t, fixtureTasks())

	m = press(t, m, "t")
	m = press(t, m, "c")
	m = press(t, m, "v")
	m = press(t, m, "A")

	info := m.statusInfo()
	assert.Equal(t, "1/5 tasks • #health • hiding done • 1 selected", info)
}

func TestViewWithOverlay(t *testing.T) {
	m, _ := newTestModel(t, fixtureTasks())
	m.toasts = nil
	m.width, m.height = 80, 24

	m.overlayStack.Push(&testOverlay{})
	view := m.View()
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if len(lines) > m.height {
		t.Errorf("View with overlay is too tall: got %d lines, want %d", len(lines), m.height)
	}
	assert.Contains(t, view, "test overlay")
}

func TestViewWithToasts(t *testing.T) {
	m, env := newTestModel(t, fixtureTasks())

	m.toasts = append(m.toasts, types.Toast{
		Message: "test toast",
		Expires: env.now().Add(time.Hour),
	})
	assert.Contains(t, ansi.Strip(m.View()), "test toast")
}

type testOverlay struct{}

func (o *testOverlay) View() string                            { return "test overlay" }
func (o *testOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return o, nil }
func (o *testOverlay) Init() tea.Cmd                           { return nil }
func (o *testOverlay) Title() string                           { return "Test" }
func (o *testOverlay) Size() (int, int)                        { return 20, 10 }
