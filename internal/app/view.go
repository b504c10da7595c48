package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/placement"
	"github.com/riordanpawley/aurora/internal/types"
	"github.com/riordanpawley/aurora/internal/ui/board"
	"github.com/riordanpawley/aurora/internal/ui/statusbar"
	"github.com/riordanpawley/aurora/internal/ui/toast"
	"github.com/riordanpawley/aurora/internal/ui/week"
)

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading {
		return m.renderLoading()
	}

	// Render main view based on view mode, leaving a line for the status bar
	mainHeight := m.height - 1
	var mainView string
	switch m.view {
	case types.ViewCalendar:
		mainView = m.renderWeekView(mainHeight)
	case types.ViewSplit:
		boardHeight := mainHeight / 2
		mainView = lipgloss.JoinVertical(lipgloss.Left,
			m.renderBoardView(boardHeight),
			m.renderWeekView(mainHeight-boardHeight),
		)
	default:
		mainView = m.renderBoardView(mainHeight)
	}

	sb := statusbar.New(m.editor.GetMode(), m.width, m.styles).
		WithView(m.view).
		WithInfo(m.statusInfo())
	view := lipgloss.JoinVertical(lipgloss.Left, mainView, sb.Render())

	// If overlay is open, render it on top (centered)
	if !m.overlayStack.IsEmpty() {
		current := m.overlayStack.Current()
		overlayView := current.View()
		overlayWidth, overlayHeight := current.Size()

		// If width is 0, it means full width (like search bar)
		if overlayWidth == 0 {
			view = lipgloss.JoinVertical(lipgloss.Left, view, overlayView)
		} else {
			if title := current.Title(); title != "" {
				titleView := m.styles.OverlayTitle.Render(title)
				overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
			}
			overlayView = m.styles.Overlay.
				Width(overlayWidth).
				Height(overlayHeight).
				Render(overlayView)

			// The modal replaces the board while open
			view = lipgloss.Place(
				m.width,
				m.height,
				lipgloss.Center,
				lipgloss.Center,
				overlayView,
			)
		}
	}

	if len(m.toasts) > 0 {
		if toastView := toast.New(m.styles).Render(m.toasts, m.width); toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

// asOf is the instant the board is classified at. It only moves on load,
// change and tick, so a render and the key handling after it agree.
func (m Model) asOf() time.Time {
	if m.lastRefresh.IsZero() {
		return m.now()
	}
	return m.lastRefresh
}

// buildColumns groups the filtered tasks by effective status at asOf and
// orders each column with the active sort
func (m Model) buildColumns() []board.Column {
	filtered := m.editor.ApplyFilter(m.tasks)
	return board.FromBoard(placement.Group(filtered, m.asOf()), m.editor.ApplySort)
}

// currentWeek lays out the filtered tasks for the week on screen
func (m Model) currentWeek() week.Week {
	return week.NewWeek(m.weekStart, m.editor.ApplyFilter(m.tasks))
}

// currentTask returns the task under the cursor of the active view
func (m Model) currentTask() *domain.Task {
	if m.view == types.ViewCalendar {
		return m.nav.GetWeekTask(m.currentWeek())
	}
	return m.nav.GetCurrentTask(m.buildColumns())
}

// renderBoardView renders the kanban board view
func (m Model) renderBoardView(height int) string {
	columns := m.buildColumns()
	pos := m.nav.GetPosition(columns)
	cursor := board.Cursor{Column: pos.Column, Task: pos.Task}

	return board.Render(
		columns,
		cursor,
		m.editor.GetSelectedTasks(),
		m.asOf(),
		m.styles,
		m.width,
		height,
	)
}

// renderWeekView renders the week title and the lane grid
func (m Model) renderWeekView(height int) string {
	w := m.currentWeek()
	cursor := m.nav.GetWeekCursor(w)
	if m.view == types.ViewSplit {
		// the board owns the cursor in split view
		cursor = week.Cursor{Day: -1, Lane: -1}
	}

	title := m.styles.ColumnHeaderActive.Render(w.Title())
	grid := week.Render(w, cursor, m.asOf(), m.styles, m.width, max(2, height-1))
	return lipgloss.JoinVertical(lipgloss.Left, title, grid)
}

// statusInfo summarises counts and active filters for the status bar
func (m Model) statusInfo() string {
	visible := m.editor.ApplyFilter(m.tasks)
	parts := []string{fmt.Sprintf("%d/%d tasks", len(visible), len(m.tasks))}

	f := m.editor.GetFilter()
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("%q", q))
	}
	if f.Tag != "" {
		parts = append(parts, "#"+f.Tag)
	}
	for _, p := range domain.Priorities {
		if f.Priority[p] {
			parts = append(parts, p.String())
		}
	}
	if !f.ShowCompleted {
		parts = append(parts, "hiding done")
	}
	if n := m.editor.SelectionCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if n := m.tracker.Pending(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d snoozed", n))
	}
	return strings.Join(parts, " • ")
}

// halfPage calculates half-page scroll distance based on terminal height
func (m Model) halfPage() int {
	// Approximate: subtract status bar (1) and header (2), divide by card height (~5 lines)
	visibleRows := m.height - 3
	if visibleRows < 5 {
		return 1
	}
	return max(1, visibleRows/5/2)
}

// renderLoading renders a centered loading spinner with message
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.spinner.View(),
		"Loading tasks...",
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
