// Package board renders the four-column kanban view.
package board

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

// Render renders the entire kanban board with 4 columns
func Render(
	columns []Column,
	cursor Cursor,
	selectedTasks map[string]bool,
	now time.Time,
	s *styles.Styles,
	width int,
	height int,
) string {
	if len(columns) == 0 {
		return ""
	}

	// Calculate column width - 4 columns, evenly distributed
	columnWidth := width / len(columns)

	var columnStrings []string
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = cursor.Task
		}

		columnStr := renderColumn(
			col,
			cursorTask,
			isActive,
			selectedTasks,
			now,
			columnWidth,
			height,
			s,
		)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(columnWidth).Height(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
