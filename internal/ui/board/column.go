package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

// cardHeight is the rendered height of one card including its margin
const cardHeight = 5

// renderColumn renders a kanban column with header and task cards
func renderColumn(
	col Column,
	cursorTask int,
	isActive bool,
	selectedTasks map[string]bool,
	now time.Time,
	width int,
	height int,
	s *styles.Styles,
) string {
	headerStyle := s.ColumnHeader
	if isActive {
		headerStyle = s.ColumnHeaderActive
	}

	// Render header with title and count (e.g., "─ Today (3) ─────")
	headerText := fmt.Sprintf("─ %s (%d) ", col.Title, len(col.Tasks))
	remainingWidth := width - lipgloss.Width(headerText) - 2 // Account for padding
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := headerStyle.Render(headerText)

	// Scroll so the cursor card stays visible
	visible := max(1, (height-3)/cardHeight)
	start := 0
	if isActive && cursorTask >= visible {
		start = min(cursorTask-visible+1, max(0, len(col.Tasks)-visible))
	}
	end := min(len(col.Tasks), start+visible)

	var cardStrings []string
	cardWidth := width - 4 // Account for column border and padding
	for i := start; i < end; i++ {
		task := col.Tasks[i]
		isCursor := isActive && i == cursorTask
		cardStrings = append(cardStrings, renderCard(task, isCursor, selectedTasks[task.ID], now, cardWidth, s))
	}

	content := ""
	if len(cardStrings) > 0 {
		content = strings.Join(cardStrings, "\n")
	} else {
		content = s.TaskMeta.Render("No tasks")
	}

	columnStyle := s.Column.Width(width).Height(height)
	columnContent := columnStyle.Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, columnContent)
}
