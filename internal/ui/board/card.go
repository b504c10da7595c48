package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/placement"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

// renderCard renders a task card
func renderCard(task domain.Task, isCursor bool, isSelected bool, now time.Time, width int, s *styles.Styles) string {
	cardStyle := s.Card
	if isSelected {
		cardStyle = s.CardSelected
	} else if isCursor {
		cardStyle = s.CardActive
	}
	cardStyle = cardStyle.Width(width)

	// Account for padding (2), border (2) and the cursor marker
	maxTitleLen := width - 5
	title := truncate(task.Title, maxTitleLen)

	cursor := ""
	if isCursor {
		cursor = "▶"
	}

	titleStyle := s.TaskTitle
	if task.IsDone() {
		titleStyle = s.TaskDone
	}
	titleLine := cursor + titleStyle.Render(title)

	badges := []string{s.PriorityBadge(task.Priority).Render(task.Priority.Short())}
	if task.Repeat.IsRecurring() {
		badges = append(badges, s.TaskMeta.Render("↻"))
	}
	if task.StatusMode.IsManual() {
		badges = append(badges, s.ManualMark.Render("◆"))
	}
	if done, total := task.ChecklistProgress(); total > 0 {
		badges = append(badges, s.TaskMeta.Render(fmt.Sprintf("☑ %d/%d", done, total)))
	}
	if len(task.Tags) > 0 {
		badges = append(badges, s.TaskMeta.Render("#"+task.Tags[0]))
	}
	badgeLine := strings.Join(badges, " ")

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, badgeLine, dueLine(task, now, s))
	return cardStyle.Render(content)
}

// dueLine renders the schedule, e.g. "Fri Apr 5 09:00" or "Apr 5 → Apr 7"
func dueLine(task domain.Task, now time.Time, s *styles.Styles) string {
	start := calendar.ParseISOIn(task.NextDue, now.Location())
	if !start.Valid() {
		return s.TaskMeta.Render("no date")
	}

	text := start.Time().Format("Mon Jan 2")
	if end := calendar.ParseISOIn(task.SpanEnd(), now.Location()); end.Valid() && end.After(start) {
		text += " → " + end.Time().Format("Jan 2")
	}
	if task.Time != "" {
		text += " " + task.Time
	}

	if placement.IsOverdue(task, now) {
		return s.Overdue.Render(text + " overdue")
	}
	return s.TaskMeta.Render(text)
}

func truncate(s string, n int) string {
	if n < 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// RenderCard is the exported version for testing
func RenderCard(task domain.Task, isCursor bool, isSelected bool, now time.Time, width int, s *styles.Styles) string {
	return renderCard(task, isCursor, isSelected, now, width, s)
}
