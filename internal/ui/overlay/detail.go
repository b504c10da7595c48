package overlay

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/placement"
	"github.com/riordanpawley/aurora/internal/planner"
	"github.com/riordanpawley/aurora/internal/recurrence"
)

// previewCount is how many upcoming occurrences the detail panel lists
const previewCount = 3

// ChecklistToggledMsg asks for a checklist item's done flag to be flipped
// and the task saved
type ChecklistToggledMsg struct {
	Task domain.Task
}

// DetailPanel displays full task details with scrollable notes
type DetailPanel struct {
	task       domain.Task
	now        time.Time
	scrollY    int
	notesLines int
	viewHeight int
	styles     *Styles
}

// NewDetailPanel creates a new detail panel for the given task, evaluated at now
func NewDetailPanel(task domain.Task, now time.Time) *DetailPanel {
	return &DetailPanel{
		task:       task,
		now:        now,
		notesLines: len(splitLines(task.Notes)),
		viewHeight: 8,
		styles:     New(),
	}
}

// Task returns the task as currently shown, including checklist toggles
func (d *DetailPanel) Task() domain.Task {
	return d.task
}

// Init initializes the detail panel
func (d *DetailPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *DetailPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch key.String() {
	case "esc", "q":
		return d, closeOverlay
	case "j", "down":
		if d.scrollY < d.maxScroll() {
			d.scrollY++
		}
	case "k", "up":
		if d.scrollY > 0 {
			d.scrollY--
		}
	case "g":
		d.scrollY = 0
	case "G":
		d.scrollY = d.maxScroll()
	case "e":
		return d, selection("edit", d.task)
	case "x":
		return d, selection("complete", d.task.ID)
	default:
		// 1-9 toggle checklist items
		n, err := strconv.Atoi(key.String())
		if err != nil || n < 1 || n > len(d.task.Checklist) {
			return d, nil
		}
		updated, ok := planner.ToggleChecklistItem(d.task, d.task.Checklist[n-1].ID)
		if !ok {
			return d, nil
		}
		d.task = updated
		return d, func() tea.Msg { return ChecklistToggledMsg{Task: updated} }
	}
	return d, nil
}

// View renders the detail panel
func (d *DetailPanel) View() string {
	var b strings.Builder
	t := d.task

	b.WriteString(d.styles.Heading.Render(t.Title))
	b.WriteString("\n\n")

	status := placement.EffectiveStatus(t, d.now).Title()
	if t.StatusMode.IsManual() {
		status += " (pinned)"
	} else {
		status += " (auto)"
	}
	if placement.IsOverdue(t, d.now) {
		status += " " + d.styles.Error.Render("overdue")
	}
	d.row(&b, "Status:", status)
	d.row(&b, "Priority:", t.Priority.String())
	d.row(&b, "Due:", d.formatSchedule())
	d.row(&b, "Repeat:", recurrence.Describe(t))

	if occ := recurrence.Preview(t, previewCount); len(occ) > 0 {
		next := make([]string, len(occ))
		for i, o := range occ {
			next[i] = formatSpan(o.Start, o.End)
		}
		d.row(&b, "Then:", strings.Join(next, ", "))
	}
	if len(t.RemindBefore) > 0 {
		mins := make([]string, len(t.RemindBefore))
		for i, m := range t.RemindBefore {
			mins[i] = strconv.Itoa(m)
		}
		d.row(&b, "Remind:", strings.Join(mins, ", ")+" min before")
	}
	if len(t.Tags) > 0 {
		d.row(&b, "Tags:", "#"+strings.Join(t.Tags, " #"))
	}
	d.row(&b, "Created:", t.CreatedAt.In(d.now.Location()).Format("2006-01-02 15:04"))
	if t.LastCompletedAt != nil {
		d.row(&b, "Last done:", t.LastCompletedAt.In(d.now.Location()).Format("2006-01-02 15:04"))
	}

	if len(t.Checklist) > 0 {
		done, total := t.ChecklistProgress()
		b.WriteString("\n")
		b.WriteString(d.styles.Heading.Render(fmt.Sprintf("Checklist %d/%d", done, total)))
		b.WriteString("\n")
		for i, item := range t.Checklist {
			box := "[ ]"
			style := d.styles.MenuItem
			if item.Done {
				box = "[x]"
				style = d.styles.MenuItemDisabled
			}
			key := " "
			if i < 9 {
				key = strconv.Itoa(i + 1)
			}
			b.WriteString(d.styles.MenuKey.Render(key) + " " + style.Render(box+" "+item.Text))
			b.WriteString("\n")
		}
	}

	if lines := splitLines(t.Notes); len(lines) > 0 {
		b.WriteString("\n")
		b.WriteString(d.styles.Heading.Render("Notes"))
		b.WriteString("\n")
		end := min(d.scrollY+d.viewHeight, len(lines))
		for _, line := range lines[d.scrollY:end] {
			b.WriteString(d.styles.MenuItem.Render(line))
			b.WriteString("\n")
		}
		if d.maxScroll() > 0 {
			b.WriteString(d.styles.Footer.Render(fmt.Sprintf("[j/k to scroll] (line %d/%d)", d.scrollY+1, len(lines))))
			b.WriteString("\n")
		}
	}

	b.WriteString(d.styles.Footer.Render("e: edit • x: complete • 1-9: checklist • Esc: close"))
	return b.String()
}

func (d *DetailPanel) row(b *strings.Builder, label, value string) {
	b.WriteString(d.styles.Label.Render(label))
	b.WriteString("  ")
	b.WriteString(d.styles.MenuItem.Render(value))
	b.WriteString("\n")
}

func (d *DetailPanel) formatSchedule() string {
	if d.task.NextDue == "" {
		return "no date"
	}
	s := formatSpan(d.task.NextDue, d.task.SpanEnd())
	if d.task.Time != "" {
		s += " at " + d.task.Time
	}
	return s
}

// formatSpan renders "Fri Apr 5 2024" or "Fri Apr 5 → Sun Apr 7 2024"
func formatSpan(startISO, endISO string) string {
	start := calendar.ParseISO(startISO)
	if !start.Valid() {
		return startISO
	}
	s := start.Time().Format("Mon Jan 2 2006")
	if end := calendar.ParseISO(endISO); end.Valid() && end.After(start) {
		s = start.Time().Format("Mon Jan 2") + " → " + end.Time().Format("Mon Jan 2 2006")
	}
	return s
}

// Title returns the overlay title
func (d *DetailPanel) Title() string {
	return "Task Details"
}

// Size returns the overlay dimensions
func (d *DetailPanel) Size() (width, height int) {
	d.viewHeight = 8
	return 72, 30
}

// maxScroll returns the maximum scroll position
func (d *DetailPanel) maxScroll() int {
	return max(0, d.notesLines-d.viewHeight)
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
