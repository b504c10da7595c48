// Package week renders the week view: a day header above stacked lanes
// of task bars.
package week

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/layout"
	"github.com/riordanpawley/aurora/internal/placement"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

// Cursor addresses a day column and a lane within the week
type Cursor struct {
	Day  int // 0 = Monday
	Lane int
}

// Week is the laid-out state of one calendar week
type Week struct {
	Start calendar.Date
	Days  []calendar.Date
	Lanes []layout.Lane
}

// NewWeek lays out tasks for the week containing d
func NewWeek(d calendar.Date, tasks []domain.Task) Week {
	start := calendar.StartOfWeek(d)
	return Week{
		Start: start,
		Days:  layout.WeekDays(start),
		Lanes: layout.WeekLanes(start, tasks),
	}
}

// TaskAt returns the task under the cursor, if any
func (w Week) TaskAt(c Cursor) (domain.Task, bool) {
	if c.Lane < 0 || c.Lane >= len(w.Lanes) {
		return domain.Task{}, false
	}
	seg, ok := w.Lanes[c.Lane].At(c.Day)
	if !ok {
		return domain.Task{}, false
	}
	return seg.Task, true
}

// Title renders the week range, e.g. "Apr 1 – Apr 7, 2024"
func (w Week) Title() string {
	if !w.Start.Valid() {
		return ""
	}
	end := w.Start.AddDays(layout.DaysPerWeek - 1)
	return fmt.Sprintf("%s – %s, %d", w.Start.Time().Format("Jan 2"), end.Time().Format("Jan 2"), end.Year())
}

// Render draws the week. Lanes that do not fit in height are summarised on
// the last line.
func Render(w Week, cursor Cursor, now time.Time, s *styles.Styles, width, height int) string {
	if len(w.Days) == 0 {
		return ""
	}
	cellWidth := max(4, width/layout.DaysPerWeek)
	today := calendar.DateOf(now)

	lines := []string{renderHeader(w, today, cellWidth, s)}

	room := max(1, height-1)
	shown := len(w.Lanes)
	if shown > room {
		shown = room - 1
	}
	for i := 0; i < shown; i++ {
		lines = append(lines, renderLane(w.Lanes[i], i == cursor.Lane, cursor.Day, now, cellWidth, s))
	}
	if hidden := len(w.Lanes) - shown; hidden > 0 {
		lines = append(lines, s.TaskMeta.Render(fmt.Sprintf("+%d more lanes", hidden)))
	}
	if len(w.Lanes) == 0 {
		lines = append(lines, s.TaskMeta.Render("Nothing scheduled this week"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHeader(w Week, today calendar.Date, cellWidth int, s *styles.Styles) string {
	names := layout.WeekdayHeaders()
	cells := make([]string, len(w.Days))
	for i, d := range w.Days {
		style := s.DayHeader
		if d.Equal(today) {
			style = s.DayHeaderToday
		}
		cells[i] = style.Width(cellWidth).Render(fmt.Sprintf("%s %d", names[i], d.Day()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func renderLane(lane layout.Lane, activeLane bool, cursorDay int, now time.Time, cellWidth int, s *styles.Styles) string {
	var b strings.Builder
	for col := 0; col < layout.DaysPerWeek; {
		seg, ok := lane.At(col)
		if !ok {
			b.WriteString(s.LaneEmpty.Width(cellWidth).Render(" ·"))
			col++
			continue
		}
		style := s.LaneBar(placement.EffectiveStatus(seg.Task, now))
		if activeLane && seg.Covers(cursorDay) {
			style = s.LaneBarActive
		}
		w := seg.Span * cellWidth
		b.WriteString(style.Width(w).MaxWidth(w).Render(barLabel(seg, w)))
		col += seg.Span
	}
	return b.String()
}

// barLabel renders the segment text with continuation arrows on clipped ends
func barLabel(seg layout.Segment, width int) string {
	var prefix, suffix string
	if !seg.IsSpanStart {
		prefix = "◀ "
	}
	if !seg.IsSpanEnd {
		suffix = " ▶"
	}
	title := seg.Task.Title
	if seg.Task.Time != "" && seg.IsSpanStart {
		title = seg.Task.Time + " " + title
	}
	room := width - lipgloss.Width(prefix) - lipgloss.Width(suffix) - 1
	return prefix + truncate(title, room) + suffix
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
