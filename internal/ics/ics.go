// Package ics exports tasks as iCalendar events.
package ics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/recurrence"
)

const (
	dateLayout  = "20060102"
	stampLayout = "20060102T150405Z"
	prodID      = "-//Aurora//Task Export//EN"
	maxLineLen  = 75
)

// TimedEventDuration is the length of a timed single-day event
const TimedEventDuration = time.Hour

// ErrNoDueDate is returned for tasks without a valid NextDue
var ErrNoDueDate = errors.New("task due date required for calendar export")

var byDay = [...]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// BuildTaskICS returns a calendar holding a single event for t. Dates are
// resolved in now's location.
func BuildTaskICS(t domain.Task, now time.Time) (string, error) {
	event, err := eventLines(t, now)
	if err != nil {
		return "", err
	}
	return render(event), nil
}

// BuildCalendarICS returns one calendar with an event per dated task. Tasks
// without a due date are skipped.
func BuildCalendarICS(tasks []domain.Task, now time.Time) (string, int) {
	var events []string
	n := 0
	for _, t := range tasks {
		lines, err := eventLines(t, now)
		if err != nil {
			continue
		}
		events = append(events, lines...)
		n++
	}
	return render(events), n
}

func render(events []string) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	lines = append(lines, events...)
	lines = append(lines, "END:VCALENDAR")

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(fold(l))
		b.WriteString("\r\n")
	}
	return b.String()
}

func eventLines(t domain.Task, now time.Time) ([]string, error) {
	loc := now.Location()
	start := calendar.ParseISOIn(t.NextDue, loc)
	if !start.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrNoDueDate, t.Title)
	}
	end := calendar.ParseISOIn(t.SpanEnd(), loc)
	if !end.Valid() || end.Before(start) {
		end = start
	}

	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "Aurora Task"
	}
	uid := "task-" + t.ID + "@aurora"
	if t.ID == "" {
		uid = fmt.Sprintf("task-export-%d@aurora", now.UnixNano())
	}

	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + escapeText(uid),
		"DTSTAMP:" + now.UTC().Format(stampLayout),
		"SUMMARY:" + escapeText(title),
	}

	if clock, ok := calendar.ParseClock(t.Time); ok {
		s := start.At(clock)
		e := s.Add(TimedEventDuration)
		if end.After(start) {
			e = end.At(calendar.EndOfSpanClock)
		}
		lines = append(lines,
			"DTSTART:"+s.UTC().Format(stampLayout),
			"DTEND:"+e.UTC().Format(stampLayout),
		)
	} else {
		lines = append(lines,
			"DTSTART;VALUE=DATE:"+start.Time().Format(dateLayout),
			"DTEND;VALUE=DATE:"+end.AddDays(1).Time().Format(dateLayout),
		)
	}

	if desc := description(t); desc != "" {
		lines = append(lines, "DESCRIPTION:"+escapeText(desc))
	}
	if len(t.Tags) > 0 {
		cats := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			cats[i] = escapeText(tag)
		}
		lines = append(lines, "CATEGORIES:"+strings.Join(cats, ","))
	}
	if p := priority(t.Priority); p > 0 {
		lines = append(lines, fmt.Sprintf("PRIORITY:%d", p))
	}
	if rule := RRule(t); rule != "" {
		lines = append(lines, "RRULE:"+rule)
	}
	for _, mins := range t.RemindBefore {
		if mins <= 0 {
			continue
		}
		lines = append(lines,
			"BEGIN:VALARM",
			"ACTION:DISPLAY",
			"DESCRIPTION:"+escapeText(title),
			fmt.Sprintf("TRIGGER:-PT%dM", mins),
			"END:VALARM",
		)
	}
	return append(lines, "END:VEVENT"), nil
}

// RRule maps the task's repeat rule to an RFC 5545 RRULE value. Rules with
// no exact equivalent, such as every 2 weekdays, map to "".
func RRule(t domain.Task) string {
	n := max(1, t.RepeatIntervalDays)
	base := calendar.ParseISO(t.NextDue)

	switch t.Repeat {
	case domain.RepeatDaily, domain.RepeatCustom:
		return fmt.Sprintf("FREQ=DAILY;INTERVAL=%d", n)
	case domain.RepeatWeekdays:
		if n != 1 {
			return ""
		}
		return "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"
	case domain.RepeatWeekly:
		return fmt.Sprintf("FREQ=WEEKLY;INTERVAL=%d;BYDAY=%s", n, byDay[recurrence.Weekday(t, base)])
	case domain.RepeatMonthly:
		return fmt.Sprintf("FREQ=MONTHLY;INTERVAL=%d", n)
	case domain.RepeatMonthlyNth:
		return fmt.Sprintf("FREQ=MONTHLY;INTERVAL=%d;BYDAY=%d%s", n, recurrence.Nth(t, base), byDay[recurrence.Weekday(t, base)])
	default:
		return ""
	}
}

func description(t domain.Task) string {
	var parts []string
	if notes := strings.TrimSpace(t.Notes); notes != "" {
		parts = append(parts, notes)
	}
	for _, item := range t.Checklist {
		mark := "[ ]"
		if item.Done {
			mark = "[x]"
		}
		parts = append(parts, mark+" "+item.Text)
	}
	return strings.Join(parts, "\n")
}

func priority(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return 1
	case domain.PriorityMedium:
		return 5
	case domain.PriorityLow:
		return 9
	default:
		return 0
	}
}

func escapeText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}

// fold splits content lines longer than 75 octets, continuing with a space.
// Splits never land inside a UTF-8 sequence.
func fold(line string) string {
	if len(line) <= maxLineLen {
		return line
	}
	var b strings.Builder
	limit := maxLineLen
	for len(line) > limit {
		cut := limit
		for cut > 0 && !isRuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		limit = maxLineLen - 1
	}
	b.WriteString(line)
	return b.String()
}

func isRuneStart(c byte) bool {
	return c&0xC0 != 0x80
}
