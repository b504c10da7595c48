package calendar

import (
	"strconv"
	"strings"
	"time"
)

// Clock is a wall-clock time of day
type Clock struct {
	Hour   int
	Minute int
}

var (
	// DefaultDueClock applies when a task has no time set
	DefaultDueClock = Clock{Hour: 9}
	// EndOfSpanClock marks the end of the last day of a span
	EndOfSpanClock = Clock{Hour: 23, Minute: 59}
)

// String formats c as HH:MM
func (c Clock) String() string {
	return pad2(c.Hour) + ":" + pad2(c.Minute)
}

// ParseClock parses HH:MM. ok is false for empty or malformed input.
func ParseClock(hhmm string) (Clock, bool) {
	h, m, found := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !found {
		return Clock{}, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, false
	}
	return Clock{Hour: hour, Minute: minute}, true
}

// ClockOr parses hhmm, falling back to def
func ClockOr(hhmm string, def Clock) Clock {
	if c, ok := ParseClock(hhmm); ok {
		return c
	}
	return def
}

// At returns the instant on d at clock c
func (d Date) At(c Clock) time.Time {
	if !d.Valid() {
		return time.Time{}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, 0, 0, d.Location())
}

// DueInstant combines an ISO date and optional HH:MM (default 09:00) in loc.
// ok is false when iso is not a date.
func DueInstant(iso, hhmm string, loc *time.Location) (time.Time, bool) {
	d := ParseISOIn(iso, loc)
	if !d.Valid() {
		return time.Time{}, false
	}
	return d.At(ClockOr(hhmm, DefaultDueClock)), true
}

// StartOfDay returns the first instant of t's day. That is local midnight,
// or the end of the DST gap on days where midnight is skipped.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	for h := 1; start.Day() != d && h < 24; h++ {
		start = time.Date(y, m, d, h, 0, 0, 0, t.Location())
	}
	return start
}

// EndOfDay returns 23:59:59.999 local time of t's day
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func pad2(n int) string {
	if n < 10 && n >= 0 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
