// Package calendar provides timezone-safe civil date arithmetic.
//
// A Date is pinned to local noon in its location, so adding days or months
// never lands on the wrong side of a daylight-saving transition. The zero Date
// is the "invalid date" sentinel returned for malformed input.
package calendar

import (
	"fmt"
	"time"
)

// ISOLayout is the wire format for calendar dates
const ISOLayout = "2006-01-02"

// Date is a calendar day held at 12:00 local time
type Date struct {
	t time.Time
}

// NewDate builds a Date from components. Out-of-range day or month values
// are normalised the way time.Date does (Jan 32 => Feb 1).
func NewDate(year int, month time.Month, day int, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return Date{t: time.Date(year, month, day, 12, 0, 0, 0, loc)}
}

// DateOf returns the calendar day of t in t's location
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day(), t.Location())
}

// ParseISO parses YYYY-MM-DD in the local timezone
func ParseISO(iso string) Date {
	return ParseISOIn(iso, time.Local)
}

// ParseISOIn parses YYYY-MM-DD in loc. Anything that is not a real date,
// including the empty string and 2024-02-30, yields the invalid Date.
func ParseISOIn(iso string, loc *time.Location) Date {
	if len(iso) != len(ISOLayout) {
		return Date{}
	}
	// parsed in UTC: local midnight does not exist on some DST start days
	p, err := time.Parse(ISOLayout, iso)
	if err != nil {
		return Date{}
	}
	return NewDate(p.Year(), p.Month(), p.Day(), loc)
}

// Valid reports whether d holds a real date
func (d Date) Valid() bool {
	return !d.t.IsZero()
}

// ISO formats d from its local components. Invalid dates format as "".
func (d Date) ISO() string {
	if !d.Valid() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.t.Year(), int(d.t.Month()), d.t.Day())
}

// String implements fmt.Stringer
func (d Date) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return d.ISO()
}

// Time returns the underlying noon instant
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) Year() int                { return d.t.Year() }
func (d Date) Month() time.Month        { return d.t.Month() }
func (d Date) Day() int                 { return d.t.Day() }
func (d Date) Weekday() time.Weekday    { return d.t.Weekday() }
func (d Date) Location() *time.Location { return d.t.Location() }

// AddDays offsets d by n calendar days
func (d Date) AddDays(n int) Date {
	if !d.Valid() {
		return d
	}
	return NewDate(d.Year(), d.Month(), d.Day()+n, d.Location())
}

// AddMonths offsets d by n months, clamping the day to the last day of the
// target month (Jan 31 + 1 month => Feb 28/29, never Mar 2/3).
func (d Date) AddMonths(n int) Date {
	if !d.Valid() {
		return d
	}
	y, m := addMonthsYM(d.Year(), d.Month(), n)
	day := d.Day()
	if last := DaysIn(y, m); day > last {
		day = last
	}
	return NewDate(y, m, day, d.Location())
}

// NextWeekday advances one day, then skips forward past Saturday and Sunday
func (d Date) NextWeekday() Date {
	if !d.Valid() {
		return d
	}
	x := d.AddDays(1)
	for isWeekend(x.Weekday()) {
		x = x.AddDays(1)
	}
	return x
}

// AddWeekdays applies NextWeekday n times. After the first step the date is
// always a workday, and five workday steps from a workday are exactly one
// week, so large n costs no more than small n.
func (d Date) AddWeekdays(n int) Date {
	if !d.Valid() || n <= 0 {
		return d
	}
	x := d.NextWeekday()
	n--
	if weeks := n / 5; weeks > 0 {
		x = x.AddDays(7 * weeks)
	}
	for i := 0; i < n%5; i++ {
		x = x.NextWeekday()
	}
	return x
}

// OnOrAfter returns the smallest date >= d falling on wd
func (d Date) OnOrAfter(wd time.Weekday) Date {
	if !d.Valid() {
		return d
	}
	delta := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDays(delta)
}

// Compare returns -1, 0 or 1 ordering by calendar day
func (d Date) Compare(o Date) int {
	a, b := dayNumber(d), dayNumber(o)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }

// DaysBetween returns the number of calendar days from a to b (b - a)
func DaysBetween(a, b Date) int {
	if !a.Valid() || !b.Valid() {
		return 0
	}
	return int(dayNumber(b) - dayNumber(a))
}

// StartOfWeek returns the Monday on or before d
func StartOfWeek(d Date) Date {
	if !d.Valid() {
		return d
	}
	back := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-back)
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func addMonthsYM(year int, month time.Month, n int) (int, time.Month) {
	total := year*12 + int(month) - 1 + n
	y := total / 12
	m := total % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, time.Month(m + 1)
}

// dayNumber maps a date to a UTC day count so differences ignore DST
func dayNumber(d Date) int64 {
	u := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return u.Unix() / 86400
}

func isWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}
