package calendar

import "time"

// LastOrdinal selects the last occurrence of a weekday in a month
const LastOrdinal = -1

// gregorianCycleMonths is the period after which month lengths and weekday
// alignment repeat exactly, so no step size can reveal a new month beyond it.
const gregorianCycleMonths = 4800

// NthWeekdayOfMonth returns the ordinal-th wd of the month in the local
// timezone. Ordinals 1..5 count from the start of the month and report false
// when the month has no such occurrence; LastOrdinal always exists. Any other
// ordinal reports false.
func NthWeekdayOfMonth(year int, month time.Month, wd time.Weekday, ordinal int) (Date, bool) {
	return nthWeekdayIn(year, month, wd, ordinal, time.Local)
}

func nthWeekdayIn(year int, month time.Month, wd time.Weekday, ordinal int, loc *time.Location) (Date, bool) {
	if wd < time.Sunday || wd > time.Saturday {
		return Date{}, false
	}
	days := DaysIn(year, month)
	if ordinal == LastOrdinal {
		last := NewDate(year, month, days, loc)
		back := (int(last.Weekday()) - int(wd) + 7) % 7
		return last.AddDays(-back), true
	}
	if ordinal < 1 || ordinal > 5 {
		return Date{}, false
	}
	first := NewDate(year, month, 1, loc).OnOrAfter(wd)
	day := first.Day() + 7*(ordinal-1)
	if day > days {
		return Date{}, false
	}
	return NewDate(year, month, day, loc), true
}

// AdvanceNthWeekdayMonthly steps forward from d's month by monthStep months
// at a time until the month contains the requested occurrence, skipping
// months where it does not exist (e.g. a fifth Monday). A step below 1 is
// treated as 1. An ordinal that can never occur yields the invalid Date.
func AdvanceNthWeekdayMonthly(d Date, monthStep int, wd time.Weekday, ordinal int) Date {
	if !d.Valid() {
		return d
	}
	if ordinal != LastOrdinal && (ordinal < 1 || ordinal > 5) {
		return Date{}
	}
	if monthStep < 1 {
		monthStep = 1
	}
	for i := 1; i <= gregorianCycleMonths; i++ {
		y, m := addMonthsYM(d.Year(), d.Month(), monthStep*i)
		if next, ok := nthWeekdayIn(y, m, wd, ordinal, d.Location()); ok {
			return next
		}
	}
	return Date{}
}

// AlignToMonthlyNth returns the smallest date on or after baseISO matching
// the nth-weekday rule, or "" when baseISO is not a date.
func AlignToMonthlyNth(baseISO string, wd time.Weekday, ordinal int) string {
	base := ParseISO(baseISO)
	if !base.Valid() {
		return ""
	}
	return AlignDateToMonthlyNth(base, wd, ordinal).ISO()
}

// AlignDateToMonthlyNth is AlignToMonthlyNth over a parsed Date
func AlignDateToMonthlyNth(base Date, wd time.Weekday, ordinal int) Date {
	if !base.Valid() {
		return base
	}
	if c, ok := nthWeekdayIn(base.Year(), base.Month(), wd, ordinal, base.Location()); ok && !c.Before(base) {
		return c
	}
	return AdvanceNthWeekdayMonthly(base, 1, wd, ordinal)
}

// OrdinalOf returns which occurrence of its weekday d is within its month.
// Days past the fourth occurrence report LastOrdinal.
func OrdinalOf(d Date) int {
	if !d.Valid() {
		return 1
	}
	n := (d.Day()-1)/7 + 1
	if n > 4 {
		return LastOrdinal
	}
	return n
}
