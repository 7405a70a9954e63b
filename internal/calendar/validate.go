package calendar

import "time"

// IsValid reports whether substituting value for the given component of the
// (year, month, day) context still names a real date. Only the day field can
// be invalidated: a year change can orphan Feb 29, a month change can orphan
// day 29-31, and a day change can simply exceed the month.
func IsValid(sys System, kind Kind, value, year, month, day int) bool {
	y, m, d := overwrite(kind, value, year, month, day)
	if m < 1 || m > 12 {
		return false
	}
	return d >= 1 && d <= sys.DaysInMonth(y, m)
}

// Repair builds the triple that results from substituting value for the given
// component, clamping the day down to the last valid day of the resulting
// month when the raw triple does not exist. Year and month are never adjusted.
func Repair(sys System, kind Kind, value, year, month, day int) (int, int, int) {
	y, m, d := overwrite(kind, value, year, month, day)
	if last := sys.DaysInMonth(y, m); d > last {
		d = last
	}
	if d < 1 {
		d = 1
	}
	return y, m, d
}

// InRange reports whether t falls within [min, max], inclusive on both ends.
func InRange(t, min, max time.Time) bool {
	return !t.Before(min) && !t.After(max)
}

func overwrite(kind Kind, value, year, month, day int) (int, int, int) {
	switch kind {
	case Year:
		year = value
	case Month:
		month = value
	case Day:
		day = value
	}
	return year, month, day
}
