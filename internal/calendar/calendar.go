// Package calendar provides calendar-system date arithmetic for the picker.
package calendar

import "time"

// Kind identifies one of the three date components.
type Kind int

// Date components, one per wheel.
const (
	Year Kind = iota
	Month
	Day
)

// String returns the component name.
func (k Kind) String() string {
	switch k {
	case Year:
		return "year"
	case Month:
		return "month"
	case Day:
		return "day"
	default:
		return "unknown"
	}
}

// ComponentRange describes the valid values for a component: Location is the
// minimum value and Length the count of valid values.
type ComponentRange struct {
	Location int
	Length   int
}

// Contains reports whether value falls within the range.
func (r ComponentRange) Contains(value int) bool {
	return value >= r.Location && value < r.Location+r.Length
}

// System abstracts a calendar system. The day range depends on the year and
// month context, so RangeFor takes both even for year and month kinds.
type System interface {
	RangeFor(kind Kind, year, month int) ComponentRange
	DaysInMonth(year, month int) int
	Date(year, month, day int) time.Time
	Components(t time.Time) (year, month, day int)
}

// Gregorian implements System using the proleptic Gregorian calendar.
type Gregorian struct {
	Loc *time.Location
}

// NewGregorian returns a Gregorian calendar in the given location.
// A nil location defaults to the local time zone.
func NewGregorian(loc *time.Location) Gregorian {
	if loc == nil {
		loc = time.Local
	}
	return Gregorian{Loc: loc}
}

// RangeFor implements System.
func (g Gregorian) RangeFor(kind Kind, year, month int) ComponentRange {
	switch kind {
	case Year:
		return ComponentRange{Location: 1, Length: 9999}
	case Month:
		return ComponentRange{Location: 1, Length: 12}
	case Day:
		return ComponentRange{Location: 1, Length: g.DaysInMonth(year, month)}
	default:
		return ComponentRange{}
	}
}

// DaysInMonth implements System. Day zero of the following month is the last
// day of the requested month, so leap years need no special casing.
func (g Gregorian) DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, g.loc()).Day()
}

// Date implements System. The triple must be a valid date; callers repair
// candidates before constructing.
func (g Gregorian) Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, g.loc())
}

// Components implements System.
func (g Gregorian) Components(t time.Time) (int, int, int) {
	t = t.In(g.loc())
	return t.Year(), int(t.Month()), t.Day()
}

func (g Gregorian) loc() *time.Location {
	if g.Loc == nil {
		return time.Local
	}
	return g.Loc
}
