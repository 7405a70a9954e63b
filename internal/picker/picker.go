// Package picker coordinates three infinite wheels into one bounded date.
package picker

import (
	"fmt"
	"strconv"
	"time"

	"github.com/verte-zerg/datewheel/internal/calendar"
	"github.com/verte-zerg/datewheel/internal/locale"
	"github.com/verte-zerg/datewheel/internal/wheel"
)

// WheelList is the collaborator that owns the visual wheels. SelectRow
// repositions a wheel programmatically; animated is a rendering hint the
// core neither awaits nor sequences.
type WheelList interface {
	SelectRow(wheelIndex, row int, animated bool)
}

// Delegate receives every raw row selection, committed or reverted.
type Delegate interface {
	WheelRowSelected(wheelIndex, row int)
}

// Control owns the picker state and the selection state machine. All methods
// must be called from a single goroutine; a selection callback issued while a
// reprogram sequence is in flight is applied immediately (last write wins).
type Control struct {
	sys      calendar.System
	loc      locale.Locale
	ordering [3]calendar.Kind

	current time.Time
	min     time.Time
	max     time.Time

	rows [3]int

	wheels   WheelList
	delegate Delegate
	onChange []func(time.Time)
}

// New constructs a Control. It panics if min does not strictly precede max;
// that is a programming error, not a runtime condition. The initial date is
// clamped into [min, max].
func New(sys calendar.System, loc locale.Locale, min, max, initial time.Time) *Control {
	if !min.Before(max) {
		panic(fmt.Sprintf("picker: minimum date %s must precede maximum date %s", min.Format(time.RFC3339), max.Format(time.RFC3339)))
	}
	c := &Control{
		sys:      sys,
		loc:      loc,
		ordering: loc.Order(),
		min:      min,
		max:      max,
		current:  clamp(initial, min, max),
	}
	c.recomputeRows()
	return c
}

// AttachWheels connects the wheel collaborator and programs the initial rows.
func (c *Control) AttachWheels(w WheelList) {
	c.wheels = w
	c.programAll(false)
}

// SetDelegate registers the raw-selection tap. A nil delegate is allowed.
func (c *Control) SetDelegate(d Delegate) {
	c.delegate = d
}

// OnChange registers an observer fired on every committed value change.
func (c *Control) OnChange(fn func(time.Time)) {
	c.onChange = append(c.onChange, fn)
}

// Date returns the committed date.
func (c *Control) Date() time.Time {
	return c.current
}

// MinimumDate returns the lower bound of the pickable window.
func (c *Control) MinimumDate() time.Time {
	return c.min
}

// MaximumDate returns the upper bound of the pickable window.
func (c *Control) MaximumDate() time.Time {
	return c.max
}

// Ordering returns the locale-determined left-to-right wheel arrangement.
func (c *Control) Ordering() [3]calendar.Kind {
	return c.ordering
}

// Locale returns the active locale.
func (c *Control) Locale() locale.Locale {
	return c.loc
}

// SetDate repositions the picker programmatically. The date is clamped into
// [min, max]. Observers are not notified; they fire on user commits only.
func (c *Control) SetDate(t time.Time, animated bool) {
	c.current = clamp(t, c.min, c.max)
	c.recomputeRows()
	c.programAll(animated)
}

// SetMinimumDate narrows or widens the pickable window from below. It panics
// if the new minimum does not strictly precede the maximum.
func (c *Control) SetMinimumDate(t time.Time) {
	if !t.Before(c.max) {
		panic(fmt.Sprintf("picker: minimum date %s must precede maximum date %s", t.Format(time.RFC3339), c.max.Format(time.RFC3339)))
	}
	c.min = t
	c.SetDate(c.current, true)
}

// SetMaximumDate narrows or widens the pickable window from above. It panics
// if the minimum does not strictly precede the new maximum.
func (c *Control) SetMaximumDate(t time.Time) {
	if !c.min.Before(t) {
		panic(fmt.Sprintf("picker: minimum date %s must precede maximum date %s", c.min.Format(time.RFC3339), t.Format(time.RFC3339)))
	}
	c.max = t
	c.SetDate(c.current, true)
}

// SetLocale switches the wheel ordering and month labels. The committed date
// is unchanged; all wheels are reprogrammed to reflect the new arrangement.
func (c *Control) SetLocale(loc locale.Locale) {
	c.loc = loc
	c.ordering = loc.Order()
	c.recomputeRows()
	c.programAll(false)
}

// NumberOfWheels returns the wheel count. Always three.
func (c *Control) NumberOfWheels() int {
	return 3
}

// RowCount returns the fixed row count shared by all wheels.
func (c *Control) RowCount(wheelIndex int) int {
	return wheel.MaxRows
}

// TitleForRow returns the label for a row: the locale month name on the month
// wheel, decimal strings elsewhere.
func (c *Control) TitleForRow(wheelIndex, row int) string {
	kind := c.ordering[wheelIndex]
	value := wheel.ValueForRow(row, c.contextRange(kind))
	if kind == calendar.Month {
		return c.loc.MonthName(value)
	}
	return strconv.Itoa(value)
}

// IsRowEnabled reports whether selecting the row would commit: the row's value,
// repaired against the current components, must land inside [min, max].
// Disabled rows are dimmed by the collaborator, never removed.
func (c *Control) IsRowEnabled(wheelIndex, row int) bool {
	kind := c.ordering[wheelIndex]
	y, m, d := c.sys.Components(c.current)
	value := wheel.ValueForRow(row, c.contextRange(kind))
	ry, rm, rd := calendar.Repair(c.sys, kind, value, y, m, d)
	return calendar.InRange(c.sys.Date(ry, rm, rd), c.min, c.max)
}

// RowSelected is the user-interaction entry point. It derives the candidate
// date from the selected row, repairs it, rejects out-of-range results by
// reverting all wheels, otherwise reprograms the wheels that repair moved and
// commits. The raw event always reaches the delegate, accepted or not.
func (c *Control) RowSelected(wheelIndex, row int) {
	kind := c.ordering[wheelIndex]
	cy, cm, cd := c.sys.Components(c.current)

	value := wheel.ValueForRow(row, c.contextRange(kind))
	rawY, rawM, rawD := rawTriple(kind, value, cy, cm, cd)
	ry, rm, rd := calendar.Repair(c.sys, kind, value, cy, cm, cd)
	candidate := c.sys.Date(ry, rm, rd)

	if !calendar.InRange(candidate, c.min, c.max) {
		// Revert: snap every wheel back to the committed date, animated.
		c.recomputeRows()
		c.programAll(true)
		c.forwardRaw(wheelIndex, row)
		return
	}

	c.rows[wheelIndex] = row
	for i, k := range c.ordering {
		if i == wheelIndex {
			continue
		}
		rawV := componentOf(k, rawY, rawM, rawD)
		repV := componentOf(k, ry, rm, rd)
		// The day range depends on the new month and year, so the row the
		// wheel sits on can drift in meaning even when repair left the value
		// alone. Reprogram whenever the wheel no longer shows its component.
		shownV := wheel.ValueForRow(c.rows[i], c.sys.RangeFor(k, ry, rm))
		if repV == rawV && shownV == repV {
			continue
		}
		animated := true
		if k == calendar.Day {
			// Never animate a day value that repair is correcting; the snap
			// would otherwise be a visible double-jump.
			animated = rawD >= 1 && rawD <= c.sys.DaysInMonth(ry, rm)
		}
		c.rows[i] = wheel.RowForValue(repV, c.sys.RangeFor(k, ry, rm), wheel.MaxRows)
		c.selectRow(i, c.rows[i], animated)
	}

	changed := !candidate.Equal(c.current)
	c.current = candidate
	if changed {
		for _, fn := range c.onChange {
			fn(c.current)
		}
	}
	c.forwardRaw(wheelIndex, row)
}

// Row returns the row a wheel currently sits on.
func (c *Control) Row(wheelIndex int) int {
	return c.rows[wheelIndex]
}

func (c *Control) contextRange(kind calendar.Kind) calendar.ComponentRange {
	y, m, _ := c.sys.Components(c.current)
	return c.sys.RangeFor(kind, y, m)
}

func (c *Control) recomputeRows() {
	y, m, d := c.sys.Components(c.current)
	for i, k := range c.ordering {
		r := c.sys.RangeFor(k, y, m)
		c.rows[i] = wheel.RowForValue(componentOf(k, y, m, d), r, wheel.MaxRows)
	}
}

func (c *Control) programAll(animated bool) {
	for i := range c.rows {
		c.selectRow(i, c.rows[i], animated)
	}
}

func (c *Control) selectRow(wheelIndex, row int, animated bool) {
	if c.wheels == nil {
		return
	}
	c.wheels.SelectRow(wheelIndex, row, animated)
}

func (c *Control) forwardRaw(wheelIndex, row int) {
	if c.delegate == nil {
		return
	}
	c.delegate.WheelRowSelected(wheelIndex, row)
}

func rawTriple(kind calendar.Kind, value, year, month, day int) (int, int, int) {
	switch kind {
	case calendar.Year:
		year = value
	case calendar.Month:
		month = value
	case calendar.Day:
		day = value
	}
	return year, month, day
}

func componentOf(kind calendar.Kind, year, month, day int) int {
	switch kind {
	case calendar.Year:
		return year
	case calendar.Month:
		return month
	default:
		return day
	}
}

func clamp(t, min, max time.Time) time.Time {
	if t.Before(min) {
		return min
	}
	if t.After(max) {
		return max
	}
	return t
}
