// Package wheel maps infinite wheel rows onto bounded component values.
package wheel

import "github.com/verte-zerg/datewheel/internal/calendar"

// MaxRows is the fixed row count of every wheel. Large enough that re-centering
// jumps never run out of rows for any component length (1-366).
const MaxRows = 32767

// ValueForRow maps a wheel row onto the component value it represents. Rows
// cycle through the range, so row, row+Length, row+2*Length all map to the
// same value.
func ValueForRow(row int, r calendar.ComponentRange) int {
	if r.Length <= 0 {
		return r.Location
	}
	off := row % r.Length
	if off < 0 {
		off += r.Length
	}
	return r.Location + off
}

// RowForValue returns the row near the wheel's midpoint that maps onto value.
// The midpoint is pulled back to a value-cycle boundary first, so selections
// always re-center rather than taking the shortest path from the current row.
func RowForValue(value int, r calendar.ComponentRange, rowCount int) int {
	if r.Length <= 0 {
		return 0
	}
	mid := rowCount / 2
	return mid - mid%r.Length + (value - r.Location)
}
