package wheel

import (
	"testing"

	"github.com/verte-zerg/datewheel/internal/calendar"
)

func TestValueForRowWrapsAround(t *testing.T) {
	ranges := []calendar.ComponentRange{
		{Location: 1, Length: 12},
		{Location: 1, Length: 28},
		{Location: 1, Length: 31},
		{Location: 1, Length: 9999},
	}
	for _, r := range ranges {
		for _, row := range []int{0, 5, 100, MaxRows - 1} {
			want := ValueForRow(row, r)
			for k := -2; k <= 2; k++ {
				if got := ValueForRow(row+k*r.Length, r); got != want {
					t.Errorf("length %d: ValueForRow(%d) = %d, want %d", r.Length, row+k*r.Length, got, want)
				}
			}
		}
	}
}

func TestValueForRowNegativeRow(t *testing.T) {
	r := calendar.ComponentRange{Location: 1, Length: 12}
	if got := ValueForRow(-1, r); got != 12 {
		t.Fatalf("ValueForRow(-1) = %d, want 12", got)
	}
}

func TestRowForValueRoundTrip(t *testing.T) {
	lengths := []int{1, 2, 12, 28, 29, 30, 31, 59, 365, 366}
	for _, length := range lengths {
		r := calendar.ComponentRange{Location: 1, Length: length}
		for value := r.Location; value < r.Location+r.Length; value++ {
			row := RowForValue(value, r, MaxRows)
			if row < 0 || row >= MaxRows {
				t.Fatalf("length %d value %d: row %d out of bounds", length, value, row)
			}
			if got := ValueForRow(row, r); got != value {
				t.Fatalf("length %d: ValueForRow(RowForValue(%d)) = %d", length, value, got)
			}
		}
	}
}

func TestRowForValueReCenters(t *testing.T) {
	r := calendar.ComponentRange{Location: 1, Length: 12}
	row := RowForValue(6, r, MaxRows)
	mid := MaxRows / 2
	if row < mid-r.Length || row > mid+r.Length {
		t.Fatalf("row %d is not near midpoint %d", row, mid)
	}
}

func TestRowForValueLargeRange(t *testing.T) {
	// The year wheel's range is wider than half the row space; the mapped row
	// must still be in bounds.
	r := calendar.ComponentRange{Location: 1, Length: 9999}
	for _, value := range []int{1, 2023, 9999} {
		row := RowForValue(value, r, MaxRows)
		if row < 0 || row >= MaxRows {
			t.Fatalf("value %d: row %d out of bounds", value, row)
		}
		if got := ValueForRow(row, r); got != value {
			t.Fatalf("value %d maps back to %d", value, got)
		}
	}
}
