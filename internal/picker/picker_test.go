package picker

import (
	"testing"
	"time"

	"github.com/verte-zerg/datewheel/internal/calendar"
	"github.com/verte-zerg/datewheel/internal/locale"
	"github.com/verte-zerg/datewheel/internal/wheel"
)

type wheelCall struct {
	wheel    int
	row      int
	animated bool
}

type fakeWheels struct {
	calls []wheelCall
}

func (f *fakeWheels) SelectRow(wheelIndex, row int, animated bool) {
	f.calls = append(f.calls, wheelCall{wheel: wheelIndex, row: row, animated: animated})
}

func (f *fakeWheels) reset() {
	f.calls = nil
}

type fakeDelegate struct {
	events []wheelCall
}

func (f *fakeDelegate) WheelRowSelected(wheelIndex, row int) {
	f.events = append(f.events, wheelCall{wheel: wheelIndex, row: row})
}

func mustLocale(t *testing.T, tag string) locale.Locale {
	t.Helper()
	loc, err := locale.Resolve(tag)
	if err != nil {
		t.Fatalf("resolve %s: %v", tag, err)
	}
	return loc
}

// newTestControl builds an en-US control (wheel order month, day, year)
// bounded to [2000-01-01, 2030-12-31] with an attached recorder.
func newTestControl(t *testing.T, initial time.Time) (*Control, *fakeWheels, *fakeDelegate, calendar.Gregorian) {
	t.Helper()
	sys := calendar.NewGregorian(time.UTC)
	ctrl := New(sys, mustLocale(t, "en-US"), sys.Date(2000, 1, 1), sys.Date(2030, 12, 31), initial)
	wheels := &fakeWheels{}
	delegate := &fakeDelegate{}
	ctrl.AttachWheels(wheels)
	ctrl.SetDelegate(delegate)
	wheels.reset()
	return ctrl, wheels, delegate, sys
}

func monthRow(value int) int {
	return wheel.RowForValue(value, calendar.ComponentRange{Location: 1, Length: 12}, wheel.MaxRows)
}

func yearRow(value int) int {
	return wheel.RowForValue(value, calendar.ComponentRange{Location: 1, Length: 9999}, wheel.MaxRows)
}

func TestSelectFebruaryClampsDay31(t *testing.T) {
	ctrl, wheels, delegate, sys := newTestControl(t, time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC))

	var changes []time.Time
	ctrl.OnChange(func(d time.Time) { changes = append(changes, d) })

	row := monthRow(2)
	ctrl.RowSelected(0, row)

	if got := ctrl.Date(); !got.Equal(sys.Date(2023, 2, 28)) {
		t.Fatalf("date = %s, want 2023-02-28", got.Format("2006-01-02"))
	}
	if len(wheels.calls) != 1 {
		t.Fatalf("expected 1 reprogram call, got %+v", wheels.calls)
	}
	call := wheels.calls[0]
	if call.wheel != 1 {
		t.Fatalf("reprogrammed wheel %d, want day wheel 1", call.wheel)
	}
	if call.animated {
		t.Fatal("a corrected day value must snap without animation")
	}
	dayRange := sys.RangeFor(calendar.Day, 2023, 2)
	if got := wheel.ValueForRow(call.row, dayRange); got != 28 {
		t.Fatalf("day wheel programmed to value %d, want 28", got)
	}
	if len(changes) != 1 || !changes[0].Equal(sys.Date(2023, 2, 28)) {
		t.Fatalf("unexpected change notifications: %v", changes)
	}
	if len(delegate.events) != 1 || delegate.events[0].wheel != 0 || delegate.events[0].row != row {
		t.Fatalf("delegate events = %+v", delegate.events)
	}
}

func TestSelectFebruaryKeepsLeapDay29(t *testing.T) {
	ctrl, wheels, _, sys := newTestControl(t, time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC))

	ctrl.RowSelected(0, monthRow(2))

	if got := ctrl.Date(); !got.Equal(sys.Date(2024, 2, 29)) {
		t.Fatalf("date = %s, want 2024-02-29", got.Format("2006-01-02"))
	}
	// The day value survives unrepaired; any day-wheel recentering must still
	// land on 29 and may animate since the value itself is valid.
	dayRange := sys.RangeFor(calendar.Day, 2024, 2)
	for _, call := range wheels.calls {
		if call.wheel != 1 {
			t.Fatalf("unexpected reprogram of wheel %d", call.wheel)
		}
		if got := wheel.ValueForRow(call.row, dayRange); got != 29 {
			t.Fatalf("day wheel programmed to value %d, want 29", got)
		}
		if !call.animated {
			t.Fatal("a still-valid day value should animate when recentered")
		}
	}
}

func TestOutOfRangeSelectionReverts(t *testing.T) {
	ctrl, wheels, delegate, sys := newTestControl(t, time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC))

	var changes []time.Time
	ctrl.OnChange(func(d time.Time) { changes = append(changes, d) })

	row := yearRow(1999)
	ctrl.RowSelected(2, row)

	if got := ctrl.Date(); !got.Equal(sys.Date(2000, 6, 15)) {
		t.Fatalf("date = %s, want unchanged 2000-06-15", got.Format("2006-01-02"))
	}
	if len(changes) != 0 {
		t.Fatalf("out-of-range selection must not notify, got %v", changes)
	}
	if len(wheels.calls) != 3 {
		t.Fatalf("expected all 3 wheels reverted, got %+v", wheels.calls)
	}
	wantValues := map[int]int{0: 6, 1: 15, 2: 2000}
	wantKinds := map[int]calendar.Kind{0: calendar.Month, 1: calendar.Day, 2: calendar.Year}
	for _, call := range wheels.calls {
		if !call.animated {
			t.Fatalf("revert of wheel %d must animate", call.wheel)
		}
		r := sys.RangeFor(wantKinds[call.wheel], 2000, 6)
		if got := wheel.ValueForRow(call.row, r); got != wantValues[call.wheel] {
			t.Fatalf("wheel %d reverted to value %d, want %d", call.wheel, got, wantValues[call.wheel])
		}
	}
	if len(delegate.events) != 1 || delegate.events[0].row != row {
		t.Fatalf("delegate must still see the raw event, got %+v", delegate.events)
	}
}

func TestSameValueSelectionDoesNotNotify(t *testing.T) {
	ctrl, _, _, _ := newTestControl(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC))

	var changes []time.Time
	ctrl.OnChange(func(d time.Time) { changes = append(changes, d) })

	ctrl.RowSelected(0, monthRow(6))
	if len(changes) != 0 {
		t.Fatalf("re-selecting the current value must not notify, got %v", changes)
	}
}

func TestNewPanicsOnInvertedWindow(t *testing.T) {
	sys := calendar.NewGregorian(time.UTC)
	loc := mustLocale(t, "en-US")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when minimum equals maximum")
		}
	}()
	New(sys, loc, sys.Date(2020, 1, 1), sys.Date(2020, 1, 1), sys.Date(2020, 1, 1))
}

func TestSetMinimumDatePanicsPastMaximum(t *testing.T) {
	ctrl, _, _, sys := newTestControl(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when minimum reaches maximum")
		}
	}()
	ctrl.SetMinimumDate(sys.Date(2030, 12, 31))
}

func TestSetMinimumDateClampsCurrent(t *testing.T) {
	ctrl, _, _, sys := newTestControl(t, time.Date(2005, 6, 15, 0, 0, 0, 0, time.UTC))
	ctrl.SetMinimumDate(sys.Date(2010, 1, 1))
	if got := ctrl.Date(); !got.Equal(sys.Date(2010, 1, 1)) {
		t.Fatalf("date = %s, want clamped to 2010-01-01", got.Format("2006-01-02"))
	}
}

func TestSetDateClampsIntoWindow(t *testing.T) {
	ctrl, _, _, sys := newTestControl(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC))
	ctrl.SetDate(sys.Date(1990, 5, 1), false)
	if got := ctrl.Date(); !got.Equal(sys.Date(2000, 1, 1)) {
		t.Fatalf("date = %s, want clamped to minimum", got.Format("2006-01-02"))
	}
}

func TestSetLocaleReordersWheelsWithoutMovingDate(t *testing.T) {
	ctrl, wheels, _, sys := newTestControl(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC))

	before := ctrl.Ordering()
	if before != [3]calendar.Kind{calendar.Month, calendar.Day, calendar.Year} {
		t.Fatalf("en-US ordering = %v", before)
	}

	ctrl.SetLocale(mustLocale(t, "en-GB"))

	if got := ctrl.Ordering(); got != [3]calendar.Kind{calendar.Day, calendar.Month, calendar.Year} {
		t.Fatalf("en-GB ordering = %v", got)
	}
	if got := ctrl.Date(); !got.Equal(sys.Date(2023, 6, 15)) {
		t.Fatalf("locale change moved the date to %s", got.Format("2006-01-02"))
	}
	if len(wheels.calls) != 3 {
		t.Fatalf("expected all wheels reprogrammed, got %+v", wheels.calls)
	}
	// The month wheel moved from index 0 to index 1.
	if got := ctrl.TitleForRow(1, monthRow(6)); got != "June" {
		t.Fatalf("TitleForRow(1) = %q, want June", got)
	}
}

func TestTitleForRow(t *testing.T) {
	ctrl, _, _, _ := newTestControl(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC))
	if got := ctrl.TitleForRow(0, monthRow(2)); got != "February" {
		t.Fatalf("month title = %q", got)
	}
	if got := ctrl.TitleForRow(2, yearRow(2023)); got != "2023" {
		t.Fatalf("year title = %q", got)
	}
}

func TestIsRowEnabled(t *testing.T) {
	ctrl, _, _, _ := newTestControl(t, time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC))
	if ctrl.IsRowEnabled(2, yearRow(1999)) {
		t.Fatal("a year before the minimum must be disabled")
	}
	if !ctrl.IsRowEnabled(2, yearRow(2000)) {
		t.Fatal("the minimum year must be enabled")
	}
	if !ctrl.IsRowEnabled(2, yearRow(2030)) {
		t.Fatal("the maximum year must be enabled")
	}
	if ctrl.IsRowEnabled(2, yearRow(2031)) {
		t.Fatal("a year past the maximum must be disabled")
	}
}

func TestRowCountAndWheelCount(t *testing.T) {
	ctrl, _, _, _ := newTestControl(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC))
	if got := ctrl.NumberOfWheels(); got != 3 {
		t.Fatalf("NumberOfWheels = %d", got)
	}
	for i := 0; i < 3; i++ {
		if got := ctrl.RowCount(i); got != wheel.MaxRows {
			t.Fatalf("RowCount(%d) = %d", i, got)
		}
	}
}

func TestAttachWheelsProgramsInitialRows(t *testing.T) {
	sys := calendar.NewGregorian(time.UTC)
	ctrl := New(sys, mustLocale(t, "en-US"), sys.Date(2000, 1, 1), sys.Date(2030, 12, 31), sys.Date(2023, 6, 15))
	wheels := &fakeWheels{}
	ctrl.AttachWheels(wheels)
	if len(wheels.calls) != 3 {
		t.Fatalf("expected 3 initial programs, got %+v", wheels.calls)
	}
	for i, call := range wheels.calls {
		if call.wheel != i {
			t.Fatalf("call %d targeted wheel %d", i, call.wheel)
		}
		if call.row != ctrl.Row(i) {
			t.Fatalf("wheel %d programmed to %d, control row is %d", i, call.row, ctrl.Row(i))
		}
	}
}
