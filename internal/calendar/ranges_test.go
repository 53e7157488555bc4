package calendar

import (
	"testing"
	"time"
)

func TestInRange_Closed(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	if !InRange(start, start, end) || !InRange(end, start, end) {
		t.Fatalf("expected bounds to be included")
	}
	if InRange(end.Add(time.Nanosecond), start, end) {
		t.Fatalf("expected instant after end to be excluded")
	}
	if InRange(time.Time{}, time.Time{}, end) {
		t.Fatalf("expected invalid timestamp to be excluded")
	}
}

func TestSameCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	a := time.Date(2025, 3, 14, 1, 0, 0, 0, time.UTC)  // 13.03 22:00 по UTC-3
	b := time.Date(2025, 3, 13, 23, 0, 0, 0, time.UTC) // 13.03 20:00 по UTC-3

	if !SameCalendarDay(a, b, loc) {
		t.Fatalf("expected same day in UTC-3")
	}
	if SameCalendarDay(a, b, time.UTC) {
		t.Fatalf("expected different days in UTC")
	}
	// 23 часа разницы, но один день.
	c := time.Date(2025, 3, 14, 0, 30, 0, 0, time.UTC)
	d := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	if !SameCalendarDay(c, d, time.UTC) {
		t.Fatalf("expected same calendar day")
	}
	if SameCalendarDay(time.Time{}, d, time.UTC) {
		t.Fatalf("expected invalid timestamp to never match")
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	now := time.Date(2025, 3, 14, 15, 42, 0, 0, loc)

	if got := StartOfDay(now); !got.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected start of day %v", got)
	}
	if got := EndOfDay(now); !got.Equal(time.Date(2025, 3, 14, 23, 59, 59, 999999999, loc)) {
		t.Fatalf("unexpected end of day %v", got)
	}

	w := DayWindow(now, 1)
	if !w.Start.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected tomorrow start %v", w.Start)
	}
	if !w.End.Equal(time.Date(2025, 3, 15, 23, 59, 59, 999999999, loc)) {
		t.Fatalf("unexpected tomorrow end %v", w.End)
	}
}

func TestStartOfWeek_Monday(t *testing.T) {
	cases := []struct {
		day  time.Time
		want time.Time
	}{
		// пятница
		{time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		// понедельник
		{time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		// воскресенье относится к предыдущей неделе
		{time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := StartOfWeek(tc.day); !got.Equal(tc.want) {
			t.Fatalf("StartOfWeek(%v) = %v, want %v", tc.day, got, tc.want)
		}
	}
}

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC))
	if !w.Start.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", w.Start)
	}
	if !w.Contains(time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("expected last day of february to be inside")
	}
	if w.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected march 1 to be outside")
	}
}

func TestNewTimeRange_SwappedBounds(t *testing.T) {
	a := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	tr, err := NewTimeRange(a, b)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !tr.Start.Equal(b) || !tr.End.Equal(a) {
		t.Fatalf("expected bounds to be swapped, got %+v", tr)
	}
	if _, err := NewTimeRange(time.Time{}, a); err != ErrInvalidTimeRange {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}
