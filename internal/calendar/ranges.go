package calendar

import (
	"errors"
	"time"
)

var ErrInvalidTimeRange = errors.New("invalid time range")

// TimeRange представляет закрытый временной интервал [Start, End].
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создаёт интервал; перепутанные границы меняются местами.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !IsValid(start) || !IsValid(end) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	if end.Before(start) {
		start, end = end, start
	}
	return TimeRange{Start: start, End: end}, nil
}

// Contains: проверка InRange для интервала.
func (tr TimeRange) Contains(t time.Time) bool {
	return InRange(t, tr.Start, tr.End)
}

// In переводит границы в часовой пояс loc.
func (tr TimeRange) In(loc *time.Location) TimeRange {
	if loc == nil {
		return tr
	}
	return TimeRange{Start: tr.Start.In(loc), End: tr.End.In(loc)}
}

// IsValid сообщает, задан ли момент времени. Нулевое значение считается
// некорректной датой.
func IsValid(t time.Time) bool {
	return !t.IsZero()
}

// InRange проверяет закрытый интервал start <= d <= end.
func InRange(d, start, end time.Time) bool {
	if !IsValid(d) {
		return false
	}
	return !d.Before(start) && !d.After(end)
}

// SameCalendarDay сравнивает год, месяц и день в календаре loc
// (nil: локальный часовой пояс процесса).
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	if !IsValid(a) || !IsValid(b) {
		return false
	}
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay: полночь дня t в его часовом поясе.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay: последняя наносекунда дня t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek: понедельник недели t, 00:00.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// StartOfMonth: первое число месяца t, 00:00.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// DayWindow возвращает календарный день now+offsetDays целиком.
func DayWindow(now time.Time, offsetDays int) TimeRange {
	day := StartOfDay(now).AddDate(0, 0, offsetDays)
	return TimeRange{Start: day, End: EndOfDay(day)}
}

// WeekWindow: неделя с понедельника по воскресенье, включительно.
func WeekWindow(t time.Time) TimeRange {
	start := StartOfWeek(t)
	return TimeRange{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
}

// MonthWindow: календарный месяц t целиком.
func MonthWindow(t time.Time) TimeRange {
	start := StartOfMonth(t)
	return TimeRange{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}
