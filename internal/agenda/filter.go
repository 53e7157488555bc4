// Package agenda отбирает и упорядочивает записи для списка администратора.
package agenda

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Leganyst/salon-booking/internal/calendar"
	"github.com/Leganyst/salon-booking/internal/model"
)

var ErrUnknownRange = errors.New("unknown quick range")

// QuickRange: предустановленное окно дат.
type QuickRange string

const (
	RangeAll      QuickRange = "all"
	RangeToday    QuickRange = "today"
	RangeTomorrow QuickRange = "tomorrow"
	RangeWeek     QuickRange = "week"
)

// weekDays: горизонт фильтра "week" от сегодняшнего дня.
const weekDays = 7

func ParseQuickRange(s string) (QuickRange, error) {
	switch QuickRange(strings.ToLower(strings.TrimSpace(s))) {
	case "", RangeAll:
		return RangeAll, nil
	case RangeToday:
		return RangeToday, nil
	case RangeTomorrow:
		return RangeTomorrow, nil
	case RangeWeek:
		return RangeWeek, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRange, s)
}

// Options задаёт настройки конвейера. Нулевое значение оставляет все записи кроме прошедших дней.
type Options struct {
	Range       QuickRange
	Day         *time.Time // конкретный календарный день
	IncludePast bool
}

// Window возвращает окно для диапазона относительно now.
// Для RangeAll ok == false.
func (r QuickRange) Window(now time.Time) (calendar.TimeRange, bool) {
	switch r {
	case RangeToday:
		return calendar.DayWindow(now, 0), true
	case RangeTomorrow:
		return calendar.DayWindow(now, 1), true
	case RangeWeek:
		return calendar.TimeRange{
			Start: calendar.StartOfDay(now),
			End:   calendar.EndOfDay(now.AddDate(0, 0, weekDays)),
		}, true
	}
	return calendar.TimeRange{}, false
}

// FilterAndSort применяет фильтры в порядке: быстрый диапазон, конкретный день,
// исключение прошедших. Календарь определяется часовым поясом now.
// Входной срез не изменяется.
func FilterAndSort(list []model.Appointment, opts Options, now time.Time) []model.Appointment {
	out := make([]model.Appointment, 0, len(list))
	window, hasWindow := opts.Range.Window(now)
	todayStart := calendar.StartOfDay(now)

	for _, a := range list {
		if hasWindow && !window.Contains(a.Date) {
			continue
		}
		if opts.Day != nil && !calendar.SameCalendarDay(a.Date, *opts.Day, now.Location()) {
			continue
		}
		if !opts.IncludePast && (!a.HasValidDate() || a.Date.Before(todayStart)) {
			continue
		}
		out = append(out, a)
	}

	Sort(out, now)
	return out
}

// Sort упорядочивает записи на месте: сначала будущие по возрастанию даты,
// затем прошедшие по возрастанию, записи без даты в конце.
func Sort(list []model.Appointment, now time.Time) {
	sort.SliceStable(list, func(i, j int) bool {
		return less(list[i], list[j], now)
	})
}

func less(a, b model.Appointment, now time.Time) bool {
	ra, rb := rank(a, now), rank(b, now)
	if ra != rb {
		return ra < rb
	}
	if ra == rankInvalid {
		return false
	}
	return a.Date.Before(b.Date)
}

const (
	rankUpcoming = iota
	rankPast
	rankInvalid
)

func rank(a model.Appointment, now time.Time) int {
	switch {
	case !a.HasValidDate():
		return rankInvalid
	case calendar.IsPast(a.Date, now):
		return rankPast
	default:
		return rankUpcoming
	}
}
