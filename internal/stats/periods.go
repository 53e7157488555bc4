package stats

import (
	"math"
	"time"

	"github.com/Leganyst/salon-booking/internal/calendar"
	"github.com/Leganyst/salon-booking/internal/model"
)

// Функции этого файла работают в календаре часового пояса now.

// WeekdayTotal: выручка дня недели за текущий месяц.
type WeekdayTotal struct {
	Weekday time.Weekday `json:"weekday"`
	Total   int64        `json:"total"`
}

// HourBucket: часть дня по локальному часу записи.
type HourBucket string

const (
	Morning   HourBucket = "Morning"   // [0, 12)
	Midday    HourBucket = "Midday"    // [12, 16)
	Afternoon HourBucket = "Afternoon" // [16, 20)
	Night     HourBucket = "Night"     // [20, 24)
)

var hourBuckets = [...]HourBucket{Morning, Midday, Afternoon, Night}

func BucketOf(hour int) HourBucket {
	switch {
	case hour < 12:
		return Morning
	case hour < 16:
		return Midday
	case hour < 20:
		return Afternoon
	default:
		return Night
	}
}

// HourTotal: выручка части дня за текущий месяц.
type HourTotal struct {
	Label HourBucket `json:"label"`
	Total int64      `json:"total"`
}

// WeekComparison: число записей на этой и прошлой неделе (с понедельника).
type WeekComparison struct {
	ThisWeek int `json:"thisWeek"`
	LastWeek int `json:"lastWeek"`
	Diff     int `json:"diff"`
}

// inWindow выбирает записи с корректной датой внутри окна.
func inWindow(list []model.Appointment, w calendar.TimeRange) []model.Appointment {
	var out []model.Appointment
	for _, a := range list {
		if w.Contains(a.Date) {
			out = append(out, a)
		}
	}
	return out
}

// CurrentMonth: записи календарного месяца now.
func CurrentMonth(list []model.Appointment, now time.Time) []model.Appointment {
	return inWindow(list, calendar.MonthWindow(now))
}

// StrongestWeekday: день недели с максимальной выручкой в текущем месяце.
// Дни просматриваются с воскресенья по субботу, при равенстве побеждает первый.
func StrongestWeekday(list []model.Appointment, now time.Time) WeekdayTotal {
	var totals [7]int64
	for _, a := range CurrentMonth(list, now) {
		totals[a.Date.In(now.Location()).Weekday()] += a.Revenue()
	}

	best := WeekdayTotal{Weekday: time.Sunday, Total: totals[time.Sunday]}
	for d := time.Monday; d <= time.Saturday; d++ {
		if totals[d] > best.Total {
			best = WeekdayTotal{Weekday: d, Total: totals[d]}
		}
	}
	return best
}

// TopHourBucket: часть дня с максимальной выручкой в текущем месяце.
// При равенстве побеждает более ранняя часть дня.
func TopHourBucket(list []model.Appointment, now time.Time) HourTotal {
	totals := make(map[HourBucket]int64, len(hourBuckets))
	for _, a := range CurrentMonth(list, now) {
		totals[BucketOf(a.Date.In(now.Location()).Hour())] += a.Revenue()
	}

	best := HourTotal{Label: hourBuckets[0], Total: totals[hourBuckets[0]]}
	for _, b := range hourBuckets[1:] {
		if totals[b] > best.Total {
			best = HourTotal{Label: b, Total: totals[b]}
		}
	}
	return best
}

// AverageTicket: средняя выручка записи текущего месяца, округлённая до целого.
func AverageTicket(list []model.Appointment, now time.Time) int64 {
	month := CurrentMonth(list, now)
	if len(month) == 0 {
		return 0
	}
	return int64(math.Round(float64(TotalRevenue(month)) / float64(len(month))))
}

// WeekOverWeekCount сравнивает количество записей текущей и прошлой недели.
func WeekOverWeekCount(list []model.Appointment, now time.Time) WeekComparison {
	this := len(inWindow(list, calendar.WeekWindow(now)))
	last := len(inWindow(list, calendar.WeekWindow(now.AddDate(0, 0, -7))))
	return WeekComparison{ThisWeek: this, LastWeek: last, Diff: this - last}
}

// MonthOverMonthRevenue: изменение выручки к прошлому месяцу в процентах.
// nil, если выручка прошлого месяца равна нулю.
func MonthOverMonthRevenue(list []model.Appointment, now time.Time) *float64 {
	current := TotalRevenue(CurrentMonth(list, now))
	prevStart := calendar.StartOfMonth(now).AddDate(0, -1, 0)
	previous := TotalRevenue(inWindow(list, calendar.MonthWindow(prevStart)))
	if previous == 0 {
		return nil
	}
	pct := float64(current-previous) / float64(previous) * 100
	return &pct
}
