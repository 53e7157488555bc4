package stats

import (
	"time"

	"github.com/Leganyst/salon-booking/internal/model"
)

// Dashboard собирает все показатели для админки.
type Dashboard struct {
	GeneratedAt       time.Time         `json:"generatedAt"`
	Appointments      int               `json:"appointments"`
	TotalRevenue      int64             `json:"totalRevenue"`
	ByMonth           map[string]Bucket `json:"byMonth"`
	ByDay             map[string]Bucket `json:"byDay"`
	ByService         []ServiceIncome   `json:"byService"`
	ResolvedByService map[string]Bucket `json:"resolvedByService"`
	TopService        *ServiceIncome    `json:"topService,omitempty"`
	TopClients        []ClientCount     `json:"topClients"`
	StrongestWeekday  WeekdayTotal      `json:"strongestWeekday"`
	TopHourBucket     HourTotal         `json:"topHourBucket"`
	AverageTicket     int64             `json:"averageTicket"`
	WeekOverWeek      WeekComparison    `json:"weekOverWeek"`
	MonthOverMonth    *float64          `json:"monthOverMonth"`
}

func BuildDashboard(services []model.Service, list []model.Appointment, now time.Time) Dashboard {
	byService := RevenueByService(services, list)
	return Dashboard{
		GeneratedAt:       now,
		Appointments:      len(list),
		TotalRevenue:      TotalRevenue(list),
		ByMonth:           RevenueByMonth(list, now.Location()),
		ByDay:             RevenueByDay(list, now.Location()),
		ByService:         byService,
		ResolvedByService: ResolvedRevenueByService(list),
		TopService:        TopService(byService),
		TopClients:        TopFrequentClients(list, defaultTopClients),
		StrongestWeekday:  StrongestWeekday(list, now),
		TopHourBucket:     TopHourBucket(list, now),
		AverageTicket:     AverageTicket(list, now),
		WeekOverWeek:      WeekOverWeekCount(list, now),
		MonthOverMonth:    MonthOverMonthRevenue(list, now),
	}
}
