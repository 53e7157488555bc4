// Package stats считает показатели дашборда по уже загруженному списку записей.
// Вся выручка берётся из model.Appointment.Revenue.
package stats

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/salon-booking/internal/model"
)

// Bucket: сумма и количество записей в группе.
type Bucket struct {
	Total int64 `json:"total"`
	Count int   `json:"count"`
}

func (b *Bucket) add(a model.Appointment) {
	b.Total += a.Revenue()
	b.Count++
}

// MonthKey: ключ вида "2025-3" (месяц без ведущего нуля).
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}

// DayKey: ключ вида "2025-03-01".
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func localize(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

// RevenueByMonth группирует выручку по календарному месяцу в loc.
func RevenueByMonth(list []model.Appointment, loc *time.Location) map[string]Bucket {
	return groupBy(list, func(a model.Appointment) string {
		return MonthKey(a.Date.In(localize(loc)))
	})
}

// RevenueByDay группирует выручку по календарному дню в loc.
func RevenueByDay(list []model.Appointment, loc *time.Location) map[string]Bucket {
	return groupBy(list, func(a model.Appointment) string {
		return DayKey(a.Date.In(localize(loc)))
	})
}

func groupBy(list []model.Appointment, key func(model.Appointment) string) map[string]Bucket {
	out := make(map[string]Bucket)
	for _, a := range list {
		if !a.HasValidDate() {
			continue
		}
		k := key(a)
		b := out[k]
		b.add(a)
		out[k] = b
	}
	return out
}

// ServiceIncome описывает номинальный доход услуги (Count * текущая цена).
// Снимки цен в записях здесь не учитываются.
type ServiceIncome struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	TotalIncome int64     `json:"totalIncome"`
	Count       int       `json:"count"`
}

// RevenueByService возвращает строку для каждой известной услуги,
// в том числе без записей, в порядке services.
func RevenueByService(services []model.Service, list []model.Appointment) []ServiceIncome {
	counts := make(map[uuid.UUID]int, len(services))
	for _, a := range list {
		if a.ServiceID != nil {
			counts[*a.ServiceID]++
		}
	}

	out := make([]ServiceIncome, 0, len(services))
	for _, s := range services {
		n := counts[s.ID]
		out = append(out, ServiceIncome{
			ID:          s.ID,
			Name:        s.Name,
			Price:       s.Price,
			TotalIncome: int64(n) * s.Price,
			Count:       n,
		})
	}
	return out
}

// TopService: услуга с наибольшим числом записей; при равенстве первая.
// nil, если записей нет ни у одной услуги.
func TopService(incomes []ServiceIncome) *ServiceIncome {
	var best *ServiceIncome
	for i := range incomes {
		if incomes[i].Count == 0 {
			continue
		}
		if best == nil || incomes[i].Count > best.Count {
			best = &incomes[i]
		}
	}
	return best
}

// ResolvedRevenueByService суммирует фактическую выручку записей по названию
// услуги. Записи без услуги попадают в model.NoServiceLabel.
func ResolvedRevenueByService(list []model.Appointment) map[string]Bucket {
	out := make(map[string]Bucket)
	for _, a := range list {
		k := a.ServiceLabel()
		b := out[k]
		b.add(a)
		out[k] = b
	}
	return out
}

// TotalRevenue: сумма Revenue по всем записям.
func TotalRevenue(list []model.Appointment) int64 {
	var total int64
	for _, a := range list {
		total += a.Revenue()
	}
	return total
}
