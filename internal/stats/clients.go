package stats

import (
	"sort"

	"github.com/Leganyst/salon-booking/internal/model"
)

const defaultTopClients = 3

// ClientCount: клиент и число его записей.
type ClientCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopFrequentClients возвращает n самых частых клиентов (по умолчанию 3).
// Записи без имени пропускаются; при равенстве раньше идёт тот, кто встретился первым.
func TopFrequentClients(list []model.Appointment, n int) []ClientCount {
	if n <= 0 {
		n = defaultTopClients
	}

	index := make(map[string]int)
	ranked := make([]ClientCount, 0)
	for _, a := range list {
		name := a.DisplayName()
		if name == "" {
			continue
		}
		if i, ok := index[name]; ok {
			ranked[i].Count++
			continue
		}
		index[name] = len(ranked)
		ranked = append(ranked, ClientCount{Name: name, Count: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
