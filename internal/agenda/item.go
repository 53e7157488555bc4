package agenda

import (
	"time"

	"github.com/Leganyst/salon-booking/internal/calendar"
	"github.com/Leganyst/salon-booking/internal/model"
)

// Item: запись вместе с её срочностью на момент выборки.
type Item struct {
	Appointment model.Appointment
	Urgency     calendar.Classification
}

// Annotate сопоставляет каждой записи её классификацию. Порядок сохраняется.
func Annotate(list []model.Appointment, now time.Time) []Item {
	items := make([]Item, len(list))
	for i, a := range list {
		items[i] = Item{Appointment: a, Urgency: calendar.Classify(a.Date, now)}
	}
	return items
}
