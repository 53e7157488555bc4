package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/salon-booking/internal/agenda"
	"github.com/Leganyst/salon-booking/internal/calendar"
	"github.com/Leganyst/salon-booking/internal/model"
)

type AppointmentView struct {
	ID             uuid.UUID                `json:"id"`
	Date           time.Time                `json:"date"`
	Status         model.AppointmentStatus  `json:"status"`
	ClientName     string                   `json:"clientName"`
	ClientLastName string                   `json:"clientLastName"`
	ClientPhone    string                   `json:"clientPhone"`
	ServiceID      *uuid.UUID               `json:"serviceId"`
	ServiceName    string                   `json:"serviceName"`
	Price          int64                    `json:"price"`
	Notes          string                   `json:"notes"`
	Urgency        *calendar.Classification `json:"urgency,omitempty"`
}

func newAppointmentView(a model.Appointment, loc *time.Location) AppointmentView {
	return AppointmentView{
		ID:             a.ID,
		Date:           a.Date.In(loc),
		Status:         a.Status,
		ClientName:     a.ClientName,
		ClientLastName: a.ClientLastName,
		ClientPhone:    a.ClientPhone,
		ServiceID:      a.ServiceID,
		ServiceName:    a.ServiceLabel(),
		Price:          a.Revenue(),
		Notes:          a.Notes,
	}
}

func newItemView(it agenda.Item, loc *time.Location) AppointmentView {
	v := newAppointmentView(it.Appointment, loc)
	u := it.Urgency
	v.Urgency = &u
	return v
}

type ServiceView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	Duration int       `json:"duration"`
	IsActive bool      `json:"isActive"`
}

func newServiceView(s model.Service) ServiceView {
	return ServiceView{ID: s.ID, Name: s.Name, Price: s.Price, Duration: s.Duration, IsActive: s.IsActive}
}

func newServiceViews(list []model.Service) []ServiceView {
	out := make([]ServiceView, 0, len(list))
	for _, s := range list {
		out = append(out, newServiceView(s))
	}
	return out
}
