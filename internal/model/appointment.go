package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Подпись для записей без привязанной услуги.
const NoServiceLabel = "No service"

// ParseStatus проверяет строковый статус.
func ParseStatus(s string) (AppointmentStatus, error) {
	switch st := AppointmentStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}

// appointments
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Единственный ключ сортировки и группировки.
	Date time.Time `gorm:"not null;index"`

	Status AppointmentStatus `gorm:"type:varchar(32);not null;default:'pending';index"`

	// Денормализованные данные клиента, могут быть пустыми.
	ClientName     string `gorm:"type:varchar(255)"`
	ClientLastName string `gorm:"type:varchar(255)"`
	ClientPhone    string `gorm:"type:varchar(32)"`

	// nil, если услуга была удалена.
	ServiceID *uuid.UUID `gorm:"type:uuid;index"`

	// Снимок цены на момент записи; приоритетнее текущей цены услуги.
	ServicePrice *int64

	Notes string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (a *Appointment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = AppointmentStatusPending
	}
	return nil
}

// Revenue возвращает цену записи: снимок цены, иначе текущая цена услуги, иначе 0.
// Используется ровно один источник; после удаления услуги снимок сохраняется и учитывается.
func (a Appointment) Revenue() int64 {
	if a.ServicePrice != nil {
		return *a.ServicePrice
	}
	if a.Service != nil {
		return a.Service.Price
	}
	return 0
}

// DisplayName: "имя фамилия" без лишних пробелов; пусто, если обе части пустые.
func (a Appointment) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(a.ClientName) + " " + strings.TrimSpace(a.ClientLastName))
}

func (a Appointment) ServiceLabel() string {
	if a.Service == nil || strings.TrimSpace(a.Service.Name) == "" {
		return NoServiceLabel
	}
	return a.Service.Name
}

// HasValidDate сообщает, пригодна ли Date. Нулевое время помечает запись с нечитаемой датой.
func (a Appointment) HasValidDate() bool {
	return !a.Date.IsZero()
}
