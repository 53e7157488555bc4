package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/salon-booking/internal/model"
)

type EventRepository interface {
	// Записать событие аудита; payload сериализуется в JSON.
	Record(ctx context.Context, eventType model.EventType, appointmentID *uuid.UUID, payload any) error
	// Последние события, новые первыми.
	ListRecent(ctx context.Context, limit int) ([]model.Event, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Record(ctx context.Context, eventType model.EventType, appointmentID *uuid.UUID, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	e := model.Event{
		EventType:     eventType,
		AppointmentID: appointmentID,
		Payload:       datatypes.JSON(raw),
	}
	return r.db.WithContext(ctx).Create(&e).Error
}

func (r *GormEventRepository) ListRecent(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []model.Event
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
