package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/salon-booking/internal/model"
)

type AppointmentRepository interface {
	// Создать запись.
	Create(ctx context.Context, appt *model.Appointment) error
	// Получить запись по ID вместе с услугой.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	// Все записи, опционально ограниченные интервалом [from, to].
	List(ctx context.Context, from, to *time.Time) ([]model.Appointment, error)
	// Записи в статусе pending внутри [from, to], по возрастанию даты.
	ListPendingBetween(ctx context.Context, from, to time.Time) ([]model.Appointment, error)
	// Сохранить изменения администратора.
	Update(ctx context.Context, appt *model.Appointment) error
	// Удалить запись.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Реализация на GORM.
type GormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

func (r *GormAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	// Храним в UTC, чтобы сравнения по дате были корректны и в SQLite.
	appt.Date = appt.Date.UTC()
	return r.db.WithContext(ctx).Omit("Service").Create(appt).Error
}

func (r *GormAppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var a model.Appointment
	if err := r.db.WithContext(ctx).Preload("Service").First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *GormAppointmentRepository) List(ctx context.Context, from, to *time.Time) ([]model.Appointment, error) {
	q := r.db.WithContext(ctx).Preload("Service")
	if from != nil {
		q = q.Where("date >= ?", from.UTC())
	}
	if to != nil {
		q = q.Where("date <= ?", to.UTC())
	}

	var appts []model.Appointment
	if err := q.Order("date ASC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *GormAppointmentRepository) ListPendingBetween(ctx context.Context, from, to time.Time) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("date >= ? AND date <= ?", from.UTC(), to.UTC()).
		Where("status = ?", model.AppointmentStatusPending).
		Order("date ASC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *GormAppointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	updates := map[string]any{
		"date":          appt.Date.UTC(),
		"status":        appt.Status,
		"notes":         appt.Notes,
		"service_id":    appt.ServiceID,
		"service_price": appt.ServicePrice,
	}
	res := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("id = ?", appt.ID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
