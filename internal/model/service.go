package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// services: услуги салона с текущей ценой.
type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name string `gorm:"type:varchar(255);not null"`

	// Цена в целых денежных единицах.
	Price int64 `gorm:"not null;default:0"`

	// Длительность в минутах.
	Duration int `gorm:"not null;default:0"`

	IsActive bool `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (s *Service) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
