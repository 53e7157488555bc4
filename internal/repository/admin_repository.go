package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Leganyst/salon-booking/internal/model"
)

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	Create(ctx context.Context, user *model.AdminUser) error
}

type GormAdminRepository struct {
	db *gorm.DB
}

func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (r *GormAdminRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	n := normalizeUsername(username)
	if n == "" {
		return nil, ErrNotFound
	}
	var u model.AdminUser
	if err := r.db.WithContext(ctx).Where("username = ?", n).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *GormAdminRepository) Create(ctx context.Context, user *model.AdminUser) error {
	user.Username = normalizeUsername(user.Username)
	return r.db.WithContext(ctx).Create(user).Error
}
