package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Leganyst/salon-booking/internal/auth"
	"github.com/Leganyst/salon-booking/internal/model"
	"github.com/Leganyst/salon-booking/internal/repository"
)

// AdminCreateCmd заводит учётную запись панели администратора.
type AdminCreateCmd struct {
	Username string `required:"" help:"Login name (stored lowercase)."`
	Password string `required:"" env:"ADMIN_PASSWORD" help:"Plain password, hashed with bcrypt."`
}

func (c *AdminCreateCmd) Run(cc *Context) error {
	username := strings.TrimSpace(c.Username)
	if username == "" {
		return errors.New("username must not be empty")
	}
	hash, err := auth.HashPassword(c.Password)
	if err != nil {
		return err
	}

	gormDB, err := openDB(cc)
	if err != nil {
		return err
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	repo := repository.NewGormAdminRepository(gormDB)
	ctx := context.Background()
	if _, err := repo.FindByUsername(ctx, username); err == nil {
		return fmt.Errorf("admin %q already exists", strings.ToLower(username))
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	user := &model.AdminUser{Username: username, PasswordHash: hash, IsActive: true}
	if err := repo.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	cc.Logger.Info("admin created", "username", user.Username, "id", user.ID.String())
	fmt.Printf("admin %s created\n", user.Username)
	return nil
}
