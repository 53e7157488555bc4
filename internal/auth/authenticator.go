package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leganyst/salon-booking/internal/model"
	"github.com/Leganyst/salon-booking/internal/repository"
)

// ErrInvalidCredentials не различает неизвестного пользователя и неверный пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
}

type Authenticator struct {
	admins AdminStore
	tokens *Manager
}

func NewAuthenticator(admins AdminStore, tokens *Manager) *Authenticator {
	return &Authenticator{admins: admins, tokens: tokens}
}

func (a *Authenticator) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := a.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := a.tokens.NewAccessToken(user.Username, RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: exp, Username: user.Username}, nil
}
