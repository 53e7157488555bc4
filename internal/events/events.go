// Package events публикует доменные события салона во внешнюю шину.
package events

import (
	"context"
	"time"
)

const EventTypeDigestSent = "reminder.digest.sent.v1"

// DigestEvent: итог отправки дайджеста за день.
type DigestEvent struct {
	Kind   string    `json:"kind"`
	Day    string    `json:"day"` // 2006-01-02 в часовом поясе салона
	Count  int       `json:"count"`
	Sent   int       `json:"sent"`
	Failed int       `json:"failed"`
	Empty  bool      `json:"empty"`
	At     time.Time `json:"at"`
}

// Key возвращает ключ партиционирования, один дайджест на вид и день.
func (e DigestEvent) Key() string {
	return e.Kind + "|" + e.Day
}

type Publisher interface {
	PublishDigest(ctx context.Context, e DigestEvent) error
}

type NoopPublisher struct{}

func (NoopPublisher) PublishDigest(context.Context, DigestEvent) error { return nil }
