// Package notify доставляет текстовые сообщения администраторам.
package notify

import (
	"context"
	"log/slog"
)

type Sender interface {
	Send(ctx context.Context, to string, body string) error
	ProviderID() string
}

// NoopSender только пишет сообщение в лог. Используется, когда WhatsApp не настроен.
type NoopSender struct {
	logger *slog.Logger
}

func NewNoopSender(logger *slog.Logger) *NoopSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopSender{logger: logger}
}

func (s *NoopSender) ProviderID() string {
	return "noop"
}

func (s *NoopSender) Send(_ context.Context, to string, body string) error {
	s.logger.Info("message skipped: no provider configured", "to", to, "chars", len(body))
	return nil
}
