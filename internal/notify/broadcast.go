package notify

import (
	"context"
	"log/slog"
)

// Delivery: итог рассылки.
type Delivery struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Broadcaster отправляет одно сообщение всем получателям по очереди.
// Ошибка на одном получателе логируется и не прерывает рассылку.
type Broadcaster struct {
	Sender     Sender
	Recipients []string
	Logger     *slog.Logger
}

func (b *Broadcaster) Broadcast(ctx context.Context, body string) Delivery {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var d Delivery
	for _, to := range b.Recipients {
		if err := b.Sender.Send(ctx, to, body); err != nil {
			d.Failed++
			logger.Error("message delivery failed",
				"provider", b.Sender.ProviderID(),
				"to", to,
				"err", err,
			)
			continue
		}
		d.Sent++
	}
	return d
}
