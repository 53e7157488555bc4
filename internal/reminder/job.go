// Package reminder рассылает администраторам дайджест записей на сегодня или завтра.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/salon-booking/internal/calendar"
	"github.com/Leganyst/salon-booking/internal/events"
	"github.com/Leganyst/salon-booking/internal/model"
	"github.com/Leganyst/salon-booking/internal/notify"
)

var ErrUnknownKind = errors.New("unknown digest kind")

type Kind string

const (
	KindToday    Kind = "today"
	KindTomorrow Kind = "tomorrow"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindToday:
		return KindToday, nil
	case KindTomorrow:
		return KindTomorrow, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) offsetDays() int {
	if k == KindTomorrow {
		return 1
	}
	return 0
}

// AppointmentSource: записи в статусе pending внутри [from, to] по возрастанию даты.
type AppointmentSource interface {
	ListPendingBetween(ctx context.Context, from, to time.Time) ([]model.Appointment, error)
}

// Recorder сохраняет факт отправки в журнал событий.
type Recorder interface {
	Record(ctx context.Context, eventType model.EventType, appointmentID *uuid.UUID, payload any) error
}

type Result struct {
	OK      bool   `json:"ok"`
	Empty   bool   `json:"empty"`
	Skipped bool   `json:"skipped,omitempty"`
	Kind    Kind   `json:"kind"`
	Day     string `json:"day"`
	Count   int    `json:"count"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
}

type JobConfig struct {
	Location *time.Location
	LockTTL  time.Duration
	Locker   Locker
	// Необязательные хуки после отправки.
	Publisher events.Publisher
	Recorder  Recorder
	Now       func() time.Time
}

type Job struct {
	source      AppointmentSource
	broadcaster *notify.Broadcaster
	logger      *slog.Logger

	loc       *time.Location
	lockTTL   time.Duration
	locker    Locker
	publisher events.Publisher
	recorder  Recorder
	now       func() time.Time
}

func NewJob(source AppointmentSource, broadcaster *notify.Broadcaster, logger *slog.Logger, cfg JobConfig) *Job {
	if cfg.Location == nil {
		cfg.Location = time.FixedZone("UTC-3", -3*60*60)
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 24 * time.Hour
	}
	if cfg.Locker == nil {
		cfg.Locker = NoopLocker{}
	}
	if cfg.Publisher == nil {
		cfg.Publisher = events.NoopPublisher{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Job{
		source:      source,
		broadcaster: broadcaster,
		logger:      logger,
		loc:         cfg.Location,
		lockTTL:     cfg.LockTTL,
		locker:      cfg.Locker,
		publisher:   cfg.Publisher,
		recorder:    cfg.Recorder,
		now:         cfg.Now,
	}
}

// RunDigest отправляет дайджест за день kind. Ошибки доставки отдельным
// получателям не делают результат неуспешным; ошибка хранилища возвращается.
func (j *Job) RunDigest(ctx context.Context, kind Kind) (Result, error) {
	if kind != KindToday && kind != KindTomorrow {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	now := j.now().In(j.loc)
	window := calendar.DayWindow(now, kind.offsetDays())
	day := window.Start.Format("2006-01-02")
	logger := j.logger.With("kind", kind, "day", day)

	lockKey := string(kind) + ":" + day
	acquired, err := j.locker.Acquire(ctx, lockKey, j.lockTTL)
	if err != nil {
		logger.Warn("digest lock unavailable, sending anyway", "err", err)
		acquired = true
	}
	if !acquired {
		logger.Info("digest already sent by another instance")
		return Result{OK: true, Skipped: true, Kind: kind, Day: day}, nil
	}

	list, err := j.source.ListPendingBetween(ctx, window.Start, window.End)
	if err != nil {
		if rerr := j.locker.Release(ctx, lockKey); rerr != nil {
			logger.Warn("digest lock release failed", "err", rerr)
		}
		return Result{}, fmt.Errorf("list pending appointments: %w", err)
	}

	body := FormatDigest(kind, window.Start, list, j.loc)
	delivery := j.broadcaster.Broadcast(ctx, body)

	res := Result{
		OK:     true,
		Empty:  len(list) == 0,
		Kind:   kind,
		Day:    day,
		Count:  len(list),
		Sent:   delivery.Sent,
		Failed: delivery.Failed,
	}
	logger.Info("digest dispatched", "count", res.Count, "sent", res.Sent, "failed", res.Failed)

	j.afterDispatch(ctx, logger, res)
	return res, nil
}

func (j *Job) afterDispatch(ctx context.Context, logger *slog.Logger, res Result) {
	ev := events.DigestEvent{
		Kind:   string(res.Kind),
		Day:    res.Day,
		Count:  res.Count,
		Sent:   res.Sent,
		Failed: res.Failed,
		Empty:  res.Empty,
		At:     j.now().UTC(),
	}
	if err := j.publisher.PublishDigest(ctx, ev); err != nil {
		logger.Error("digest event publish failed", "err", err)
	}
	if j.recorder != nil {
		if err := j.recorder.Record(ctx, model.EventTypeDigestSent, nil, ev); err != nil {
			logger.Error("digest audit record failed", "err", err)
		}
	}
}
