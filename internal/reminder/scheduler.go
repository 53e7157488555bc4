package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// catchUp: сколько времени после назначенного момента дайджест ещё считается своевременным.
const catchUp = time.Hour

type Digester interface {
	RunDigest(ctx context.Context, kind Kind) (Result, error)
}

type SchedulerConfig struct {
	Location   *time.Location
	TodayAt    string // HH:MM
	TomorrowAt string // HH:MM
	Interval   time.Duration
	Now        func() time.Time
}

type entry struct {
	kind      Kind
	hour, min int
	lastDay   string
}

// Scheduler раз в сутки запускает дайджесты today и tomorrow
// в заданное локальное время салона.
type Scheduler struct {
	job      Digester
	logger   *slog.Logger
	loc      *time.Location
	interval time.Duration
	now      func() time.Time
	entries  []*entry
}

func NewScheduler(job Digester, logger *slog.Logger, cfg SchedulerConfig) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.FixedZone("UTC-3", -3*60*60)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Scheduler{job: job, logger: logger, loc: cfg.Location, interval: cfg.Interval, now: cfg.Now}
	for _, spec := range []struct {
		kind  Kind
		clock string
	}{{KindToday, cfg.TodayAt}, {KindTomorrow, cfg.TomorrowAt}} {
		at, err := time.Parse("15:04", spec.clock)
		if err != nil {
			return nil, fmt.Errorf("digest %s time %q: %w", spec.kind, spec.clock, err)
		}
		s.entries = append(s.entries, &entry{kind: spec.kind, hour: at.Hour(), min: at.Minute()})
	}
	return s, nil
}

func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick запускает все дайджесты, время которых наступило и которые сегодня ещё не отправлялись.
func (s *Scheduler) tick(ctx context.Context) {
	now := s.now().In(s.loc)
	today := now.Format("2006-01-02")

	for _, e := range s.entries {
		if e.lastDay == today {
			continue
		}
		due := time.Date(now.Year(), now.Month(), now.Day(), e.hour, e.min, 0, 0, s.loc)
		if now.Before(due) || !now.Before(due.Add(catchUp)) {
			continue
		}

		res, err := s.job.RunDigest(ctx, e.kind)
		if err != nil {
			s.logger.Error("scheduled digest failed", "kind", e.kind, "err", err)
			continue
		}
		e.lastDay = today
		s.logger.Info("scheduled digest done", "kind", e.kind, "count", res.Count, "skipped", res.Skipped)
	}
}
