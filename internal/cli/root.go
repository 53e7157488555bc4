// Package cli содержит команды исполняемого файла salon.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Leganyst/salon-booking/internal/config"
	"github.com/Leganyst/salon-booking/internal/db"
	"github.com/Leganyst/salon-booking/internal/events"
	"github.com/Leganyst/salon-booking/internal/model"
	"github.com/Leganyst/salon-booking/internal/notify"
	"github.com/Leganyst/salon-booking/internal/reminder"
	"github.com/Leganyst/salon-booking/internal/repository"
)

// Context передаётся в Run каждой команды.
type Context struct {
	Config *config.Config
	DB     *config.DBConfig
	Logger *slog.Logger
}

// app: собранные зависимости одной команды.
type app struct {
	db           *gorm.DB
	appointments *repository.GormAppointmentRepository
	services     *repository.GormServiceRepository
	events       *repository.GormEventRepository
	admins       *repository.GormAdminRepository

	redis  *redis.Client
	kafka  *events.KafkaPublisher
	job    *reminder.Job
	logger *slog.Logger
}

func openDB(c *Context) (*gorm.DB, error) {
	gormDB, err := db.NewGormDB(c.DB)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := model.AutoMigrate(gormDB); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return gormDB, nil
}

func newApp(ctx context.Context, c *Context) (*app, error) {
	gormDB, err := openDB(c)
	if err != nil {
		return nil, err
	}
	cfg := c.Config

	a := &app{
		db:           gormDB,
		appointments: repository.NewGormAppointmentRepository(gormDB),
		services:     repository.NewGormServiceRepository(gormDB),
		events:       repository.NewGormEventRepository(gormDB),
		admins:       repository.NewGormAdminRepository(gormDB),
		logger:       c.Logger,
	}

	var locker reminder.Locker = reminder.NoopLocker{}
	if cfg.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			// Redis не обязателен: без него работаем без блокировки и с лимитером в памяти.
			c.Logger.Warn("redis unavailable", "addr", cfg.RedisAddr, "err", err)
			_ = a.redis.Close()
			a.redis = nil
		} else {
			locker = reminder.NewRedisLocker(a.redis, "salon:digest")
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if brokers := events.SplitBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		a.kafka = events.NewKafkaPublisher(brokers, cfg.KafkaDigestTopic)
		publisher = a.kafka
	}

	var sender notify.Sender
	if cfg.WhatsAppToken != "" && cfg.WhatsAppPhoneNumberID != "" {
		sender = notify.NewWhatsAppSender(cfg.WhatsAppAPIURL, cfg.WhatsAppPhoneNumberID, cfg.WhatsAppToken)
	} else {
		c.Logger.Warn("whatsapp not configured, digests are only logged")
		sender = notify.NewNoopSender(c.Logger)
	}
	if len(cfg.AdminPhones) == 0 {
		c.Logger.Warn("ADMIN_PHONES is empty, digests have no recipients")
	}

	a.job = reminder.NewJob(a.appointments, &notify.Broadcaster{
		Sender:     sender,
		Recipients: cfg.AdminPhones,
		Logger:     c.Logger,
	}, c.Logger, reminder.JobConfig{
		Location:  cfg.Location,
		LockTTL:   24 * time.Hour,
		Locker:    locker,
		Publisher: publisher,
		Recorder:  a.events,
	})
	return a, nil
}

func (a *app) Close() {
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			a.logger.Warn("kafka writer close", "err", err)
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
