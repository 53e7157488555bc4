package config

import (
	"fmt"
	"time"
)

// Смещение по умолчанию для бизнес-времени (UTC-3).
const defaultBusinessOffset = -3 * 60 * 60

type Config struct {
	Env      string
	HTTPAddr string
	GRPCAddr string

	// Часовой пояс салона; все календарные границы считаются в нём.
	Location *time.Location

	JWTSecret        string
	AccessTTLMinutes int
	CookieSecure     bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers     string
	KafkaDigestTopic string

	WhatsAppToken         string
	WhatsAppPhoneNumberID string
	WhatsAppAPIURL        string
	AdminPhones           []string

	SchedulerEnabled bool
	DigestTodayAt    string
	DigestTomorrowAt string

	RateLimitBookings  int
	RateLimitWindowSec int
}

func Load() (*Config, error) {
	loc, err := businessLocation(getEnv("BUSINESS_TZ", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		GRPCAddr:              getEnv("GRPC_ADDR", ":50051"),
		Location:              loc,
		JWTSecret:             getEnv("JWT_SECRET", ""),
		AccessTTLMinutes:      getEnvInt("ACCESS_TTL_MINUTES", 12*60),
		CookieSecure:          getEnvBool("COOKIE_SECURE", false),
		RedisAddr:             getEnv("REDIS_ADDR", ""),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		KafkaBrokers:          getEnv("KAFKA_BROKERS", ""),
		KafkaDigestTopic:      getEnv("KAFKA_DIGEST_TOPIC", "reminder.digest.sent.v1"),
		WhatsAppToken:         getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppPhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		WhatsAppAPIURL:        getEnv("WHATSAPP_API_URL", "https://graph.facebook.com/v21.0"),
		AdminPhones:           getEnvList("ADMIN_PHONES"),
		SchedulerEnabled:      getEnvBool("SCHEDULER_ENABLED", false),
		DigestTodayAt:         getEnv("DIGEST_TODAY_AT", "08:00"),
		DigestTomorrowAt:      getEnv("DIGEST_TOMORROW_AT", "20:00"),
		RateLimitBookings:     getEnvInt("RATE_LIMIT_BOOKINGS", 10),
		RateLimitWindowSec:    getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),
	}

	for _, clock := range []string{cfg.DigestTodayAt, cfg.DigestTomorrowAt} {
		if _, err := time.Parse("15:04", clock); err != nil {
			return nil, fmt.Errorf("invalid digest time %q: want HH:MM", clock)
		}
	}

	return cfg, nil
}

// businessLocation загружает IANA-зону; без неё используется фиксированный UTC-3.
func businessLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.FixedZone("UTC-3", defaultBusinessOffset), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load BUSINESS_TZ %q: %w", name, err)
	}
	return loc, nil
}
