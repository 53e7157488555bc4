package reminder

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker не даёт двум экземплярам отправить один и тот же дайджест.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type RedisLocker struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisLocker(rdb *redis.Client, prefix string) *RedisLocker {
	// Разделитель добавляет key, поэтому хвостовые ":" у префикса отбрасываются.
	if prefix = strings.TrimRight(prefix, ":"); prefix == "" {
		prefix = "digest"
	}
	return &RedisLocker{rdb: rdb, prefix: prefix}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.rdb.SetNX(ctx, l.key(key), time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, l.key(key)).Err()
}

func (l *RedisLocker) key(k string) string {
	return l.prefix + ":" + k
}

type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, string, time.Duration) (bool, error) { return true, nil }

func (NoopLocker) Release(context.Context, string) error { return nil }
