package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a shared Redis instance, for deployments running
// more than one replica. Entries are JSON-marshaled and expire through Redis's
// native TTL. Redis failures degrade to compute-and-log: a broken cache must
// never fail a theme request, since computation is pure and cheap.
type Redis[V any] struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// NewRedis creates a Redis-backed cache. A TTL of zero or less makes every
// call recompute.
func NewRedis[V any](client *redis.Client, ttl time.Duration, prefix string, logger *slog.Logger) *Redis[V] {
	return &Redis[V]{
		client: client,
		ttl:    ttl,
		prefix: prefix,
		logger: logger,
	}
}

func (r *Redis[V]) GetOrCompute(ctx context.Context, key string, compute ComputeFunc[V]) (V, error) {
	fullKey := r.prefix + key

	if r.ttl > 0 {
		data, err := r.client.Get(ctx, fullKey).Bytes()
		if err == nil {
			var value V
			if unmarshalErr := json.Unmarshal(data, &value); unmarshalErr == nil {
				return value, nil
			}
			// A corrupt entry is dropped and recomputed.
			r.logger.WarnContext(ctx, "dropping corrupt cache entry",
				slog.String("key", fullKey),
			)
			_ = r.client.Del(ctx, fullKey).Err()
		} else if err != redis.Nil {
			r.logger.WarnContext(ctx, "redis cache read failed, computing",
				slog.String("key", fullKey),
				slog.String("error", err.Error()),
			)
		}
	}

	value, err := compute(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	if r.ttl > 0 {
		data, marshalErr := json.Marshal(value)
		if marshalErr != nil {
			r.logger.WarnContext(ctx, "cache entry not stored, marshal failed",
				slog.String("key", fullKey),
				slog.String("error", marshalErr.Error()),
			)
			return value, nil
		}
		if setErr := r.client.Set(ctx, fullKey, data, r.ttl).Err(); setErr != nil {
			r.logger.WarnContext(ctx, "redis cache write failed",
				slog.String("key", fullKey),
				slog.String("error", setErr.Error()),
			)
		}
	}

	return value, nil
}
