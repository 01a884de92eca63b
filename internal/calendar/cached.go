package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"suimei/internal/bazi"
)

const (
	DefaultCacheTTL = 30 * 24 * time.Hour
	cacheKeyPrefix  = "suimei:calendar:v1"
)

// Cached stores oracle answers in redis. The answers for a given moment never change, so
// a long TTL is safe. Redis failures fall through to the wrapped oracle.
type Cached struct {
	next      Oracle
	client    *redis.Client
	ttl       time.Duration
	namespace string
	logger    *zap.Logger
}

type CacheConfig struct {
	TTL time.Duration
	// Namespace separates answers computed in different time zones.
	Namespace string
}

func NewCached(next Oracle, client *redis.Client, cfg CacheConfig, logger *zap.Logger) *Cached {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{next: next, client: client, ttl: cfg.TTL, namespace: cfg.Namespace, logger: logger}
}

func (c *Cached) ResolveMonthBranch(ctx context.Context, m Moment) (Resolution, error) {
	return cachedCall(ctx, c, c.key("month", m), func() (Resolution, error) {
		return c.next.ResolveMonthBranch(ctx, m)
	})
}

func (c *Cached) NextTransition(ctx context.Context, m Moment) (Transition, error) {
	return cachedCall(ctx, c, c.key("next", m), func() (Transition, error) {
		return c.next.NextTransition(ctx, m)
	})
}

func (c *Cached) PrevTransition(ctx context.Context, m Moment) (Transition, error) {
	return cachedCall(ctx, c, c.key("prev", m), func() (Transition, error) {
		return c.next.PrevTransition(ctx, m)
	})
}

// FourPillars forwards to the wrapped oracle when it is also a PillarSource.
func (c *Cached) FourPillars(ctx context.Context, m Moment, withHour bool) (bazi.FourPillars, error) {
	src, ok := c.next.(PillarSource)
	if !ok {
		return bazi.FourPillars{}, fmt.Errorf("%w: oracle has no pillar source", bazi.ErrCalendarResolution)
	}
	op := "pillars"
	if withHour {
		op = "pillars-hour"
	}
	return cachedCall(ctx, c, c.key(op, m), func() (bazi.FourPillars, error) {
		return src.FourPillars(ctx, m, withHour)
	})
}

func (c *Cached) key(op string, m Moment) string {
	return fmt.Sprintf("%s:%s:%s:%s", cacheKeyPrefix, c.namespace, op, m)
}

func cachedCall[T any](ctx context.Context, c *Cached, key string, fetch func() (T, error)) (T, error) {
	if c.client == nil {
		return fetch()
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		jsonErr := json.Unmarshal(raw, &v)
		if jsonErr == nil {
			return v, nil
		}
		c.logger.Warn("discarding undecodable calendar cache entry", zap.String("key", key), zap.Error(jsonErr))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("calendar cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("calendar cache encode failed", zap.String("key", key), zap.Error(err))
		return v, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("calendar cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
