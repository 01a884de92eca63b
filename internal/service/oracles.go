package service

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"suimei/internal/bazi"
	"suimei/internal/calendar"
)

// CalendarOracles builds lunar-go oracles, wrapped in the redis cache when a client is
// available.
func CalendarOracles(client *redis.Client, ttl time.Duration, policy bazi.HourPolicy, logger *zap.Logger) OracleFactory {
	return func(tz string) (calendar.Oracle, error) {
		oracle, err := calendar.NewLunar(tz, calendar.WithHourPolicy(policy))
		if err != nil {
			return nil, err
		}
		if client == nil {
			return oracle, nil
		}
		return calendar.NewCached(oracle, client, calendar.CacheConfig{TTL: ttl, Namespace: tz + ":" + policy.String()}, logger), nil
	}
}
