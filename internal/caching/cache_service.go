// Package caching wraps redis for the read-heavy, rarely-written lookups:
// kennel settings (read on every booking create) and per-key rate limits.
// A stale settings read mid-operation is acceptable; settings changes are
// rare and do not race with bookings.
package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jamesruscoe/dog-kennel/internal/models"
)

type CacheService interface {
	// Settings caching; GetSettings returns (nil, nil) on a miss.
	GetSettings(ctx context.Context, companyID uuid.UUID) (*models.KennelSettings, error)
	SetSettings(ctx context.Context, settings *models.KennelSettings, ttl time.Duration) error
	DeleteSettings(ctx context.Context, companyID uuid.UUID) error

	// Allow implements a fixed-window rate limit on key.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("Redis ping failed on initialization")
	}

	return &redisCacheService{client: client}
}

func settingsKey(companyID uuid.UUID) string {
	return fmt.Sprintf("kennel:settings:%s", companyID)
}

func (c *redisCacheService) GetSettings(ctx context.Context, companyID uuid.UUID) (*models.KennelSettings, error) {
	data, err := c.client.Get(ctx, settingsKey(companyID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var settings models.KennelSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *redisCacheService) SetSettings(ctx context.Context, settings *models.KennelSettings, ttl time.Duration) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, settingsKey(settings.CompanyID), data, ttl).Err()
}

func (c *redisCacheService) DeleteSettings(ctx context.Context, companyID uuid.UUID) error {
	return c.client.Del(ctx, settingsKey(companyID)).Err()
}

func (c *redisCacheService) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// NoopCache disables caching; settings reads always hit the database.
type NoopCache struct{}

func (NoopCache) GetSettings(context.Context, uuid.UUID) (*models.KennelSettings, error) {
	return nil, nil
}

func (NoopCache) SetSettings(context.Context, *models.KennelSettings, time.Duration) error {
	return nil
}

func (NoopCache) DeleteSettings(context.Context, uuid.UUID) error { return nil }

func (NoopCache) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}
