package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/minhvo/profile-atlas/internal/domain/geocode"
	"github.com/minhvo/profile-atlas/pkg/logger"
)

const cacheKeyPrefix = "geocode:"

type cachedGeocoder struct {
	inner geocode.Geocoder
	rdb   *redis.Client
	ttl   time.Duration
	log   logger.Logger
}

// NewRedisCache wraps a geocoder with a read-through Redis cache keyed on the
// normalized address. Cache trouble is logged and degrades to a provider
// lookup; it never fails a resolve on its own.
func NewRedisCache(inner geocode.Geocoder, rdb *redis.Client, ttl time.Duration, log logger.Logger) geocode.Geocoder {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &cachedGeocoder{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

func (c *cachedGeocoder) Geocode(ctx context.Context, address string) (*geocode.Result, error) {
	key := cacheKeyPrefix + strings.ToLower(strings.TrimSpace(address))

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var cached geocode.Result
		if unmarshalErr := json.Unmarshal(raw, &cached); unmarshalErr == nil {
			return &cached, nil
		}
		c.log.Warn("Dropping corrupt geocode cache entry", zap.String("key", key))
		c.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("Geocode cache read failed", zap.Error(err))
	}

	result, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if raw, marshalErr := json.Marshal(result); marshalErr == nil {
		if setErr := c.rdb.Set(ctx, key, raw, c.ttl).Err(); setErr != nil {
			c.log.Warn("Geocode cache write failed", zap.Error(setErr))
		}
	}

	return result, nil
}
