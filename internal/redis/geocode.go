package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geo"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geocode"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

const geocodeKeyPrefix = "geocode:"

// GeocodeCache serves repeated addresses from redis and falls through to next on a miss.
type GeocodeCache struct {
	pool   *redis.Pool
	next   geocode.Geocoder
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewGeocodeCache(pool *redis.Pool, next geocode.Geocoder, ttl time.Duration, logger *zap.SugaredLogger) *GeocodeCache {
	return &GeocodeCache{
		pool:   pool,
		next:   next,
		ttl:    ttl,
		logger: logger,
	}
}

type cachedPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c *GeocodeCache) Geocode(ctx context.Context, address string) (geo.Point, error) {
	key := geocodeKeyPrefix + geocode.NormalizeAddress(address)

	p, err := c.get(ctx, key)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, redis.ErrNil):
	default:
		c.logger.Warnw("geocode cache read failed", "address", address, "err", err)
	}

	p, err = c.next.Geocode(ctx, address)
	if err != nil {
		return geo.Point{}, err
	}

	if err := c.set(ctx, key, p); err != nil {
		c.logger.Warnw("geocode cache write failed", "address", address, "err", err)
	}

	return p, nil
}

func (c *GeocodeCache) get(ctx context.Context, key string) (geo.Point, error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return geo.Point{}, fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", key))
	if err != nil {
		return geo.Point{}, err
	}

	var cp cachedPoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return geo.Point{}, fmt.Errorf("decode cached point: %w", err)
	}

	return geo.Point{Lat: cp.Lat, Lng: cp.Lng}, nil
}

// setArgs expires entries after ttl rounded up to whole seconds; a
// non-positive ttl stores them without expiry.
func (c *GeocodeCache) setArgs(key string, data []byte) []interface{} {
	if c.ttl <= 0 {
		return []interface{}{key, data}
	}

	seconds := int64((c.ttl + time.Second - 1) / time.Second)
	return []interface{}{key, data, "EX", seconds}
}

func (c *GeocodeCache) set(ctx context.Context, key string, p geo.Point) error {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	data, err := json.Marshal(cachedPoint{Lat: p.Lat, Lng: p.Lng})
	if err != nil {
		return err
	}

	if _, err := conn.Do("SET", c.setArgs(key, data)...); err != nil {
		return fmt.Errorf("set: %w", err)
	}

	return nil
}
