package redis

import (
	"context"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

const (
	maxIdle     = 8
	maxActive   = 32
	idleTimeout = 5 * time.Minute
	pingAfter   = time.Minute
)

// NewRedisPool accepts either host:port or a redis:// URL.
func NewRedisPool(addr string, logger *zap.SugaredLogger) *redis.Pool {
	dial := func(ctx context.Context) (redis.Conn, error) {
		if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
			return redis.DialURL(addr)
		}
		return redis.DialContext(ctx, "tcp", addr)
	}

	pool := &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: idleTimeout,
		DialContext: dial,
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < pingAfter {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	closer.Bind(func() {
		if err := pool.Close(); err != nil {
			logger.Errorw("failed closing redis pool", "err", err)
		}
	})

	return pool
}
