package salaryscale

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	activeScaleKeyPrefix = "salaryscale:active:"
	activeScaleTTL       = 10 * time.Minute
)

// ActiveScaleCache keeps the active scale version per tenant in redis. Scale
// data is read-mostly; the evaluator and the progression processor hit it on
// every unit of work. Singleflight collapses concurrent fills after an
// invalidation.
type ActiveScaleCache struct {
	rdb    *redis.Client
	repo   Repository
	group  singleflight.Group
	logger *zap.Logger
}

func NewActiveScaleCache(rdb *redis.Client, repo Repository, logger ...*zap.Logger) *ActiveScaleCache {
	l := zap.L().Named("salaryscale.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryscale.cache")
	}
	return &ActiveScaleCache{
		rdb:    rdb,
		repo:   repo,
		logger: l,
	}
}

func activeScaleKey(tenantID string) string {
	return activeScaleKeyPrefix + tenantID
}

// GetActive returns the tenant's active scale version, loading through on a
// cache miss. A redis outage degrades to direct repository reads.
func (c *ActiveScaleCache) GetActive(ctx context.Context, tenantID string) (*ScaleVersion, error) {
	key := activeScaleKey(tenantID)

	if c.rdb != nil {
		val, err := c.rdb.Get(ctx, key).Result()
		if err == nil {
			var v ScaleVersion
			if err := json.Unmarshal([]byte(val), &v); err == nil {
				return &v, nil
			}
			// Corrupt payload: drop it and fall through to the loader.
			_ = c.rdb.Del(ctx, key).Err()
		} else if !errors.Is(err, redis.Nil) {
			c.logger.Warn("active scale cache read failed", zap.String("tenant_id", tenantID), zap.Error(err))
		}
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, err := c.repo.FindActive(ctx, tenantID)
		if err != nil {
			return nil, err
		}

		if c.rdb != nil {
			payload, err := json.Marshal(v)
			if err == nil {
				if err := c.rdb.Set(ctx, key, payload, activeScaleTTL).Err(); err != nil {
					c.logger.Warn("active scale cache write failed", zap.String("tenant_id", tenantID), zap.Error(err))
				}
			}
		}

		return v, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*ScaleVersion), nil
}

// Invalidate drops the cached version. Called on every registry mutation.
func (c *ActiveScaleCache) Invalidate(ctx context.Context, tenantID string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, activeScaleKey(tenantID)).Err(); err != nil {
		c.logger.Warn("active scale cache invalidate failed", zap.String("tenant_id", tenantID), zap.Error(err))
	}
}
