package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/errs"
)

const kpiCachePrefix = "dashboard:kpis:"

var cachedScopes = []dto.Scope{dto.ScopeSerrano, dto.ScopeMarket, dto.ScopeBoth}

// kpiCache keeps the last KPI batch per scope in Redis.
type kpiCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewKPICache(rdb *redis.Client, ttl time.Duration) *kpiCache {
	return &kpiCache{rdb: rdb, ttl: ttl}
}

func (c *kpiCache) key(scope dto.Scope) string {
	return kpiCachePrefix + string(scope)
}

// Get returns nil without error on a cache miss.
func (c *kpiCache) Get(ctx context.Context, scope dto.Scope) (*dto.KPIsResponse, error) {
	data, err := c.rdb.Get(ctx, c.key(scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewExternalServiceError("redis", "failed to read kpi cache", true, err)
	}

	var resp dto.KPIsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errs.NewExternalServiceError("redis", "corrupt kpi cache entry", false, err)
	}
	return &resp, nil
}

func (c *kpiCache) Set(ctx context.Context, scope dto.Scope, resp dto.KPIsResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, c.key(scope), data, c.ttl).Err(); err != nil {
		return errs.NewExternalServiceError("redis", "failed to write kpi cache", true, err)
	}
	return nil
}

// Invalidate drops every cached scope.
func (c *kpiCache) Invalidate(ctx context.Context) error {
	keys := make([]string, len(cachedScopes))
	for i, s := range cachedScopes {
		keys[i] = c.key(s)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return errs.NewExternalServiceError("redis", "failed to invalidate kpi cache", true, err)
	}
	return nil
}
