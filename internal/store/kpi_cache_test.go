package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/pkg/helpers"
)

func TestKPICacheWithRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	c := NewKPICache(rdb, time.Minute)
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate error: %v", err)
	}

	miss, err := c.Get(ctx, dto.ScopeBoth)
	if err != nil || miss != nil {
		t.Fatalf("expected clean miss, got %v %v", miss, err)
	}

	resp := dto.KPIsResponse{
		OK:    true,
		Scope: dto.ScopeBoth,
		KPIs: map[string]dto.KpiDatum{
			dto.KPISerranoPlayersCount: {Label: "Serrano players", Value: helpers.Ptr(12.0)},
		},
	}
	if err := c.Set(ctx, dto.ScopeBoth, resp); err != nil {
		t.Fatalf("set error: %v", err)
	}

	hit, err := c.Get(ctx, dto.ScopeBoth)
	if err != nil || hit == nil {
		t.Fatalf("expected hit, got %v %v", hit, err)
	}
	if *hit.KPIs[dto.KPISerranoPlayersCount].Value != 12 {
		t.Errorf("unexpected cached value %+v", hit.KPIs)
	}

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate error: %v", err)
	}
	if again, _ := c.Get(ctx, dto.ScopeBoth); again != nil {
		t.Error("expected miss after invalidate")
	}
}
