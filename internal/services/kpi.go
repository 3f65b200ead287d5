package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/pkg/helpers"
	"github.com/GregMSThompson/serrano-dashboard/pkg/logger"
)

// KPICache stores the last KPI batch per scope. A miss is (nil, nil).
type KPICache interface {
	Get(ctx context.Context, scope dto.Scope) (*dto.KPIsResponse, error)
	Set(ctx context.Context, scope dto.Scope, resp dto.KPIsResponse) error
	Invalidate(ctx context.Context) error
}

type kpiRosterStore interface {
	CountPlayers(ctx context.Context) (int64, error)
	SumMarketValue(ctx context.Context) (*float64, error)
	AvgAge(ctx context.Context) (*float64, error)
}

type kpiMarketStore interface {
	CountTransfers(ctx context.Context) (int64, error)
	FeeStats(ctx context.Context) (total, avg *float64, err error)
}

// kpiService computes the headline KPI batch for a scope. cache may be nil.
type kpiService struct {
	roster kpiRosterStore
	market kpiMarketStore
	cache  KPICache
	now    func() time.Time
}

func NewKPIService(roster kpiRosterStore, market kpiMarketStore, cache KPICache) *kpiService {
	return &kpiService{roster: roster, market: market, cache: cache, now: time.Now}
}

// Batch returns every KPI key. Keys belonging to a scope that is switched off
// carry a nil value. Failures produce OK=false with a generic message.
func (s *kpiService) Batch(ctx context.Context, scope dto.Scope) dto.KPIsResponse {
	log := logger.FromContext(ctx)
	scope = dto.ParseScope(string(scope))

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, scope)
		if err != nil {
			log.Warn("kpi cache read failed", "scope", scope, "error", err)
		} else if cached != nil {
			return *cached
		}
	}

	resp, err := s.compute(ctx, scope)
	if err != nil {
		log.Error("kpi batch failed", "scope", scope, "error", err)
		return dto.KPIsResponse{OK: false, Error: "Failed to load KPIs."}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, scope, resp); err != nil {
			log.Warn("kpi cache write failed", "scope", scope, "error", err)
		}
	}
	return resp
}

// Refresh drops every cached scope and recomputes the batch for scope.
func (s *kpiService) Refresh(ctx context.Context, scope dto.Scope) dto.KPIsResponse {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.FromContext(ctx).Warn("kpi cache invalidate failed", "error", err)
		}
	}
	return s.Batch(ctx, scope)
}

func (s *kpiService) compute(ctx context.Context, scope dto.Scope) (dto.KPIsResponse, error) {
	rosterOn := scope != dto.ScopeMarket
	marketOn := scope != dto.ScopeSerrano

	var (
		roster dto.RosterTotals
		market dto.MarketTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	if rosterOn {
		g.Go(func() (err error) {
			roster.Players, err = s.roster.CountPlayers(gctx)
			return err
		})
		g.Go(func() (err error) {
			roster.MarketValue, err = s.roster.SumMarketValue(gctx)
			return err
		})
		g.Go(func() (err error) {
			roster.AvgAge, err = s.roster.AvgAge(gctx)
			return err
		})
	}
	if marketOn {
		g.Go(func() (err error) {
			market.Deals, err = s.market.CountTransfers(gctx)
			return err
		})
		g.Go(func() (err error) {
			market.TotalFee, market.AvgFee, err = s.market.FeeStats(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return dto.KPIsResponse{}, err
	}

	enabled := func(on bool, v float64) *float64 {
		if !on {
			return nil
		}
		return &v
	}

	now := s.now()
	return dto.KPIsResponse{
		OK:          true,
		GeneratedAt: &now,
		Scope:       scope,
		KPIs: map[string]dto.KpiDatum{
			dto.KPISerranoPlayersCount: {
				Label: "Serrano players",
				Value: enabled(rosterOn, float64(roster.Players)),
			},
			dto.KPISerranoTotalMarketValue: {
				Label: "Total market value",
				Value: enabled(rosterOn, scaleMarketValue(helpers.Value(roster.MarketValue))),
				Unit:  dto.UnitEUR,
			},
			dto.KPISerranoAvgAge: {
				Label: "Average age",
				Value: enabled(rosterOn, helpers.Value(roster.AvgAge)),
			},
			dto.KPIMarketDealsCount: {
				Label: "Market deals",
				Value: enabled(marketOn, float64(market.Deals)),
			},
			dto.KPIMarketTotalFee: {
				Label: "Market fee volume",
				Value: enabled(marketOn, helpers.Value(market.TotalFee)),
				Unit:  dto.UnitEUR,
			},
			dto.KPIMarketAvgFee: {
				Label: "Average ticket",
				Value: enabled(marketOn, helpers.Value(market.AvgFee)),
				Unit:  dto.UnitEUR,
			},
		},
	}, nil
}
