package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/models"
	"github.com/GregMSThompson/serrano-dashboard/pkg/helpers"
)

const (
	topPlayersLimit   = 10
	topAgenciesLimit  = 10
	scatterPointLimit = 800
)

type rosterStore interface {
	Ages(ctx context.Context, f dto.WidgetFilters) ([]float64, error)
	Positions(ctx context.Context, f dto.WidgetFilters) ([]string, error)
	Agencies(ctx context.Context, f dto.WidgetFilters) ([]string, error)
	TopByMarketValue(ctx context.Context, f dto.WidgetFilters, limit int) ([]models.Player, error)
	AgeValuePoints(ctx context.Context, f dto.WidgetFilters, limit int) ([]models.Player, error)
	CountPlayers(ctx context.Context) (int64, error)
	SumMarketValue(ctx context.Context) (*float64, error)
	AvgAge(ctx context.Context) (*float64, error)
}

// rosterService loads the serrano.* and kpi.serrano.* widgets. Every player in
// the database belongs to the roster; club is the athlete's current club.
type rosterService struct {
	store rosterStore
	now   func() time.Time
}

func NewRosterService(store rosterStore) *rosterService {
	return &rosterService{store: store, now: time.Now}
}

func (s *rosterService) Load(ctx context.Context, widgetID string, f dto.WidgetFilters) dto.WidgetResponse {
	w, ok := s.loaders()[widgetID]
	if !ok {
		return emptyResponse(s.now(), widgetID, "This roster widget is not implemented yet.", "")
	}
	return run(ctx, s.now(), widgetID, f, w)
}

func (s *rosterService) loaders() map[string]widgetLoad {
	return map[string]widgetLoad{
		"serrano.age_distribution":         {s.ageDistribution, "Failed to load the age distribution."},
		"serrano.position_distribution":    {s.positionDistribution, "Failed to load the position distribution."},
		"serrano.market_value_top_players": {s.topMarketValue, "Failed to load the player ranking."},
		"serrano.age_vs_value_scatter":     {s.ageVsValue, "Failed to load age vs market value."},
		"serrano.representation_ranking":   {s.representationRanking, "Failed to load the agency ranking."},
		"serrano.value_over_time":          {s.valueOverTime, "Failed to load market value history."},
		"kpi.serrano.players_count":        {s.kpiPlayersCount, "Failed to load the player count."},
		"kpi.serrano.total_market_value":   {s.kpiTotalMarketValue, "Failed to load the total market value."},
		"kpi.serrano.avg_age":              {s.kpiAvgAge, "Failed to load the average age."},
	}
}

func (s *rosterService) ageDistribution(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	raw, err := s.store.Ages(ctx, f)
	if err != nil {
		return dto.Payload{}, err
	}

	ages := make([]float64, 0, len(raw))
	for _, a := range raw {
		if saneAge(a) {
			ages = append(ages, a)
		}
	}
	if len(ages) == 0 {
		return emptyPayload("No players match the applied filters.", "Check that players have their age filled in."), nil
	}

	return chart(dto.KindBar, binRecords(ageBins, ages, "band", "players"), "band", "players"), nil
}

func (s *rosterService) positionDistribution(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	positions, err := s.store.Positions(ctx, f)
	if err != nil {
		return dto.Payload{}, err
	}

	tallies := countTop(positions, 0)
	if len(tallies) == 0 {
		return emptyPayload("No positions match the applied filters.", "Check that players have a position filled in."), nil
	}

	data := make([]dto.Record, len(tallies))
	for i, t := range tallies {
		data[i] = dto.Record{"position": t.label, "players": t.count}
	}
	return chart(dto.KindBar, data, "position", "players"), nil
}

func (s *rosterService) topMarketValue(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	players, err := s.store.TopByMarketValue(ctx, f, topPlayersLimit)
	if err != nil {
		return dto.Payload{}, err
	}

	data := make([]dto.Record, 0, len(players))
	for _, p := range players {
		if p.MarketValue == nil {
			continue
		}
		data = append(data, dto.Record{
			"player":   displayLabel(p.Name),
			"value":    scaleMarketValue(*p.MarketValue),
			"position": optLabel(p.Position),
		})
	}
	if len(data) == 0 {
		return emptyPayload("No players with a market value were found.", "Check that the market value field is filled in."), nil
	}
	return chart(dto.KindBar, data, "player", "value"), nil
}

func (s *rosterService) ageVsValue(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	players, err := s.store.AgeValuePoints(ctx, f, scatterPointLimit)
	if err != nil {
		return dto.Payload{}, err
	}

	data := make([]dto.Record, 0, len(players))
	for _, p := range players {
		if p.Age == nil || p.MarketValue == nil || !saneAge(*p.Age) {
			continue
		}
		data = append(data, dto.Record{
			"age":      *p.Age,
			"value":    scaleMarketValue(*p.MarketValue),
			"position": optLabel(p.Position),
			"label":    p.Name,
		})
	}
	if len(data) == 0 {
		return emptyPayload("Not enough data for this chart.", "Fill in age and market value for more players."), nil
	}
	return chart(dto.KindScatter, data, "label", "age", "value"), nil
}

func (s *rosterService) representationRanking(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	agencies, err := s.store.Agencies(ctx, f)
	if err != nil {
		return dto.Payload{}, err
	}

	tallies := countTop(agencies, topAgenciesLimit)
	if len(tallies) == 0 {
		return emptyPayload("No agency data available.", "Check that players have an agency filled in."), nil
	}

	data := make([]dto.Record, len(tallies))
	for i, t := range tallies {
		data[i] = dto.Record{
			"agency":      t.label,
			"players":     t.count,
			"agencyShort": shortLabel(t.label),
		}
	}
	return chart(dto.KindBar, data, "agency", "players"), nil
}

// valueOverTime has no source data: valuations are stored as a single
// current figure per player.
func (s *rosterService) valueOverTime(_ context.Context, _ dto.WidgetFilters) (dto.Payload, error) {
	return emptyPayload("Market value history is not tracked yet.", "Only the current market value is stored per player."), nil
}

func (s *rosterService) kpiPlayersCount(ctx context.Context, _ dto.WidgetFilters) (dto.Payload, error) {
	n, err := s.store.CountPlayers(ctx)
	if err != nil {
		return dto.Payload{}, err
	}
	return kpiPayload("Serrano players", float64(n), ""), nil
}

func (s *rosterService) kpiTotalMarketValue(ctx context.Context, _ dto.WidgetFilters) (dto.Payload, error) {
	sum, err := s.store.SumMarketValue(ctx)
	if err != nil {
		return dto.Payload{}, err
	}
	return kpiPayload("Total market value", scaleMarketValue(helpers.Value(sum)), dto.UnitEUR), nil
}

func (s *rosterService) kpiAvgAge(ctx context.Context, _ dto.WidgetFilters) (dto.Payload, error) {
	avg, err := s.store.AvgAge(ctx)
	if err != nil {
		return dto.Payload{}, err
	}
	return kpiPayload("Average age", helpers.Value(avg), ""), nil
}
