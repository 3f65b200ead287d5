package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/pkg/helpers"
)

const (
	topClubsLimit     = 12
	topCountriesLimit = 12
)

type marketStore interface {
	DealsByMonth(ctx context.Context, f dto.WidgetFilters) ([]dto.MonthlyDeals, error)
	FeeByMonth(ctx context.Context, f dto.WidgetFilters) ([]dto.MonthlyFee, error)
	Fees(ctx context.Context, f dto.WidgetFilters) ([]float64, error)
	TopBuyers(ctx context.Context, f dto.WidgetFilters, limit int) ([]dto.ClubTotal, error)
	TopSellers(ctx context.Context, f dto.WidgetFilters, limit int) ([]dto.ClubTotal, error)
	TopDestinationCountries(ctx context.Context, f dto.WidgetFilters, limit int) ([]dto.LabelCount, error)
	AgeFeePoints(ctx context.Context, f dto.WidgetFilters, limit int) ([]dto.AgeFeePoint, error)
	PositionAvgFee(ctx context.Context, f dto.WidgetFilters) ([]dto.PositionFee, error)
	CountTransfers(ctx context.Context) (int64, error)
	FeeStats(ctx context.Context) (total, avg *float64, err error)
}

// marketService loads the market.* and kpi.market.* widgets. Fees are EUR.
type marketService struct {
	store marketStore
	now   func() time.Time
}

func NewMarketService(store marketStore) *marketService {
	return &marketService{store: store, now: time.Now}
}

func (s *marketService) Load(ctx context.Context, widgetID string, f dto.WidgetFilters) dto.WidgetResponse {
	w, ok := s.loaders()[widgetID]
	if !ok {
		return emptyResponse(s.now(), widgetID, "This market widget is not implemented yet.", "")
	}
	return run(ctx, s.now(), widgetID, f, w)
}

func (s *marketService) loaders() map[string]widgetLoad {
	return map[string]widgetLoad{
		"market.deals_by_month":        {s.dealsByMonth, "Failed to load deals by month."},
		"market.fee_by_month":          {s.feeByMonth, "Failed to load fees by month."},
		"market.fee_distribution":      {s.feeDistribution, "Failed to load the fee distribution."},
		"market.top_buyers_sellers":    {s.topBuyersSellers, "Failed to load the club ranking."},
		"market.top_leagues_countries": {s.topCountries, "Failed to load destination countries."},
		"market.age_vs_fee_scatter":    {s.ageVsFee, "Failed to load age vs transfer fee."},
		"market.position_avg_fee":      {s.positionAvgFee, "Failed to load average fee by position."},
		"kpi.market.deals_count":       {s.kpiDealsCount, "Failed to load the deal count."},
		"kpi.market.total_fee":         {s.kpiTotalFee, "Failed to load the total fee."},
		"kpi.market.avg_fee":           {s.kpiAvgFee, "Failed to load the average fee."},
	}
}

func monthLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func (s *marketService) dealsByMonth(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	rows, err := s.store.DealsByMonth(ctx, f)
	if err != nil {
		return dto.Payload{}, err
	}
	if len(rows) == 0 {
		return emptyPayload("No transfers in the selected period.", ""), nil
	}

	data := make([]dto.Record, len(rows))
	for i, r := range rows {
		data[i] = dto.Record{"period": monthLabel(r.Year, r.Month), "deals": r.Deals}
	}
	return chart(dto.KindLine, data, "period", "deals"), nil
}

func (s *marketService) feeByMonth(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	rows, err := s.store.FeeByMonth(ctx, f)
	if err != nil {
		return dto.Payload{}, err
	}
	if len(rows) == 0 {
		return emptyPayload("No fees moved in the selected period.", ""), nil
	}

	data := make([]dto.Record, len(rows))
	for i, r := range rows {
		data[i] = dto.Record{"period": monthLabel(r.Year, r.Month), "value": r.Value}
	}
	return chart(dto.KindBar, data, "period", "value"), nil
}

func (s *marketService) feeDistribution(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	fees, err := s.store.Fees(ctx, f)
	if err != nil {
		return dto.Payload{}, err
	}
	if len(fees) == 0 {
		return emptyPayload("No transfer fees to build the distribution.", ""), nil
	}
	return chart(dto.KindBar, binRecords(feeBins, fees, "band", "transfers"), "band", "transfers"), nil
}

func (s *marketService) topBuyersSellers(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	buyers, err := s.store.TopBuyers(ctx, f, topClubsLimit)
	if err != nil {
		return dto.Payload{}, err
	}
	sellers, err := s.store.TopSellers(ctx, f, topClubsLimit)
	if err != nil {
		return dto.Payload{}, err
	}

	ranks := mergeBuyerSeller(buyers, sellers, topClubsLimit)
	if len(ranks) == 0 {
		return emptyPayload("Not enough fee volume for a ranking.", ""), nil
	}

	data := make([]dto.Record, len(ranks))
	for i, r := range ranks {
		data[i] = dto.Record{"club": r.club, "buyerTotal": r.buyer, "sellerTotal": r.seller}
	}
	return chart(dto.KindBar, data, "club", "buyerTotal", "sellerTotal"), nil
}

// topCountries ranks destination countries by deal count. It carries a single
// numeric series so the chart has one unambiguous axis.
func (s *marketService) topCountries(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	rows, err := s.store.TopDestinationCountries(ctx, f, topCountriesLimit)
	if err != nil {
		return dto.Payload{}, err
	}
	if len(rows) == 0 {
		return emptyPayload("Not enough data for this distribution.", ""), nil
	}

	data := make([]dto.Record, len(rows))
	for i, r := range rows {
		data[i] = dto.Record{"label": displayLabel(r.Label), "deals": r.Deals}
	}
	return chart(dto.KindBar, data, "label", "deals"), nil
}

func (s *marketService) ageVsFee(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	rows, err := s.store.AgeFeePoints(ctx, f, scatterPointLimit)
	if err != nil {
		return dto.Payload{}, err
	}

	points := make([]dto.AgeFeePoint, 0, len(rows))
	for _, r := range rows {
		if r.Age == nil || r.Fee == nil || !saneAge(*r.Age) {
			continue
		}
		points = append(points, r)
	}
	if len(points) == 0 {
		return emptyPayload("Not enough data for this chart (age/fee).", "Check that athlete age and fee are filled in on transfers."), nil
	}
	sort.SliceStable(points, func(i, j int) bool { return *points[i].Age < *points[j].Age })

	data := make([]dto.Record, len(points))
	for i, p := range points {
		data[i] = dto.Record{
			"age":      *p.Age,
			"fee":      *p.Fee,
			"position": optLabel(p.Position),
			"label":    optLabel(p.Label),
		}
	}
	return chart(dto.KindScatter, data, "label", "age", "fee"), nil
}

func (s *marketService) positionAvgFee(ctx context.Context, f dto.WidgetFilters) (dto.Payload, error) {
	rows, err := s.store.PositionAvgFee(ctx, f)
	if err != nil {
		return dto.Payload{}, err
	}
	if len(rows) == 0 {
		return emptyPayload("No fee data by position.", ""), nil
	}

	data := make([]dto.Record, len(rows))
	for i, r := range rows {
		data[i] = dto.Record{"position": displayLabel(r.Position), "avgFee": r.AvgFee, "deals": r.Deals}
	}
	return chart(dto.KindBar, data, "position", "avgFee", "deals"), nil
}

func (s *marketService) kpiDealsCount(ctx context.Context, _ dto.WidgetFilters) (dto.Payload, error) {
	n, err := s.store.CountTransfers(ctx)
	if err != nil {
		return dto.Payload{}, err
	}
	return kpiPayload("Market deals", float64(n), ""), nil
}

func (s *marketService) kpiTotalFee(ctx context.Context, _ dto.WidgetFilters) (dto.Payload, error) {
	total, _, err := s.store.FeeStats(ctx)
	if err != nil {
		return dto.Payload{}, err
	}
	return kpiPayload("Market fee volume", helpers.Value(total), dto.UnitEUR), nil
}

func (s *marketService) kpiAvgFee(ctx context.Context, _ dto.WidgetFilters) (dto.Payload, error) {
	_, avg, err := s.store.FeeStats(ctx)
	if err != nil {
		return dto.Payload{}, err
	}
	return kpiPayload("Average ticket", helpers.Value(avg), dto.UnitEUR), nil
}
