package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/errs"
	"github.com/GregMSThompson/serrano-dashboard/internal/models"
	"github.com/GregMSThompson/serrano-dashboard/pkg/logger"
)

const (
	transfersTable   = "transfers"
	leagueColumnKey  = "transfers.league_column"
	filterDateLayout = "2006-01-02"
)

// leagueColumnCandidates are checked in order; the first one present on the
// transfers table backs the league filter.
var leagueColumnCandidates = []string{
	"destination_league",
	"league_destination",
	"league",
	"destination_competition",
	"competition",
}

// marketStore runs raw aggregate SQL over transfers. Fees are EUR, unscaled.
type marketStore struct {
	db     *gorm.DB
	schema *cache.Cache
}

func NewMarketStore(db *gorm.DB) *marketStore {
	return &marketStore{
		db:     db,
		schema: cache.New(10*time.Minute, 20*time.Minute),
	}
}

// LeagueColumn returns the detected league column, or "" when the schema has
// none. Probe failures are not cached.
func (s *marketStore) LeagueColumn(ctx context.Context) string {
	if v, ok := s.schema.Get(leagueColumnKey); ok {
		return v.(string)
	}

	var cols []string
	err := s.db.WithContext(ctx).
		Table("information_schema.columns").
		Where("table_schema = current_schema() AND table_name = ?", transfersTable).
		Pluck("column_name", &cols).Error
	if err != nil {
		logger.FromContext(ctx).Warn("league column detection failed", "error", err)
		return ""
	}

	found := pickLeagueColumn(cols)
	s.schema.Set(leagueColumnKey, found, cache.DefaultExpiration)
	return found
}

func pickLeagueColumn(cols []string) string {
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c] = true
	}
	for _, c := range leagueColumnCandidates {
		if present[c] {
			return c
		}
	}
	return ""
}

func (s *marketStore) where(ctx context.Context, f dto.WidgetFilters) (string, []any) {
	leagueCol := ""
	if len(f.League) > 0 {
		leagueCol = s.LeagueColumn(ctx)
	}
	return buildWhere(f, leagueCol)
}

// buildWhere renders the filter predicates as AND-prefixed clauses. The period
// is inclusive on both ends at day granularity. The club filter matches either
// side of the transfer. The league filter is dropped when leagueCol is "".
func buildWhere(f dto.WidgetFilters, leagueCol string) (string, []any) {
	var (
		parts []string
		args  []any
	)

	if f.Period != nil {
		if from, err := time.Parse(filterDateLayout, f.Period.From); err == nil {
			parts = append(parts, "AND transfer_date >= ?")
			args = append(args, from)
		}
		if to, err := time.Parse(filterDateLayout, f.Period.To); err == nil {
			parts = append(parts, "AND transfer_date < ?")
			args = append(args, to.AddDate(0, 0, 1))
		}
	}
	if len(f.Position) > 0 {
		parts = append(parts, "AND athlete_position IN ?")
		args = append(args, f.Position)
	}
	if len(f.Country) > 0 {
		parts = append(parts, "AND destination_country IN ?")
		args = append(args, f.Country)
	}
	if len(f.Club) > 0 {
		parts = append(parts, "AND (origin_club IN ? OR destination_club IN ?)")
		args = append(args, f.Club, f.Club)
	}
	if len(f.League) > 0 && leagueCol != "" {
		parts = append(parts, fmt.Sprintf("AND %q IN ?", leagueCol))
		args = append(args, f.League)
	}

	return strings.Join(parts, " "), args
}

func (s *marketStore) raw(ctx context.Context, dest any, msg, query string, f dto.WidgetFilters) error {
	where, args := s.where(ctx, f)
	q := strings.Replace(query, "{{where}}", where, 1)
	if err := s.db.WithContext(ctx).Raw(q, args...).Scan(dest).Error; err != nil {
		return errs.NewDatabaseError("read", msg, err)
	}
	return nil
}

func (s *marketStore) DealsByMonth(ctx context.Context, f dto.WidgetFilters) ([]dto.MonthlyDeals, error) {
	var rows []dto.MonthlyDeals
	err := s.raw(ctx, &rows, "failed to count deals by month", `
		SELECT
			EXTRACT(YEAR FROM transfer_date)::int AS year,
			EXTRACT(MONTH FROM transfer_date)::int AS month,
			COUNT(*)::int AS deals
		FROM transfers
		WHERE transfer_date IS NOT NULL
		{{where}}
		GROUP BY year, month
		ORDER BY year ASC, month ASC`, f)
	return rows, err
}

func (s *marketStore) FeeByMonth(ctx context.Context, f dto.WidgetFilters) ([]dto.MonthlyFee, error) {
	var rows []dto.MonthlyFee
	err := s.raw(ctx, &rows, "failed to sum fees by month", `
		SELECT
			EXTRACT(YEAR FROM transfer_date)::int AS year,
			EXTRACT(MONTH FROM transfer_date)::int AS month,
			SUM(fee)::float8 AS value
		FROM transfers
		WHERE transfer_date IS NOT NULL
			AND fee IS NOT NULL
			AND fee > 0
		{{where}}
		GROUP BY year, month
		ORDER BY year ASC, month ASC`, f)
	return rows, err
}

// Fees returns every positive fee matching f.
func (s *marketStore) Fees(ctx context.Context, f dto.WidgetFilters) ([]float64, error) {
	var fees []float64
	err := s.raw(ctx, &fees, "failed to load fees", `
		SELECT fee::float8 AS fee
		FROM transfers
		WHERE fee IS NOT NULL
			AND fee > 0
		{{where}}`, f)
	return fees, err
}

// TopBuyers ranks destination clubs by total fee paid.
func (s *marketStore) TopBuyers(ctx context.Context, f dto.WidgetFilters, limit int) ([]dto.ClubTotal, error) {
	return s.clubTotals(ctx, f, "destination_club", limit)
}

// TopSellers ranks origin clubs by total fee received.
func (s *marketStore) TopSellers(ctx context.Context, f dto.WidgetFilters, limit int) ([]dto.ClubTotal, error) {
	return s.clubTotals(ctx, f, "origin_club", limit)
}

func (s *marketStore) clubTotals(ctx context.Context, f dto.WidgetFilters, col string, limit int) ([]dto.ClubTotal, error) {
	var rows []dto.ClubTotal
	query := fmt.Sprintf(`
		SELECT
			TRIM(%[1]s) AS club,
			SUM(fee)::float8 AS total
		FROM transfers
		WHERE %[1]s IS NOT NULL
			AND TRIM(%[1]s) <> ''
			AND fee IS NOT NULL
			AND fee > 0
		{{where}}
		GROUP BY TRIM(%[1]s)
		HAVING SUM(fee) > 0
		ORDER BY total DESC
		LIMIT %[2]d`, col, limit)
	err := s.raw(ctx, &rows, "failed to rank clubs by "+col, query, f)
	return rows, err
}

// TopDestinationCountries counts transfers per destination country.
func (s *marketStore) TopDestinationCountries(ctx context.Context, f dto.WidgetFilters, limit int) ([]dto.LabelCount, error) {
	var rows []dto.LabelCount
	query := fmt.Sprintf(`
		SELECT
			COALESCE(NULLIF(TRIM(destination_country), ''), '—') AS label,
			COUNT(*)::int AS deals
		FROM transfers
		WHERE 1=1
		{{where}}
		GROUP BY label
		ORDER BY deals DESC
		LIMIT %d`, limit)
	err := s.raw(ctx, &rows, "failed to rank destination countries", query, f)
	return rows, err
}

func (s *marketStore) AgeFeePoints(ctx context.Context, f dto.WidgetFilters, limit int) ([]dto.AgeFeePoint, error) {
	var rows []dto.AgeFeePoint
	query := fmt.Sprintf(`
		SELECT
			athlete_age::float8 AS age,
			fee::float8 AS fee,
			NULLIF(TRIM(athlete_position), '') AS position,
			NULLIF(TRIM(athlete_name), '') AS label
		FROM transfers
		WHERE athlete_age IS NOT NULL
			AND fee IS NOT NULL
			AND fee > 0
		{{where}}
		LIMIT %d`, limit)
	err := s.raw(ctx, &rows, "failed to load age/fee points", query, f)
	return rows, err
}

func (s *marketStore) PositionAvgFee(ctx context.Context, f dto.WidgetFilters) ([]dto.PositionFee, error) {
	var rows []dto.PositionFee
	err := s.raw(ctx, &rows, "failed to average fee by position", `
		SELECT
			COALESCE(NULLIF(TRIM(athlete_position), ''), '—') AS position,
			AVG(fee)::float8 AS avg_fee,
			COUNT(*)::int AS deals
		FROM transfers
		WHERE fee IS NOT NULL
			AND fee > 0
		{{where}}
		GROUP BY position
		ORDER BY avg_fee DESC`, f)
	return rows, err
}

func (s *marketStore) CountTransfers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Transfer{}).Count(&n).Error; err != nil {
		return 0, errs.NewDatabaseError("read", "failed to count transfers", err)
	}
	return n, nil
}

// FeeStats returns the total and average fee across all transfers.
func (s *marketStore) FeeStats(ctx context.Context) (total, avg *float64, err error) {
	var sum, mean sql.NullFloat64
	row := s.db.WithContext(ctx).Model(&models.Transfer{}).Select("SUM(fee)::float8, AVG(fee)::float8").Row()
	if err := row.Scan(&sum, &mean); err != nil {
		return nil, nil, errs.NewDatabaseError("read", "failed to aggregate fees", err)
	}
	if sum.Valid {
		total = &sum.Float64
	}
	if mean.Valid {
		avg = &mean.Float64
	}
	return total, avg, nil
}
