package store

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/errs"
	"github.com/GregMSThompson/serrano-dashboard/internal/models"
)

// rosterStore reads the player table. Market values come back in millions;
// scaling is the caller's job.
type rosterStore struct {
	db *gorm.DB
}

func NewRosterStore(db *gorm.DB) *rosterStore {
	return &rosterStore{db: db}
}

func (s *rosterStore) filtered(ctx context.Context, f dto.WidgetFilters) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Player{})
	if len(f.Position) > 0 {
		q = q.Where("position IN ?", f.Position)
	}
	if len(f.Agency) > 0 {
		q = q.Where("agency IN ?", f.Agency)
	}
	if len(f.Situation) > 0 {
		q = q.Where("situation IN ?", f.Situation)
	}
	if len(f.Foot) > 0 {
		q = q.Where("dominant_foot IN ?", f.Foot)
	}
	return q
}

func (s *rosterStore) Ages(ctx context.Context, f dto.WidgetFilters) ([]float64, error) {
	var ages []float64
	if err := s.filtered(ctx, f).Where("age IS NOT NULL").Pluck("age", &ages).Error; err != nil {
		return nil, errs.NewDatabaseError("read", "failed to load player ages", err)
	}
	return ages, nil
}

func (s *rosterStore) Positions(ctx context.Context, f dto.WidgetFilters) ([]string, error) {
	var positions []string
	if err := s.filtered(ctx, f).Where("position IS NOT NULL").Pluck("position", &positions).Error; err != nil {
		return nil, errs.NewDatabaseError("read", "failed to load player positions", err)
	}
	return positions, nil
}

func (s *rosterStore) Agencies(ctx context.Context, f dto.WidgetFilters) ([]string, error) {
	var agencies []string
	if err := s.filtered(ctx, f).Where("agency IS NOT NULL").Pluck("agency", &agencies).Error; err != nil {
		return nil, errs.NewDatabaseError("read", "failed to load player agencies", err)
	}
	return agencies, nil
}

// TopByMarketValue returns at most limit valued players, most valuable first.
func (s *rosterStore) TopByMarketValue(ctx context.Context, f dto.WidgetFilters, limit int) ([]models.Player, error) {
	var players []models.Player
	err := s.filtered(ctx, f).
		Select("id", "name", "market_value", "position").
		Where("market_value IS NOT NULL").
		Order("market_value DESC").
		Limit(limit).
		Find(&players).Error
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to rank players by market value", err)
	}
	return players, nil
}

// AgeValuePoints returns at most limit players with both age and market value.
func (s *rosterStore) AgeValuePoints(ctx context.Context, f dto.WidgetFilters, limit int) ([]models.Player, error) {
	var players []models.Player
	err := s.filtered(ctx, f).
		Select("id", "name", "age", "market_value", "position").
		Where("age IS NOT NULL AND market_value IS NOT NULL").
		Limit(limit).
		Find(&players).Error
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to load age/value points", err)
	}
	return players, nil
}

// PlayersWithClubs loads the full roster with each player's club.
func (s *rosterStore) PlayersWithClubs(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	err := s.db.WithContext(ctx).
		Select("id", "name", "position", "photo_url", "club_id").
		Preload("Club").
		Find(&players).Error
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to load players with clubs", err)
	}
	return players, nil
}

func (s *rosterStore) CountPlayers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Player{}).Count(&n).Error; err != nil {
		return 0, errs.NewDatabaseError("read", "failed to count players", err)
	}
	return n, nil
}

// SumMarketValue returns the roster total in millions, nil when no player is valued.
func (s *rosterStore) SumMarketValue(ctx context.Context) (*float64, error) {
	return s.aggregate(ctx, "SUM(market_value)", "failed to sum market value")
}

func (s *rosterStore) AvgAge(ctx context.Context) (*float64, error) {
	return s.aggregate(ctx, "AVG(age)", "failed to average player age")
}

func (s *rosterStore) aggregate(ctx context.Context, expr, msg string) (*float64, error) {
	var v sql.NullFloat64
	row := s.db.WithContext(ctx).Model(&models.Player{}).Select(expr).Row()
	if err := row.Scan(&v); err != nil {
		return nil, errs.NewDatabaseError("read", msg, err)
	}
	if !v.Valid {
		return nil, nil
	}
	return &v.Float64, nil
}
