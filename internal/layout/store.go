package layout

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/errs"
	"github.com/GregMSThompson/serrano-dashboard/pkg/logger"
)

// Persister stores opaque layout bytes under a key. Read returns a
// *errs.NotFoundError when nothing has been stored yet.
type Persister interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}

// Store loads and saves one dashboard's layout. Persistence is best-effort:
// reads degrade to defaults and write failures are logged, never returned.
type Store struct {
	catalog   *catalog.Catalog
	persister Persister
}

func NewStore(c *catalog.Catalog, p Persister) *Store {
	return &Store{catalog: c, persister: p}
}

func (s *Store) Catalog() *catalog.Catalog { return s.catalog }

// LoadOrDefault never fails. Absent, unreadable or version-mismatched state
// yields the default layout.
func (s *Store) LoadOrDefault(ctx context.Context) dto.DashboardLayout {
	log := logger.FromContext(ctx)

	data, err := s.persister.Read(ctx, StorageKey)
	if err != nil {
		var nf *errs.NotFoundError
		if !errors.As(err, &nf) {
			log.Warn("layout read failed, using defaults", "error", err)
		}
		return Default(s.catalog)
	}
	if len(data) == 0 {
		return Default(s.catalog)
	}

	var l dto.DashboardLayout
	if err := json.Unmarshal(data, &l); err != nil {
		log.Warn("layout corrupt, using defaults", "error", err)
		return Default(s.catalog)
	}
	if l.Version != Version {
		log.Info("layout version mismatch, using defaults", "stored_version", l.Version, "version", Version)
		return Default(s.catalog)
	}
	return Sanitize(s.catalog, l)
}

// Save sanitizes l, persists it and returns what was stored.
func (s *Store) Save(ctx context.Context, l dto.DashboardLayout) dto.DashboardLayout {
	next := Sanitize(s.catalog, l)
	s.write(ctx, next)
	return next
}

// Reset overwrites the stored layout with defaults.
func (s *Store) Reset(ctx context.Context) dto.DashboardLayout {
	d := Default(s.catalog)
	s.write(ctx, d)
	return d
}

func (s *Store) write(ctx context.Context, l dto.DashboardLayout) {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(l)
	if err != nil {
		log.Error("layout encode failed", "error", err)
		return
	}
	if err := s.persister.Write(ctx, StorageKey, data); err != nil {
		log.Warn("layout write failed", "error", err)
	}
}
