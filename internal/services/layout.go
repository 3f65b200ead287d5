package services

import (
	"context"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/layout"
)

// PersisterFor returns the layout persister scoped to one user.
type PersisterFor func(uid string) layout.Persister

// layoutService keeps a server-side copy of each user's dashboard layout with
// the same default and sanitize rules as the client store.
type layoutService struct {
	catalog      *catalog.Catalog
	persisterFor PersisterFor
}

func NewLayoutService(c *catalog.Catalog, persisterFor PersisterFor) *layoutService {
	return &layoutService{catalog: c, persisterFor: persisterFor}
}

func (s *layoutService) store(uid string) *layout.Store {
	return layout.NewStore(s.catalog, s.persisterFor(uid))
}

func (s *layoutService) Get(ctx context.Context, uid string) dto.DashboardLayout {
	return s.store(uid).LoadOrDefault(ctx)
}

// Save returns the sanitized layout even when persisting it failed.
func (s *layoutService) Save(ctx context.Context, uid string, l dto.DashboardLayout) dto.DashboardLayout {
	return s.store(uid).Save(ctx, l)
}

func (s *layoutService) Reset(ctx context.Context, uid string) dto.DashboardLayout {
	return s.store(uid).Reset(ctx)
}
