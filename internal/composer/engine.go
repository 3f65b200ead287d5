package composer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/layout"
	"github.com/GregMSThompson/serrano-dashboard/pkg/logger"
)

// Fetcher retrieves widget envelopes and the KPI batch. Implementations must
// honour ctx cancellation but the engine does not rely on it for correctness.
type Fetcher interface {
	FetchWidget(ctx context.Context, widgetID string, f dto.WidgetFilters, scope dto.Scope) (dto.WidgetResponse, error)
	FetchKPIs(ctx context.Context, scope dto.Scope) (dto.KPIsResponse, error)
}

// Engine composes one dashboard session: it derives the active widgets from
// the layout and catalog, fans out one fetch per widget plus a KPI batch,
// and commits results only when they belong to the latest generation.
type Engine struct {
	sessionID string
	catalog   *catalog.Catalog
	store     *layout.Store
	fetcher   Fetcher

	// base outlives individual calls; Close cancels it.
	base      context.Context
	closeBase context.CancelFunc

	mu      sync.Mutex
	layout  dto.DashboardLayout
	filters dto.WidgetFilters
	gen     uint64
	cancel  context.CancelFunc
	states  map[string]*WidgetState
	kpis    KPIState

	inflight sync.WaitGroup
}

// New loads the persisted layout and returns an idle engine. Call Refresh to
// issue the first fetch round.
func New(ctx context.Context, store *layout.Store, fetcher Fetcher) *Engine {
	sessionID := uuid.NewString()
	_, ctx = logger.With(ctx, "session_id", sessionID)
	base, closeBase := context.WithCancel(context.WithoutCancel(ctx))

	return &Engine{
		sessionID: sessionID,
		catalog:   store.Catalog(),
		store:     store,
		fetcher:   fetcher,
		base:      base,
		closeBase: closeBase,
		layout:    store.LoadOrDefault(ctx),
		states:    map[string]*WidgetState{},
	}
}

func (e *Engine) SessionID() string { return e.sessionID }

// Active returns the widgets to render: enabled and known to the catalog,
// in layout order, compatible with the viewing scope.
func (e *Engine) Active() []dto.WidgetDefinition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeLocked()
}

func (e *Engine) activeLocked() []dto.WidgetDefinition {
	out := make([]dto.WidgetDefinition, 0, len(e.layout.Order))
	for _, id := range e.layout.Order {
		if !e.layout.IsEnabled(id) {
			continue
		}
		def, ok := e.catalog.Find(id)
		if !ok || !catalog.Compatible(e.layout.Scope, def.Scope) {
			continue
		}
		out = append(out, def)
	}
	return out
}

// Refresh cancels every in-flight fetch and starts a new generation.
func (e *Engine) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refreshLocked()
}

func (e *Engine) refreshLocked() {
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(e.base)
	e.cancel = cancel
	e.gen++
	gen := e.gen
	scope := e.layout.Scope
	filters := e.filters

	active := e.activeLocked()
	keep := make(map[string]bool, len(active))
	for _, def := range active {
		keep[def.ID] = true
		prev := e.states[def.ID]
		next := &WidgetState{Loading: true, Generation: gen}
		if prev != nil {
			next.Response = prev.Response
		}
		e.states[def.ID] = next

		e.inflight.Add(1)
		go e.fetchWidget(ctx, gen, def.ID, filters, scope)
	}
	for id := range e.states {
		if !keep[id] {
			delete(e.states, id)
		}
	}

	e.kpis = KPIState{Loading: true, Generation: gen, Response: e.kpis.Response}
	e.inflight.Add(1)
	go e.fetchKPIs(ctx, gen, scope)
}

func (e *Engine) fetchWidget(ctx context.Context, gen uint64, id string, f dto.WidgetFilters, scope dto.Scope) {
	defer e.inflight.Done()

	resp, err := e.fetcher.FetchWidget(ctx, id, f, scope)

	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.states[id]
	if gen != e.gen || !ok || st.Generation != gen {
		logger.FromContext(ctx).Debug("stale widget response discarded", "widget_id", id, "generation", gen, "current", e.gen)
		return
	}
	if err != nil {
		logger.FromContext(ctx).Warn("widget fetch failed", "widget_id", id, "error", err)
		e.states[id] = &WidgetState{Generation: gen, Err: err}
		return
	}
	e.states[id] = &WidgetState{Generation: gen, Response: &resp}
}

func (e *Engine) fetchKPIs(ctx context.Context, gen uint64, scope dto.Scope) {
	defer e.inflight.Done()

	resp, err := e.fetcher.FetchKPIs(ctx, scope)

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		logger.FromContext(ctx).Debug("stale kpi response discarded", "generation", gen, "current", e.gen)
		return
	}
	if err != nil {
		logger.FromContext(ctx).Warn("kpi fetch failed", "error", err)
		e.kpis = KPIState{Generation: gen, Err: err}
		return
	}
	e.kpis = KPIState{Generation: gen, Response: &resp}
}

// Wait blocks until every fetch started so far has returned.
func (e *Engine) Wait() {
	e.inflight.Wait()
}

// Close cancels outstanding fetches and waits for them to return.
func (e *Engine) Close() {
	e.closeBase()
	e.Wait()
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	active := e.activeLocked()
	cards := make([]Card, 0, len(active))
	for _, def := range active {
		c := Card{Definition: def, Size: layout.SizeOf(e.catalog, e.layout, def.ID)}
		if st, ok := e.states[def.ID]; ok {
			c.State = *st
		}
		cards = append(cards, c)
	}

	return Snapshot{
		SessionID:  e.sessionID,
		Generation: e.gen,
		Layout:     e.layout.Clone(),
		Filters:    e.filters,
		Cards:      cards,
		KPIs:       e.kpis,
	}
}
