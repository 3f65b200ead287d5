package composer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/layout"
)

// instantFetcher answers immediately and counts calls per widget.
type instantFetcher struct {
	mu        sync.Mutex
	calls     map[string]int
	kpiCalls  int
	failFor   map[string]bool
	lastScope dto.Scope
}

func newInstantFetcher() *instantFetcher {
	return &instantFetcher{calls: map[string]int{}, failFor: map[string]bool{}}
}

func (f *instantFetcher) FetchWidget(_ context.Context, id string, filters dto.WidgetFilters, scope dto.Scope) (dto.WidgetResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[id]++
	f.lastScope = scope
	if f.failFor[id] {
		return dto.WidgetResponse{}, errors.New("connection refused")
	}
	return dto.WidgetResponse{OK: true, WidgetID: id, Filters: &filters, Payload: &dto.Payload{Kind: dto.KindBar}}, nil
}

func (f *instantFetcher) FetchKPIs(_ context.Context, scope dto.Scope) (dto.KPIsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kpiCalls++
	return dto.KPIsResponse{OK: true, Scope: scope}, nil
}

func (f *instantFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// gatedCall is a widget fetch held open until the test releases it.
type gatedCall struct {
	ctx     context.Context
	id      string
	filters dto.WidgetFilters
	release chan struct{}
}

// gatedFetcher lets a test resolve widget fetches in any order. It ignores
// cancellation so a superseded fetch still delivers its response.
type gatedFetcher struct {
	started chan *gatedCall
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{started: make(chan *gatedCall, 16)}
}

func (f *gatedFetcher) FetchWidget(ctx context.Context, id string, filters dto.WidgetFilters, _ dto.Scope) (dto.WidgetResponse, error) {
	c := &gatedCall{ctx: ctx, id: id, filters: filters, release: make(chan struct{})}
	f.started <- c
	<-c.release
	return dto.WidgetResponse{OK: true, WidgetID: id, Filters: &c.filters, Payload: &dto.Payload{Kind: dto.KindBar}}, nil
}

func (f *gatedFetcher) FetchKPIs(_ context.Context, scope dto.Scope) (dto.KPIsResponse, error) {
	return dto.KPIsResponse{OK: true, Scope: scope}, nil
}

func (f *gatedFetcher) next(t *testing.T) *gatedCall {
	t.Helper()
	select {
	case c := <-f.started:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("fetch was not issued")
		return nil
	}
}

// gatedKPIFetcher answers widgets immediately and holds each KPI batch open
// until released. Like gatedFetcher it ignores cancellation.
type gatedKPIFetcher struct {
	*instantFetcher
	started chan *gatedKPICall
}

type gatedKPICall struct {
	ctx     context.Context
	scope   dto.Scope
	release chan struct{}
}

func newGatedKPIFetcher() *gatedKPIFetcher {
	return &gatedKPIFetcher{instantFetcher: newInstantFetcher(), started: make(chan *gatedKPICall, 16)}
}

func (f *gatedKPIFetcher) FetchKPIs(ctx context.Context, scope dto.Scope) (dto.KPIsResponse, error) {
	c := &gatedKPICall{ctx: ctx, scope: scope, release: make(chan struct{})}
	f.started <- c
	<-c.release
	return dto.KPIsResponse{OK: true, Scope: scope}, nil
}

func (f *gatedKPIFetcher) next(t *testing.T) *gatedKPICall {
	t.Helper()
	select {
	case c := <-f.started:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("kpi fetch was not issued")
		return nil
	}
}

func newStore(t *testing.T, enabled ...string) *layout.Store {
	t.Helper()
	s := layout.NewStore(catalog.Default(), layout.NewFilePersister(t.TempDir()))
	if len(enabled) > 0 {
		s.Save(context.Background(), dto.DashboardLayout{
			Version: layout.Version,
			Scope:   dto.ScopeBoth,
			Enabled: enabled,
			Order:   enabled,
		})
	}
	return s
}

func activeIDs(defs []dto.WidgetDefinition) []string {
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID
	}
	return ids
}

func TestStaleResponseNeverOverwritesNewer(t *testing.T) {
	fetcher := newGatedFetcher()
	e := New(context.Background(), newStore(t, "overview.geo_map"), fetcher)
	defer e.Close()

	filtersA := dto.WidgetFilters{Country: []string{"BR"}}
	filtersB := dto.WidgetFilters{Country: []string{"PT"}}

	e.SetFilters(filtersA)
	a := fetcher.next(t)
	e.SetFilters(filtersB)
	b := fetcher.next(t)

	// B resolves first, then the superseded A arrives late.
	close(b.release)
	close(a.release)
	e.Wait()

	snap := e.Snapshot()
	require.Len(t, snap.Cards, 1)
	st := snap.Cards[0].State
	require.NotNil(t, st.Response)
	assert.False(t, st.Loading)
	assert.Equal(t, []string{"PT"}, st.Response.Filters.Country)
	assert.Equal(t, uint64(2), st.Generation)
}

func TestStaleResponseArrivingFirstIsDiscarded(t *testing.T) {
	fetcher := newGatedFetcher()
	e := New(context.Background(), newStore(t, "overview.geo_map"), fetcher)
	defer e.Close()

	e.SetFilters(dto.WidgetFilters{League: []string{"A"}})
	a := fetcher.next(t)
	e.SetFilters(dto.WidgetFilters{League: []string{"B"}})
	b := fetcher.next(t)

	close(a.release)
	time.Sleep(20 * time.Millisecond)

	st := e.Snapshot().Cards[0].State
	assert.True(t, st.Loading, "stale response must not settle the card")

	close(b.release)
	e.Wait()

	st = e.Snapshot().Cards[0].State
	assert.False(t, st.Loading)
	assert.Equal(t, []string{"B"}, st.Response.Filters.League)
}

func TestStaleKPIBatchNeverOverwritesNewer(t *testing.T) {
	fetcher := newGatedKPIFetcher()
	e := New(context.Background(), newStore(t, "overview.geo_map"), fetcher)
	defer e.Close()

	e.SetScope(context.Background(), dto.ScopeSerrano)
	a := fetcher.next(t)
	e.SetScope(context.Background(), dto.ScopeMarket)
	b := fetcher.next(t)

	close(b.release)
	close(a.release)
	e.Wait()

	kpis := e.Snapshot().KPIs
	require.NotNil(t, kpis.Response)
	assert.False(t, kpis.Loading)
	assert.Equal(t, dto.ScopeMarket, kpis.Response.Scope)
	assert.Equal(t, uint64(2), kpis.Generation)
}

func TestSupersededFetchesAreCancelled(t *testing.T) {
	fetcher := newGatedFetcher()
	e := New(context.Background(), newStore(t, "overview.geo_map"), fetcher)
	defer e.Close()

	e.SetFilters(dto.WidgetFilters{Country: []string{"BR"}})
	a := fetcher.next(t)
	require.NoError(t, a.ctx.Err())

	e.SetFilters(dto.WidgetFilters{Country: []string{"PT"}})
	b := fetcher.next(t)

	select {
	case <-a.ctx.Done():
	default:
		t.Fatal("first generation ctx was not cancelled")
	}
	assert.ErrorIs(t, a.ctx.Err(), context.Canceled)
	assert.NoError(t, b.ctx.Err())

	close(a.release)
	close(b.release)
	e.Wait()
}

func TestSupersededKPIBatchIsCancelled(t *testing.T) {
	fetcher := newGatedKPIFetcher()
	e := New(context.Background(), newStore(t, "overview.geo_map"), fetcher)
	defer e.Close()

	e.SetScope(context.Background(), dto.ScopeSerrano)
	a := fetcher.next(t)
	e.SetFilters(dto.WidgetFilters{League: []string{"A"}})
	b := fetcher.next(t)

	assert.ErrorIs(t, a.ctx.Err(), context.Canceled)
	assert.NoError(t, b.ctx.Err())

	close(a.release)
	close(b.release)
	e.Wait()
}

func TestActiveFollowsOrderAndScope(t *testing.T) {
	s := newStore(t)
	s.Save(context.Background(), dto.DashboardLayout{
		Version: layout.Version,
		Scope:   dto.ScopeSerrano,
		Enabled: []string{"market.fee_by_month", "serrano.age_distribution", "overview.geo_map", "gone.widget"},
		Order:   []string{"overview.geo_map", "market.fee_by_month", "serrano.age_distribution", "serrano.position_distribution"},
	})

	e := New(context.Background(), s, newInstantFetcher())
	defer e.Close()

	assert.Equal(t, []string{"overview.geo_map", "serrano.age_distribution"}, activeIDs(e.Active()))

	e.SetScope(context.Background(), dto.ScopeMarket)
	e.Wait()
	assert.Equal(t, []string{"overview.geo_map", "market.fee_by_month"}, activeIDs(e.Active()))
}

func TestRefreshFetchesEachActiveWidgetOnce(t *testing.T) {
	fetcher := newInstantFetcher()
	e := New(context.Background(), newStore(t), fetcher)
	defer e.Close()

	e.Refresh()
	e.Wait()

	snap := e.Snapshot()
	require.Len(t, snap.Cards, len(catalog.Default().DefaultEnabled()))
	for _, c := range snap.Cards {
		assert.Equal(t, 1, fetcher.calls[c.Definition.ID], c.Definition.ID)
		assert.False(t, c.State.Loading)
		assert.False(t, c.State.Blank())
	}
	assert.Equal(t, 1, fetcher.kpiCalls)
	require.NotNil(t, snap.KPIs.Response)
	assert.Equal(t, dto.ScopeBoth, snap.KPIs.Response.Scope)
}

func TestSizeAndOrderChangesDoNotRefetch(t *testing.T) {
	fetcher := newInstantFetcher()
	e := New(context.Background(), newStore(t), fetcher)
	defer e.Close()

	e.Refresh()
	e.Wait()
	before := fetcher.total()

	e.SetSize(context.Background(), "serrano.age_distribution", dto.SizeLarge)
	e.Reorder(context.Background(), "serrano.age_distribution", 0)
	e.Wait()

	assert.Equal(t, before, fetcher.total())
	snap := e.Snapshot()
	assert.Equal(t, "serrano.age_distribution", snap.Cards[0].Definition.ID)
	assert.Equal(t, dto.SizeLarge, snap.Cards[0].Size)
}

func TestToggleOffDropsWidgetState(t *testing.T) {
	fetcher := newInstantFetcher()
	e := New(context.Background(), newStore(t, "overview.geo_map", "serrano.age_distribution"), fetcher)
	defer e.Close()

	e.Refresh()
	e.Wait()
	e.Toggle(context.Background(), "serrano.age_distribution")
	e.Wait()

	e.mu.Lock()
	_, kept := e.states["serrano.age_distribution"]
	e.mu.Unlock()
	assert.False(t, kept)
	assert.Equal(t, []string{"overview.geo_map"}, activeIDs(e.Active()))
}

func TestMutationsArePersisted(t *testing.T) {
	s := newStore(t)
	e := New(context.Background(), s, newInstantFetcher())

	e.Toggle(context.Background(), "market.fee_by_month")
	e.SetScope(context.Background(), dto.ScopeMarket)
	e.SetSize(context.Background(), "market.fee_by_month", dto.SizeSmall)
	e.Close()

	reloaded := s.LoadOrDefault(context.Background())
	assert.Equal(t, dto.ScopeMarket, reloaded.Scope)
	assert.True(t, reloaded.IsEnabled("market.fee_by_month"))
	assert.Equal(t, dto.SizeSmall, reloaded.Sizes["market.fee_by_month"])
}

func TestResetRestoresDefaults(t *testing.T) {
	e := New(context.Background(), newStore(t, "market.fee_by_month"), newInstantFetcher())
	defer e.Close()

	e.Reset(context.Background())
	e.Wait()

	assert.Equal(t, catalog.Default().DefaultEnabled(), activeIDs(e.Active()))
}

func TestFetchErrorShowsBlankCard(t *testing.T) {
	fetcher := newInstantFetcher()
	fetcher.failFor["overview.geo_map"] = true
	e := New(context.Background(), newStore(t, "overview.geo_map", "serrano.age_distribution"), fetcher)
	defer e.Close()

	e.Refresh()
	e.Wait()

	snap := e.Snapshot()
	require.Len(t, snap.Cards, 2)
	assert.True(t, snap.Cards[0].State.Blank())
	assert.Equal(t, "Could not load this widget.", snap.Cards[0].State.Message())
	assert.False(t, snap.Cards[1].State.Blank(), "sibling widget must still render")
}

func TestBlankTreatsErrorAndEmptyAlike(t *testing.T) {
	failed := WidgetState{Response: &dto.WidgetResponse{OK: false, Error: "Failed to load."}}
	empty := WidgetState{Response: &dto.WidgetResponse{OK: true, Payload: &dto.Payload{Kind: dto.KindEmpty, Reason: "No data."}}}
	loading := WidgetState{Loading: true}

	assert.True(t, failed.Blank())
	assert.True(t, empty.Blank())
	assert.False(t, loading.Blank())
	assert.Equal(t, "Failed to load.", failed.Message())
	assert.Equal(t, "No data.", empty.Message())
}

func TestSessionIDIsStable(t *testing.T) {
	e := New(context.Background(), newStore(t), newInstantFetcher())
	defer e.Close()

	assert.NotEmpty(t, e.SessionID())
	assert.Equal(t, e.SessionID(), e.Snapshot().SessionID)
}
