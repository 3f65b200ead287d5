package composer

import (
	"context"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/layout"
)

// Each mutation persists the whole layout. Scope, filter and active-set
// changes start a new fetch generation; order and size changes do not.

func (e *Engine) SetScope(ctx context.Context, scope dto.Scope) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layout = e.store.Save(ctx, layout.SetScope(e.layout, scope))
	e.refreshLocked()
}

func (e *Engine) Toggle(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layout = e.store.Save(ctx, layout.Toggle(e.layout, id))
	e.refreshLocked()
}

func (e *Engine) Reorder(ctx context.Context, id string, index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layout = e.store.Save(ctx, layout.Move(e.layout, id, index))
}

func (e *Engine) SetSize(ctx context.Context, id string, size dto.Size) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layout = e.store.Save(ctx, layout.SetSize(e.layout, id, size))
}

func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layout = e.store.Reset(ctx)
	e.refreshLocked()
}

// SetFilters replaces the request filters. Filters are never persisted.
func (e *Engine) SetFilters(f dto.WidgetFilters) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters = f
	e.refreshLocked()
}
