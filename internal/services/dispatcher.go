package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/pkg/logger"
)

const unknownWidgetID = "unknown"

// WidgetLoader loads one family of widgets. It never returns an error: every
// outcome is an envelope.
type WidgetLoader interface {
	Load(ctx context.Context, widgetID string, f dto.WidgetFilters) dto.WidgetResponse
}

// LoadObserver records the outcome of each dispatched widget.
type LoadObserver interface {
	ObserveWidgetLoad(family, outcome string, elapsed time.Duration)
}

// route binds id prefixes to a loader. family is the widget scope the loader
// serves; a route with a nil loader answers with stub.
type route struct {
	name     string
	prefixes []string
	family   dto.Scope
	loader   WidgetLoader
	stub     string
}

func (r route) matches(id string) bool {
	for _, p := range r.prefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// Dispatcher resolves a widget id to its loader by namespace prefix. Routes
// are tried in order; an id no route claims resolves to an empty
// "not recognized" envelope.
type Dispatcher struct {
	routes   []route
	observer LoadObserver
	now      func() time.Time
}

// NewDispatcher wires the three loader families. observer may be nil.
func NewDispatcher(geo, roster, market WidgetLoader, observer LoadObserver) *Dispatcher {
	return &Dispatcher{
		routes: []route{
			{name: "overview", prefixes: []string{"overview."}, family: dto.ScopeBoth, loader: geo},
			{name: "serrano", prefixes: []string{"serrano.", "kpi.serrano."}, family: dto.ScopeSerrano, loader: roster},
			{name: "market", prefixes: []string{"market.", "kpi.market."}, family: dto.ScopeMarket, loader: market},
			{name: "compare", prefixes: []string{"compare."}, family: dto.ScopeBoth, stub: "Comparison widgets are not enabled yet."},
		},
		observer: observer,
		now:      time.Now,
	}
}

// Dispatch loads widgetID under the viewing scope. It never panics or errors:
// a widget whose family does not apply to scope is answered without querying,
// and a missing or unknown id degrades to an empty envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, widgetID string, f dto.WidgetFilters, scope dto.Scope) (resp dto.WidgetResponse) {
	start := d.now()
	family := "unknown"
	widgetID = strings.TrimSpace(widgetID)
	scope = dto.ParseScope(string(scope))
	log, ctx := logger.With(ctx, "widget_id", widgetID, "scope", scope)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("widget dispatch panicked", "panic", fmt.Sprint(rec))
			resp = emptyResponse(d.now(), d.responseID(widgetID), "Internal error while loading the widget.", "")
		}
		if d.observer != nil {
			d.observer.ObserveWidgetLoad(family, outcome(resp), d.now().Sub(start))
		}
	}()

	if widgetID == "" {
		return emptyResponse(d.now(), unknownWidgetID, "Widget parameter is missing or invalid.", "")
	}

	for _, r := range d.routes {
		if !r.matches(widgetID) {
			continue
		}
		family = r.name
		if !catalog.Compatible(scope, r.family) {
			return emptyResponse(d.now(), widgetID, fmt.Sprintf("Widget not applicable to the %s scope.", scope), "")
		}
		if r.loader == nil {
			return emptyResponse(d.now(), widgetID, r.stub, "")
		}
		return r.loader.Load(ctx, widgetID, f)
	}

	return emptyResponse(d.now(), widgetID, "Widget not recognized.", "")
}

func (d *Dispatcher) responseID(widgetID string) string {
	if widgetID == "" {
		return unknownWidgetID
	}
	return widgetID
}

func outcome(resp dto.WidgetResponse) string {
	switch {
	case !resp.OK:
		return "error"
	case resp.IsEmpty():
		return "empty"
	default:
		return "ok"
	}
}
