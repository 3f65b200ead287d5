package dto

import (
	"time"
)

// Scope is the viewing or declared scope of a widget.
type Scope string

const (
	ScopeSerrano Scope = "serrano"
	ScopeMarket  Scope = "market"
	ScopeBoth    Scope = "both"
)

func (s Scope) Valid() bool {
	switch s {
	case ScopeSerrano, ScopeMarket, ScopeBoth:
		return true
	}
	return false
}

// ParseScope coerces unknown or empty values to ScopeBoth.
func ParseScope(raw string) Scope {
	s := Scope(raw)
	if !s.Valid() {
		return ScopeBoth
	}
	return s
}

// Size is the grid size hint of a widget card.
type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Group is the picker section a widget belongs to.
type Group string

const (
	GroupOverview    Group = "overview"
	GroupSerrano     Group = "serrano"
	GroupMarket      Group = "market"
	GroupCompare     Group = "compare"
	GroupFinance     Group = "finance"
	GroupPerformance Group = "performance"
)

// WidgetDefinition is an immutable catalog entry. IDs are persisted in user
// layouts and must not be renamed.
type WidgetDefinition struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Group          Group    `json:"group"`
	Scope          Scope    `json:"scope"`
	DefaultEnabled bool     `json:"defaultEnabled"`
	DefaultSize    Size     `json:"defaultSize"`
	Keywords       []string `json:"keywords"`
}

// Period is an inclusive YYYY-MM-DD date range; either bound may be empty.
type Period struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// WidgetFilters is built per request from query parameters and never persisted.
type WidgetFilters struct {
	Period    *Period  `json:"period,omitempty"`
	Position  []string `json:"position,omitempty"`
	Agency    []string `json:"agency,omitempty"`
	Situation []string `json:"situation,omitempty"`
	Foot      []string `json:"foot,omitempty"`
	Club      []string `json:"club,omitempty"`
	Country   []string `json:"country,omitempty"`
	League    []string `json:"league,omitempty"`
}

// IsZero reports whether no filter is set.
func (f WidgetFilters) IsZero() bool {
	return f.Period == nil &&
		len(f.Position) == 0 &&
		len(f.Agency) == 0 &&
		len(f.Situation) == 0 &&
		len(f.Foot) == 0 &&
		len(f.Club) == 0 &&
		len(f.Country) == 0 &&
		len(f.League) == 0
}

// PayloadKind tags the union carried by a successful widget response.
type PayloadKind string

const (
	KindKPI     PayloadKind = "kpi"
	KindBar     PayloadKind = "bar"
	KindLine    PayloadKind = "line"
	KindScatter PayloadKind = "scatter"
	KindGeoMap  PayloadKind = "geo_map"
	KindEmpty   PayloadKind = "empty"
)

// Record is one row of a chart series: string label fields and numeric metric fields.
type Record map[string]any

// Payload is the tagged widget data. Chart kinds declare LabelKey and SeriesKeys;
// empty payloads carry Reason and an optional Hint.
type Payload struct {
	Kind       PayloadKind `json:"kind"`
	Data       any         `json:"data,omitempty"`
	LabelKey   string      `json:"labelKey,omitempty"`
	SeriesKeys []string    `json:"seriesKeys,omitempty"`
	Reason     string      `json:"reason,omitempty"`
	Hint       string      `json:"hint,omitempty"`
}

// Records returns chart rows whether Data was built in-process or decoded from JSON.
func (p Payload) Records() []Record {
	switch d := p.Data.(type) {
	case []Record:
		return d
	case []map[string]any:
		out := make([]Record, len(d))
		for i, m := range d {
			out[i] = Record(m)
		}
		return out
	case []any:
		out := make([]Record, 0, len(d))
		for _, v := range d {
			if m, ok := v.(map[string]any); ok {
				out = append(out, Record(m))
			}
		}
		return out
	}
	return nil
}

// WidgetResponse is the envelope returned for every widget request.
// OK=false carries only a generic Error message.
type WidgetResponse struct {
	OK          bool           `json:"ok"`
	WidgetID    string         `json:"widgetId"`
	GeneratedAt *time.Time     `json:"generatedAt,omitempty"`
	Filters     *WidgetFilters `json:"filters,omitempty"`
	Payload     *Payload       `json:"payload,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// IsEmpty reports whether the envelope is a successful empty payload.
func (r WidgetResponse) IsEmpty() bool {
	return r.OK && r.Payload != nil && r.Payload.Kind == KindEmpty
}

// KpiDatum is a single headline figure. Value is nil when its scope is disabled.
type KpiDatum struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
	Unit  string   `json:"unit,omitempty"`
}

// KPI batch keys.
const (
	KPISerranoPlayersCount     = "serrano.players_count"
	KPISerranoTotalMarketValue = "serrano.total_market_value"
	KPISerranoAvgAge           = "serrano.avg_age"
	KPIMarketDealsCount        = "market.deals_count"
	KPIMarketTotalFee          = "market.total_fee"
	KPIMarketAvgFee            = "market.avg_fee"
)

const UnitEUR = "EUR"

// KPIsResponse is the batched KPI envelope keyed by scope.
type KPIsResponse struct {
	OK          bool                `json:"ok"`
	GeneratedAt *time.Time          `json:"generatedAt,omitempty"`
	Scope       Scope               `json:"scope,omitempty"`
	KPIs        map[string]KpiDatum `json:"kpis,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// CatalogResponse is returned by the catalog endpoint.
type CatalogResponse struct {
	Widgets []WidgetDefinition `json:"widgets"`
	Groups  []GroupInfo        `json:"groups"`
}

type GroupInfo struct {
	Group Group  `json:"group"`
	Label string `json:"label"`
}
