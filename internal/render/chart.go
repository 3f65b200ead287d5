package render

import (
	"sort"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
)

type Shape string

const (
	ShapeBar     Shape = "bar"
	ShapeLine    Shape = "line"
	ShapeScatter Shape = "scatter"
	ShapeKPI     Shape = "kpi"
	ShapeGeoMap  Shape = "geo_map"
	ShapeNone    Shape = "none"
)

type AxisSide string

const (
	AxisLeft  AxisSide = "left"
	AxisRight AxisSide = "right"
)

type Series struct {
	Key   string
	Money bool
	Axis  AxisSide
}

// ScatterAxes describes the numeric x/y plane of a scatter chart.
type ScatterAxes struct {
	XKey   string
	YKey   string
	XMin   float64
	XMax   float64
	XTicks []int
	Points []dto.Record
}

// Chart is the presentation decision for one payload.
type Chart struct {
	Shape        Shape
	Size         dto.Size
	LabelKey     string
	Series       []Series
	DualAxis     bool
	RotateLabels bool
	// YearTicks replaces the category ticks of a monthly axis.
	YearTicks []string
	Records   []dto.Record
	Scatter   *ScatterAxes
	KPI       *dto.KpiDatum
	Geo       any
	Reason    string
}

// labelPriority lists the category keys preferred over sniffing.
var labelPriority = []string{
	"period", "band", "position", "player", "club", "agency", "label", "country", "league",
}

// Select decides how a payload is drawn at the given card size. Declared
// label and series keys win; payloads without them are sniffed from their
// first well-formed record.
func Select(p dto.Payload, size dto.Size) Chart {
	c := Chart{Shape: ShapeNone, Size: size}

	switch p.Kind {
	case dto.KindKPI:
		if d, ok := kpiDatum(p.Data); ok {
			c.Shape = ShapeKPI
			c.KPI = &d
		}
		return c
	case dto.KindGeoMap:
		c.Shape = ShapeGeoMap
		c.Geo = p.Data
		return c
	case dto.KindEmpty:
		c.Reason = p.Reason
		return c
	case dto.KindBar, dto.KindLine, dto.KindScatter:
	default:
		return c
	}

	records := p.Records()
	if len(records) == 0 {
		return c
	}
	sample := pickSample(records, p.LabelKey, p.SeriesKeys)
	labelKey := pickLabelKey(sample, p.LabelKey)
	seriesKeys := pickSeriesKeys(sample, labelKey, p.SeriesKeys)
	if len(seriesKeys) == 0 {
		return c
	}

	if p.Kind == dto.KindScatter {
		return selectScatter(c, records, labelKey, seriesKeys)
	}

	c.Shape = ShapeBar
	if p.Kind == dto.KindLine {
		c.Shape = ShapeLine
	}
	c.LabelKey = labelKey
	c.Records = records
	c.YearTicks = YearTicks(records, labelKey)
	c.RotateLabels = c.Shape == ShapeBar && labelKey != "period" && len(records) <= 14

	var money, count []string
	for _, k := range seriesKeys {
		if IsMoneyKey(k) {
			money = append(money, k)
		} else {
			count = append(count, k)
		}
	}
	c.DualAxis = c.Shape == ShapeBar && len(money) == 1 && len(count) == 1

	for _, k := range seriesKeys {
		s := Series{Key: k, Money: IsMoneyKey(k), Axis: AxisLeft}
		if c.DualAxis && !s.Money {
			s.Axis = AxisRight
		}
		c.Series = append(c.Series, s)
	}
	return c
}

func selectScatter(c Chart, records []dto.Record, labelKey string, seriesKeys []string) Chart {
	if len(seriesKeys) < 2 {
		return c
	}
	xKey, yKey := seriesKeys[0], seriesKeys[1]

	var points []dto.Record
	var xs []float64
	for _, r := range records {
		x, okX := number(r[xKey])
		_, okY := number(r[yKey])
		if !okX || !okY {
			continue
		}
		points = append(points, r)
		xs = append(xs, x)
	}
	if len(points) == 0 {
		return c
	}

	lo, hi := domain(xs)
	c.Shape = ShapeScatter
	c.LabelKey = labelKey
	c.Records = points
	c.Series = []Series{
		{Key: xKey, Money: IsMoneyKey(xKey), Axis: AxisLeft},
		{Key: yKey, Money: IsMoneyKey(yKey), Axis: AxisLeft},
	}
	c.Scatter = &ScatterAxes{
		XKey:   xKey,
		YKey:   yKey,
		XMin:   lo,
		XMax:   hi,
		XTicks: IntegerTicks(lo, hi, c.Size),
		Points: points,
	}
	return c
}

// pickSample returns the first record holding every declared key with no
// NaN or infinite values, falling back to the first record.
func pickSample(records []dto.Record, labelKey string, seriesKeys []string) dto.Record {
	for _, r := range records {
		if wellFormed(r, labelKey, seriesKeys) {
			return r
		}
	}
	return records[0]
}

func wellFormed(r dto.Record, labelKey string, seriesKeys []string) bool {
	if labelKey != "" {
		if _, ok := r[labelKey]; !ok {
			return false
		}
	}
	for _, k := range seriesKeys {
		if !isNumeric(r[k]) {
			return false
		}
	}
	for _, v := range r {
		switch n := v.(type) {
		case float64:
			if !finite(n) {
				return false
			}
		case float32:
			if !finite(float64(n)) {
				return false
			}
		}
	}
	return true
}

// pickLabelKey returns the declared key when it holds a non-numeric value,
// then the first priority name present, then any non-numeric key.
func pickLabelKey(sample dto.Record, declared string) string {
	if declared != "" {
		if v, ok := sample[declared]; ok && !isNumeric(v) {
			return declared
		}
	}
	for _, k := range labelPriority {
		if v, ok := sample[k]; ok && !isNumeric(v) {
			return k
		}
	}
	for _, k := range sortedKeys(sample) {
		if !isNumeric(sample[k]) {
			return k
		}
	}
	return ""
}

// pickSeriesKeys keeps declared keys that are numeric in the sample, or
// falls back to every numeric key in name order.
func pickSeriesKeys(sample dto.Record, labelKey string, declared []string) []string {
	var out []string
	for _, k := range declared {
		if isNumeric(sample[k]) {
			out = append(out, k)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, k := range sortedKeys(sample) {
		if k != labelKey && isNumeric(sample[k]) {
			out = append(out, k)
		}
	}
	return out
}

func sortedKeys(r dto.Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isNumeric(v any) bool {
	_, ok := number(v)
	return ok
}

// number converts the numeric kinds found in built or decoded records.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	default:
		return 0, false
	}
	return f, finite(f)
}

// kpiDatum accepts a datum built in-process or decoded from JSON.
func kpiDatum(data any) (dto.KpiDatum, bool) {
	switch d := data.(type) {
	case dto.KpiDatum:
		return d, true
	case *dto.KpiDatum:
		if d == nil {
			return dto.KpiDatum{}, false
		}
		return *d, true
	case map[string]any:
		out := dto.KpiDatum{}
		out.Label, _ = d["label"].(string)
		out.Unit, _ = d["unit"].(string)
		if v, ok := number(d["value"]); ok {
			out.Value = &v
		}
		return out, true
	}
	return dto.KpiDatum{}, false
}

// Numeric returns v as a finite float when it is one of the numeric kinds
// records carry.
func Numeric(v any) (float64, bool) {
	return number(v)
}
