package render

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
)

func TestSelectDeclaredKeys(t *testing.T) {
	p := dto.Payload{
		Kind: dto.KindBar,
		Data: []dto.Record{
			{"position": "CB", "avgFee": 2_500_000.0, "deals": 14},
			{"position": "GK", "avgFee": 900_000.0, "deals": 3},
		},
		LabelKey:   "position",
		SeriesKeys: []string{"avgFee", "deals"},
	}

	c := Select(p, dto.SizeMedium)

	assert.Equal(t, ShapeBar, c.Shape)
	assert.Equal(t, "position", c.LabelKey)
	assert.True(t, c.DualAxis)
	assert.True(t, c.RotateLabels)
	require.Len(t, c.Series, 2)
	assert.Equal(t, Series{Key: "avgFee", Money: true, Axis: AxisLeft}, c.Series[0])
	assert.Equal(t, Series{Key: "deals", Money: false, Axis: AxisRight}, c.Series[1])
}

func TestSelectSniffsLegacyShape(t *testing.T) {
	p := dto.Payload{
		Kind: dto.KindBar,
		Data: []dto.Record{{"buyerTotal": 10.0, "club": "Club1", "sellerTotal": 0.0}},
	}

	c := Select(p, dto.SizeSmall)

	assert.Equal(t, "club", c.LabelKey)
	require.Len(t, c.Series, 2)
	assert.Equal(t, "buyerTotal", c.Series[0].Key)
	assert.Equal(t, "sellerTotal", c.Series[1].Key)
	assert.False(t, c.DualAxis, "two monetary series share one axis")
}

func TestSelectPrefersPriorityLabel(t *testing.T) {
	p := dto.Payload{
		Kind: dto.KindBar,
		Data: []dto.Record{{"agencyShort": "Big Agency…", "agency": "Big Agency Ltd", "players": 4}},
	}

	assert.Equal(t, "agency", Select(p, dto.SizeMedium).LabelKey)
}

func TestSelectDeclaredLabelMustBeTextual(t *testing.T) {
	p := dto.Payload{
		Kind:     dto.KindBar,
		Data:     []dto.Record{{"band": "≤11", "players": 3}},
		LabelKey: "players",
	}

	assert.Equal(t, "band", Select(p, dto.SizeMedium).LabelKey)
}

func TestSelectLineYearTicks(t *testing.T) {
	var records []dto.Record
	for _, p := range []string{"2023-11", "2023-12", "2024-01", "2024-02", "2025-01", "2024-01"} {
		records = append(records, dto.Record{"period": p, "deals": 1})
	}

	c := Select(dto.Payload{Kind: dto.KindLine, Data: records, LabelKey: "period", SeriesKeys: []string{"deals"}}, dto.SizeLarge)

	assert.Equal(t, ShapeLine, c.Shape)
	assert.Equal(t, []string{"2024-01", "2025-01"}, c.YearTicks)
	assert.False(t, c.RotateLabels)
	assert.False(t, c.DualAxis)
	assert.Equal(t, "2024", PeriodTick(c.LabelKey, "2024-01"))
	assert.Equal(t, "CB", PeriodTick("position", "CB"))
}

func TestYearTicksOnlyForPeriod(t *testing.T) {
	records := []dto.Record{{"band": "2024-01", "players": 1}}
	assert.Nil(t, YearTicks(records, "band"))
	assert.Nil(t, YearTicks([]dto.Record{{"period": "2024-02"}}, "period"))
}

func TestSelectScatterFromDecodedJSON(t *testing.T) {
	raw := `{"kind":"scatter","labelKey":"label","seriesKeys":["age","fee"],"data":[
		{"label":"A","age":19,"fee":1000000},
		{"label":"B","age":"n/a","fee":5},
		{"label":"C","age":31,"fee":250000}
	]}`
	var p dto.Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	c := Select(p, dto.SizeMedium)

	require.Equal(t, ShapeScatter, c.Shape)
	require.NotNil(t, c.Scatter)
	assert.Len(t, c.Scatter.Points, 2)
	assert.Equal(t, "age", c.Scatter.XKey)
	assert.Equal(t, "fee", c.Scatter.YKey)
	assert.Equal(t, 18.0, c.Scatter.XMin)
	assert.Equal(t, 32.0, c.Scatter.XMax)
	assert.Equal(t, []int{18, 20, 22, 24, 26, 28, 30, 32}, c.Scatter.XTicks)
	assert.True(t, c.Series[1].Money)
}

func TestSelectSniffsPastMalformedFirstRecord(t *testing.T) {
	p := dto.Payload{
		Kind: dto.KindScatter,
		Data: []dto.Record{
			{"player": "A", "age": math.NaN(), "marketValue": 1_000_000.0},
			{"player": "B", "age": 24.0, "marketValue": 3_000_000.0},
			{"player": "C", "age": 29.0, "marketValue": 2_000_000.0},
		},
	}

	c := Select(p, dto.SizeMedium)

	require.Equal(t, ShapeScatter, c.Shape)
	assert.Equal(t, "player", c.LabelKey)
	assert.Equal(t, "age", c.Scatter.XKey)
	assert.Equal(t, "marketValue", c.Scatter.YKey)
	assert.Len(t, c.Scatter.Points, 2)
}

func TestSelectDeclaredKeysMissingFromFirstRecord(t *testing.T) {
	p := dto.Payload{
		Kind: dto.KindBar,
		Data: []dto.Record{
			{"position": "CB"},
			{"position": "GK", "players": 3},
		},
		LabelKey:   "position",
		SeriesKeys: []string{"players"},
	}

	c := Select(p, dto.SizeMedium)

	assert.Equal(t, ShapeBar, c.Shape)
	require.Len(t, c.Series, 1)
	assert.Equal(t, "players", c.Series[0].Key)
}

func TestIntegerTicks(t *testing.T) {
	assert.Equal(t, []int{18, 19, 20, 21, 22}, IntegerTicks(18, 22, dto.SizeLarge))
	assert.Equal(t, []int{9, 12, 15, 18, 21, 24, 27, 30, 31}, IntegerTicks(9, 31, dto.SizeMedium))
	assert.Equal(t, []int{9, 13, 17, 21, 25, 29, 31}, IntegerTicks(9, 31, dto.SizeSmall))
	assert.Equal(t, []int{20}, IntegerTicks(20, 20, dto.SizeSmall))

	lg := IntegerTicks(10, 45, dto.SizeLarge)
	assert.Equal(t, 10, lg[0])
	assert.Equal(t, 45, lg[len(lg)-1])
	assert.LessOrEqual(t, len(lg), 12)
}

func TestSelectKPI(t *testing.T) {
	v := 42.0
	c := Select(dto.Payload{Kind: dto.KindKPI, Data: dto.KpiDatum{Label: "Players", Value: &v}}, dto.SizeSmall)
	require.Equal(t, ShapeKPI, c.Shape)
	assert.Equal(t, "42", KPI(*c.KPI))

	decoded := Select(dto.Payload{Kind: dto.KindKPI, Data: map[string]any{"label": "Fee", "value": nil, "unit": "EUR"}}, dto.SizeSmall)
	require.Equal(t, ShapeKPI, decoded.Shape)
	assert.Nil(t, decoded.KPI.Value)
	assert.Equal(t, Missing, KPI(*decoded.KPI))
}

func TestSelectEmptyAndUnknown(t *testing.T) {
	c := Select(dto.Payload{Kind: dto.KindEmpty, Reason: "No data."}, dto.SizeMedium)
	assert.Equal(t, ShapeNone, c.Shape)
	assert.Equal(t, "No data.", c.Reason)

	assert.Equal(t, ShapeNone, Select(dto.Payload{Kind: dto.KindBar}, dto.SizeMedium).Shape)
	assert.Equal(t, ShapeNone, Select(dto.Payload{Kind: "hist"}, dto.SizeMedium).Shape)
	assert.Equal(t, ShapeNone, Select(dto.Payload{Kind: dto.KindBar, Data: []dto.Record{{"club": "A"}}}, dto.SizeMedium).Shape)
}

func TestSelectGeoMap(t *testing.T) {
	c := Select(dto.Payload{Kind: dto.KindGeoMap, Data: dto.GeoMapData{}}, dto.SizeLarge)
	assert.Equal(t, ShapeGeoMap, c.Shape)
	assert.NotNil(t, c.Geo)
}
