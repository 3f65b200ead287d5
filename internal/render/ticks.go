package render

import (
	"math"
	"regexp"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
)

var monthPeriod = regexp.MustCompile(`^\d{4}-\d{2}$`)

// YearTicks returns the January periods present in records, sorted, so a
// monthly axis shows one tick per year. Nil means no reduction applies.
func YearTicks(records []dto.Record, labelKey string) []string {
	if labelKey != "period" {
		return nil
	}
	seen := map[string]bool{}
	for _, r := range records {
		p, ok := r[labelKey].(string)
		if !ok || !monthPeriod.MatchString(p) {
			continue
		}
		if p[5:] == "01" {
			seen[p] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	ticks := make([]string, 0, len(seen))
	for p := range seen {
		ticks = append(ticks, p)
	}
	sort.Strings(ticks)
	return ticks
}

// PeriodTick shortens a YYYY-MM category to its year.
func PeriodTick(labelKey, v string) string {
	if labelKey == "period" && monthPeriod.MatchString(v) {
		return v[:4]
	}
	return v
}

// maxTicks bounds integer tick density by card size.
var maxTicks = map[dto.Size]int{
	dto.SizeSmall:  6,
	dto.SizeMedium: 8,
	dto.SizeLarge:  10,
}

// IntegerTicks spans [min, max] with integer ticks. Large cards show every
// integer when the range is at most 18; otherwise ticks are thinned to the
// size's budget and the upper bound is always included.
func IntegerTicks(min, max float64, size dto.Size) []int {
	lo := int(math.Floor(min))
	hi := int(math.Ceil(max))
	span := hi - lo
	if span <= 0 {
		return []int{lo}
	}

	if size == dto.SizeLarge && span <= 18 {
		out := make([]int, 0, span+1)
		for v := lo; v <= hi; v++ {
			out = append(out, v)
		}
		return out
	}

	budget, ok := maxTicks[size]
	if !ok {
		budget = maxTicks[dto.SizeMedium]
	}
	step := int(math.Ceil(float64(span) / float64(budget)))
	if step < 1 {
		step = 1
	}

	var out []int
	for v := lo; v <= hi; v += step {
		out = append(out, v)
	}
	if out[len(out)-1] != hi {
		out = append(out, hi)
	}
	return out
}

// domain pads the extent of xs by one unit on each side.
func domain(xs []float64) (float64, float64) {
	return floats.Min(xs) - 1, floats.Max(xs) + 1
}
