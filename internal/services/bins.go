package services

import (
	"math"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
)

// bin is an upper-bounded bucket. Its floor is the previous bin's ceiling
// (negative infinity for the first), so membership is prev < v <= max.
type bin struct {
	label string
	max   float64
}

var ageBins = []bin{
	{label: "≤11", max: 11},
	{label: "12–14", max: 14},
	{label: "15–17", max: 17},
	{label: "18–20", max: 20},
	{label: "21–23", max: 23},
	{label: "24–27", max: 27},
	{label: "28+", max: math.Inf(1)},
}

var feeBins = []bin{
	{label: "≤0.5M", max: 0.5e6},
	{label: "0.5–2M", max: 2e6},
	{label: "2–5M", max: 5e6},
	{label: "5–10M", max: 10e6},
	{label: "10–20M", max: 20e6},
	{label: "20M+", max: math.Inf(1)},
}

// binIndex returns the bin holding v, or -1 for NaN.
func binIndex(bins []bin, v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	for i, b := range bins {
		if v <= b.max {
			return i
		}
	}
	return len(bins) - 1
}

// binCounts counts values per bin. Empty bins stay in the output.
func binCounts(bins []bin, values []float64) []int {
	counts := make([]int, len(bins))
	for _, v := range values {
		if i := binIndex(bins, v); i >= 0 {
			counts[i]++
		}
	}
	return counts
}

func binRecords(bins []bin, values []float64, labelKey, countKey string) []dto.Record {
	counts := binCounts(bins, values)
	out := make([]dto.Record, len(bins))
	for i, b := range bins {
		out[i] = dto.Record{labelKey: b.label, countKey: counts[i]}
	}
	return out
}
