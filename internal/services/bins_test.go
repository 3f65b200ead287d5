package services

import (
	"math"
	"testing"
)

func TestAgeBinBoundaries(t *testing.T) {
	cases := []struct {
		age  float64
		want string
	}{
		{age: -3, want: "≤11"},
		{age: 11, want: "≤11"},
		{age: 11.5, want: "12–14"},
		{age: 12, want: "12–14"},
		{age: 14, want: "12–14"},
		{age: 17, want: "15–17"},
		{age: 20, want: "18–20"},
		{age: 23, want: "21–23"},
		{age: 27, want: "24–27"},
		{age: 28, want: "28+"},
		{age: 99, want: "28+"},
	}

	for _, tc := range cases {
		i := binIndex(ageBins, tc.age)
		if i < 0 {
			t.Fatalf("age %v not binned", tc.age)
		}
		if got := ageBins[i].label; got != tc.want {
			t.Errorf("age %v: got %s want %s", tc.age, got, tc.want)
		}
	}
}

func TestFeeBinsHalfOpen(t *testing.T) {
	cases := []struct {
		fee  float64
		want string
	}{
		{fee: 1, want: "≤0.5M"},
		{fee: 0.5e6, want: "≤0.5M"},
		{fee: 0.5e6 + 1, want: "0.5–2M"},
		{fee: 2e6, want: "0.5–2M"},
		{fee: 20e6, want: "10–20M"},
		{fee: 20e6 + 1, want: "20M+"},
	}

	for _, tc := range cases {
		if got := feeBins[binIndex(feeBins, tc.fee)].label; got != tc.want {
			t.Errorf("fee %v: got %s want %s", tc.fee, got, tc.want)
		}
	}
}

func TestBinCountsEveryValueOnce(t *testing.T) {
	values := []float64{0, 11, 12, 13, 27, 28, 40, math.Inf(1), math.Inf(-1)}
	counts := binCounts(ageBins, values)

	total := 0
	for _, c := range counts {
		total += c
	}
	if total != len(values) {
		t.Fatalf("expected %d binned values, got %d", len(values), total)
	}
}

func TestBinCountsSkipsNaN(t *testing.T) {
	counts := binCounts(ageBins, []float64{math.NaN(), 15})
	if counts[2] != 1 {
		t.Fatalf("expected one value in 15–17, got %v", counts)
	}
}

func TestBinRecordsKeepsEmptyBins(t *testing.T) {
	recs := binRecords(feeBins, []float64{25e6}, "band", "transfers")
	if len(recs) != len(feeBins) {
		t.Fatalf("expected %d records, got %d", len(feeBins), len(recs))
	}
	for i, r := range recs[:len(recs)-1] {
		if r["transfers"] != 0 {
			t.Errorf("bin %d: expected 0, got %v", i, r["transfers"])
		}
	}
	if last := recs[len(recs)-1]; last["band"] != "20M+" || last["transfers"] != 1 {
		t.Errorf("unexpected last bin: %v", last)
	}
}

func TestScaleMarketValue(t *testing.T) {
	if got := scaleMarketValue(2); got != 2_000_000 {
		t.Errorf("expected 2000000, got %v", got)
	}
	if got := scaleMarketValue(2.5); got != 2_500_000 {
		t.Errorf("expected 2500000, got %v", got)
	}
}

func TestBinRecordLabels(t *testing.T) {
	recs := binRecords(ageBins, nil, "band", "players")
	want := []string{"≤11", "12–14", "15–17", "18–20", "21–23", "24–27", "28+"}
	for i, r := range recs {
		if r["band"] != want[i] {
			t.Errorf("record %d: got %v want %s", i, r["band"], want[i])
		}
	}
}
