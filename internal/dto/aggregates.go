package dto

// Row shapes returned by the relational store's aggregate queries.

type MonthlyDeals struct {
	Year  int
	Month int
	Deals int
}

type MonthlyFee struct {
	Year  int
	Month int
	Value float64
}

type ClubTotal struct {
	Club  string
	Total float64
}

type LabelCount struct {
	Label string
	Deals int
}

type AgeFeePoint struct {
	Age      *float64
	Fee      *float64
	Position *string
	Label    *string
}

type PositionFee struct {
	Position string
	AvgFee   float64
	Deals    int
}

// MarketTotals holds the transfer-wide aggregates used by the KPI batch.
type MarketTotals struct {
	Deals    int64
	TotalFee *float64
	AvgFee   *float64
}

// RosterTotals holds the roster-wide aggregates used by the KPI batch.
// MarketValue is stored in millions.
type RosterTotals struct {
	Players     int64
	MarketValue *float64
	AvgAge      *float64
}
