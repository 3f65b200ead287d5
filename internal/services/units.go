package services

// MarketValueScale converts stored roster valuations (millions of EUR) to EUR.
// Every valuation leaving the roster loaders goes through scaleMarketValue.
const MarketValueScale = 1_000_000

// Plausible athlete ages; rows outside are dropped before aggregation.
const (
	minSaneAge = 10
	maxSaneAge = 45
)

func scaleMarketValue(millions float64) float64 {
	return millions * MarketValueScale
}

func saneAge(age float64) bool {
	return age >= minSaneAge && age <= maxSaneAge
}
