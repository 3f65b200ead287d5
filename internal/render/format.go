package render

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
)

// Missing is shown wherever a value is absent or not a finite number.
const Missing = "—"

const euro = "€"

var printer = message.NewPrinter(language.English)

// moneyKeywords mark a numeric field as monetary when contained in its key.
var moneyKeywords = []string{"value", "fee", "total", "volume", "avg", "ticket"}

// IsMoneyKey reports whether a series key carries a currency amount.
func IsMoneyKey(key string) bool {
	k := strings.ToLower(key)
	for _, w := range moneyKeywords {
		if strings.Contains(k, w) {
			return true
		}
	}
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func signed(v float64, body string) string {
	if v < 0 {
		return "-" + body
	}
	return body
}

// Currency formats v in full with two decimals, e.g. €4,200,000.00.
func Currency(v float64) string {
	if !finite(v) {
		return Missing
	}
	return signed(v, euro+printer.Sprintf("%.2f", math.Abs(v)))
}

// Number formats v as a grouped integer, e.g. 1,234.
func Number(v float64) string {
	if !finite(v) {
		return Missing
	}
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// MoneyAxis formats v compactly for axis ticks, e.g. €4.2M or €850k.
func MoneyAxis(v float64) string {
	if !finite(v) {
		return Missing
	}
	a := math.Abs(v)
	var body string
	switch {
	case a >= 1e9:
		body = compact(a/1e9) + "B"
	case a >= 1e6:
		body = compact(a/1e6) + "M"
	case a >= 1e3:
		body = compact(a/1e3) + "k"
	default:
		body = compact(a)
	}
	return signed(v, euro+body)
}

// compact keeps at most one decimal and drops a trailing ".0".
func compact(v float64) string {
	s := printer.Sprintf("%.1f", math.Round(v*10)/10)
	return strings.TrimSuffix(s, ".0")
}

// Axis formats a tick value for the series key.
func Axis(key string, v float64) string {
	if IsMoneyKey(key) {
		return MoneyAxis(v)
	}
	return Number(v)
}

// Tooltip formats a value in full for the series key.
func Tooltip(key string, v float64) string {
	if IsMoneyKey(key) {
		return Currency(v)
	}
	return Number(v)
}

// KPI formats a headline figure by its unit.
func KPI(d dto.KpiDatum) string {
	if d.Value == nil || !finite(*d.Value) {
		return Missing
	}
	switch d.Unit {
	case dto.UnitEUR:
		return Currency(*d.Value)
	case "%":
		return printer.Sprintf("%.1f%%", *d.Value*100)
	}
	return Number(*d.Value)
}
