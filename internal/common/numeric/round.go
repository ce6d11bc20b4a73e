// Package numeric holds the decimal helpers shared by the engines.
package numeric

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places every reported figure is rounded to.
const MoneyPlaces int32 = 2

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Round rounds half away from zero. The float is read through its shortest
// decimal representation, so 16.905 rounds to 16.91.
func Round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(places)
}

// RoundFloat is Round returning a float64.
func RoundFloat(v float64, places int32) float64 {
	f, _ := Round(v, places).Float64()
	return f
}

// ParseLocalized parses a decimal written with either '.' or ',' as the separator.
func ParseLocalized(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// Localize renders d with exactly places decimals, using sep as the separator.
func Localize(d decimal.Decimal, places int32, sep string) string {
	s := d.StringFixed(places)
	if sep != "" && sep != "." {
		s = strings.Replace(s, ".", sep, 1)
	}
	return s
}

// LocalizeTrimmed renders d with at most places decimals and no trailing zeros.
func LocalizeTrimmed(d decimal.Decimal, places int32, sep string) string {
	s := d.Round(places).String()
	if sep != "" && sep != "." {
		s = strings.Replace(s, ".", sep, 1)
	}
	return s
}
