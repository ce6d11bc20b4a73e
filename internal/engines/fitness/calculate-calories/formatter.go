package calculatecalories

import (
	"calculators/internal/common/numeric"

	"github.com/shopspring/decimal"
)

// Unit is appended by WithUnit.
const Unit = "kcal"

// Formatter renders calorie figures with a dot or comma decimal separator.
type Formatter struct {
	Separator      string
	Places         int32
	DetailedPlaces int32
}

// NewFormatter takes its separator and precision from cfg.
func NewFormatter(cfg *Config) Formatter {
	return Formatter{
		Separator:      cfg.DecimalSeparator,
		Places:         cfg.DecimalPlaces,
		DetailedPlaces: cfg.DetailedPlaces,
	}
}

// PerMinute renders e.g. "16.91" or "16,91".
func (f Formatter) PerMinute(v decimal.Decimal) string {
	return numeric.Localize(v, f.Places, f.Separator)
}

// Total renders e.g. "507.15".
func (f Formatter) Total(v decimal.Decimal) string {
	return numeric.Localize(v, f.Places, f.Separator)
}

// Detailed renders an exact value with up to DetailedPlaces decimals and no
// trailing zeros, e.g. "0.16905".
func (f Formatter) Detailed(v float64) string {
	return numeric.LocalizeTrimmed(decimal.NewFromFloat(v), f.DetailedPlaces, f.Separator)
}

// WithUnit renders e.g. "507.15 kcal".
func (f Formatter) WithUnit(v decimal.Decimal) string {
	return f.Total(v) + " " + Unit
}

// Parse reads a figure written with either separator.
func (f Formatter) Parse(s string) (decimal.Decimal, error) {
	return numeric.ParseLocalized(s)
}
