// internal/models/calorie.go
package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// SwimmingStyle is an activity with its metabolic-equivalent factor.
type SwimmingStyle struct {
	Name string  `json:"name"`
	MET  float64 `json:"met"`
}

// CalorieRequest is a validated calorie input. Build it through the calorie engine's NewRequest.
type CalorieRequest struct {
	Style       SwimmingStyle `json:"style"`
	DurationMin float64       `json:"durationMin"`
	WeightKg    float64       `json:"weightKg"`
}

// Matches reports whether other describes the same activity within tolerance.
func (r CalorieRequest) Matches(other CalorieRequest, tolerance float64) bool {
	return r.Style.Name == other.Style.Name &&
		math.Abs(r.DurationMin-other.DurationMin) < tolerance &&
		math.Abs(r.WeightKg-other.WeightKg) < tolerance
}

// CalorieResult holds both the rounded figures and the exact values they came from.
type CalorieResult struct {
	Request                CalorieRequest  `json:"request"`
	CaloriesPerMinute      decimal.Decimal `json:"caloriesPerMinute"`
	TotalCalories          decimal.Decimal `json:"totalCalories"`
	ExactCaloriesPerMinute float64         `json:"exactCaloriesPerMinute"`
	ExactTotalCalories     float64         `json:"exactTotalCalories"`
}

// CalorieObservation is one entry in the calculation history.
type CalorieObservation struct {
	ID         string          `json:"id"`
	Request    CalorieRequest  `json:"request"`
	Result     decimal.Decimal `json:"result"`
	RecordedAt time.Time       `json:"recordedAt"`
}
