package calculatepremium

import (
	"strings"

	"calculators/internal/common/numeric"
	"calculators/internal/common/validation"
	"calculators/internal/models"

	"github.com/shopspring/decimal"
)

// PublicParkingLocation is the parking answer that attracts a surcharge.
const PublicParkingLocation = "Public Place"

// ParseWindscreenRepair accepts "Yes" or "true" in any case.
func ParseWindscreenRepair(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "yes") || strings.EqualFold(s, "true")
}

// IsPublicParking compares the trimmed location against "Public Place" ignoring case.
func IsPublicParking(location string) bool {
	return strings.EqualFold(strings.TrimSpace(location), PublicParkingLocation)
}

// NewRequest validates every field of input and returns an immutable request,
// or a *validation.Error listing all violations.
func NewRequest(input *Input, cfg *Config) (models.PremiumRequest, error) {
	var c validation.Collector

	c.Check(input.NumberOfAccidents >= 0,
		"Number of accidents cannot be negative. Provided value: %d", input.NumberOfAccidents)
	c.Check(input.TotalMileage >= 0,
		"Total mileage cannot be negative. Provided value: %d", input.TotalMileage)

	var value decimal.Decimal
	if c.Check(numeric.IsFinite(input.EstimatedValue), "Estimated value must be a finite number") {
		value = decimal.NewFromFloat(input.EstimatedValue)
		c.Check(!value.IsNegative(),
			"Estimated value cannot be negative. Provided value: £%v", input.EstimatedValue)
		c.Check(value.GreaterThanOrEqual(cfg.MinimumEstimatedValue),
			"Estimated value must be at least £%s. Provided value: £%v", cfg.MinimumEstimatedValue, input.EstimatedValue)
	}

	if err := c.Err(); err != nil {
		return models.PremiumRequest{}, err
	}

	return models.PremiumRequest{
		BreakdownCover:   models.ParseBreakdownCover(input.BreakdownCover),
		WindscreenRepair: ParseWindscreenRepair(input.WindscreenRepair),
		Accidents:        input.NumberOfAccidents,
		Mileage:          input.TotalMileage,
		EstimatedValue:   value,
		ParkingLocation:  strings.TrimSpace(input.ParkingLocation),
		PublicParking:    IsPublicParking(input.ParkingLocation),
	}, nil
}
