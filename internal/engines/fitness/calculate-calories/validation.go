package calculatecalories

import (
	"strings"

	"calculators/internal/common/numeric"
	"calculators/internal/common/validation"
	"calculators/internal/models"
)

// NewRequest validates every field of input and returns an immutable request,
// or a *validation.Error listing all violations.
func NewRequest(input *Input) (models.CalorieRequest, error) {
	var c validation.Collector

	style, found := LookupStyle(input.SwimmingStyle)
	switch {
	case strings.TrimSpace(input.SwimmingStyle) == "":
		c.Add("Swimming style is required. Please select a valid swimming style.")
	case !found:
		c.Addf("Unknown swimming style: %s. Please select a valid swimming style.", strings.TrimSpace(input.SwimmingStyle))
	}

	if c.Check(numeric.IsFinite(input.BodyWeightKg), "Body weight must be a finite number") {
		c.Check(input.BodyWeightKg > 0,
			"Body weight must be more than 0 kg. Provided value: %v kg.", input.BodyWeightKg)
	}

	if c.Check(numeric.IsFinite(input.DurationMin), "Duration must be a finite number") {
		c.Check(input.DurationMin >= 0,
			"Duration cannot be negative. Provided value: %v minutes. Please enter a positive duration.", input.DurationMin)
		c.Check(input.DurationMin != 0,
			"Duration must be greater than 0 minutes. Please enter a valid duration.")
	}

	if err := c.Err(); err != nil {
		return models.CalorieRequest{}, err
	}

	return models.CalorieRequest{
		Style:       style,
		DurationMin: input.DurationMin,
		WeightKg:    input.BodyWeightKg,
	}, nil
}
