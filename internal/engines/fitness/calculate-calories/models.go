package calculatecalories

import (
	"calculators/internal/common/logger"
	"calculators/internal/common/observability"
	"calculators/internal/models"
	"calculators/internal/repository"
)

type Input struct {
	SwimmingStyle string  `json:"swimmingStyle"`
	DurationMin   float64 `json:"durationMin"`
	BodyWeightKg  float64 `json:"bodyWeightKg"`
}

type Output struct {
	Result models.CalorieResult `json:"result"`
	// ObservationID is empty when history is disabled or the append failed.
	ObservationID string `json:"observationId,omitempty"`
}

type ServiceDependencies struct {
	Logger        logger.Logger
	Observability *observability.Observability
	History       repository.ObservationLog
}
