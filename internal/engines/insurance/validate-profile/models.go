package validateprofile

import (
	"calculators/internal/common/logger"
	"calculators/internal/models"
)

type Input struct {
	Profile *models.BrokerProfile `json:"profile"`
}

type Output struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}
