package calculatepremium

import (
	"time"

	"calculators/internal/common/logger"
	"calculators/internal/common/observability"
	"calculators/internal/models"

	"github.com/shopspring/decimal"
)

// Input carries the raw premium fields as a form or fixture row supplies them.
type Input struct {
	BreakdownCover    string  `json:"breakdownCover"`
	WindscreenRepair  string  `json:"windscreenRepair"`
	NumberOfAccidents int     `json:"numberOfAccidents"`
	TotalMileage      int     `json:"totalMileage"`
	EstimatedValue    float64 `json:"estimatedValue"`
	ParkingLocation   string  `json:"parkingLocation"`
}

type Output struct {
	Request      models.PremiumRequest `json:"request"`
	Premium      decimal.Decimal       `json:"premium"`
	CalculatedAt time.Time             `json:"calculatedAt"`
}

type ServiceDependencies struct {
	Logger        logger.Logger
	Observability *observability.Observability
}
