package savequote

import (
	"time"

	"calculators/internal/common/logger"
	"calculators/internal/common/observability"
	calculatepremium "calculators/internal/engines/insurance/calculate-premium"
	"calculators/internal/models"
	"calculators/internal/repository"
)

// Input is a premium request plus the policy details shown on the saved quote.
type Input struct {
	calculatepremium.Input
	UserID             string    `json:"userId,omitempty"`
	RegistrationNumber string    `json:"registrationNumber,omitempty"`
	StartOfPolicy      time.Time `json:"startOfPolicy,omitempty"`
}

type Output struct {
	Quote models.Quote `json:"quote"`
}

type ServiceDependencies struct {
	Logger        logger.Logger
	Observability *observability.Observability
	Premium       *calculatepremium.Service
	Store         repository.QuoteStore
	IDs           IDGenerator
}
