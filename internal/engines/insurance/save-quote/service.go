package savequote

import (
	"context"
	"time"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/logger"
	"calculators/internal/common/metrics"
	"calculators/internal/common/observability"
	calculatepremium "calculators/internal/engines/insurance/calculate-premium"
	"calculators/internal/models"
	"calculators/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType         = "save-quote"
	RetrieveTaskType = "retrieve-quote"
)

type Service struct {
	config  *Config
	logger  logger.Logger
	obs     *observability.Observability
	premium *calculatepremium.Service
	store   repository.QuoteStore
	ids     IDGenerator
	now     func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	premium := deps.Premium
	if premium == nil {
		premium = calculatepremium.NewService(calculatepremium.ServiceDependencies{
			Logger:        log,
			Observability: deps.Observability,
		}, nil)
	}
	store := deps.Store
	if store == nil {
		store = repository.NewQuoteMemoryStore()
	}
	ids := deps.IDs
	if ids == nil {
		ids = NewRandomIDGenerator(config.IDMin, config.IDMax)
	}
	return &Service{
		config:  config,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
		obs:     deps.Observability,
		premium: premium,
		store:   store,
		ids:     ids,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for CreatedAt.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Execute prices the request and stores it under a fresh identification number.
// A taken number is redrawn up to MaxAttempts times.
func (s *Service) Execute(ctx context.Context, input *Input) (out *Output, err error) {
	if input == nil {
		return nil, apperrors.NewInvalidArgumentError("input is required")
	}
	start := time.Now()
	ctx, span := s.obs.StartSpan(ctx, TaskType)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		metrics.ObserveCalculation(TaskType, start, err)
	}()

	priced, err := s.premium.Execute(ctx, &input.Input)
	if err != nil {
		return nil, err
	}

	quote := models.Quote{
		Request:            priced.Request,
		Premium:            priced.Premium,
		CreatedAt:          s.now().UTC(),
		UserID:             input.UserID,
		RegistrationNumber: input.RegistrationNumber,
		StartOfPolicy:      input.StartOfPolicy,
	}

	for attempt := 1; ; attempt++ {
		quote.IdentificationNumber = s.ids.NextID()
		err = s.store.Insert(ctx, &quote)
		if err == nil {
			break
		}
		if apperrors.CodeOf(err) != apperrors.ErrCodeDuplicateQuote || attempt >= s.config.MaxAttempts {
			s.logger.Error("Failed to save quote", map[string]interface{}{
				"identificationNumber": quote.IdentificationNumber,
				"attempt":              attempt,
				"error":                err.Error(),
			})
			return nil, err
		}
		s.logger.Warn("Identification number taken, drawing another", map[string]interface{}{
			"identificationNumber": quote.IdentificationNumber,
		})
	}

	span.SetAttributes(attribute.Int("identificationNumber", quote.IdentificationNumber))
	s.logger.Info("Quote saved", map[string]interface{}{
		"identificationNumber": quote.IdentificationNumber,
		"premium":              quote.Premium.StringFixed(2),
	})

	return &Output{Quote: quote}, nil
}

// Retrieve loads a saved quote; unknown numbers yield QUOTE_NOT_FOUND.
func (s *Service) Retrieve(ctx context.Context, identificationNumber int) (q *models.Quote, err error) {
	start := time.Now()
	ctx, span := s.obs.StartSpan(ctx, RetrieveTaskType,
		attribute.Int("identificationNumber", identificationNumber),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		metrics.ObserveCalculation(RetrieveTaskType, start, err)
	}()

	if identificationNumber <= 0 {
		return nil, apperrors.NewInvalidArgumentError("Identification number must be positive")
	}
	return s.store.Get(ctx, identificationNumber)
}
