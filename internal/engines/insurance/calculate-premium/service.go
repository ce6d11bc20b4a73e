package calculatepremium

import (
	"context"
	"time"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/logger"
	"calculators/internal/common/metrics"
	"calculators/internal/common/observability"
	"calculators/internal/models"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "calculate-premium"
)

type Service struct {
	config *Config
	logger logger.Logger
	obs    *observability.Observability
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		obs:    deps.Observability,
		now:    time.Now,
	}
}

// Calculate applies the rate table to a validated request. Steps run in a fixed order:
// cover percentage, windscreen surcharge, zero-accident discount, then the mileage and
// parking surcharges, which are therefore never discounted. With WindscreenAfterDiscount
// the windscreen surcharge joins the undiscounted group.
func (s *Service) Calculate(req models.PremiumRequest) decimal.Decimal {
	cfg := s.config
	one := decimal.NewFromInt(1)

	premium := req.EstimatedValue.Mul(cfg.BasePremiumRate)
	premium = premium.Mul(one.Add(req.BreakdownCover.Percentage()))

	if req.WindscreenRepair && !cfg.WindscreenAfterDiscount {
		premium = premium.Add(cfg.WindscreenCharge)
	}
	if req.Accidents == 0 {
		premium = premium.Mul(one.Sub(cfg.ZeroAccidentDiscount))
	}
	if req.WindscreenRepair && cfg.WindscreenAfterDiscount {
		premium = premium.Add(cfg.WindscreenCharge)
	}
	if req.Mileage > cfg.HighMileageThreshold {
		premium = premium.Add(cfg.HighMileageCharge)
	}
	if req.PublicParking {
		premium = premium.Add(cfg.PublicParkingCharge)
	}

	return premium.Round(cfg.DecimalPlaces)
}

// CalculatePremium validates the raw fields and returns the rounded premium.
func (s *Service) CalculatePremium(ctx context.Context, breakdownCover, windscreenRepair string, numberOfAccidents, totalMileage int, estimatedValue float64, parkingLocation string) (decimal.Decimal, error) {
	out, err := s.Execute(ctx, &Input{
		BreakdownCover:    breakdownCover,
		WindscreenRepair:  windscreenRepair,
		NumberOfAccidents: numberOfAccidents,
		TotalMileage:      totalMileage,
		EstimatedValue:    estimatedValue,
		ParkingLocation:   parkingLocation,
	})
	if err != nil {
		return decimal.Zero, err
	}
	return out.Premium, nil
}

func (s *Service) Execute(ctx context.Context, input *Input) (out *Output, err error) {
	if input == nil {
		return nil, apperrors.NewInvalidArgumentError("input is required")
	}
	start := time.Now()
	ctx, span := s.obs.StartSpan(ctx, TaskType,
		attribute.String("breakdownCover", input.BreakdownCover),
	)
	defer func() {
		status := "success"
		if err != nil {
			status = "rejected"
			span.RecordError(err)
		}
		span.End()
		metrics.ObserveCalculation(TaskType, start, err)
		s.obs.RecordCalculation(ctx, TaskType, status)
		s.obs.RecordCalculationDuration(ctx, TaskType, time.Since(start), status)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req, err := NewRequest(input, s.config)
	if err != nil {
		s.logger.Warn("Premium request rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	premium := s.Calculate(req)

	s.logger.Debug("Premium calculated", map[string]interface{}{
		"breakdownCover": string(req.BreakdownCover),
		"accidents":      req.Accidents,
		"mileage":        req.Mileage,
		"publicParking":  req.PublicParking,
		"premium":        premium.StringFixed(s.config.DecimalPlaces),
	})

	return &Output{
		Request:      req,
		Premium:      premium,
		CalculatedAt: s.now().UTC(),
	}, nil
}
