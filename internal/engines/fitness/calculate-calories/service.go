package calculatecalories

import (
	"context"
	"time"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/logger"
	"calculators/internal/common/metrics"
	"calculators/internal/common/observability"
	"calculators/internal/models"
	"calculators/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "calculate-calories"
)

// Formula constants: calories per minute = MET × weight × 3.5 / 200.
var (
	metFactor      = decimal.RequireFromString("3.5")
	metDenominator = decimal.NewFromInt(200)
)

type Service struct {
	config  *Config
	logger  logger.Logger
	obs     *observability.Observability
	history repository.ObservationLog
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
	history := deps.History
	if !config.HistoryEnabled {
		history = nil
	}
	return &Service{
		config:  config,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
		obs:     deps.Observability,
		history: history,
		now:     time.Now,
	}
}

// WithClock replaces the clock used to stamp history entries.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Calculate applies the MET formula to a validated request. The rounded figures
// are computed in decimal from the exact inputs; the total is rounded once, not
// built from the rounded per-minute value.
func (s *Service) Calculate(req models.CalorieRequest) models.CalorieResult {
	exactPerMinute := req.Style.MET * req.WeightKg * 3.5 / 200
	exactTotal := exactPerMinute * req.DurationMin

	perMinute := decimal.NewFromFloat(req.Style.MET).
		Mul(decimal.NewFromFloat(req.WeightKg)).
		Mul(metFactor).
		Div(metDenominator)
	total := perMinute.Mul(decimal.NewFromFloat(req.DurationMin))

	return models.CalorieResult{
		Request:                req,
		CaloriesPerMinute:      perMinute.Round(s.config.DecimalPlaces),
		TotalCalories:          total.Round(s.config.DecimalPlaces),
		ExactCaloriesPerMinute: exactPerMinute,
		ExactTotalCalories:     exactTotal,
	}
}

// CaloriesBurned validates the raw fields and returns the rounded total.
func (s *Service) CaloriesBurned(ctx context.Context, swimmingStyle string, durationMin, bodyWeightKg float64) (decimal.Decimal, error) {
	out, err := s.Execute(ctx, &Input{
		SwimmingStyle: swimmingStyle,
		DurationMin:   durationMin,
		BodyWeightKg:  bodyWeightKg,
	})
	if err != nil {
		return decimal.Zero, err
	}
	return out.Result.TotalCalories, nil
}

// CaloriesPerMinute validates the raw fields and returns the rounded per-minute rate.
func (s *Service) CaloriesPerMinute(ctx context.Context, swimmingStyle string, durationMin, bodyWeightKg float64) (decimal.Decimal, error) {
	out, err := s.Execute(ctx, &Input{
		SwimmingStyle: swimmingStyle,
		DurationMin:   durationMin,
		BodyWeightKg:  bodyWeightKg,
	})
	if err != nil {
		return decimal.Zero, err
	}
	return out.Result.CaloriesPerMinute, nil
}

func (s *Service) Execute(ctx context.Context, input *Input) (out *Output, err error) {
	if input == nil {
		return nil, apperrors.NewInvalidArgumentError("input is required")
	}
	start := time.Now()
	ctx, span := s.obs.StartSpan(ctx, TaskType,
		attribute.String("swimmingStyle", input.SwimmingStyle),
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

	req, err := NewRequest(input)
	if err != nil {
		s.logger.Warn("Calorie request rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	result := s.Calculate(req)
	out = &Output{Result: result}

	if s.history != nil {
		obs, err := s.history.Append(ctx, models.CalorieObservation{
			Request:    req,
			Result:     result.TotalCalories,
			RecordedAt: s.now().UTC(),
		})
		if err != nil {
			s.logger.Warn("Failed to record calorie observation", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			out.ObservationID = obs.ID
		}
	}

	s.logger.Debug("Calories calculated", map[string]interface{}{
		"swimmingStyle":     req.Style.Name,
		"durationMin":       req.DurationMin,
		"caloriesPerMinute": result.CaloriesPerMinute.String(),
		"totalCalories":     result.TotalCalories.String(),
	})

	return out, nil
}

// History returns earlier results for the same style, duration and weight.
func (s *Service) History(ctx context.Context, req models.CalorieRequest) ([]models.CalorieObservation, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.FindByRequest(ctx, req, s.config.HistoryTolerance)
}

// Observations returns the whole history, oldest first.
func (s *Service) Observations(ctx context.Context) ([]models.CalorieObservation, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx)
}

func (s *Service) ObservationCount(ctx context.Context) (int, error) {
	if s.history == nil {
		return 0, nil
	}
	return s.history.Count(ctx)
}

func (s *Service) ClearHistory(ctx context.Context) error {
	if s.history == nil {
		return nil
	}
	return s.history.Clear(ctx)
}
