package arithmetic

import (
	"context"
	"time"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/logger"
	"calculators/internal/common/metrics"
)

const (
	TaskType = "arithmetic"
)

type Input struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
}

type Output struct {
	Result float64 `json:"result"`
	Symbol string  `json:"symbol"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}

type Service struct {
	logger logger.Logger
}

func NewService(deps ServiceDependencies) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{logger: log.WithFields(map[string]interface{}{"taskType": TaskType})}
}

func (s *Service) Execute(ctx context.Context, input *Input) (out *Output, err error) {
	if input == nil {
		return nil, apperrors.NewInvalidArgumentError("input is required")
	}
	start := time.Now()
	defer func() { metrics.ObserveCalculation(TaskType, start, err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := Apply(input.Operation, input.A, input.B)
	if err != nil {
		s.logger.Warn("Arithmetic failed", map[string]interface{}{
			"operation": input.Operation,
			"error":     err.Error(),
		})
		return nil, err
	}
	return &Output{Result: result, Symbol: Symbol(input.Operation)}, nil
}
