package observability

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"calculators/internal/common/logger"
)

// LogSpanProcessor writes every ended span to a logger at debug level.
type LogSpanProcessor struct {
	logger logger.Logger
}

func NewLogSpanProcessor(log logger.Logger) *LogSpanProcessor {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &LogSpanProcessor{logger: log}
}

func (p *LogSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *LogSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := map[string]interface{}{
		"span":       s.Name(),
		"traceId":    s.SpanContext().TraceID().String(),
		"durationMs": float64(s.EndTime().Sub(s.StartTime()).Microseconds()) / 1000,
		"status":     s.Status().Code.String(),
	}
	if desc := s.Status().Description; desc != "" {
		fields["statusDescription"] = desc
	}
	for _, kv := range s.Attributes() {
		fields[string(kv.Key)] = kv.Value.Emit()
	}
	p.logger.Debug("Span ended", fields)
}

func (p *LogSpanProcessor) Shutdown(context.Context) error   { return nil }
func (p *LogSpanProcessor) ForceFlush(context.Context) error { return nil }
