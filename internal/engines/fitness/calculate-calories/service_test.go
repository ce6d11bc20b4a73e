package calculatecalories

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/logger"
	"calculators/internal/common/validation"
	"calculators/internal/models"
	"calculators/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestService(t *testing.T, history repository.ObservationLog) *Service {
	return NewService(ServiceDependencies{
		Logger:  logger.NewTestLogger(t),
		History: history,
	}, DefaultConfig())
}

// brokenLog fails every operation.
type brokenLog struct {
	repository.ObservationLog
}

func (brokenLog) Append(context.Context, models.CalorieObservation) (models.CalorieObservation, error) {
	return models.CalorieObservation{}, apperrors.NewStoreUnavailableError(repository.StoreObservations, "append", errors.New("down"))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestService_ButterflyThirtyMinutes(t *testing.T) {
	svc := newTestService(t, nil)

	out, err := svc.Execute(context.Background(), &Input{SwimmingStyle: "Butterfly", DurationMin: 30, BodyWeightKg: 70})
	require.NoError(t, err)

	r := out.Result
	assert.Equal(t, "16.91", r.CaloriesPerMinute.StringFixed(2))
	assert.Equal(t, "507.15", r.TotalCalories.StringFixed(2))
	assert.InDelta(t, 16.905, r.ExactCaloriesPerMinute, 1e-9)
	assert.InDelta(t, 507.15, r.ExactTotalCalories, 1e-9)
	assert.Equal(t, 13.8, r.Request.Style.MET)
	assert.Empty(t, out.ObservationID)
}

func TestService_Execute(t *testing.T) {
	tests := []struct {
		name      string
		input     Input
		perMinute string
		total     string
	}{
		{"crawl recreational", Input{"Crawl (recreational)", 45, 80}, "11.62", "522.90"},
		{"treading water relaxed", Input{"Treading water (relaxed)", 60, 55}, "3.37", "202.13"},
		{"case-insensitive exact", Input{"  SIDESTROKE ", 20, 65}, "7.96", "159.25"},
		{"partial name", Input{"aqua", 10, 90}, "15.44", "154.35"},
		{"tiny duration", Input{"Butterfly", 0.01, 70}, "16.91", "0.17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			out, err := newTestService(t, nil).Execute(context.Background(), &in)
			require.NoError(t, err)
			assert.Equal(t, tt.perMinute, out.Result.CaloriesPerMinute.StringFixed(2))
			assert.Equal(t, tt.total, out.Result.TotalCalories.StringFixed(2))
		})
	}
}

func TestService_ConvenienceFunctions(t *testing.T) {
	svc := newTestService(t, nil)

	total, err := svc.CaloriesBurned(context.Background(), "Butterfly", 30, 70)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("507.15")))

	perMinute, err := svc.CaloriesPerMinute(context.Background(), "Butterfly", 30, 70)
	require.NoError(t, err)
	assert.True(t, perMinute.Equal(decimal.RequireFromString("16.91")))

	_, err = svc.CaloriesBurned(context.Background(), "Butterfly", 0, 70)
	assert.Error(t, err)
}

// ==========================
// Validation Tests
// ==========================

func TestService_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		messages []string
	}{
		{
			name:     "missing style",
			input:    Input{"", 30, 70},
			messages: []string{"Swimming style is required. Please select a valid swimming style."},
		},
		{
			name:     "unknown style",
			input:    Input{"Doggy paddle", 30, 70},
			messages: []string{"Unknown swimming style: Doggy paddle. Please select a valid swimming style."},
		},
		{
			name:     "zero duration",
			input:    Input{"Butterfly", 0, 70},
			messages: []string{"Duration must be greater than 0 minutes. Please enter a valid duration."},
		},
		{
			name:  "everything wrong at once",
			input: Input{"Doggy paddle", -5, 0},
			messages: []string{
				"Unknown swimming style: Doggy paddle. Please select a valid swimming style.",
				"Body weight must be more than 0 kg. Provided value: 0 kg.",
				"Duration cannot be negative. Provided value: -5 minutes. Please enter a positive duration.",
			},
		},
		{
			name:  "non-finite values",
			input: Input{"Butterfly", math.Inf(1), math.NaN()},
			messages: []string{
				"Body weight must be a finite number",
				"Duration must be a finite number",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			out, err := newTestService(t, nil).Execute(context.Background(), &in)
			assert.Nil(t, out)
			vErr, ok := validation.As(err)
			require.True(t, ok, "expected a validation aggregate, got %v", err)
			assert.Equal(t, tt.messages, vErr.Messages())
		})
	}
}

func TestLookupStyle(t *testing.T) {
	assert.Len(t, Styles, 14)

	s, ok := LookupStyle("crawl")
	require.True(t, ok)
	assert.Equal(t, "Crawl (intense)", s.Name, "first partial match in table order")

	s, ok = LookupStyle("Treading water (relaxed)")
	require.True(t, ok)
	assert.Equal(t, 3.5, s.MET)

	s, ok = LookupStyle("I did some Butterfly today")
	require.True(t, ok)
	assert.Equal(t, "Butterfly", s.Name)

	_, ok = LookupStyle("   ")
	assert.False(t, ok)
}

// ==========================
// History Tests
// ==========================

func TestService_History(t *testing.T) {
	ctx := context.Background()
	recorded := time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC)
	svc := newTestService(t, repository.NewObservationMemoryLog()).
		WithClock(func() time.Time { return recorded })

	out, err := svc.Execute(ctx, &Input{"Butterfly", 30, 70})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ObservationID)

	_, err = svc.Execute(ctx, &Input{"Sidestroke", 20, 65})
	require.NoError(t, err)
	_, err = svc.Execute(ctx, &Input{"Butterfly", 0, 70})
	require.Error(t, err)

	n, err := svc.ObservationCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "rejected requests are not recorded")

	matches, err := svc.History(ctx, out.Result.Request)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, out.ObservationID, matches[0].ID)
	assert.True(t, matches[0].Result.Equal(decimal.RequireFromString("507.15")))
	assert.Equal(t, recorded, matches[0].RecordedAt)

	all, err := svc.Observations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.ClearHistory(ctx))
	n, err = svc.ObservationCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestService_HistoryFailureDoesNotFailCalculation(t *testing.T) {
	out, err := newTestService(t, brokenLog{}).Execute(context.Background(), &Input{"Butterfly", 30, 70})
	require.NoError(t, err)
	assert.Empty(t, out.ObservationID)
	assert.Equal(t, "507.15", out.Result.TotalCalories.StringFixed(2))
}

func TestService_HistoryDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryEnabled = false
	log := repository.NewObservationMemoryLog()
	svc := NewService(ServiceDependencies{History: log}, cfg)

	_, err := svc.Execute(context.Background(), &Input{"Butterfly", 30, 70})
	require.NoError(t, err)

	n, err := log.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.DecimalSeparator = ";"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.DetailedPlaces = 1
	assert.Error(t, cfg.Validate())
}

func TestService_NilInput(t *testing.T) {
	output, err := newTestService(t, nil).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, apperrors.ErrCodeInvalidArgument, apperrors.CodeOf(err))
}
