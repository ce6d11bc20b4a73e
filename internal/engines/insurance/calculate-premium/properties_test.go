package calculatepremium

import (
	"context"
	"testing"

	"calculators/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawCover(t *rapid.T) models.BreakdownCover {
	return rapid.SampledFrom(models.BreakdownCovers()).Draw(t, "cover")
}

// values with at most two decimals, as a form would supply them
func drawValue(t *rapid.T, label string) float64 {
	cents := rapid.Int64Range(10000, 100000000).Draw(t, label)
	f, _ := decimal.New(cents, -2).Float64()
	return f
}

func TestProperty_ZeroAccidentFormula(t *testing.T) {
	svc := NewService(ServiceDependencies{}, DefaultConfig())

	rapid.Check(t, func(t *rapid.T) {
		cover := drawCover(t)
		value := drawValue(t, "value")

		out, err := svc.Execute(context.Background(), &Input{
			BreakdownCover:    string(cover),
			WindscreenRepair:  "No",
			NumberOfAccidents: 0,
			TotalMileage:      rapid.IntRange(0, 5000).Draw(t, "mileage"),
			EstimatedValue:    value,
			ParkingLocation:   "Garage",
		})
		require.NoError(t, err)

		expected := decimal.NewFromFloat(value).
			Mul(decimal.NewFromInt(1).Add(cover.Percentage())).
			Mul(decimal.RequireFromString("0.7")).
			Round(2)
		assert.True(t, expected.Equal(out.Premium), "expected %s, got %s", expected, out.Premium)
	})
}

func TestProperty_Idempotent(t *testing.T) {
	svc := NewService(ServiceDependencies{}, DefaultConfig())

	rapid.Check(t, func(t *rapid.T) {
		in := &Input{
			BreakdownCover:    string(drawCover(t)),
			WindscreenRepair:  rapid.SampledFrom([]string{"Yes", "No", "true", "false"}).Draw(t, "windscreen"),
			NumberOfAccidents: rapid.IntRange(0, 10).Draw(t, "accidents"),
			TotalMileage:      rapid.IntRange(0, 50000).Draw(t, "mileage"),
			EstimatedValue:    drawValue(t, "value"),
			ParkingLocation:   rapid.SampledFrom([]string{"Public Place", "Garage", "Driveway/Carport"}).Draw(t, "parking"),
		}

		first, err := svc.Execute(context.Background(), in)
		require.NoError(t, err)
		second, err := svc.Execute(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, first.Premium.Equal(second.Premium))
		assert.Equal(t, first.Request, second.Request)
	})
}

func TestProperty_MonotonicInValue(t *testing.T) {
	svc := NewService(ServiceDependencies{}, DefaultConfig())

	rapid.Check(t, func(t *rapid.T) {
		in := &Input{
			BreakdownCover:    string(drawCover(t)),
			WindscreenRepair:  rapid.SampledFrom([]string{"Yes", "No"}).Draw(t, "windscreen"),
			NumberOfAccidents: rapid.IntRange(0, 3).Draw(t, "accidents"),
			TotalMileage:      rapid.IntRange(0, 10000).Draw(t, "mileage"),
			EstimatedValue:    100,
			ParkingLocation:   rapid.SampledFrom([]string{"Public Place", "Garage"}).Draw(t, "parking"),
		}
		boundary, err := svc.Execute(context.Background(), in)
		require.NoError(t, err)

		low := drawValue(t, "low")
		high := drawValue(t, "high")
		if low > high {
			low, high = high, low
		}

		in.EstimatedValue = low
		lowOut, err := svc.Execute(context.Background(), in)
		require.NoError(t, err)
		in.EstimatedValue = high
		highOut, err := svc.Execute(context.Background(), in)
		require.NoError(t, err)

		assert.True(t, lowOut.Premium.GreaterThanOrEqual(boundary.Premium))
		assert.True(t, highOut.Premium.GreaterThanOrEqual(lowOut.Premium))
	})
}

func TestProperty_RoundingStable(t *testing.T) {
	svc := NewService(ServiceDependencies{}, DefaultConfig())

	rapid.Check(t, func(t *rapid.T) {
		out, err := svc.Execute(context.Background(), &Input{
			BreakdownCover:    string(drawCover(t)),
			NumberOfAccidents: rapid.IntRange(0, 2).Draw(t, "accidents"),
			EstimatedValue:    drawValue(t, "value"),
		})
		require.NoError(t, err)
		assert.True(t, out.Premium.Round(2).Equal(out.Premium))
	})
}

func TestBoundaries(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	in := baseInput()
	in.EstimatedValue = 100
	_, err := svc.Execute(ctx, in)
	require.NoError(t, err)

	in.EstimatedValue = 99.99
	_, err = svc.Execute(ctx, in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "100")

	in = baseInput()
	in.TotalMileage = 5000
	atThreshold, err := svc.Execute(ctx, in)
	require.NoError(t, err)
	in.TotalMileage = 5001
	above, err := svc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "50", above.Premium.Sub(atThreshold.Premium).String())
}
