package calculatepremium

import (
	"fmt"
	"time"

	"calculators/internal/common/config"

	"github.com/shopspring/decimal"
)

type Config struct {
	Enabled               bool
	Timeout               time.Duration
	BasePremiumRate       decimal.Decimal
	WindscreenCharge      decimal.Decimal
	HighMileageCharge     decimal.Decimal
	PublicParkingCharge   decimal.Decimal
	ZeroAccidentDiscount  decimal.Decimal
	HighMileageThreshold  int
	MinimumEstimatedValue decimal.Decimal
	DecimalPlaces         int32
	// WindscreenAfterDiscount moves the windscreen surcharge past the zero-accident discount.
	WindscreenAfterDiscount bool
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:               true,
		Timeout:               2 * time.Second,
		BasePremiumRate:       decimal.NewFromInt(1),
		WindscreenCharge:      decimal.NewFromInt(30),
		HighMileageCharge:     decimal.NewFromInt(50),
		PublicParkingCharge:   decimal.NewFromInt(30),
		ZeroAccidentDiscount:  decimal.RequireFromString("0.30"),
		HighMileageThreshold:  5000,
		MinimumEstimatedValue: decimal.NewFromInt(100),
		DecimalPlaces:         2,
	}
}

// LoadConfig builds the engine config from the application settings.
func LoadConfig(s config.PremiumSettings, engine config.EngineConfig) *Config {
	return &Config{
		Enabled:               engine.Enabled,
		Timeout:               config.GetDuration(engine.Timeout),
		BasePremiumRate:       decimal.NewFromFloat(s.BasePremiumRate),
		WindscreenCharge:      decimal.NewFromFloat(s.WindscreenCharge),
		HighMileageCharge:     decimal.NewFromFloat(s.HighMileageCharge),
		PublicParkingCharge:   decimal.NewFromFloat(s.PublicParkingCharge),
		ZeroAccidentDiscount:  decimal.NewFromFloat(s.ZeroAccidentDiscount),
		HighMileageThreshold:  s.HighMileageThreshold,
		MinimumEstimatedValue: decimal.NewFromFloat(s.MinimumEstimatedValue),
		DecimalPlaces:         s.DecimalPlaces,

		WindscreenAfterDiscount: s.WindscreenAfterDiscount,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if !c.BasePremiumRate.IsPositive() {
		return fmt.Errorf("base_premium_rate must be positive")
	}
	if c.ZeroAccidentDiscount.IsNegative() || c.ZeroAccidentDiscount.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("zero_accident_discount must be in [0, 1)")
	}
	if c.WindscreenCharge.IsNegative() || c.HighMileageCharge.IsNegative() || c.PublicParkingCharge.IsNegative() {
		return fmt.Errorf("surcharges cannot be negative")
	}
	if c.DecimalPlaces < 0 {
		return fmt.Errorf("decimal_places cannot be negative")
	}
	return nil
}
