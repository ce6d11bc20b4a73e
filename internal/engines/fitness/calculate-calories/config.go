package calculatecalories

import (
	"fmt"
	"time"

	"calculators/internal/common/config"
)

type Config struct {
	Enabled          bool
	Timeout          time.Duration
	DecimalPlaces    int32
	DetailedPlaces   int32
	DecimalSeparator string
	HistoryEnabled   bool
	// HistoryTolerance is how far duration and weight may differ for a history match.
	HistoryTolerance float64
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:          true,
		Timeout:          2 * time.Second,
		DecimalPlaces:    2,
		DetailedPlaces:   5,
		DecimalSeparator: ".",
		HistoryEnabled:   true,
		HistoryTolerance: 0.01,
	}
}

// LoadConfig builds the engine config from the application settings.
func LoadConfig(c config.CalorieSettings, engine config.EngineConfig) *Config {
	cfg := DefaultConfig()
	cfg.Enabled = engine.Enabled
	cfg.Timeout = config.GetDuration(engine.Timeout)
	cfg.DecimalPlaces = c.DecimalPlaces
	cfg.DetailedPlaces = c.DetailedPlaces
	if c.DecimalSeparator != "" {
		cfg.DecimalSeparator = c.DecimalSeparator
	}
	cfg.HistoryEnabled = c.HistoryEnabled
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.DecimalPlaces < 0 || c.DetailedPlaces < c.DecimalPlaces {
		return fmt.Errorf("decimal places must satisfy 0 <= decimal_places <= detailed_places")
	}
	if c.DecimalSeparator != "." && c.DecimalSeparator != "," {
		return fmt.Errorf("decimal separator must be \".\" or \",\"")
	}
	if c.HistoryTolerance < 0 {
		return fmt.Errorf("history tolerance cannot be negative")
	}
	return nil
}
