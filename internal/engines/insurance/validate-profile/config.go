package validateprofile

import (
	"fmt"

	"calculators/internal/common/config"
)

type Config struct {
	Enabled          bool
	MinimumAge       int
	MinLicensePeriod int
	MaxLicensePeriod int
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:          true,
		MinimumAge:       18,
		MinLicensePeriod: 0,
		MaxLicensePeriod: 50,
	}
}

// LoadConfig builds the validator config from the application settings.
func LoadConfig(p config.ProfileSettings, engine config.EngineConfig) *Config {
	cfg := DefaultConfig()
	cfg.Enabled = engine.Enabled
	if p.MinimumAge > 0 {
		cfg.MinimumAge = p.MinimumAge
	}
	if p.MaxLicensePeriod > 0 {
		cfg.MaxLicensePeriod = p.MaxLicensePeriod
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.MinimumAge < 0 {
		return fmt.Errorf("minimum_age cannot be negative")
	}
	if c.MaxLicensePeriod < c.MinLicensePeriod {
		return fmt.Errorf("license period range [%d, %d] is invalid", c.MinLicensePeriod, c.MaxLicensePeriod)
	}
	return nil
}
