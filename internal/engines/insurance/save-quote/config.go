package savequote

import (
	"fmt"
	"time"

	"calculators/internal/common/config"
)

type Config struct {
	Enabled bool
	Timeout time.Duration
	IDMin   int
	IDMax   int
	// MaxAttempts bounds identification-number draws when an id is already taken.
	MaxAttempts int
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:     true,
		Timeout:     2 * time.Second,
		IDMin:       10000,
		IDMax:       99999,
		MaxAttempts: 3,
	}
}

// LoadConfig builds the engine config from the application settings.
func LoadConfig(q config.QuoteSettings, engine config.EngineConfig) *Config {
	cfg := DefaultConfig()
	cfg.Enabled = engine.Enabled
	cfg.Timeout = config.GetDuration(engine.Timeout)
	if q.IDMin > 0 {
		cfg.IDMin = q.IDMin
	}
	if q.IDMax > 0 {
		cfg.IDMax = q.IDMax
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.IDMin <= 0 || c.IDMax < c.IDMin {
		return fmt.Errorf("identification number range [%d, %d] is invalid", c.IDMin, c.IDMax)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1")
	}
	return nil
}
