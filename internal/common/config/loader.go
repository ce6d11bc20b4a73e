// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml over it and
// applies environment overrides. A missing base file yields the defaults.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // overlay is optional

	return decode(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	// Enable ENV override like PREMIUM_BASE_PREMIUM_RATE
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads the first .env found next to the binary or the module root.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills database credentials from the conventional variables.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
}

// setDefaults registers the rate table so that env overrides resolve even without a file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("premium.base_premium_rate", 1.0)
	v.SetDefault("premium.windscreen_charge", 30.0)
	v.SetDefault("premium.high_mileage_charge", 50.0)
	v.SetDefault("premium.public_parking_charge", 30.0)
	v.SetDefault("premium.zero_accident_discount", 0.30)
	v.SetDefault("premium.high_mileage_threshold", 5000)
	v.SetDefault("premium.minimum_estimated_value", 100.0)
	v.SetDefault("premium.decimal_places", 2)
	v.SetDefault("premium.windscreen_after_discount", false)

	v.SetDefault("calories.decimal_places", 2)
	v.SetDefault("calories.detailed_places", 5)
	v.SetDefault("calories.decimal_separator", ".")
	v.SetDefault("calories.history_enabled", true)

	v.SetDefault("profile.minimum_age", 18)
	v.SetDefault("profile.max_license_period", 50)

	v.SetDefault("store.profiles", BackendMemory)
	v.SetDefault("store.quotes", BackendMemory)
	v.SetDefault("store.observations", BackendMemory)
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "calculators"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Store.KeyPrefix == "" {
		cfg.Store.KeyPrefix = "calculators"
	}

	if cfg.Quote.IDMin == 0 {
		cfg.Quote.IDMin = 10000
	}
	if cfg.Quote.IDMax == 0 {
		cfg.Quote.IDMax = 99999
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}

	for key, engine := range cfg.Engines {
		if engine.Timeout == 0 {
			engine.Timeout = 5000
		}
		cfg.Engines[key] = engine
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Store.Profiles {
	case BackendMemory:
	case BackendPostgres:
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required for the postgres profile store")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required for the postgres profile store")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required for the postgres profile store")
		}
	default:
		return fmt.Errorf("store.profiles must be %q or %q, got %q", BackendMemory, BackendPostgres, cfg.Store.Profiles)
	}

	for name, backend := range map[string]string{"store.quotes": cfg.Store.Quotes, "store.observations": cfg.Store.Observations} {
		switch backend {
		case BackendMemory:
		case BackendRedis:
			if cfg.Database.Redis.Address == "" {
				return fmt.Errorf("database.redis.address is required when %s is redis", name)
			}
		default:
			return fmt.Errorf("%s must be %q or %q, got %q", name, BackendMemory, BackendRedis, backend)
		}
	}

	if cfg.Premium.BasePremiumRate <= 0 {
		return fmt.Errorf("premium.base_premium_rate must be positive")
	}
	if cfg.Premium.ZeroAccidentDiscount < 0 || cfg.Premium.ZeroAccidentDiscount >= 1 {
		return fmt.Errorf("premium.zero_accident_discount must be in [0, 1)")
	}
	if cfg.Premium.MinimumEstimatedValue < 0 {
		return fmt.Errorf("premium.minimum_estimated_value cannot be negative")
	}

	if sep := cfg.Calories.DecimalSeparator; sep != "." && sep != "," {
		return fmt.Errorf("calories.decimal_separator must be \".\" or \",\", got %q", sep)
	}

	if cfg.Profile.MinimumAge < 0 {
		return fmt.Errorf("profile.minimum_age cannot be negative")
	}

	if cfg.Quote.IDMin <= 0 || cfg.Quote.IDMax < cfg.Quote.IDMin {
		return fmt.Errorf("quote.id_min and quote.id_max must form a positive range")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetEngineConfig retrieves engine-specific configuration with fallback to defaults
func GetEngineConfig(cfg *Config, engineName string) EngineConfig {
	if engine, exists := cfg.Engines[engineName]; exists {
		return engine
	}
	return EngineConfig{
		Enabled: true,
		Timeout: 5000,
	}
}

// IsEngineEnabled checks if a specific engine is enabled
func IsEngineEnabled(cfg *Config, engineName string) bool {
	if engine, exists := cfg.Engines[engineName]; exists {
		return engine.Enabled
	}
	return true
}
