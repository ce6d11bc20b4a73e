// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Store         StoreConfig             `mapstructure:"store"`
	Engines       map[string]EngineConfig `mapstructure:"engines"`
	Premium       PremiumSettings         `mapstructure:"premium"`
	Calories      CalorieSettings         `mapstructure:"calories"`
	Profile       ProfileSettings         `mapstructure:"profile"`
	Quote         QuoteSettings           `mapstructure:"quote"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Store backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// StoreConfig selects where profiles, quotes and calorie observations live.
// Profiles support memory and postgres; quotes and observations support memory and redis.
type StoreConfig struct {
	Profiles     string `mapstructure:"profiles"`
	Quotes       string `mapstructure:"quotes"`
	Observations string `mapstructure:"observations"`
	KeyPrefix    string `mapstructure:"key_prefix"`
}

// EngineConfig holds the settings applicable to every engine.
type EngineConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds
}

// --- Engine Sections ---

// PremiumSettings holds the premium rate table.
type PremiumSettings struct {
	BasePremiumRate       float64 `mapstructure:"base_premium_rate"`
	WindscreenCharge      float64 `mapstructure:"windscreen_charge"`
	HighMileageCharge     float64 `mapstructure:"high_mileage_charge"`
	PublicParkingCharge   float64 `mapstructure:"public_parking_charge"`
	ZeroAccidentDiscount  float64 `mapstructure:"zero_accident_discount"`
	HighMileageThreshold  int     `mapstructure:"high_mileage_threshold"`
	MinimumEstimatedValue float64 `mapstructure:"minimum_estimated_value"`
	DecimalPlaces         int32   `mapstructure:"decimal_places"`

	WindscreenAfterDiscount bool `mapstructure:"windscreen_after_discount"`
}

// CalorieSettings holds calorie engine and formatter settings.
type CalorieSettings struct {
	DecimalPlaces    int32  `mapstructure:"decimal_places"`
	DetailedPlaces   int32  `mapstructure:"detailed_places"`
	DecimalSeparator string `mapstructure:"decimal_separator"`
	HistoryEnabled   bool   `mapstructure:"history_enabled"`
}

// ProfileSettings holds profile validation bounds.
type ProfileSettings struct {
	MinimumAge       int `mapstructure:"minimum_age"`
	MaxLicensePeriod int `mapstructure:"max_license_period"`
}

// QuoteSettings controls saved quotes.
type QuoteSettings struct {
	TTL   int `mapstructure:"ttl"` // milliseconds, 0 keeps quotes until cleared
	IDMin int `mapstructure:"id_min"`
	IDMax int `mapstructure:"id_max"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ObservabilityConfig toggles the metric and trace providers.
type ObservabilityConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}
