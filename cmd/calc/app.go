package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"calculators/internal/common/config"
	"calculators/internal/common/logger"
	"calculators/internal/common/observability"
	"calculators/internal/engines/arithmetic"
	calculatecalories "calculators/internal/engines/fitness/calculate-calories"
	calculatepremium "calculators/internal/engines/insurance/calculate-premium"
	manageprofile "calculators/internal/engines/insurance/manage-profile"
	savequote "calculators/internal/engines/insurance/save-quote"
	validateprofile "calculators/internal/engines/insurance/validate-profile"
	"calculators/internal/regression"
	"calculators/internal/report"
	"calculators/internal/repository"
	"calculators/pkg/registry"
)

// app is everything a subcommand needs, built once per invocation.
type app struct {
	cfg      *config.Config
	zapLog   *zap.Logger
	log      logger.Logger
	obs      *observability.Observability
	promReg  *prometheus.Registry
	stores   *repository.Stores
	registry *registry.EngineRegistry
	renderer *report.Renderer

	metricsOut string

	arithmetic *arithmetic.Service
	premium    *calculatepremium.Service
	quotes     *savequote.Service
	calories   *calculatecalories.Service
	validator  *validateprofile.Service
	profiles   *manageprofile.Service

	calorieConfig *calculatecalories.Config
}

type appOptions struct {
	configPath string
	logLevel   string
	retries    int
	metricsOut string
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	level := cfg.Logging.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	zapLog := logger.New(level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	a := &app{cfg: cfg, zapLog: zapLog, log: log, metricsOut: opts.metricsOut}

	if cfg.Observability.Enabled {
		// a private registry keeps repeated invocations in one process from colliding
		a.promReg = prometheus.NewRegistry()
		a.obs, err = observability.New(cfg.Observability.ServiceName,
			observability.WithRegisterer(a.promReg),
			observability.WithSpanProcessor(observability.NewLogSpanProcessor(log)))
		if err != nil {
			return nil, err
		}
	}

	if a.registry, err = registry.Default(); err != nil {
		return nil, err
	}
	if a.renderer, err = report.New(); err != nil {
		return nil, err
	}

	if a.stores, err = repository.Open(cfg); err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}
	retries := opts.retries
	if retries < 1 {
		retries = 1
	}
	err = retryWithBackoff(func() error {
		return a.stores.Ping(ctx)
	}, retries, 500*time.Millisecond, zapLog, "Store connection")
	if err != nil {
		_ = a.stores.Close()
		return nil, err
	}

	if err := a.buildServices(); err != nil {
		_ = a.stores.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) buildServices() error {
	cfg := a.cfg

	premiumCfg := calculatepremium.LoadConfig(cfg.Premium, config.GetEngineConfig(cfg, calculatepremium.TaskType))
	quoteCfg := savequote.LoadConfig(cfg.Quote, config.GetEngineConfig(cfg, savequote.TaskType))
	a.calorieConfig = calculatecalories.LoadConfig(cfg.Calories, config.GetEngineConfig(cfg, calculatecalories.TaskType))
	profileCfg := validateprofile.LoadConfig(cfg.Profile, config.GetEngineConfig(cfg, validateprofile.TaskType))

	for name, v := range map[string]interface{ Validate() error }{
		calculatepremium.TaskType:  premiumCfg,
		savequote.TaskType:         quoteCfg,
		calculatecalories.TaskType: a.calorieConfig,
		validateprofile.TaskType:   profileCfg,
	} {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid %s configuration: %w", name, err)
		}
	}

	a.arithmetic = arithmetic.NewService(arithmetic.ServiceDependencies{Logger: a.log})
	a.premium = calculatepremium.NewService(calculatepremium.ServiceDependencies{
		Logger:        a.log,
		Observability: a.obs,
	}, premiumCfg)
	a.quotes = savequote.NewService(savequote.ServiceDependencies{
		Logger:        a.log,
		Observability: a.obs,
		Premium:       a.premium,
		Store:         a.stores.Quotes,
	}, quoteCfg)
	a.calories = calculatecalories.NewService(calculatecalories.ServiceDependencies{
		Logger:        a.log,
		Observability: a.obs,
		History:       a.stores.Observations,
	}, a.calorieConfig)
	a.validator = validateprofile.NewService(validateprofile.ServiceDependencies{Logger: a.log}, profileCfg)
	a.profiles = manageprofile.NewService(manageprofile.ServiceDependencies{
		Logger:    a.log,
		Store:     a.stores.Profiles,
		Validator: a.validator,
	})
	return nil
}

func (a *app) regressionRunner() (*regression.Runner, error) {
	return regression.NewRunner(regression.RunnerDependencies{
		Logger:   a.log,
		Registry: a.registry,
		Engines: regression.Engines{
			Arithmetic: a.arithmetic,
			Premium:    a.premium,
			Calories:   a.calories,
		},
	})
}

// engineContext bounds a call by the engine's configured timeout and refuses
// engines switched off in configuration.
func (a *app) engineContext(ctx context.Context, engine string) (context.Context, context.CancelFunc, error) {
	if !config.IsEngineEnabled(a.cfg, engine) {
		return nil, nil, fmt.Errorf("engine %q is disabled", engine)
	}
	timeout := config.GetDuration(config.GetEngineConfig(a.cfg, engine).Timeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, cancel, nil
}

func (a *app) close() {
	if a.stores != nil {
		if err := a.stores.Close(); err != nil {
			a.log.Warn("Failed to close stores", map[string]interface{}{"error": err.Error()})
		}
	}
	if a.metricsOut != "" {
		if err := a.writeMetrics(a.metricsOut); err != nil {
			a.log.Warn("Failed to write metrics", map[string]interface{}{
				"path":  a.metricsOut,
				"error": err.Error(),
			})
		}
	}
	if err := a.obs.Shutdown(); err != nil {
		a.log.Warn("Failed to shut down observability", map[string]interface{}{"error": err.Error()})
	}
	_ = a.zapLog.Sync()
}

// writeMetrics dumps the process metrics and, when observability is enabled,
// the engine meters in Prometheus text format.
func (a *app) writeMetrics(path string) error {
	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer}
	if a.promReg != nil {
		gatherers = append(gatherers, a.promReg)
	}
	return prometheus.WriteToTextfile(path, gatherers)
}
