package application

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cratis/cratis-core/internal/config"
	"github.com/cratis/cratis-core/internal/retry"
)

// App encapsulates the loaded configuration and the policies derived from it.
type App struct {
	holder *config.Holder
	config *config.Configuration
	retry  retry.Policy
	logger *zap.Logger
}

// New loads the configuration at configPath into holder and wires the
// dependencies that read from it. Any loader error aborts startup.
func New(configPath string, holder *config.Holder, logger *zap.Logger) (*App, error) {
	if err := holder.Load(configPath); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	cfg, err := holder.Get()
	if err != nil {
		return nil, err
	}

	policy := retry.FromConfig(cfg.AdvancedOrZero())

	logger.Info("configuration loaded",
		zap.String("path", configPath),
		zap.Object("config", cfg),
	)
	logger.Debug("retry policy",
		zap.Uint32("attempts", policy.Attempts),
		zap.Duration("delay", policy.Delay),
	)
	if _, ok := cfg.Backup.Interval(); !ok {
		logger.Debug("no backup interval configured; backups run on demand only")
	}

	return &App{
		holder: holder,
		config: cfg,
		retry:  policy,
		logger: logger,
	}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Configuration {
	return a.config
}

// Retry returns the retry policy derived from the advanced block.
func (a *App) Retry() retry.Policy {
	return a.retry
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}
