// Package bootstrap loads configuration and initializes the process-wide logger,
// business timezone and database for the CLI commands.
package bootstrap

import (
	"fmt"

	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/config"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/database"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/biztime"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/constants"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

// Options are the flags shared by every command.
type Options struct {
	Env        string
	ConfigPath string
}

// LoadConfig reads the config file (or the default search path) and initializes the logger
// and business timezone.
func LoadConfig(opts Options) (*config.Config, logger.Interface, error) {
	mode := MapEnvToGinMode(opts.Env)

	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFile(opts.ConfigPath, mode)
	} else {
		cfg, err = config.Load(mode)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, mode == "debug"); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.BizTimezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// Init is LoadConfig followed by opening the database. Callers defer database.Close.
func Init(opts Options) (*config.Config, logger.Interface, error) {
	cfg, log, err := LoadConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}

// MapEnvToGinMode translates a deployment environment name into a gin mode.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", "release":
		return "release"
	case constants.EnvTest, "testing":
		return "test"
	default:
		return "debug"
	}
}
