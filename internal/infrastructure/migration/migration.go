package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

// Manager runs one migration strategy.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager returns a goose-backed manager, or a gorm AutoMigrate one when auto is set.
func NewManager(driver string, auto bool, log logger.Interface) (*Manager, error) {
	if auto {
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy(log, AutoMigrateModels()...), log), nil
	}

	strategy, err := NewGooseStrategy(driver, log)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(ctx, db); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
