package migrate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/database"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/migration"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/cli/bootstrap"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/constants"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

var (
	opts  bootstrap.Options
	auto  bool
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending versions, roll back, and report the current version.`,
	}

	cmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}

	cmd.Flags().BoolVar(&auto, "auto", false, "Use gorm AutoMigrate instead of the versioned SQL scripts (development only)")

	return cmd
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version of the database.`,
		RunE:  runStatus,
	}
}

func initEnv() (string, logger.Interface, error) {
	cfg, log, err := bootstrap.Init(opts)
	if err != nil {
		return "", nil, err
	}
	return cfg.Database.Driver, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	driver, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", opts.Env, "auto", auto)

	manager, err := migration.NewManager(driver, auto, log)
	if err != nil {
		return err
	}
	if err := manager.Migrate(cmd.Context(), database.Get()); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", steps)
	}

	driver, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("rolling back migrations", "environment", opts.Env, "steps", steps)

	strategy, err := migration.NewGooseStrategy(driver, log)
	if err != nil {
		return err
	}
	return strategy.MigrateDown(cmd.Context(), database.Get(), steps)
}

func runStatus(cmd *cobra.Command, args []string) error {
	driver, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	current, err := currentVersion(cmd.Context(), driver, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", current)
	return nil
}

func currentVersion(ctx context.Context, driver string, log logger.Interface) (int64, error) {
	strategy, err := migration.NewGooseStrategy(driver, log)
	if err != nil {
		return 0, err
	}
	return strategy.GetVersion(ctx, database.Get())
}
