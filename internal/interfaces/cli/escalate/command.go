// Package escalate runs a single escalation scan cycle from the command line, for cron
// deployments that do not keep the server's scheduler running.
package escalate

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/database"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/constants"
)

var opts bootstrap.Options

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escalate",
		Short: "Run one escalation cycle and exit",
		Long:  `Scan for overdue reported issues, place at most one call per issue, print the cycle summary as JSON and exit.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&opts.Env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(opts)
	if err != nil {
		return err
	}
	defer database.Close()

	container, err := httpRouter.NewContainer(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application container: %w", err)
	}
	defer container.Shutdown()

	result, err := container.RunEscalationCycle(cmd.Context())
	if err != nil {
		return fmt.Errorf("escalation cycle failed: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
