package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/cli/admin"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/cli/escalate"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/cli/migrate"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/cli/server"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/cli/token"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "civicpulse",
		Short:   "CivicPulse - civic issue reporting with automatic call escalation",
		Long:    `CivicPulse accepts citizen issue reports and places a phone call to the responsible authority when a report sits unreviewed past its dwell time.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		escalate.NewCommand(),
		admin.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
