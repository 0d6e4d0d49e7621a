// Package token issues access tokens signed with the configured secret, for local
// development and smoke tests.
package token

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/auth"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/cli/bootstrap"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/constants"
)

var (
	opts   bootstrap.Options
	userID string
	role   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token",
		Long:  `Print a JWT for the given user and role, signed with auth.jwt.secret.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&opts.Env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&userID, "user-id", "", "Subject of the token (required)")
	cmd.Flags().StringVar(&role, "role", authorization.RoleUser.String(), "Role claim (user, admin)")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	r := authorization.UserRole(role)
	if !r.IsValid() {
		return fmt.Errorf("invalid role %q", role)
	}

	cfg, _, err := bootstrap.LoadConfig(opts)
	if err != nil {
		return err
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	signed, err := jwtSvc.Generate(userID, r)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}
