// Package admin manages explicit admin grants stored in the casbin policy table.
package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/database"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/permission"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/cli/bootstrap"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/constants"
)

var opts bootstrap.Options

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Grant or revoke the admin role",
		Long:  `Grant or revoke the admin role for a user ID, independent of the role claim carried in their tokens.`,
	}

	cmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "grant <user-id>",
			Short: "Give a user the admin role",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEnforcer(func(e *permission.Enforcer) error {
					if err := e.GrantAdmin(args[0]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "granted admin to %s\n", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "revoke <user-id>",
			Short: "Remove an explicit admin grant",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEnforcer(func(e *permission.Enforcer) error {
					if err := e.RevokeAdmin(args[0]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "revoked admin from %s\n", args[0])
					return nil
				})
			},
		},
	)

	return cmd
}

func withEnforcer(fn func(e *permission.Enforcer) error) error {
	_, log, err := bootstrap.Init(opts)
	if err != nil {
		return err
	}
	defer database.Close()

	enforcer, err := permission.NewEnforcer(database.Get(), log)
	if err != nil {
		return err
	}
	if err := enforcer.SeedDefaultPolicies(); err != nil {
		return err
	}
	return fn(enforcer)
}
