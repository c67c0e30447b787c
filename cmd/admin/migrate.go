package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"oalass-backend/internal/infrastructure/db"
)

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.Migrate(cli.db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d tables\n", len(db.Models()))
			return nil
		},
	}
}
