package main

import (
	"fmt"

	"github.com/spf13/cobra"

	repo "oalass-backend/internal/adapter/repository/mysql"
	"oalass-backend/internal/usecase/probation"
)

// notifyDueCmd is meant for an external cron; nothing here schedules it.
func (cli *commandLine) notifyDueCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "notify-due",
		Short: "Email admins about probations ending soon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := probation.NewUsecase(repo.NewProbationRepository(cli.db), repo.NewUserRepository(cli.db),
				repo.NewGormUoW(cli.db), cli.notifier, cli.log)
			n, err := uc.NotifyDue(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d probation(s) due within %d days\n", n, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", probation.DefaultDueDays, "window in calendar days")
	return cmd
}
