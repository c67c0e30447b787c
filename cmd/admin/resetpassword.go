package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	repo "oalass-backend/internal/adapter/repository/mysql"
	"oalass-backend/internal/domain/user"
	"oalass-backend/internal/usecase/account"
)

func (cli *commandLine) resetPasswordCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resetpassword",
		Short: "Set a user's password; the password is prompted next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			users := repo.NewUserRepository(cli.db)
			usr, err := users.GetByEmail(ctx, user.NormalizeEmail(email))
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return user.ErrNotFound
			}
			if err != nil {
				return err
			}
			pwd, err := promptPassword(cmd.OutOrStdout(), "Enter password:")
			if err != nil {
				return err
			}
			uc := account.NewUsecase(users, repo.NewCatalogRepository(cli.db), cli.notifier)
			if err := uc.ResetPassword(ctx, usr.UserID, pwd); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password reset for %s\n", usr.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "the user's email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
