package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"oalass-backend/internal/domain/user"
	"oalass-backend/internal/usecase/seed"
)

// addUserCmd updates or creates a user. The password is prompted.
func (cli *commandLine) addUserCmd() *cobra.Command {
	var in seed.User
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create or update an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pwd, err := promptPassword(cmd.OutOrStdout(), "Enter password:")
			if err != nil {
				return err
			}
			in.Password = pwd
			rep, err := cli.seeder().Seed(cmd.Context(), &seed.Document{Users: []seed.User{in}})
			if err != nil {
				return err
			}
			verb := "updated"
			if rep.Created["users"] > 0 {
				verb = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", verb, user.NormalizeEmail(in.Email), in.Role)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Email, "email", "", "login email")
	f.StringVar(&in.FirstName, "first-name", "", "first name")
	f.StringVar(&in.LastName, "last-name", "", "last name")
	f.StringVar(&in.Role, "role", string(user.RoleAdmin), "TEACHER, DEAN, FINANCE or ADMIN")
	f.StringVar(&in.Department, "department", "", "department code")
	f.StringVar(&in.Status, "status", "", "employment status code")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
