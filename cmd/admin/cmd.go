package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gorm.io/gorm"

	"oalass-backend/internal/notify"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errEmptyPassword = errors.New("empty password")
)

type commandLine struct {
	openDB   func() (*gorm.DB, error)
	log      *zap.Logger
	notifier notify.Notifier

	db *gorm.DB
}

func (cli *commandLine) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "OALASS database and account administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if cli.db != nil {
				return nil
			}
			gdb, err := cli.openDB()
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			cli.db = gdb
			return nil
		},
	}
	root.AddCommand(
		cli.migrateCmd(),
		cli.seedCmd(),
		cli.dumpCmd(),
		cli.addUserCmd(),
		cli.resetPasswordCmd(),
		cli.notifyDueCmd(),
	)
	return root
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errEmptyPassword
	}
	return string(pwd), nil
}
