package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	repo "oalass-backend/internal/adapter/repository/mysql"
	"oalass-backend/internal/usecase/seed"
)

func (cli *commandLine) seeder() *seed.Usecase {
	return seed.NewUsecase(repo.ReposFor(cli.db), repo.NewGormUoW(cli.db), cli.log)
}

func (cli *commandLine) seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert reference data and users from a YAML document",
		Long:  "Upsert departments, statuses, leave types, periods, leave limits and users.\nRows are matched by natural key, so a dump can be restored over an existing database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			doc, err := seed.Load(f)
			if err != nil {
				return err
			}
			rep, err := cli.seeder().Seed(cmd.Context(), doc)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed document (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (cli *commandLine) dumpCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the database as a seed document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := cli.seeder().Dump(cmd.Context())
			if err != nil {
				return err
			}
			if file == "" || file == "-" {
				return seed.Write(cmd.OutOrStdout(), doc)
			}
			f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				return err
			}
			if err := seed.Write(f, doc); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "output file, stdout when empty or -")
	return cmd
}

func printReport(w io.Writer, rep *seed.Report) {
	sections := map[string]struct{}{}
	for s := range rep.Created {
		sections[s] = struct{}{}
	}
	for s := range rep.Updated {
		sections[s] = struct{}{}
	}
	names := make([]string, 0, len(sections))
	for s := range sections {
		names = append(names, s)
	}
	sort.Strings(names)
	for _, s := range names {
		fmt.Fprintf(w, "%-12s created=%d updated=%d\n", s, rep.Created[s], rep.Updated[s])
	}
}
