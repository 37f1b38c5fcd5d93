// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// The hostconf command loads, validates and inspects host connection
// config files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/z5labs/hostconf"
	"github.com/z5labs/hostconf/loader"
	"github.com/z5labs/hostconf/zipcheck"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	err := buildCmd().ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "hostconf",
		Short:        "Load, validate and inspect host connection configs.",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log import details to stderr")

	cmd.AddCommand(
		buildShowCmd(&verbose),
		buildZipcheckCmd(),
	)
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func buildShowCmd(verbose *bool) *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "show PATH",
		Short: "Import a config file and print it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			path := args[0]
			l, ok := loader.Select(
				path,
				loader.NewJson(loader.Logger(log)),
				loader.NewYaml(loader.Logger(log)),
			)
			if !ok {
				return fmt.Errorf("no loader is compatible with %s", path)
			}

			v, err := l.Import(cmd.Context(), path)
			if err != nil {
				return err
			}

			if validate {
				guarded := hostconf.Guard(v)
				err = guarded.SetIP(v.GetIP())
				if err != nil {
					return err
				}
				err = guarded.SetPort(v.GetPort())
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "re-apply loaded values through validating guards")
	return cmd
}

func buildZipcheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zipcheck ARCHIVE [FILE...]",
		Short: "Check that a zip archive contains the given files.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := zipcheck.ContainsRequiredFiles(args[0], args[1:])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s does not contain all required files", args[0])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s contains all required files\n", args[0])
			return nil
		},
	}
}
