// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prashant-zo/IntelliCommit/internal/config"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// NewRootCmd creates the root intellicommit command with all subcommands
// registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "intellicommit",
		Short:         "intellicommit — AI-assisted commit message generation",
		Long:          "IntelliCommit generates commit messages from git diffs by racing multiple AI providers, with a deterministic local fallback so a message is always produced.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initViper(cmd); err != nil {
				return err
			}
			setupLogging(viper.GetBool("verbose"))
			return nil
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newServeCmd(),
		newGenerateCmd(),
		newSecretCmd(),
		newVersionCmd(),
	)

	return root
}

// initViper sets up the global Viper with defaults, env bindings, flag
// bindings, and optional config file so the standard precedence
// (flag > env > file > defaults) is handled uniformly.
func initViper(cmd *cobra.Command) error {
	v := viper.GetViper()

	config.SetDefaults(v)
	config.SetupEnv(v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return icerr.Wrap(err, icerr.CodeConfigLoadReadFailure, "reading config file")
		}
	} else {
		v.SetConfigName("intellicommit")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/intellicommit")
		v.AddConfigPath("/etc/intellicommit")
		// No config file is fine — defaults and env vars still apply.
		// Parse or permission errors must surface.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return icerr.Wrap(err, icerr.CodeConfigLoadReadFailure, "reading config")
			}
		}
	}

	if err := v.BindPFlag("verbose", cmd.Root().PersistentFlags().Lookup("verbose")); err != nil {
		return icerr.Wrap(err, icerr.CodeCLISetupFailure, "binding verbose flag")
	}

	return nil
}

// loadConfig resolves the effective configuration from the global Viper,
// with keyring secrets resolved.
func loadConfig() (*config.Config, error) {
	return config.FromViper(viper.GetViper(), secretStoreFactory())
}

// setupLogging routes slog to stderr so command output on stdout stays
// machine-readable.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
