// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prashant-zo/IntelliCommit/internal/secrets"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// serviceName is the keyring service under which provider keys are stored.
const serviceName = "intellicommit"

// secretStoreFactory creates a secrets.Store. It is a package-level
// variable so tests can substitute a mock implementation.
var secretStoreFactory = func() secrets.Store {
	return secrets.NewKeyringStore()
}

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage provider API keys in the OS keyring",
		Long:  "Store, list, and delete provider API keys kept in the operating system keyring. Reference stored keys from config as keyring://intellicommit/<name>.",
	}

	cmd.AddCommand(
		newSecretSetCmd(),
		newSecretListCmd(),
		newSecretDeleteCmd(),
	)

	return cmd
}

func newSecretSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Store a secret under the given name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := secretStoreFactory()
			if err := store.Set(serviceName, args[0], args[1]); err != nil {
				return icerr.Wrapf(err, icerr.CodeSecretStoreFailure, "storing secret %q", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored secret: %s\n", args[0])
			return nil
		},
	}
}

func newSecretListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stored secret names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := secretStoreFactory()
			keys, err := store.List(serviceName)
			if err != nil {
				return icerr.Wrap(err, icerr.CodeSecretListFailure, "listing secrets")
			}

			out := cmd.OutOrStdout()
			if len(keys) == 0 {
				_, _ = fmt.Fprintln(out, "No secrets stored.")
				return nil
			}
			for _, k := range keys {
				_, _ = fmt.Fprintln(out, k)
			}
			return nil
		},
	}
}

func newSecretDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a secret by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := secretStoreFactory()
			if err := store.Delete(serviceName, args[0]); err != nil {
				if icerr.HasCode(err, icerr.CodeSecretNotFound) {
					return icerr.Errorf(icerr.CodeSecretNotFound, "secret %q not found", args[0])
				}
				return icerr.Wrapf(err, icerr.CodeSecretDeleteFailure, "deleting secret %q", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted secret: %s\n", args[0])
			return nil
		},
	}
}
