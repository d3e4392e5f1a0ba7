// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	messageStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a commit message from a diff",
		Long:  "Read a git diff from stdin (or --file) and print a generated commit message. Pipe `git diff --staged` straight in.",
		RunE:  runGenerate,
	}

	cmd.Flags().StringP("file", "f", "", "read the diff from a file instead of stdin")
	cmd.Flags().Bool("plain", false, "print only the message, without styling")

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	diff, err := readDiff(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := WireApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.Engine.Generate(cmd.Context(), diff)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		_, err = fmt.Fprintln(out, res.Message)
		return err
	}

	source := res.Provider
	if res.Cached {
		source += " (cached)"
	}
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Commit message (%s, %s change)",
		source, res.Analysis.ChangeType)))
	fmt.Fprintln(out, messageStyle.Render(res.Message))
	return nil
}

// readDiff pulls the diff from --file or stdin.
func readDiff(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", icerr.Wrapf(err, icerr.CodeCLIInputInvalid, "reading diff file %s", path)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", icerr.Wrap(err, icerr.CodeCLIInputInvalid, "reading diff from stdin")
	}
	return string(data), nil
}
