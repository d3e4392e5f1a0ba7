// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package engine

import (
	"strings"

	"github.com/prashant-zo/IntelliCommit/internal/analyze"
)

const promptPreamble = `You are helping a software developer write the best git commit message for their code changes.

Respond with a conventional commit message: a single "type: summary" subject line under 72 characters, optionally followed by a blank line and a short bullet-point body. Do not include explanations, markdown fences, issue references, or author names.`

// BuildPrompt renders the single prompt string every provider receives.
// Deterministic for a given sanitized diff and analysis.
func BuildPrompt(diff string, a analyze.Analysis) string {
	var b strings.Builder

	b.WriteString(promptPreamble)
	b.WriteString("\n\n# CHANGE SUMMARY\n")
	b.WriteString("Likely change type: " + string(a.ChangeType) + "\n")
	b.WriteString("Complexity: " + string(a.Complexity) + "\n")
	if a.FileName != "" {
		b.WriteString("Primary file: " + a.FileName + "\n")
	}

	b.WriteString("\n# CODE CHANGES\n")
	b.WriteString(diff)
	if !strings.HasSuffix(diff, "\n") {
		b.WriteString("\n")
	}

	return b.String()
}
