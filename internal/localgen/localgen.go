// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package localgen produces a templated commit message from a diff
// classification without touching the network. It is the engine's
// correctness backstop: output quality is a non-goal, availability is the
// guarantee. Everything here is pure and deterministic.
package localgen

import (
	"fmt"
	"strings"

	"github.com/prashant-zo/IntelliCommit/internal/analyze"
)

// Context is the lightweight view of a diff the templates consume.
type Context struct {
	FileName          string
	AddedLines        []string
	RemovedLines      []string
	PureAddition      bool
	PureDeletion      bool
	UIComponent       bool
	TouchesValidation bool
}

// BuildContext re-splits the diff into added/removed line text and applies
// small content heuristics.
func BuildContext(diff string, a analyze.Analysis) Context {
	c := Context{FileName: a.FileName}

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			c.AddedLines = append(c.AddedLines, strings.TrimPrefix(line, "+"))
		case strings.HasPrefix(line, "-"):
			c.RemovedLines = append(c.RemovedLines, strings.TrimPrefix(line, "-"))
		}
	}

	c.PureAddition = len(c.AddedLines) > 0 && len(c.RemovedLines) == 0
	c.PureDeletion = len(c.RemovedLines) > 0 && len(c.AddedLines) == 0

	added := strings.ToLower(strings.Join(c.AddedLines, "\n"))
	c.UIComponent = strings.Contains(added, "component") ||
		strings.Contains(added, "render") ||
		strings.Contains(added, "classname") ||
		strings.HasSuffix(a.FileExtension, "tsx") ||
		strings.HasSuffix(a.FileExtension, "jsx")
	c.TouchesValidation = strings.Contains(added, "valid") ||
		strings.Contains(added, "trim") ||
		strings.Contains(added, "check")

	return c
}

// Generate renders the template for the analysis change type. Unrecognized
// types fall through to the chore template. Never fails.
func Generate(diff string, a analyze.Analysis) string {
	c := BuildContext(diff, a)
	subject, bullets := render(a, c)
	return subject + "\n\n" + strings.Join(bullets, "\n")
}

// render picks one of the twelve templates by change type.
func render(a analyze.Analysis, c Context) (string, []string) {
	target := c.target()
	stat := statBullet(a)
	shape := "- " + c.shape() + " affecting " + target

	switch a.ChangeType {
	case analyze.ChangeFeature:
		what := "new functionality"
		if c.UIComponent {
			what = "a new UI component"
		}
		return "feat: add " + what + " in " + target,
			[]string{"- introduce " + what, stat, shape}

	case analyze.ChangeBugFix:
		bullets := []string{"- correct faulty behavior in " + target, stat}
		if c.TouchesValidation {
			bullets = append(bullets, "- tighten input validation")
		}
		return "fix: resolve issue in " + target, bullets

	case analyze.ChangeSecurity:
		return "security: harden " + target,
			[]string{"- address a security-sensitive code path", "- review credential and input handling", stat}

	case analyze.ChangePerformance:
		return "perf: improve performance of " + target,
			[]string{"- reduce unnecessary work in hot paths", stat, shape}

	case analyze.ChangeRefactor:
		return "refactor: restructure " + target,
			[]string{"- reorganize code without changing behavior", stat, shape}

	case analyze.ChangeStyling:
		return "style: update styling in " + target,
			[]string{"- adjust visual presentation", stat}

	case analyze.ChangeTest:
		return "test: update tests for " + target,
			[]string{"- extend test coverage", stat}

	case analyze.ChangeDocs:
		return "docs: update documentation in " + target,
			[]string{"- revise documentation content", stat}

	case analyze.ChangeConfig:
		return "config: adjust configuration in " + target,
			[]string{"- change build or runtime configuration", stat}

	case analyze.ChangeDatabase:
		return "db: update database layer in " + target,
			[]string{"- modify queries, schema, or migrations", stat, shape}

	case analyze.ChangeAPI:
		return "api: update API integration in " + target,
			[]string{"- change request or response handling", stat}

	default:
		return "chore: update " + target,
			[]string{"- routine maintenance changes", stat, shape}
	}
}

// target names what the commit touches.
func (c Context) target() string {
	if c.FileName != "" {
		return c.FileName
	}
	return "the codebase"
}

// shape classifies the diff as a pure addition, pure removal, or mixed
// modification.
func (c Context) shape() string {
	switch {
	case c.PureAddition:
		return "pure addition"
	case c.PureDeletion:
		return "pure removal"
	default:
		return "modification"
	}
}

func statBullet(a analyze.Analysis) string {
	return fmt.Sprintf("- %d added, %d removed across %s",
		a.AddedLines, a.RemovedLines, pluralize(a.FileCount, "file"))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
