// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package analyze classifies a unified diff into a change type, complexity
// tier, and confidence score. Classification is pure and deterministic: the
// classifier list below is evaluated in order and the first match wins, so
// the list order is part of the contract.
package analyze

import (
	"path"
	"regexp"
	"strings"
)

// ChangeType is the category a diff is classified into.
type ChangeType string

const (
	ChangeFeature     ChangeType = "feature"
	ChangeBugFix      ChangeType = "bugfix"
	ChangeSecurity    ChangeType = "security"
	ChangePerformance ChangeType = "performance"
	ChangeRefactor    ChangeType = "refactor"
	ChangeStyling     ChangeType = "styling"
	ChangeTest        ChangeType = "test"
	ChangeDocs        ChangeType = "docs"
	ChangeConfig      ChangeType = "config"
	ChangeDatabase    ChangeType = "database"
	ChangeAPI         ChangeType = "api"
	ChangeChore       ChangeType = "chore"
)

// Complexity is the size tier of a change.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

const (
	baseConfidence  = 0.5
	matchConfidence = 0.3
	maxConfidence   = 0.9

	highChangeThreshold   = 50
	mediumChangeThreshold = 20
)

// Analysis is the immutable classification of one diff.
type Analysis struct {
	FileName        string     `json:"file_name"`
	FileExtension   string     `json:"file_extension"`
	AddedLines      int        `json:"added_lines"`
	RemovedLines    int        `json:"removed_lines"`
	TotalChanges    int        `json:"total_changes"`
	FileCount       int        `json:"file_count"`
	ChangeType      ChangeType `json:"change_type"`
	Confidence      float64    `json:"confidence"`
	Complexity      Complexity `json:"complexity"`
	MatchedPatterns []string   `json:"matched_patterns,omitempty"`
}

// classifier pairs a named pattern with the category it selects.
type classifier struct {
	name    string
	change  ChangeType
	pattern *regexp.Regexp
}

// classifiers is evaluated top to bottom against the lower-cased diff; the
// first hit wins and no further patterns run. Reordering entries changes
// classification results.
var classifiers = []classifier{
	{"feature", ChangeFeature, regexp.MustCompile(`=>|\bfunction\b|\bfunc\b|\bclass\b|\bcomponent\b|\busestate\b|\buseeffect\b|\bexport\s+(default|const)\b`)},
	{"bugfix", ChangeBugFix, regexp.MustCompile(`\bfix(es|ed)?\b|\bbug\b|\bissue\b|\bnull\b|\bundefined\b|\bcrash\b|\bcatch\b|\btry\b`)},
	{"security", ChangeSecurity, regexp.MustCompile(`\bauth\b|\btoken\b|\bpassword\b|\bencrypt\w*\b|\bsanitiz\w*\b|\bxss\b|\bcsrf\b|\bvulnerab\w*\b|\bpermission\b`)},
	{"performance", ChangePerformance, regexp.MustCompile(`\bcache\b|\bmemo\b|\boptimiz\w*\b|\bperformance\b|\blazy\b|\bdebounce\b|\bthrottle\b`)},
	{"refactor", ChangeRefactor, regexp.MustCompile(`\brefactor\w*\b|\brenamed?\b|\bextract\w*\b|\bcleanup\b|\brestructur\w*\b|\bsimplif\w*\b`)},
	{"styling", ChangeStyling, regexp.MustCompile(`\.s?css\b|\bstyled?\b|\btailwind\b|\bclassname\b|\bmargin\b|\bpadding\b|\bfont-\w+\b|\bcolor:`)},
	{"test", ChangeTest, regexp.MustCompile(`\btest\w*\b|\bspec\b|\bexpect\(|\bassert\w*\b|\bmock\w*\b|\bjest\b|__tests__`)},
	{"docs", ChangeDocs, regexp.MustCompile(`\breadme\b|\.md\b|\bdocs?\b|\bchangelog\b|\blicense\b|\bcomment\w*\b`)},
	{"config", ChangeConfig, regexp.MustCompile(`\bconfig\w*\b|\.json\b|\.ya?ml\b|\.env\b|\bdockerfile\b|\bsettings\b|\bwebpack\b|\btsconfig\b`)},
	{"database", ChangeDatabase, regexp.MustCompile(`\bselect\b|\binsert\b|\bupdate\b|\bdelete\b|\bmigration\w*\b|\bschema\b|\bsql\b|\bmongo\w*\b|\bpostgres\w*\b`)},
	{"api", ChangeAPI, regexp.MustCompile(`\bapi\b|\bfetch\b|\baxios\b|\bendpoint\w*\b|\bhttp\w*\b|\brequest\b|\bresponse\b`)},
}

var (
	fileBoundary = regexp.MustCompile(`(?m)^diff --git `)
	newFilePath  = regexp.MustCompile(`(?m)^\+\+\+ b/(\S+)`)
	gitFilePath  = regexp.MustCompile(`(?m)^diff --git a/(\S+) b/\S+`)
)

// Analyze classifies a diff. It never fails; an empty diff yields a zero
// Analysis with type chore and complexity low.
func Analyze(diff string) Analysis {
	a := Analysis{
		ChangeType: ChangeChore,
		Confidence: baseConfidence,
		Complexity: ComplexityLow,
	}
	if diff == "" {
		return a
	}

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			a.AddedLines++
		case strings.HasPrefix(line, "-"):
			a.RemovedLines++
		}
	}
	a.TotalChanges = a.AddedLines + a.RemovedLines

	a.FileCount = len(fileBoundary.FindAllStringIndex(diff, -1))
	if a.FileCount == 0 {
		a.FileCount = 1
	}

	a.FileName, a.FileExtension = firstFile(diff)

	normalized := strings.ToLower(diff)
	for _, c := range classifiers {
		if c.pattern.MatchString(normalized) {
			a.ChangeType = c.change
			a.Confidence = min(baseConfidence+matchConfidence, maxConfidence)
			a.MatchedPatterns = append(a.MatchedPatterns, c.name)
			break
		}
	}

	switch {
	case a.TotalChanges > highChangeThreshold || a.FileCount > 1:
		a.Complexity = ComplexityHigh
	case a.TotalChanges > mediumChangeThreshold:
		a.Complexity = ComplexityMedium
	}

	return a
}

// firstFile extracts the first touched file path from +++ or diff --git
// headers and splits off its extension.
func firstFile(diff string) (name, ext string) {
	var p string
	if m := newFilePath.FindStringSubmatch(diff); m != nil {
		p = m[1]
	} else if m := gitFilePath.FindStringSubmatch(diff); m != nil {
		p = m[1]
	}
	if p == "" || p == "/dev/null" {
		return "", ""
	}
	return p, strings.TrimPrefix(path.Ext(p), ".")
}
