// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package analyze_test

import (
	"strings"
	"testing"

	"github.com/prashant-zo/IntelliCommit/internal/analyze"
	"github.com/stretchr/testify/assert"
)

const sampleDiff = `diff --git a/src/components/Button.tsx b/src/components/Button.tsx
--- a/src/components/Button.tsx
+++ b/src/components/Button.tsx
@@ -1,3 +1,6 @@
+const handleClick = () => {}
+export const Button = () => null
-const old = 1
`

func TestAnalyze_CountsLinesAndFiles(t *testing.T) {
	a := analyze.Analyze(sampleDiff)

	assert.Equal(t, 2, a.AddedLines)
	assert.Equal(t, 1, a.RemovedLines)
	assert.Equal(t, 3, a.TotalChanges)
	assert.Equal(t, 1, a.FileCount)
	assert.Equal(t, "src/components/Button.tsx", a.FileName)
	assert.Equal(t, "tsx", a.FileExtension)
}

func TestAnalyze_Deterministic(t *testing.T) {
	first := analyze.Analyze(sampleDiff)
	second := analyze.Analyze(sampleDiff)

	assert.Equal(t, first, second)
}

func TestAnalyze_PatternPriority_FeatureBeatsDatabase(t *testing.T) {
	// Matches both the feature pattern (arrow function) and the database
	// pattern (SELECT); the ordered list must classify it as feature.
	diff := "+const loadUsers = () => {}\n+const q = `SELECT * FROM users`\n"

	a := analyze.Analyze(diff)

	assert.Equal(t, analyze.ChangeFeature, a.ChangeType)
	assert.Equal(t, []string{"feature"}, a.MatchedPatterns, "only the first matching pattern fires")
}

func TestAnalyze_Categories(t *testing.T) {
	tests := []struct {
		name string
		diff string
		want analyze.ChangeType
	}{
		{"bugfix", "+fixed the crash on reload\n", analyze.ChangeBugFix},
		{"security", "+validate password strength\n", analyze.ChangeSecurity},
		{"performance", "+added memo to avoid rerender\n", analyze.ChangePerformance},
		{"refactor", "+renamed helper module\n", analyze.ChangeRefactor},
		{"styling", "+margin: 0 auto;\n", analyze.ChangeStyling},
		{"docs", "+updated the readme\n", analyze.ChangeDocs},
		{"database", "+insert into accounts values (1)\n", analyze.ChangeDatabase},
		{"chore default", "+miscellaneous line\n", analyze.ChangeChore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyze.Analyze(tt.diff)
			assert.Equal(t, tt.want, a.ChangeType)
		})
	}
}

func TestAnalyze_Confidence(t *testing.T) {
	matched := analyze.Analyze("+const f = () => {}\n")
	assert.InDelta(t, 0.8, matched.Confidence, 1e-9, "base 0.5 plus 0.3 on match")

	unmatched := analyze.Analyze("+plain line\n")
	assert.InDelta(t, 0.5, unmatched.Confidence, 1e-9)
}

func TestAnalyze_Complexity(t *testing.T) {
	low := analyze.Analyze("+one line\n")
	assert.Equal(t, analyze.ComplexityLow, low.Complexity)

	medium := analyze.Analyze("+line\n" + strings.Repeat("+x\n", 25))
	assert.Equal(t, analyze.ComplexityMedium, medium.Complexity)

	highByVolume := analyze.Analyze(strings.Repeat("+x\n", 60))
	assert.Equal(t, analyze.ComplexityHigh, highByVolume.Complexity)

	highByFiles := analyze.Analyze("diff --git a/a.go b/a.go\n+x\ndiff --git a/b.go b/b.go\n+y\n")
	assert.Equal(t, analyze.ComplexityHigh, highByFiles.Complexity)
	assert.Equal(t, 2, highByFiles.FileCount)
}

func TestAnalyze_EmptyDiff(t *testing.T) {
	a := analyze.Analyze("")

	assert.Equal(t, analyze.ChangeChore, a.ChangeType)
	assert.Equal(t, analyze.ComplexityLow, a.Complexity)
	assert.Zero(t, a.TotalChanges)
}

func TestAnalyze_FileHeadersNotCountedAsChanges(t *testing.T) {
	diff := "--- a/main.go\n+++ b/main.go\n+added\n-removed\n"

	a := analyze.Analyze(diff)

	assert.Equal(t, 1, a.AddedLines)
	assert.Equal(t, 1, a.RemovedLines)
}
