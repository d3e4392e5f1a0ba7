// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package sanitize redacts secret-shaped substrings from diff text and
// bounds its size before any provider sees it.
package sanitize

import "regexp"

// RedactionMarker replaces every secret-shaped substring.
const RedactionMarker = "[REDACTED]"

// MaxDiffChars is the character budget applied after redaction. Anything
// past it is discarded.
const MaxDiffChars = 12000

var (
	// Assignment of a 16+ character value to an identifier containing a
	// secret-ish word, e.g. OPENAI_API_KEY=sk-... or password: "hunter2..".
	secretAssignment = regexp.MustCompile(`(?i)[\w.-]*(?:key|token|secret|password|api)[\w.-]*\s*[:=]\s*["']?[^\s"']{16,}["']?`)

	// Bearer tokens in headers or code.
	bearerToken = regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._~+/=-]{8,}`)
)

// Sanitize redacts secret-shaped substrings and truncates the result to
// MaxDiffChars. Pure function, never fails.
func Sanitize(raw string) string {
	out := secretAssignment.ReplaceAllString(raw, RedactionMarker)
	out = bearerToken.ReplaceAllString(out, RedactionMarker)
	return truncate(out, MaxDiffChars)
}

// truncate discards everything past limit characters, counting runes so a
// multi-byte character is never split.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
