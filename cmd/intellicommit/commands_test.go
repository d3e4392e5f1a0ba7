// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"version"})

	err := root.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "intellicommit")
	assert.Contains(t, buf.String(), "dev")
}

func TestGenerateCommand_Help(t *testing.T) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"generate", "--help"})

	err := root.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "stdin")
	assert.Contains(t, buf.String(), "--file")
}

func TestServeCommand_Help(t *testing.T) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"serve", "--help"})

	err := root.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "--listen")
}

// With no providers configured, generate must still produce a message via
// the local generator.
func TestGenerateCommand_LocalFallback(t *testing.T) {
	useMockSecretStore(t, newMockSecretStore())
	for _, key := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}

	diff := `diff --git a/fix.go b/fix.go
--- a/fix.go
+++ b/fix.go
@@ -1,2 +1,2 @@
-	return nil
+	return err // fix error swallowing bug
`

	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetIn(strings.NewReader(diff))
	root.SetArgs([]string{"generate", "--plain"})

	err := root.Execute()
	require.NoError(t, err)
	assert.Regexp(t, `^[a-z]+: .+`, buf.String())
}

func TestGenerateCommand_EmptyStdin(t *testing.T) {
	useMockSecretStore(t, newMockSecretStore())

	root := NewRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetIn(strings.NewReader(""))
	root.SetArgs([]string{"generate", "--plain"})

	err := root.Execute()
	assert.Error(t, err)
}
