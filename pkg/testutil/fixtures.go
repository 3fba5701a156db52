// Package testutil holds helpers shared by package tests: log capture and
// in-memory workspaces.
package testutil

import (
	"path"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// WorkspaceRoot is where NewMemWorkspace puts its files.
const WorkspaceRoot = "/workspace"

// NewMemWorkspace returns a MemMapFs with files written under WorkspaceRoot.
// Keys are slash-separated relative paths.
func NewMemWorkspace(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(WorkspaceRoot, 0o755))
	for rel, content := range files {
		full := path.Join(WorkspaceRoot, rel)
		require.NoError(t, fs.MkdirAll(path.Dir(full), 0o755))
		require.NoError(t, afero.WriteFile(fs, full, []byte(content), 0o644))
	}
	return fs
}

// PluginSource renders a PHP file with a docblock header. lines are
// "Label: value" strings.
func PluginSource(lines ...string) string {
	var b strings.Builder
	b.WriteString("<?php\n/**\n")
	for _, l := range lines {
		b.WriteString(" * ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString(" */\n\ndefined( 'ABSPATH' ) || exit;\n")
	return b.String()
}

// ThemeStylesheet renders a style.css with a header comment.
func ThemeStylesheet(lines ...string) string {
	var b strings.Builder
	b.WriteString("/*\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("*/\n\nbody { margin: 0; }\n")
	return b.String()
}
