// Package testutils holds fixtures shared by package tests.
package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupAliasRepo initializes a Loam repository in a temp dir and writes the
// given files (name to content) into it. It fails the test on error.
func SetupAliasRepo(t *testing.T, files map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)

	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	WriteFiles(t, dir, files)
	return dir, repo
}

// WriteFiles writes files (name to content) into dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

// AliasDoc renders a markdown alias document with frontmatter.
func AliasDoc(command, body string) string {
	return fmt.Sprintf("---\ncommand: %q\n---\n%s\n", command, body)
}
