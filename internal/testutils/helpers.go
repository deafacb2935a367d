package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/waymark/pkg/config"
	"github.com/aretw0/waymark/pkg/domain"
	"github.com/stretchr/testify/require"
)

// WriteFile writes content to dir/name and returns the path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "Failed to create fixture directory")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write fixture")
	return path
}

// ParseCatalog parses a YAML catalog without named guards.
// It fails the test immediately on error.
func ParseCatalog(t *testing.T, yaml string) *domain.Catalog {
	t.Helper()

	cat, err := config.ParseCatalog([]byte(yaml), nil)
	require.NoError(t, err, "Failed to parse catalog fixture")
	return cat
}
