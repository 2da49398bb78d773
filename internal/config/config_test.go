package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	// Test default values
	assert.Equal(t, 2, cfg.Output.Indent)
	assert.False(t, cfg.Output.SortKeys)
	assert.False(t, cfg.Form.HumanizeLabels)
	assert.Equal(t, 0, cfg.Form.CollapseDepth)
	assert.Equal(t, 40, cfg.Form.PreviewWidth)
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
output:
  indent: 4
  sort_keys: true
form:
  humanize_labels: true
  collapse_depth: 2
  preview_width: 60
`

	// Create temp file
	tmpFile, err := os.CreateTemp("", "config_test_*.yml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(yamlContent)
	require.NoError(t, err)
	_ = tmpFile.Close()

	// Load config
	cfg, err := LoadConfig(tmpFile.Name())
	require.NoError(t, err)

	// Verify values
	assert.Equal(t, 4, cfg.Output.Indent)
	assert.True(t, cfg.Output.SortKeys)
	assert.True(t, cfg.Form.HumanizeLabels)
	assert.Equal(t, 2, cfg.Form.CollapseDepth)
	assert.Equal(t, 60, cfg.Form.PreviewWidth)
}

func TestConfig_LoadPartialYAMLKeepsDefaults(t *testing.T) {
	yamlContent := `
output:
  sort_keys: true
`

	tmpFile, err := os.CreateTemp("", "partial_*.yml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(yamlContent)
	require.NoError(t, err)
	_ = tmpFile.Close()

	cfg, err := LoadConfig(tmpFile.Name())
	require.NoError(t, err)

	assert.True(t, cfg.Output.SortKeys)
	// Unset keys fall back to defaults
	assert.Equal(t, 2, cfg.Output.Indent)
	assert.Equal(t, 40, cfg.Form.PreviewWidth)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	invalidYAML := `
output:
  indent: [unclosed array
`

	tmpFile, err := os.CreateTemp("", "invalid_*.yml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(invalidYAML)
	require.NoError(t, err)
	_ = tmpFile.Close()

	_, err = LoadConfig(tmpFile.Name())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_FindConfigFile(t *testing.T) {
	// Create temp directory structure
	tmpDir, err := os.MkdirTemp("", "config_search_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	// Create nested directory
	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	err = os.MkdirAll(nestedDir, 0o755)
	require.NoError(t, err)

	// Create config file in project root
	configPath := filepath.Join(tmpDir, "project", ".jsonedit.yml")
	configContent := "output:\n  indent: 8\n"
	err = os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	// Change to nested directory
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(nestedDir)
	require.NoError(t, err)

	// Find config file - should find it in parent directory
	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	// Verify it's the same file by reading content
	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), "indent: 8")
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	// Create temp directory with no config
	tmpDir, err := os.MkdirTemp("", "no_config_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(tmpDir)
	require.NoError(t, err)

	// Should not find config file
	foundPath := FindConfigFile()
	assert.Empty(t, foundPath)
}

func TestLoad_BrokenConfigFallsBackToDefaults(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "broken_config_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	err = os.WriteFile(filepath.Join(tmpDir, ".jsonedit.yml"), []byte("output: [not a mapping"), 0o644)
	require.NoError(t, err)

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(tmpDir)
	require.NoError(t, err)

	cfg := Load()
	require.NotNil(t, cfg)
	assert.Equal(t, 2, cfg.Output.Indent)
}
