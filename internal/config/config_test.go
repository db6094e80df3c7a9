package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulint/nulint/internal/violation"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".nulint.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "warning", cfg.Output.FailLevel)
	assert.Empty(t, cfg.Select.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[select]
enabled = ["spacing"]
disabled = ["no_trailing_spaces"]

[select.severity-overrides]
explicit_long_flags = "error"

[output]
format = "json"
fail-level = "error"
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"spacing"}, cfg.Select.Enabled)
	assert.Equal(t, []string{"no_trailing_spaces"}, cfg.Select.Disabled)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, path, cfg.ConfigFile)

	sel, warnings := cfg.Selection()
	assert.Empty(t, warnings)
	assert.Equal(t, violation.SeverityError, sel.SeverityOverrides["explicit_long_flags"])
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output]\nformat = \"json\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	target := filepath.Join(nested, "script.nu")
	require.NoError(t, os.WriteFile(target, []byte("ls"), 0o644))

	cfg, err := Load(target)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestDiscoverMissingIsDefaults(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "script.nu")
	require.NoError(t, os.WriteFile(target, []byte("ls"), 0o644))

	cfg, err := Load(target)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Empty(t, cfg.ConfigFile)
}

func TestInvalidSeverityWarns(t *testing.T) {
	cfg := Default()
	cfg.Select.SeverityOverrides = map[string]string{"some_rule": "fatal"}

	sel, warnings := cfg.Selection()
	require.Len(t, warnings, 1)
	assert.NotContains(t, sel.SeverityOverrides, "some_rule")
}

func TestRuleOptionsValidated(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[rules.consistent_indentation]
indent-style = "tab"
indent-size = 4
`)
	_, err := LoadFromFile(path)
	assert.NoError(t, err)
}

func TestRuleOptionsRejectedOnSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[rules.consistent_indentation]
indent-style = "dots"
`)
	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestUnknownRuleOptionsRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[rules.no_such_rule]
max = 3
`)
	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadResolvesEditorConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte(`
root = true

[*.nu]
indent_style = tab
indent_size = 8
`), 0o644))
	target := filepath.Join(dir, "script.nu")
	require.NoError(t, os.WriteFile(target, []byte("ls"), 0o644))

	cfg, err := Load(target)
	require.NoError(t, err)
	require.NotNil(t, cfg.EditorConfig)
	assert.Equal(t, "tab", string(cfg.EditorConfig.IndentStyle))
	assert.Equal(t, "8", cfg.EditorConfig.IndentSize)
}

func TestLoadFromFileSkipsEditorConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[output]\nformat = \"json\"\n")
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.EditorConfig)
}

func TestFailSeverity(t *testing.T) {
	cfg := Default()
	sev, ok := cfg.FailSeverity()
	assert.True(t, ok)
	assert.Equal(t, violation.SeverityWarning, sev)

	cfg.Output.FailLevel = "none"
	_, ok = cfg.FailSeverity()
	assert.False(t, ok)
}
