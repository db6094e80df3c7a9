// Package config provides configuration loading and discovery for
// nulint.
//
// Configuration is loaded from multiple sources with the following
// priority (highest to lowest):
//  1. CLI flags
//  2. Environment variables (NULINT_* prefix)
//  3. Config file (closest .nulint.toml or nulint.toml)
//  4. Built-in defaults
//
// Config file discovery follows a cascading pattern: starting from the
// target file's directory, walk up the filesystem until a config file
// is found. The closest config wins (no merging).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/editorconfig/editorconfig-core-go/v2"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames defines the config file names to search for, in
// priority order.
var ConfigFileNames = []string{".nulint.toml", "nulint.toml"}

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "NULINT_"

// Config represents the complete nulint configuration.
type Config struct {
	// Select controls which rules run and at what severity.
	Select SelectConfig `koanf:"select"`

	// Output configures output format and behavior.
	Output OutputConfig `koanf:"output"`

	// Rules carries rule-specific option tables, keyed by rule id.
	Rules map[string]map[string]any `koanf:"rules"`

	// ConfigFile is the path to the config file that was loaded (if
	// any). This is metadata, not loaded from config.
	ConfigFile string `koanf:"-"`

	// EditorConfig is the .editorconfig definition resolved for the
	// target file, when Load found one. Nil for LoadFromFile and for
	// targets with no .editorconfig in scope. Consumers rebind the
	// indentation rule with it so rules themselves do no I/O.
	EditorConfig *editorconfig.Definition `koanf:"-"`
}

// SelectConfig mirrors the selection shape of the programmatic API:
// enabled/disabled rule ids or group names, plus severity overrides.
type SelectConfig struct {
	// Enabled lists rule ids or group names to activate. Empty means
	// all rules.
	Enabled []string `koanf:"enabled"`

	// Disabled lists rule ids or group names to suppress. Disabled
	// wins over Enabled on conflict.
	Disabled []string `koanf:"disabled"`

	// SeverityOverrides maps rule ids to "error", "warning", or
	// "info".
	SeverityOverrides map[string]string `koanf:"severity-overrides"`
}

// OutputConfig configures output formatting and behavior.
type OutputConfig struct {
	// Format specifies the output format: "text", "json", "sarif".
	// Default: "text"
	Format string `koanf:"format"`

	// FailLevel sets the minimum severity that causes a non-zero exit
	// code: "error", "warning", "info", or "none".
	// Default: "warning"
	FailLevel string `koanf:"fail-level"`
}

// Default returns the default configuration: every rule enabled at its
// declared severity, human-readable output.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:    "text",
			FailLevel: "warning",
		},
	}
}

// Discover finds the closest config file for a target path, walking up
// from the target's directory. Returns "" when no config file exists.
func Discover(targetPath string) string {
	dir := targetPath
	if info, err := os.Stat(targetPath); err != nil || !info.IsDir() {
		dir = filepath.Dir(targetPath)
	}
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load loads configuration for a target file path: closest config
// file, then environment overrides, plus the target's .editorconfig
// definition when one is in scope.
func Load(targetPath string) (*Config, error) {
	cfg, err := loadWithConfigPath(Discover(targetPath))
	if err != nil {
		return nil, err
	}
	// A broken or absent .editorconfig never fails the load; the
	// indentation rule just keeps its defaults.
	if def, defErr := editorconfig.GetDefinitionForFilename(targetPath); defErr == nil {
		cfg.EditorConfig = def
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific config file path,
// without discovery.
func LoadFromFile(configPath string) (*Config, error) {
	return loadWithConfigPath(configPath)
}

func loadWithConfigPath(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}

	// NULINT_OUTPUT_FORMAT=json -> output.format=json
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFile = configPath

	if err := validateRuleOptions(cfg.Rules); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKeyTransform maps NULINT_OUTPUT_FAIL_LEVEL to output.fail-level:
// the first underscore separates the section, the rest become dashes.
func envKeyTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key, value
	}
	return section + "." + strings.ReplaceAll(rest, "_", "-"), value
}
