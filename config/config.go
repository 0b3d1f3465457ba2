package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/spiffcs/elapsed/duration"
	"github.com/spiffcs/elapsed/internal/constants"
)

// EnvPrefix prefixes environment variables that override config values.
const EnvPrefix = "ELAPSED_"

// Config represents the application configuration
type Config struct {
	DefaultOutput string `yaml:"default_output,omitempty" toml:"default_output,omitempty" json:"default_output,omitempty"`
	Decimals      *int   `yaml:"decimals,omitempty" toml:"decimals,omitempty" json:"decimals,omitempty"`
	Workers       *int   `yaml:"workers,omitempty" toml:"workers,omitempty" json:"workers,omitempty"`

	Format  *FormatOverrides  `yaml:"format,omitempty" toml:"format,omitempty" json:"format,omitempty"`
	History *HistoryOverrides `yaml:"history,omitempty" toml:"history,omitempty" json:"history,omitempty"`
}

// FormatOverrides allows customizing the default duration format options
type FormatOverrides struct {
	Words                *bool   `yaml:"words,omitempty" toml:"words,omitempty" json:"words,omitempty"`
	IncludeSeconds       *bool   `yaml:"include_seconds,omitempty" toml:"include_seconds,omitempty" json:"include_seconds,omitempty"`
	IncludeMilliseconds  *bool   `yaml:"include_milliseconds,omitempty" toml:"include_milliseconds,omitempty" json:"include_milliseconds,omitempty"`
	ShortMillisecondUnit *bool   `yaml:"short_millisecond_unit,omitempty" toml:"short_millisecond_unit,omitempty" json:"short_millisecond_unit,omitempty"`
	MonthAbbreviation    *string `yaml:"month_abbreviation,omitempty" toml:"month_abbreviation,omitempty" json:"month_abbreviation,omitempty"`
}

// HistoryOverrides - settings for the run history log
type HistoryOverrides struct {
	Enabled    *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty"`
	MaxRecords *int  `yaml:"max_records,omitempty" toml:"max_records,omitempty" json:"max_records,omitempty"`
}

// HistorySettings is the resolved history configuration
type HistorySettings struct {
	Enabled    bool
	MaxRecords int
}

// GetFormatOptions returns format options with user overrides merged with defaults
func (c *Config) GetFormatOptions() duration.Options {
	opts := duration.DefaultOptions()
	if c.Format == nil {
		return opts
	}

	f := c.Format
	if f.Words != nil {
		opts.Words = *f.Words
	}
	if f.IncludeSeconds != nil {
		opts.IncludeSeconds = *f.IncludeSeconds
	}
	if f.IncludeMilliseconds != nil {
		opts.IncludeMilliseconds = *f.IncludeMilliseconds
	}
	if f.ShortMillisecondUnit != nil {
		opts.ShortMillisecondUnit = *f.ShortMillisecondUnit
	}
	if f.MonthAbbreviation != nil && *f.MonthAbbreviation != "" {
		opts.MonthAbbreviation = *f.MonthAbbreviation
	}
	return opts
}

// GetDecimals returns the rounding precision used by convert and run
func (c *Config) GetDecimals() int {
	if c.Decimals != nil && *c.Decimals >= 0 {
		return *c.Decimals
	}
	return duration.DefaultDecimals
}

// GetWorkers returns the number of concurrent formatting workers
func (c *Config) GetWorkers() int {
	if c.Workers != nil && *c.Workers > 0 {
		return *c.Workers
	}
	return constants.DefaultWorkers
}

// GetHistorySettings returns history settings merged with defaults
func (c *Config) GetHistorySettings() HistorySettings {
	s := HistorySettings{
		Enabled:    true,
		MaxRecords: constants.HistoryMaxRecords,
	}
	if c.History == nil {
		return s
	}
	if c.History.Enabled != nil {
		s.Enabled = *c.History.Enabled
	}
	if c.History.MaxRecords != nil && *c.History.MaxRecords > 0 {
		s.MaxRecords = *c.History.MaxRecords
	}
	return s
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".elapsed"
	}
	return filepath.Join(configDir, "elapsed")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".elapsed.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from XDG config directory, then merges
// any local .elapsed.yaml config on top (local values take precedence).
// ELAPSED_* environment variables are applied last.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath(), LocalConfigPath())
}

// LoadFrom loads and merges the config files at the given paths.
// Missing files are skipped.
func LoadFrom(globalPath, localPath string) (*Config, error) {
	cfg := &Config{
		DefaultOutput: constants.OutputText,
	}

	global, err := readFile(globalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load global config file: %w", err)
	}
	if global != nil {
		cfg = mergeConfig(cfg, global)
	}

	local, err := readFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load local config file: %w", err)
	}
	if local != nil {
		cfg = mergeConfig(cfg, local)
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if cfg.DefaultOutput == "" {
		cfg.DefaultOutput = constants.OutputText
	}

	return cfg, nil
}

func readFile(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{
		DefaultOutput: global.DefaultOutput,
		Decimals:      global.Decimals,
		Workers:       global.Workers,
	}

	if local.DefaultOutput != "" {
		result.DefaultOutput = local.DefaultOutput
	}
	if local.Decimals != nil {
		result.Decimals = local.Decimals
	}
	if local.Workers != nil {
		result.Workers = local.Workers
	}

	result.Format = mergeFormat(global.Format, local.Format)
	result.History = mergeHistory(global.History, local.History)

	return result
}

func mergeFormat(global, local *FormatOverrides) *FormatOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &FormatOverrides{}

	if global != nil {
		*result = *global
	}

	if local != nil {
		if local.Words != nil {
			result.Words = local.Words
		}
		if local.IncludeSeconds != nil {
			result.IncludeSeconds = local.IncludeSeconds
		}
		if local.IncludeMilliseconds != nil {
			result.IncludeMilliseconds = local.IncludeMilliseconds
		}
		if local.ShortMillisecondUnit != nil {
			result.ShortMillisecondUnit = local.ShortMillisecondUnit
		}
		if local.MonthAbbreviation != nil {
			result.MonthAbbreviation = local.MonthAbbreviation
		}
	}

	// Return nil if all fields are nil
	if result.Words == nil && result.IncludeSeconds == nil && result.IncludeMilliseconds == nil &&
		result.ShortMillisecondUnit == nil && result.MonthAbbreviation == nil {
		return nil
	}

	return result
}

func mergeHistory(global, local *HistoryOverrides) *HistoryOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &HistoryOverrides{}

	if global != nil {
		*result = *global
	}

	if local != nil {
		if local.Enabled != nil {
			result.Enabled = local.Enabled
		}
		if local.MaxRecords != nil {
			result.MaxRecords = local.MaxRecords
		}
	}

	if result.Enabled == nil && result.MaxRecords == nil {
		return nil
	}

	return result
}

// applyEnv overrides config values from ELAPSED_* environment variables,
// e.g. ELAPSED_FORMAT_WORDS=1 or ELAPSED_DECIMALS=2.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "DEFAULT_OUTPUT"); ok && v != "" {
		cfg.DefaultOutput = v
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"DECIMALS", &cfg.Decimals},
		{"WORKERS", &cfg.Workers},
	}
	for _, e := range ints {
		v, ok := lookup(EnvPrefix + e.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, e.name, v, err)
		}
		*e.dst = &n
	}

	if cfg.Format == nil {
		cfg.Format = &FormatOverrides{}
	}
	if cfg.History == nil {
		cfg.History = &HistoryOverrides{}
	}

	bools := []struct {
		name string
		dst  **bool
	}{
		{"FORMAT_WORDS", &cfg.Format.Words},
		{"FORMAT_INCLUDE_SECONDS", &cfg.Format.IncludeSeconds},
		{"FORMAT_INCLUDE_MILLISECONDS", &cfg.Format.IncludeMilliseconds},
		{"FORMAT_SHORT_MILLISECOND_UNIT", &cfg.Format.ShortMillisecondUnit},
		{"HISTORY_ENABLED", &cfg.History.Enabled},
	}
	for _, e := range bools {
		v, ok := lookup(EnvPrefix + e.name)
		if !ok {
			continue
		}
		b := parseEnvBool(v)
		*e.dst = &b
	}

	if v, ok := lookup(EnvPrefix + "FORMAT_MONTH_ABBREVIATION"); ok {
		cfg.Format.MonthAbbreviation = &v
	}
	if v, ok := lookup(EnvPrefix + "HISTORY_MAX_RECORDS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sHISTORY_MAX_RECORDS %q: %w", EnvPrefix, v, err)
		}
		cfg.History.MaxRecords = &n
	}

	// Drop the sections again if no variable filled them in.
	cfg.Format = mergeFormat(nil, cfg.Format)
	cfg.History = mergeHistory(nil, cfg.History)
	return nil
}

// parseEnvBool accepts "1" and "true" as true; anything else is false.
func parseEnvBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true"
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return SaveTo(ConfigPath(), string(data))
}

// SetDefaultOutput sets the default output format and saves
func (c *Config) SetDefaultOutput(format string) error {
	c.DefaultOutput = format
	return c.Save()
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	opts := duration.DefaultOptions()
	decimals := duration.DefaultDecimals
	workers := constants.DefaultWorkers
	historyEnabled := true
	maxRecords := constants.HistoryMaxRecords

	return &Config{
		DefaultOutput: constants.OutputText,
		Decimals:      &decimals,
		Workers:       &workers,
		Format: &FormatOverrides{
			Words:                &opts.Words,
			IncludeSeconds:       &opts.IncludeSeconds,
			IncludeMilliseconds:  &opts.IncludeMilliseconds,
			ShortMillisecondUnit: &opts.ShortMillisecondUnit,
			MonthAbbreviation:    &opts.MonthAbbreviation,
		},
		History: &HistoryOverrides{
			Enabled:    &historyEnabled,
			MaxRecords: &maxRecords,
		},
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ToTOML returns the config as a TOML string
func (c *Config) ToTOML() (string, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return sb.String(), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	// Get absolute path for local config
	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# elapsed configuration file
# See: elapsed config defaults  (for all available options)

# Output format: text, json, yaml, toml or table
default_output: text

# Default rendering for 'elapsed format' (optional)
# format:
#   words: true
#   include_milliseconds: true
#   month_abbreviation: mo

# Disable the run history log (optional)
# history:
#   enabled: false
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
