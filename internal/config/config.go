// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Quality  QualityConfig  `toml:"quality"`
	Formats  []FormatConfig `toml:"formats"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type QualityConfig struct {
	Default  []string                 `toml:"default"` // profiles assigned to new movies
	Profiles map[string]ProfileConfig `toml:"profiles"`
}

// ProfileConfig is a quality profile as written in the config file.
type ProfileConfig struct {
	Qualities []string       `toml:"qualities"` // best first
	Formats   map[string]int `toml:"formats"`   // custom format name -> score
}

// FormatConfig is a custom format as written in the config file.
type FormatConfig struct {
	Name       string            `toml:"name"`
	Conditions []ConditionConfig `toml:"conditions"`
}

type ConditionConfig struct {
	Type     string `toml:"type"`
	Value    string `toml:"value"`
	Negate   bool   `toml:"negate"`
	Required bool   `toml:"required"`
}

// Load reads, substitutes, parses, and validates the configuration file.
// Unresolved environment variables and validation failures are returned
// together as an *Error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	cfgErr := &Error{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "./data/arrgate.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} with environment values. ${VAR:-default}
// falls back to default when VAR is unset or empty. Unresolved references are
// left unchanged and returned in missing. Comment lines are not substituted.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(line, func(match string) string {
			parts := envVarPattern.FindStringSubmatch(match)
			name, hasDefault, def := parts[1], parts[2] != "", parts[3]

			if value, ok := os.LookupEnv(name); ok && (value != "" || !hasDefault) {
				return value
			}
			if hasDefault {
				return def
			}
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
			return match
		})
	}
	return strings.Join(lines, ""), missing
}

// Error aggregates configuration errors.
type Error struct {
	Path    string   // Config file path
	Missing []string // Unresolved environment variables
	Errors  []string // Validation errors
}

func (e *Error) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing environment variables: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Errors) > 0 {
		parts = append(parts, "validation failed:")
		for _, err := range e.Errors {
			parts = append(parts, fmt.Sprintf("  - %s", err))
		}
	}
	return strings.Join(parts, "\n")
}

// HasErrors returns true if there are any errors.
func (e *Error) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
