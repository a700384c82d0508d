package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/vmunix/arrgate/pkg/customformat"
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "error"}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}
	if c.Log.Level != "" && !slices.Contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Sprintf("log.level must be one of %s, got %q",
			strings.Join(validLogLevels, ", "), c.Log.Level))
	}

	defined := make(map[string]bool, len(c.Formats))
	for i, f := range c.Formats {
		if f.Name == "" {
			errs = append(errs, fmt.Sprintf("formats[%d]: name is required", i))
			continue
		}
		if defined[f.Name] {
			errs = append(errs, fmt.Sprintf("format %q defined twice", f.Name))
		}
		defined[f.Name] = true
		if _, err := customformat.NewFormat(f.Name, f.conditions()); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(c.Quality.Profiles) == 0 {
		errs = append(errs, "at least one quality profile must be configured")
	}
	for _, name := range c.profileNames() {
		p := c.Quality.Profiles[name]
		errs = append(errs, c.profile(name, p).Validate()...)
		for _, format := range sortedKeys(p.Formats) {
			if !defined[format] {
				errs = append(errs, fmt.Sprintf("profile %q scores undefined format %q", name, format))
			}
		}
	}

	for _, name := range c.Quality.Default {
		if _, ok := c.Quality.Profiles[name]; !ok {
			errs = append(errs, fmt.Sprintf("quality.default references unknown profile %q", name))
		}
	}

	return errs
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
