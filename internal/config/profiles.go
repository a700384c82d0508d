package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vmunix/arrgate/pkg/customformat"
	"github.com/vmunix/arrgate/pkg/quality"
)

// ErrUnknownProfile is returned when a profile name is not configured.
var ErrUnknownProfile = errors.New("unknown quality profile")

func (c *Config) profileNames() []string {
	names := make([]string, 0, len(c.Quality.Profiles))
	for name := range c.Quality.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) profile(name string, p ProfileConfig) quality.Profile {
	return quality.Profile{Name: name, Qualities: p.Qualities, FormatScores: p.Formats}
}

// ProfileNames returns the configured profile names in sorted order.
func (c *Config) ProfileNames() []string { return c.profileNames() }

// Profile returns the named quality profile.
func (c *Config) Profile(name string) (quality.Profile, error) {
	p, ok := c.Quality.Profiles[name]
	if !ok {
		return quality.Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return c.profile(name, p), nil
}

// Profiles resolves names to quality profiles, preserving order.
func (c *Config) Profiles(names []string) ([]quality.Profile, error) {
	out := make([]quality.Profile, 0, len(names))
	for _, name := range names {
		p, err := c.Profile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// CustomFormats compiles the configured custom formats in file order.
func (c *Config) CustomFormats() ([]customformat.Format, error) {
	formats := make([]customformat.Format, 0, len(c.Formats))
	for _, fc := range c.Formats {
		f, err := customformat.NewFormat(fc.Name, fc.conditions())
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

func (f FormatConfig) conditions() []customformat.Condition {
	conds := make([]customformat.Condition, len(f.Conditions))
	for i, cc := range f.Conditions {
		conds[i] = customformat.Condition{
			Type:     customformat.ConditionType(cc.Type),
			Value:    cc.Value,
			Negate:   cc.Negate,
			Required: cc.Required,
		}
	}
	return conds
}
