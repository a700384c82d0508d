// Package customformat classifies releases into named custom formats
// ("Remux", "HDR", "x265") from their parsed metadata.
package customformat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vmunix/arrgate/pkg/release"
)

// ConditionType selects which release attribute a condition tests.
type ConditionType string

const (
	ConditionReleaseTitle ConditionType = "release_title"
	ConditionReleaseGroup ConditionType = "release_group"
	ConditionEdition      ConditionType = "edition"
	ConditionSource       ConditionType = "source"
	ConditionResolution   ConditionType = "resolution"
	ConditionCodec        ConditionType = "codec"
	ConditionHDR          ConditionType = "hdr"
	ConditionAudio        ConditionType = "audio"
	ConditionRemux        ConditionType = "remux"
	ConditionProper       ConditionType = "proper"
	ConditionRepack       ConditionType = "repack"
)

// ConditionTypes lists every supported condition type.
var ConditionTypes = []ConditionType{
	ConditionReleaseTitle, ConditionReleaseGroup, ConditionEdition,
	ConditionSource, ConditionResolution, ConditionCodec, ConditionHDR, ConditionAudio,
	ConditionRemux, ConditionProper, ConditionRepack,
}

// Condition is one test a release must pass for a format to apply.
type Condition struct {
	Type     ConditionType
	Value    string
	Negate   bool // Invert the test result
	Required bool // The format never applies when this condition fails
}

// input is what conditions are evaluated against.
type input struct {
	info    release.Info
	subject string // text release_title patterns run against
}

type compiledCondition struct {
	Condition
	test func(input) bool
}

func (c compiledCondition) matches(in input) bool {
	return c.test(in) != c.Negate
}

// Format is a named custom format with compiled conditions.
type Format struct {
	Name       string
	conditions []compiledCondition
}

// NewFormat compiles conditions into a Format.
func NewFormat(name string, conditions []Condition) (Format, error) {
	if strings.TrimSpace(name) == "" {
		return Format{}, fmt.Errorf("%w: empty format name", ErrInvalidCondition)
	}
	f := Format{Name: name, conditions: make([]compiledCondition, 0, len(conditions))}
	for i, c := range conditions {
		test, err := compileCondition(c)
		if err != nil {
			return Format{}, fmt.Errorf("format %q condition %d: %w", name, i, err)
		}
		f.conditions = append(f.conditions, compiledCondition{Condition: c, test: test})
	}
	return f, nil
}

// MustFormat is like NewFormat but panics on error. Intended for tests and
// package-level definitions.
func MustFormat(name string, conditions ...Condition) Format {
	f, err := NewFormat(name, conditions)
	if err != nil {
		panic(err)
	}
	return f
}

// Conditions returns the conditions the format was built from.
func (f Format) Conditions() []Condition {
	out := make([]Condition, len(f.conditions))
	for i, c := range f.conditions {
		out[i] = c.Condition
	}
	return out
}

// matches applies the grouping rule: conditions are grouped by type, a group
// passes when none of its required conditions fail and at least one of its
// conditions passes, and the format applies when every group passes.
// A format without conditions never applies.
func (f Format) matches(in input) bool {
	if len(f.conditions) == 0 {
		return false
	}

	type groupResult struct {
		any            bool
		requiredFailed bool
	}
	groups := make(map[ConditionType]*groupResult)
	for _, c := range f.conditions {
		g, ok := groups[c.Type]
		if !ok {
			g = &groupResult{}
			groups[c.Type] = g
		}
		ok = c.matches(in)
		if ok {
			g.any = true
		} else if c.Required {
			g.requiredFailed = true
		}
	}

	for _, g := range groups {
		if g.requiredFailed || !g.any {
			return false
		}
	}
	return true
}

func compileCondition(c Condition) (func(input) bool, error) {
	switch c.Type {
	case ConditionReleaseTitle, ConditionReleaseGroup, ConditionEdition:
		re, err := regexp.Compile("(?i)" + c.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s pattern %q: %w", ErrInvalidCondition, c.Type, c.Value, err)
		}
		switch c.Type {
		case ConditionReleaseGroup:
			return func(in input) bool { return in.info.Group != "" && re.MatchString(in.info.Group) }, nil
		case ConditionEdition:
			return func(in input) bool { return in.info.Edition != "" && re.MatchString(in.info.Edition) }, nil
		default:
			return func(in input) bool { return re.MatchString(in.subject) }, nil
		}

	case ConditionSource:
		want, ok := release.ParseSource(c.Value)
		if !ok {
			return nil, invalidValue(c)
		}
		return func(in input) bool { return in.info.Source == want }, nil

	case ConditionResolution:
		want, ok := release.ParseResolution(c.Value)
		if !ok {
			return nil, invalidValue(c)
		}
		return func(in input) bool { return in.info.Resolution == want }, nil

	case ConditionCodec:
		want, ok := release.ParseCodec(c.Value)
		if !ok {
			return nil, invalidValue(c)
		}
		return func(in input) bool { return in.info.Codec == want }, nil

	case ConditionHDR:
		if strings.EqualFold(strings.TrimSpace(c.Value), "any") {
			return func(in input) bool { return in.info.HDR != release.HDRNone }, nil
		}
		want, ok := release.ParseHDR(c.Value)
		if !ok {
			return nil, invalidValue(c)
		}
		return func(in input) bool { return in.info.HDR == want }, nil

	case ConditionAudio:
		want, ok := release.ParseAudio(c.Value)
		if !ok {
			return nil, invalidValue(c)
		}
		return func(in input) bool { return in.info.Audio == want }, nil

	case ConditionRemux, ConditionProper, ConditionRepack:
		want := true
		if v := strings.TrimSpace(c.Value); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, invalidValue(c)
			}
			want = b
		}
		switch c.Type {
		case ConditionRemux:
			return func(in input) bool { return in.info.IsRemux == want }, nil
		case ConditionProper:
			return func(in input) bool { return in.info.Proper == want }, nil
		default:
			return func(in input) bool { return in.info.Repack == want }, nil
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, c.Type)
	}
}

func invalidValue(c Condition) error {
	return fmt.Errorf("%w: %s value %q", ErrInvalidCondition, c.Type, c.Value)
}
