package customformat

import "github.com/vmunix/arrgate/pkg/release"

//go:generate mockgen -destination=mocks/mock_matcher.go -package=mocks . Matcher

// Movie identifies the title a release is being matched for.
type Movie struct {
	Title string
	Year  int
}

// Matcher returns the custom formats that apply to release metadata.
type Matcher interface {
	Match(info release.Info, movie Movie) Set
}

// RuleMatcher matches releases against a fixed list of formats.
// It is safe for concurrent use.
type RuleMatcher struct {
	formats []Format
}

// NewRuleMatcher creates a matcher over formats.
func NewRuleMatcher(formats []Format) *RuleMatcher {
	return &RuleMatcher{formats: formats}
}

// Formats returns the formats the matcher checks.
func (m *RuleMatcher) Formats() []Format {
	return m.formats
}

// Match returns the names of every format whose conditions the release meets.
// When the parsed title is the movie's title, release_title patterns only see
// the text after it, so a movie named "Remux" is not itself a Remux.
func (m *RuleMatcher) Match(info release.Info, movie Movie) Set {
	in := input{info: info, subject: info.Name}
	if info.Tags != "" && release.SameTitle(info.Title, movie.Title) {
		in.subject = info.Tags
	}

	matched := NewSet()
	for _, f := range m.formats {
		if f.matches(in) {
			matched.Add(f.Name)
		}
	}
	return matched
}
