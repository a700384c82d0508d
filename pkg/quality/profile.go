package quality

import (
	"fmt"

	"github.com/vmunix/arrgate/pkg/customformat"
)

// Profile ranks quality levels and assigns points to custom formats.
//
// Qualities is ordered best first: index 0 is the most wanted level. Two
// levels are only comparable inside one profile; the same pair may rank
// differently under another profile.
type Profile struct {
	Name         string
	Qualities    []string
	FormatScores map[string]int
}

// Index returns the position of level in the profile, or -1.
func (p Profile) Index(level string) int {
	for i, q := range p.Qualities {
		if q == level {
			return i
		}
	}
	return -1
}

// Compare ranks a against b under this profile: +1 when a is preferred,
// -1 when b is preferred, 0 when they are the same level. A level missing
// from the profile is a configuration fault reported as ErrUnknownQuality.
func (p Profile) Compare(a, b string) (int, error) {
	ia := p.Index(a)
	if ia < 0 {
		return 0, fmt.Errorf("%w: %q not in profile %q", ErrUnknownQuality, a, p.Name)
	}
	ib := p.Index(b)
	if ib < 0 {
		return 0, fmt.Errorf("%w: %q not in profile %q", ErrUnknownQuality, b, p.Name)
	}

	switch {
	case ia < ib:
		return 1, nil
	case ia > ib:
		return -1, nil
	default:
		return 0, nil
	}
}

// Score sums the profile's points for each format in formats. Formats the
// profile does not rate count as zero.
func (p Profile) Score(formats customformat.Set) int {
	score := 0
	for name := range formats {
		score += p.FormatScores[name]
	}
	return score
}

// Validate checks the profile for structural problems.
// Returns a slice of error messages (empty if valid).
func (p Profile) Validate() []string {
	var errs []string
	if len(p.Qualities) == 0 {
		errs = append(errs, fmt.Sprintf("profile %q: at least one quality is required", p.Name))
	}
	seen := make(map[string]bool, len(p.Qualities))
	for _, q := range p.Qualities {
		if q == Unknown {
			errs = append(errs, fmt.Sprintf("profile %q: empty quality name", p.Name))
			continue
		}
		if seen[q] {
			errs = append(errs, fmt.Sprintf("profile %q: quality %q listed twice", p.Name, q))
		}
		seen[q] = true
	}
	return errs
}
