package upgrade

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/arrgate/pkg/customformat"
	"github.com/vmunix/arrgate/pkg/quality"
	"github.com/vmunix/arrgate/pkg/release"
)

// Evaluator runs the upgrade check. It keeps no state between calls and is
// safe for concurrent use as long as its Matcher is.
type Evaluator struct {
	matcher customformat.Matcher
	diag    Diagnostics
}

// NewEvaluator creates an evaluator. A nil diag discards diagnostics.
func NewEvaluator(matcher customformat.Matcher, diag Diagnostics) *Evaluator {
	if diag == nil {
		diag = slog.New(slog.DiscardHandler)
	}
	return &Evaluator{matcher: matcher, diag: diag}
}

// Evaluate decides whether candidate is an upgrade over existing for at least
// one profile. With no existing files the candidate is always accepted. An
// error is returned only for configuration faults (quality.ErrUnknownQuality).
func (e *Evaluator) Evaluate(ctx context.Context, profiles []quality.Profile, movie customformat.Movie, candidate Candidate, existing []ExistingFile) (Decision, error) {
	report, err := e.Explain(ctx, profiles, movie, candidate, existing)
	if err != nil {
		return Decision{}, err
	}
	return report.Decision, nil
}

// Explain evaluates like Evaluate and also returns every comparison made.
func (e *Evaluator) Explain(ctx context.Context, profiles []quality.Profile, movie customformat.Movie, candidate Candidate, existing []ExistingFile) (Report, error) {
	report := Report{CandidateFormats: e.candidateFormats(candidate, movie)}

	comparable := make([]ExistingFile, 0, len(existing))
	for _, f := range existing {
		if f.Quality == quality.Unknown {
			e.diag.Log(ctx, LevelTrace, "existing file has no quality, skipping",
				"file_id", f.ID, "path", f.Path)
			report.Skipped = append(report.Skipped, f)
			continue
		}
		comparable = append(comparable, f)
	}

	formats := newFileFormats(e.matcher, movie, comparable)
	upgradeForAny := false

	for _, profile := range profiles {
		preferredScore := profile.Score(report.CandidateFormats)

		for i, f := range comparable {
			p, err := compare(profile, candidate.Quality, f, preferredScore, func() customformat.Set { return formats.get(i) })
			if err != nil {
				return Report{}, fmt.Errorf("profile %q, file %d: %w", profile.Name, f.ID, err)
			}
			report.Pairings = append(report.Pairings, p)

			if !p.Outcome.Upgrade() {
				e.diag.Log(ctx, slog.LevelDebug, "not an upgrade for profile, skipping",
					"profile", profile.Name, "path", candidate.Path, "existing", f.Path,
					"outcome", string(p.Outcome), "preferred_score", preferredScore, "existing_score", p.ExistingScore)
				continue
			}
			upgradeForAny = true
		}
	}

	if len(existing) > 0 && !upgradeForAny {
		report.Decision = Reject(ReasonNotUpgrade)
		e.diag.Log(ctx, slog.LevelDebug, "candidate rejected", "path", candidate.Path, "reason", ReasonNotUpgrade)
		return report, nil
	}

	report.Decision = Accept()
	return report, nil
}

// compare resolves one profile/file pairing. Equal quality is an upgrade only
// when the candidate's format score is at least the existing file's.
func compare(profile quality.Profile, candidateQuality string, f ExistingFile, preferredScore int, existingFormats func() customformat.Set) (Pairing, error) {
	p := Pairing{
		Profile:         profile.Name,
		FileID:          f.ID,
		FilePath:        f.Path,
		ExistingQuality: f.Quality,
		PreferredScore:  preferredScore,
	}

	cmp, err := profile.Compare(candidateQuality, f.Quality)
	if err != nil {
		return Pairing{}, err
	}
	p.QualityCompare = cmp

	if cmp < 0 {
		p.Outcome = OutcomeQualityLower
		return p, nil
	}

	p.ExistingScore = profile.Score(existingFormats())
	p.ScoreCompared = true

	switch {
	case cmp > 0:
		p.Outcome = OutcomeQualityHigher
	case preferredScore < p.ExistingScore:
		p.Outcome = OutcomeFormatScoreLower
	default:
		p.Outcome = OutcomeFormatScoreHigher
	}
	return p, nil
}

// candidateFormats is the set union of formats matched from each available
// metadata source of the candidate.
func (e *Evaluator) candidateFormats(c Candidate, movie customformat.Movie) customformat.Set {
	union := customformat.NewSet()
	for _, info := range []*release.Info{c.FileInfo, c.FolderInfo, c.ClientInfo} {
		if info == nil {
			continue
		}
		union = union.Union(e.matcher.Match(*info, movie))
	}
	return union
}

// fileFormats matches each existing file at most once, on first use.
type fileFormats struct {
	matcher customformat.Matcher
	movie   customformat.Movie
	files   []ExistingFile
	sets    []customformat.Set
	done    []bool
}

func newFileFormats(matcher customformat.Matcher, movie customformat.Movie, files []ExistingFile) *fileFormats {
	return &fileFormats{
		matcher: matcher,
		movie:   movie,
		files:   files,
		sets:    make([]customformat.Set, len(files)),
		done:    make([]bool, len(files)),
	}
}

func (ff *fileFormats) get(i int) customformat.Set {
	if ff.done[i] {
		return ff.sets[i]
	}
	f := ff.files[i]
	switch {
	case f.Formats != nil:
		ff.sets[i] = f.Formats
	case f.Release != nil:
		ff.sets[i] = ff.matcher.Match(*f.Release, ff.movie)
	default:
		ff.sets[i] = customformat.NewSet()
	}
	ff.done[i] = true
	return ff.sets[i]
}
