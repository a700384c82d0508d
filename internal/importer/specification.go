package importer

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/vmunix/arrgate/internal/upgrade"
	"github.com/vmunix/arrgate/pkg/customformat"
	"github.com/vmunix/arrgate/pkg/quality"
)

// Rejection reasons of the built-in specifications.
const (
	ReasonSample          = "Sample"
	ReasonUnknownQuality  = "Unable to determine quality of file"
	ReasonAlreadyImported = "File is already part of the library"
)

// Specification is one link of the import decision chain.
type Specification interface {
	Name() string
	Check(ctx context.Context, lm *LocalMovie, log *slog.Logger) (upgrade.Decision, error)
}

// NotSampleSpecification rejects sample clips.
type NotSampleSpecification struct{}

func (NotSampleSpecification) Name() string { return "not_sample" }

func (NotSampleSpecification) Check(_ context.Context, lm *LocalMovie, _ *slog.Logger) (upgrade.Decision, error) {
	if IsSample(lm.Candidate.Path) {
		return upgrade.Reject(ReasonSample), nil
	}
	return upgrade.Accept(), nil
}

// KnownQualitySpecification rejects candidates whose quality could not be
// derived from any of their names.
type KnownQualitySpecification struct{}

func (KnownQualitySpecification) Name() string { return "known_quality" }

func (KnownQualitySpecification) Check(_ context.Context, lm *LocalMovie, _ *slog.Logger) (upgrade.Decision, error) {
	if lm.Candidate.Quality == quality.Unknown {
		return upgrade.Reject(ReasonUnknownQuality), nil
	}
	return upgrade.Accept(), nil
}

// AlreadyImportedSpecification rejects a file the library already records
// for the movie.
type AlreadyImportedSpecification struct{}

func (AlreadyImportedSpecification) Name() string { return "already_imported" }

func (AlreadyImportedSpecification) Check(_ context.Context, lm *LocalMovie, _ *slog.Logger) (upgrade.Decision, error) {
	path := filepath.Clean(lm.Candidate.Path)
	for _, f := range lm.Existing {
		if filepath.Clean(f.Path) == path {
			return upgrade.Reject(ReasonAlreadyImported), nil
		}
	}
	return upgrade.Accept(), nil
}

// UpgradeSpecification accepts a candidate that improves on the movie's
// existing files for at least one of its profiles.
type UpgradeSpecification struct {
	matcher customformat.Matcher
}

// NewUpgradeSpecification creates the upgrade link around matcher.
func NewUpgradeSpecification(matcher customformat.Matcher) *UpgradeSpecification {
	return &UpgradeSpecification{matcher: matcher}
}

func (s *UpgradeSpecification) Name() string { return "upgrade" }

func (s *UpgradeSpecification) Check(ctx context.Context, lm *LocalMovie, log *slog.Logger) (upgrade.Decision, error) {
	return upgrade.NewEvaluator(s.matcher, log).
		Evaluate(ctx, lm.Profiles, lm.Target(), lm.Candidate, lm.Existing)
}

// Explain returns every comparison behind the upgrade decision.
func (s *UpgradeSpecification) Explain(ctx context.Context, lm *LocalMovie, log *slog.Logger) (upgrade.Report, error) {
	return upgrade.NewEvaluator(s.matcher, log).
		Explain(ctx, lm.Profiles, lm.Target(), lm.Candidate, lm.Existing)
}

// DefaultSpecifications returns the standard chain, cheapest checks first.
func DefaultSpecifications(matcher customformat.Matcher) []Specification {
	return []Specification{
		NotSampleSpecification{},
		KnownQualitySpecification{},
		AlreadyImportedSpecification{},
		NewUpgradeSpecification(matcher),
	}
}
