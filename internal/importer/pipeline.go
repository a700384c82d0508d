// Package importer decides whether files on disk should be imported into the
// library, running a chain of import specifications per candidate.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/arrgate/internal/upgrade"
)

const defaultWorkers = 4

// Result is the decision for one candidate.
type Result struct {
	EvaluationID string
	Path         string
	Decision     upgrade.Decision
	RejectedBy   string // name of the rejecting specification; empty when accepted
}

// Pipeline runs specifications in order and stops at the first rejection.
type Pipeline struct {
	specs   []Specification
	workers int
	log     *slog.Logger
}

// NewPipeline creates a pipeline over specs. A nil log discards output.
func NewPipeline(log *slog.Logger, specs ...Specification) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{specs: specs, workers: defaultWorkers, log: log.With("component", "importer")}
}

// WithWorkers sets how many candidates DecideAll evaluates at once.
func (p *Pipeline) WithWorkers(n int) *Pipeline {
	if n > 0 {
		p.workers = n
	}
	return p
}

// Decide runs the chain for lm. Every decision is logged with its own
// evaluation_id.
func (p *Pipeline) Decide(ctx context.Context, lm *LocalMovie) (Result, error) {
	id := uuid.NewString()
	log := p.log.With("evaluation_id", id, "movie_id", lm.Movie.ID, "path", lm.Candidate.Path)
	result := Result{EvaluationID: id, Path: lm.Candidate.Path, Decision: upgrade.Accept()}

	for _, spec := range p.specs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		d, err := spec.Check(ctx, lm, log)
		if err != nil {
			log.Error("specification failed", "spec", spec.Name(), "error", err)
			return Result{}, fmt.Errorf("%s: %w", spec.Name(), err)
		}
		if !d.Accepted {
			log.Info("import rejected", "spec", spec.Name(), "reason", d.Reason)
			result.Decision = d
			result.RejectedBy = spec.Name()
			return result, nil
		}
	}

	log.Info("import accepted", "quality", lm.Candidate.Quality)
	return result, nil
}

// DecideAll decides every candidate concurrently. Results keep the order of
// lms. The first error cancels the remaining work.
func (p *Pipeline) DecideAll(ctx context.Context, lms []*LocalMovie) ([]Result, error) {
	results := make([]Result, len(lms))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, lm := range lms {
		g.Go(func() error {
			r, err := p.Decide(ctx, lm)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
