// Package pipeline loads a collection from the configured source and runs
// the configured reshaping steps over it.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recordkit/recordkit/internal/config"
	"github.com/recordkit/recordkit/internal/observability"
	"github.com/recordkit/recordkit/pkg/types"
)

// Result is the outcome of one run.
type Result struct {
	RunID string

	// Loaded is the number of records read from the source.
	Loaded int

	// Output is a *types.Collection, or the value produced by a terminal
	// step: *split.PartitionMap, *split.Halves or a types.Record of checks.
	Output any
}

// Pipeline runs one configuration. Stats accumulate across runs.
type Pipeline struct {
	cfg   *config.Config
	stats *observability.RunStats
}

// New creates a Pipeline from a validated configuration.
func New(cfg *config.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Pipeline{
		cfg:   cfg,
		stats: observability.NewRunStats(),
	}, nil
}

// Stats returns the per-step statistics of every run so far.
func (p *Pipeline) Stats() *observability.RunStats {
	return p.stats
}

// Run loads the source and applies every step in order.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	logger := slog.Default().With("run_id", runID)

	src, closeSource, err := p.openSource(ctx)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	start := time.Now()
	c, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s source: %w", p.cfg.Source.Kind, err)
	}
	logger.InfoContext(ctx, "Source loaded",
		"kind", p.cfg.Source.Kind, "path", p.cfg.Source.Path,
		"records", c.Len(), "duration", time.Since(start))

	out, err := p.apply(ctx, logger, c)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Pipeline finished", "steps", len(p.cfg.Steps), "records", count(out))

	return &Result{RunID: runID, Loaded: c.Len(), Output: out}, nil
}

func (p *Pipeline) apply(ctx context.Context, logger *slog.Logger, c *types.Collection) (any, error) {
	var out any = c
	for i, step := range p.cfg.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur, ok := out.(*types.Collection)
		if !ok {
			return nil, fmt.Errorf("step %d (%s): input is not a collection", i, step.Kind)
		}

		start := time.Now()
		res, err := Apply(cur, step)
		if err != nil {
			p.stats.RecordFailure(string(step.Kind))
			logger.WarnContext(ctx, "Step failed", "step", i, "kind", step.Kind, "error", err)
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Kind, err)
		}
		d := time.Since(start)
		p.stats.RecordStep(string(step.Kind), step.Column, cur.Len(), count(res), d)
		logger.DebugContext(ctx, "Step applied",
			"step", i, "kind", step.Kind, "in", cur.Len(), "out", count(res), "duration", d)
		out = res
	}
	return out, nil
}
