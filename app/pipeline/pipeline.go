// Package pipeline runs one fetch, normalize, enrich and generate cycle per invocation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/bc-mrss/app/feed"
	"github.com/lysyi3m/bc-mrss/app/media"
)

// Provider is the upstream video platform.
type Provider interface {
	FetchBatch(ctx context.Context, limit int) ([]media.RawVideo, error)
	feed.SourceFetcher
}

// Sink receives a finished document.
type Sink interface {
	Emit(ctx context.Context, doc string) error
}

type Result struct {
	Document string
	Items    int
	Duration time.Duration
}

type Pipeline struct {
	provider   Provider
	normalizer *media.Normalizer
	enricher   *feed.Enricher
	generator  *feed.Generator
	limit      int
	recorder   Recorder
}

func New(provider Provider, normalizer *media.Normalizer, generator *feed.Generator, limit int) (*Pipeline, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	return &Pipeline{
		provider:   provider,
		normalizer: normalizer,
		enricher:   feed.NewEnricher(provider),
		generator:  generator,
		limit:      limit,
		recorder:   nopRecorder{},
	}, nil
}

func (p *Pipeline) WithRecorder(recorder Recorder) *Pipeline {
	p.recorder = recorder
	return p
}

// Run executes one cycle. Any stage failure ends the run in StateFailed with a *StageError.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	run := &run{recorder: p.recorder, state: StateFetching, startedAt: time.Now()}
	slog.Debug("Pipeline started", "state", run.state, "limit", p.limit)

	videos, err := p.provider.FetchBatch(ctx, p.limit)
	if err != nil {
		return nil, run.fail(fmt.Errorf("failed to fetch videos: %w", err))
	}

	run.advance(StateNormalizing)
	medias, err := p.normalizer.Run(videos)
	if err != nil {
		return nil, run.fail(fmt.Errorf("failed to normalize videos: %w", err))
	}

	run.advance(StateEnriching)
	medias, err = p.enricher.Run(ctx, medias)
	if err != nil {
		return nil, run.fail(fmt.Errorf("failed to enrich media: %w", err))
	}

	run.advance(StateGenerating)
	doc, err := p.generator.Run(medias)
	if err != nil {
		return nil, run.fail(fmt.Errorf("failed to generate feed: %w", err))
	}

	run.advance(StateDone)
	return &Result{
		Document: doc,
		Items:    len(medias),
		Duration: time.Since(run.startedAt),
	}, nil
}

// Execute runs one cycle and hands the document to sink exactly once on success.
// On failure the error is logged once and nothing is emitted.
func (p *Pipeline) Execute(ctx context.Context, sink Sink) error {
	result, err := p.Run(ctx)
	if err != nil {
		slog.Error("Pipeline failed", "error", err, "kind", media.KindOf(err))
		return err
	}

	if err := sink.Emit(ctx, result.Document); err != nil {
		slog.Error("Failed to emit feed", "error", err)
		return fmt.Errorf("failed to emit feed: %w", err)
	}

	slog.Info("Pipeline completed",
		"items", result.Items,
		"bytes", len(result.Document),
		"duration", result.Duration)
	return nil
}

type run struct {
	recorder  Recorder
	state     State
	startedAt time.Time
}

func (r *run) advance(to State) {
	from := r.state
	r.state = to
	r.recorder.OnTransition(from, to)
	slog.Debug("Pipeline state changed", "from", from, "to", to)
}

func (r *run) fail(err error) error {
	stage := r.state
	r.advance(StateFailed)
	return &StageError{Stage: stage, Err: err}
}
