package feed

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/bc-mrss/app/media"
)

type SourceFetcher interface {
	FetchSources(ctx context.Context, id string) ([]media.RawSource, error)
}

// Enricher attaches the selected Content to every media of a batch.
type Enricher struct {
	fetcher SourceFetcher
}

func NewEnricher(fetcher SourceFetcher) *Enricher {
	return &Enricher{fetcher: fetcher}
}

// Run fetches sources for all medias concurrently and waits for every fetch to finish.
// If any item fails the whole batch fails and no partial result is returned.
// The output keeps the input order; medias itself is not modified.
func (e *Enricher) Run(ctx context.Context, medias []media.Media) ([]media.Media, error) {
	out := make([]media.Media, len(medias))

	var g errgroup.Group
	for i, m := range medias {
		g.Go(func() error {
			content, err := e.enrich(ctx, m)
			if err != nil {
				return err
			}
			m.Content = content
			out[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Enricher) enrich(ctx context.Context, m media.Media) (*media.Content, error) {
	sources, err := e.fetcher.FetchSources(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sources for media %s: %w", m.ID, err)
	}

	content, err := media.SelectSource(m.ID, sources)
	if err != nil {
		return nil, err
	}

	slog.Debug("Media enriched", "media_id", m.ID, "candidates", len(sources), "url", content.URL)
	return content, nil
}
