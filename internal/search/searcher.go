package search

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cratedig/cratedig/internal/release"
)

// Searcher is the top-level entry point: it runs the full strategy
// pipeline for a request and returns ranked candidates, best first.
type Searcher struct {
	pipeline *Pipeline
	log      zerolog.Logger
}

// NewSearcher wires a searcher to a backend.
func NewSearcher(backend Backend, settings Settings, log zerolog.Logger) *Searcher {
	executor := NewExecutor(backend, settings, log)
	return &Searcher{
		pipeline: NewPipeline(executor, settings, log),
		log:      log.With().Str("component", "searcher").Logger(),
	}
}

// Search resolves a request into a ranked candidate list.
func (s *Searcher) Search(ctx context.Context, req Request) ([]release.Candidate, error) {
	candidates, _, err := s.SearchWithStats(ctx, req)
	return candidates, err
}

// SearchWithStats is Search plus run statistics.
func (s *Searcher) SearchWithStats(ctx context.Context, req Request) ([]release.Candidate, Stats, error) {
	if req.Album == "" {
		return nil, Stats{}, fmt.Errorf("search request: album is required")
	}

	traits := Analyze(req)
	s.log.Info().Str("artist", req.Artist).Str("album", req.Album).
		Stringer("traits", traits).Msg("starting search")

	candidates, stats, err := s.pipeline.Run(ctx, req)
	if err != nil {
		return nil, stats, fmt.Errorf("run search pipeline: %w", err)
	}

	ranked := release.Rank(candidates, req.TrackCount)
	s.log.Info().Int("queries", stats.QueriesIssued).Int("candidates", len(ranked)).
		Msg("search finished")
	return ranked, stats, nil
}
