package search

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cratedig/cratedig/internal/release"
	"github.com/cratedig/cratedig/internal/textnorm"
)

// Pipeline walks the strategy tiers for one request, executing queries
// until enough candidates accumulate. Tiers are evaluated lazily:
// later tiers never run when earlier ones already satisfied the
// minimum, and each strategy rechecks the count before firing.
type Pipeline struct {
	executor   *Executor
	settings   Settings
	strategies map[Tier][]Strategy
	log        zerolog.Logger
}

// NewPipeline builds a pipeline over the default strategy set.
func NewPipeline(executor *Executor, settings Settings, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		executor:   executor,
		settings:   settings,
		strategies: orderStrategies(defaultStrategies()),
		log:        log.With().Str("component", "pipeline").Logger(),
	}
}

// Stats summarizes a pipeline run.
type Stats struct {
	QueriesIssued int
}

// Run executes the request and returns the accumulated, deduplicated
// candidates in discovery order. Individual query failures are logged
// and skipped; only context cancellation aborts the run.
func (p *Pipeline) Run(ctx context.Context, req Request) ([]release.Candidate, Stats, error) {
	sc := NewContext(req, p.settings)

	var candidates []release.Candidate
	seen := make(map[string]struct{})

	for _, tier := range tierOrder {
		if p.satisfied(candidates) {
			break
		}
		for _, strat := range p.strategies[tier] {
			if err := ctx.Err(); err != nil {
				return candidates, Stats{QueriesIssued: sc.ProcessedCount()}, err
			}
			if p.satisfied(candidates) {
				break
			}
			if !strat.Enabled(p.settings) || !strat.Applies(sc) {
				continue
			}
			q := strat.Build(sc)
			if q == nil {
				continue
			}
			if !sc.MarkProcessed(q.Text) {
				continue
			}

			p.log.Debug().Str("strategy", strat.Name()).Str("tier", tier.String()).
				Str("query", q.Text).Msg("executing search")

			responses, err := p.executor.Execute(ctx, q)
			if err != nil {
				if ctx.Err() != nil {
					return candidates, Stats{QueriesIssued: sc.ProcessedCount()}, ctx.Err()
				}
				p.log.Warn().Err(err).Str("strategy", strat.Name()).
					Str("query", q.Text).Msg("search failed")
				continue
			}

			batch := release.Reconcile(responses, p.queryRef(sc, q))
			added := 0
			for _, c := range batch {
				key := candidateKey(c)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				candidates = append(candidates, c)
				added++
			}
			p.log.Debug().Str("strategy", strat.Name()).
				Int("responses", len(responses)).Int("added", added).
				Msg("search complete")
		}
	}

	return candidates, Stats{QueriesIssued: sc.ProcessedCount()}, nil
}

func (p *Pipeline) satisfied(candidates []release.Candidate) bool {
	return p.settings.MinimumResults > 0 && len(candidates) >= p.settings.MinimumResults
}

// queryRef carries the reconciliation reference for one query. The
// artist is what the query actually searched for, so compilation
// releases reconcile on album alone.
func (p *Pipeline) queryRef(sc *Context, q *Query) release.QueryRef {
	ref := release.QueryRef{
		Artist:         q.Artist,
		Album:          q.Album,
		ExpectedTracks: q.ExpectedTracks,
	}
	if sc.HasValidYear() {
		ref.Year = strconv.Itoa(sc.Request.Year)
	}
	ref.VolumeNumber = textnorm.VolumeNumber(sc.Request.Album)
	return ref
}

// candidateKey deduplicates candidates across queries. The same remote
// folder routinely shows up for several query variants; the first
// sighting wins since earlier tiers are more specific.
func candidateKey(c release.Candidate) string {
	return strings.ToLower(c.Username) + "\x00" + strings.ToLower(c.Directory)
}
