package search

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/cratedig/cratedig/internal/slskd"
)

// Backend is the remote search collaborator. *slskd.Client satisfies
// it; tests supply fakes.
type Backend interface {
	StartSearch(ctx context.Context, query string, opts slskd.SearchOptions) (string, error)
	GetStatus(ctx context.Context, searchID string) (*slskd.Search, error)
	GetResults(ctx context.Context, searchID string) ([]slskd.SearchResponse, error)
	CancelSearch(ctx context.Context, searchID string) error
}

const (
	// One extension window is granted when a search is still in
	// progress at the timeout; during it the executor polls every
	// second and then gives up, returning whatever was observed.
	extensionWindow    = 10 * time.Second
	extensionPollDelay = time.Second
	minPollDelay       = 500 * time.Millisecond
	maxPollDelay       = 5 * time.Second
	cancelTimeout      = 5 * time.Second
)

// Executor issues a single query against the backend and waits for its
// asynchronous completion with adaptive polling. It holds no state
// across Execute calls and may be shared by concurrent requests.
type Executor struct {
	backend  Backend
	settings Settings
	log      zerolog.Logger

	// sleep and now are replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewExecutor creates an executor bound to a backend.
func NewExecutor(backend Backend, settings Settings, log zerolog.Logger) *Executor {
	return &Executor{
		backend:  backend,
		settings: settings,
		log:      log.With().Str("component", "executor").Logger(),
		sleep:    sleepCtx,
		now:      time.Now,
	}
}

// Execute runs one query to completion. Not-found responses yield an
// empty batch; a context cancellation aborts the wait promptly, fires a
// best-effort cancel upstream and returns the context error.
func (e *Executor) Execute(ctx context.Context, q *Query) ([]slskd.SearchResponse, error) {
	opts := slskd.SearchOptions{
		FileLimit:       e.settings.FileLimit,
		ResponseLimit:   e.settings.ResponseLimit,
		FilterResponses: !q.ExpandDirectory,
		TimeoutMS:       int(e.settings.Timeout / time.Millisecond),
	}

	searchID, err := e.backend.StartSearch(ctx, q.Text, opts)
	if err != nil {
		if errors.Is(err, slskd.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := e.waitForCompletion(ctx, searchID); err != nil {
		e.cancelUpstream(searchID)
		return nil, err
	}

	results, err := e.backend.GetResults(ctx, searchID)
	if err != nil {
		if errors.Is(err, slskd.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return results, nil
}

// waitForCompletion polls until the search reaches a terminal state,
// the timeout plus extension window elapses, or ctx is cancelled.
func (e *Executor) waitForCompletion(ctx context.Context, searchID string) error {
	deadline := e.now().Add(e.settings.Timeout)
	extended := false
	maxFiles := 0

	for {
		status, err := e.backend.GetStatus(ctx, searchID)
		if err != nil {
			if errors.Is(err, slskd.ErrNotFound) {
				return nil
			}
			return err
		}

		// Highest observed file count, monotonically non-decreasing;
		// slskd occasionally reports transient dips while aggregating.
		if status.FileCount > maxFiles {
			maxFiles = status.FileCount
		}

		if slskd.SearchState(status.State).IsComplete() {
			return nil
		}

		now := e.now()
		if now.After(deadline) {
			if extended {
				e.log.Debug().Str("id", searchID).Int("files", maxFiles).
					Msg("extension window exhausted, returning partial results")
				return nil
			}
			extended = true
			deadline = now.Add(extensionWindow)
		}

		delay := adaptiveDelay(maxFiles, e.settings.FileLimit)
		if extended {
			delay = extensionPollDelay
		}
		if err := e.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// adaptiveDelay computes the poll interval from the fraction p of the
// expected file-count ceiling already observed:
//
//	delay = clamp(16p² − 16p + 5, 0.5, 5) seconds
//
// The parabola polls fastest around the half-full point, where results
// stream in hardest, and relaxes at the idle start and the settled end.
func adaptiveDelay(seenFiles, fileLimit int) time.Duration {
	p := 0.0
	if fileLimit > 0 {
		p = float64(seenFiles) / float64(fileLimit)
		if p > 1 {
			p = 1
		}
	}
	seconds := 16*p*p - 16*p + 5
	d := time.Duration(seconds * float64(time.Second))
	if d < minPollDelay {
		return minPollDelay
	}
	if d > maxPollDelay {
		return maxPollDelay
	}
	return d
}

// cancelUpstream tells slskd to stop a search we no longer care about.
// Failures are logged and swallowed.
func (e *Executor) cancelUpstream(searchID string) {
	ctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
	defer cancel()
	if err := e.backend.CancelSearch(ctx, searchID); err != nil {
		e.log.Debug().Err(err).Str("id", searchID).Msg("cancel search failed")
	}
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
