// Package search turns an (artist, album) request into a prioritized
// sequence of Soulseek queries, executes them against slskd and
// reconciles the returned folder listings into ranked release
// candidates.
package search

import "time"

// Settings control which strategies run and how the executor behaves.
type Settings struct {
	// Strategy toggles.
	FallbackSearch         bool
	TrackFallback          bool
	VolumeHandling         bool
	VariousArtistsHandling bool
	StripPunctuation       bool
	NormalizeDiacritics    bool

	// Early-stop threshold: once this many candidates have been
	// reconciled, no further tier is materialized.
	MinimumResults int

	// Per-query limits forwarded to slskd.
	FileLimit     int
	ResponseLimit int

	// How long a single query may stay in progress before the executor
	// grants its one extension window and then gives up.
	Timeout time.Duration
}

// DefaultSettings returns the settings used when no configuration is
// supplied.
func DefaultSettings() Settings {
	return Settings{
		FallbackSearch:         true,
		TrackFallback:          false,
		VolumeHandling:         true,
		VariousArtistsHandling: true,
		StripPunctuation:       true,
		NormalizeDiacritics:    true,
		MinimumResults:         5,
		FileLimit:              10000,
		ResponseLimit:          100,
		Timeout:                20 * time.Second,
	}
}
