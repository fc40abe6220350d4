package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	defaultBaseURL = "https://musicbrainz.org/ws/2"
	userAgent      = "cratedig/0.1 (https://github.com/cratedig/cratedig)"
	rateLimitDur   = time.Second // MusicBrainz requires 1 request per second

	// Retry configuration
	maxRetries   = 3
	initialDelay = 2 * time.Second
	maxDelay     = 30 * time.Second
)

// Client provides access to the MusicBrainz API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	lastRequest time.Time
	mu          sync.Mutex
}

// NewClient creates a new MusicBrainz API client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// SearchReleaseGroups searches release groups by artist and album using
// Lucene field queries.
func (c *Client) SearchReleaseGroups(ctx context.Context, artist, album string) ([]ReleaseGroup, error) {
	query := fmt.Sprintf(`releasegroup:%q`, album)
	if artist != "" {
		query += fmt.Sprintf(` AND artist:%q`, artist)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("fmt", "json")
	params.Set("limit", "25")

	var result releaseGroupSearchResponse
	if err := c.getJSON(ctx, "/release-group?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	return c.convertReleaseGroups(result.ReleaseGroups), nil
}

// GetReleaseGroupReleases returns all releases for a release group.
func (c *Client) GetReleaseGroupReleases(ctx context.Context, releaseGroupID string) ([]Release, error) {
	params := url.Values{}
	params.Set("release-group", releaseGroupID)
	params.Set("fmt", "json")
	params.Set("inc", "media")
	params.Set("limit", "100")

	var result releaseBrowseResponse
	if err := c.getJSON(ctx, "/release?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	return c.convertReleases(result.Releases), nil
}

// GetRelease fetches detailed information about a specific release.
func (c *Client) GetRelease(ctx context.Context, mbid string) (*ReleaseDetails, error) {
	// Include recordings (tracks) in the response
	params := url.Values{}
	params.Set("fmt", "json")
	params.Set("inc", "recordings+artist-credits")

	var result releaseDetailsResponse
	if err := c.getJSON(ctx, "/release/"+mbid+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	return c.convertReleaseDetails(result), nil
}

// GetArtistAliases returns the alias names of an artist, primary
// aliases first.
func (c *Client) GetArtistAliases(ctx context.Context, artistID string) ([]string, error) {
	params := url.Values{}
	params.Set("fmt", "json")
	params.Set("inc", "aliases")

	var result artistLookupResponse
	if err := c.getJSON(ctx, "/artist/"+artistID+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	sort.SliceStable(result.Aliases, func(i, j int) bool {
		return result.Aliases[i].Primary && !result.Aliases[j].Primary
	})

	seen := make(map[string]bool)
	var aliases []string
	for _, a := range result.Aliases {
		key := strings.ToLower(a.Name)
		if a.Name == "" || seen[key] || strings.EqualFold(a.Name, result.Name) {
			continue
		}
		seen[key] = true
		aliases = append(aliases, a.Name)
	}
	return aliases, nil
}

// getJSON performs a rate-limited GET against the API and decodes the
// JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if err := c.waitForRateLimit(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doRequestWithRetry(ctx, req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// waitForRateLimit ensures we don't exceed MusicBrainz rate limits.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if wait := rateLimitDur - elapsed; wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	c.lastRequest = time.Now()
	return nil
}

// doRequestWithRetry executes an HTTP request with exponential backoff retry.
// Retries on 5xx errors and network errors.
func (c *Client) doRequestWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
			delay = min(delay*2, maxDelay)
			if err := c.waitForRateLimit(ctx); err != nil { // Re-apply rate limit after retry delay
				return nil, err
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		// Success or client error (4xx) - don't retry
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error (5xx) - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries+1, lastErr)
}

// convertReleaseGroups converts raw API results to ReleaseGroup structs.
func (c *Client) convertReleaseGroups(results []releaseGroupResult) []ReleaseGroup {
	groups := make([]ReleaseGroup, 0, len(results))
	for _, r := range results {
		g := ReleaseGroup{
			ID:             r.ID,
			Title:          r.Title,
			PrimaryType:    r.PrimaryType,
			SecondaryTypes: r.SecondaryTypes,
			FirstRelease:   r.FirstRelease,
			Artist:         extractArtist(r.ArtistCredit),
			Score:          r.Score,
		}
		if len(r.ArtistCredit) > 0 {
			g.ArtistID = r.ArtistCredit[0].Artist.ID
		}
		groups = append(groups, g)
	}
	return groups
}

// convertReleases converts raw API results to Release structs.
func (c *Client) convertReleases(results []releaseResult) []Release {
	releases := make([]Release, 0, len(results))

	for i := range results {
		r := &results[i]
		release := Release{
			ID:      r.ID,
			Title:   r.Title,
			Artist:  extractArtist(r.ArtistCredit),
			Date:    r.Date,
			Country: r.Country,
			Score:   r.Score,
		}

		if r.ReleaseGroup != nil {
			release.ReleaseType = r.ReleaseGroup.PrimaryType
		}

		// Sum track counts and collect formats
		var formats []string
		for _, m := range r.Media {
			release.TrackCount += m.TrackCount
			if m.Format != "" {
				formats = append(formats, m.Format)
			}
		}
		release.Formats = strings.Join(formats, ", ")

		releases = append(releases, release)
	}

	// Sort by release date ascending (original release first)
	sort.SliceStable(releases, func(i, j int) bool {
		return releases[i].Date < releases[j].Date
	})

	return releases
}

// convertReleaseDetails converts a raw release details response.
func (c *Client) convertReleaseDetails(r releaseDetailsResponse) *ReleaseDetails {
	details := &ReleaseDetails{
		Release: Release{
			ID:      r.ID,
			Title:   r.Title,
			Artist:  extractArtist(r.ArtistCredit),
			Date:    r.Date,
			Country: r.Country,
		},
	}

	if r.ReleaseGroup != nil {
		details.ReleaseType = r.ReleaseGroup.PrimaryType
	}

	// Collect all tracks from all media
	var formats []string
	for _, m := range r.Media {
		details.TrackCount += m.TrackCount
		if m.Format != "" {
			formats = append(formats, m.Format)
		}
		for _, t := range m.Tracks {
			details.Tracks = append(details.Tracks, Track{
				Position: t.Position,
				Title:    t.Title,
				Length:   t.Length,
			})
		}
	}
	details.Formats = strings.Join(formats, ", ")

	return details
}

// extractArtist extracts the artist name from artist credits.
func extractArtist(credits []artistCredit) string {
	if len(credits) == 0 {
		return ""
	}

	parts := make([]string, 0, len(credits))
	for _, c := range credits {
		name := c.Name
		if name == "" {
			name = c.Artist.Name
		}
		parts = append(parts, name+c.JoinPhrase)
	}
	return strings.Join(parts, "")
}
