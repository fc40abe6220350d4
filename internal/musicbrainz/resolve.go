package musicbrainz

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ReleaseInfo is the resolved metadata for one album request.
type ReleaseInfo struct {
	Artist      string
	Album       string
	Year        int
	ReleaseType string
	TrackCount  int
	Tracks      []string
	Aliases     []string
}

// Resolve looks up an (artist, album) pair and returns the canonical
// metadata: spelling, year, release type, track listing and artist
// aliases. albumsOnly restricts the match to release groups whose
// primary type is Album.
func (c *Client) Resolve(ctx context.Context, artist, album string, albumsOnly bool) (*ReleaseInfo, error) {
	groups, err := c.SearchReleaseGroups(ctx, artist, album)
	if err != nil {
		return nil, fmt.Errorf("search release groups: %w", err)
	}

	group := pickReleaseGroup(groups, album, albumsOnly)
	if group == nil {
		return nil, fmt.Errorf("no release group found for %q / %q", artist, album)
	}

	info := &ReleaseInfo{
		Artist:      group.Artist,
		Album:       group.Title,
		Year:        yearOf(group.FirstRelease),
		ReleaseType: group.PrimaryType,
	}

	releases, err := c.GetReleaseGroupReleases(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}
	if release := pickRelease(releases); release != nil {
		info.TrackCount = release.TrackCount
		if details, err := c.GetRelease(ctx, release.ID); err == nil {
			for _, t := range details.Tracks {
				info.Tracks = append(info.Tracks, t.Title)
			}
		}
	}

	if group.ArtistID != "" {
		// Alias lookup failures only cost us a fallback strategy.
		if aliases, err := c.GetArtistAliases(ctx, group.ArtistID); err == nil {
			info.Aliases = aliases
		}
	}

	return info, nil
}

// pickReleaseGroup chooses the best match: exact title matches beat
// search score, and secondary types (live, compilation) lose to clean
// studio releases.
func pickReleaseGroup(groups []ReleaseGroup, album string, albumsOnly bool) *ReleaseGroup {
	var best *ReleaseGroup
	bestRank := -1

	for i := range groups {
		g := &groups[i]
		if albumsOnly && g.PrimaryType != "Album" {
			continue
		}

		rank := g.Score
		if strings.EqualFold(g.Title, album) {
			rank += 100
		}
		if len(g.SecondaryTypes) > 0 {
			rank -= 50
		}
		if rank > bestRank {
			best, bestRank = g, rank
		}
	}
	return best
}

// pickRelease prefers the earliest release with a track listing, which
// is usually the original pressing rather than a reissue.
func pickRelease(releases []Release) *Release {
	for i := range releases {
		if releases[i].TrackCount > 0 {
			return &releases[i]
		}
	}
	return nil
}

// yearOf parses the year from a MusicBrainz date (YYYY or YYYY-MM-DD).
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
