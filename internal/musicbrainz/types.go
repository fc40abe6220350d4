// Package musicbrainz provides a client for the MusicBrainz API.
package musicbrainz

// ReleaseGroup represents a MusicBrainz release group (album concept).
type ReleaseGroup struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	PrimaryType    string `json:"primary-type"` // Album, Single, EP, etc.
	FirstRelease   string `json:"first-release-date"`
	Artist         string // Extracted from artist-credit
	ArtistID       string // MusicBrainz artist ID
	Score          int    `json:"score"` // Search relevance score (0-100)
	SecondaryTypes []string
}

// Release represents a MusicBrainz release (album).
type Release struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string // Extracted from artist-credit
	Date        string `json:"date"`
	Country     string `json:"country"`
	TrackCount  int    // Sum of track counts from media
	Score       int    `json:"score"` // Search relevance score (0-100)
	ReleaseType string // Album, Single, EP, etc.
	Formats     string // CD, Vinyl, Digital, etc.
}

// Track represents a track on a release.
type Track struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Length   int    `json:"length"` // Duration in milliseconds
}

// ReleaseDetails contains full release information including tracks.
type ReleaseDetails struct {
	Release
	Tracks []Track
}

// releaseGroupSearchResponse is the raw response from MusicBrainz release group search.
type releaseGroupSearchResponse struct {
	ReleaseGroups []releaseGroupResult `json:"release-groups"`
}

// releaseGroupResult is a single release group from results.
type releaseGroupResult struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Score          int            `json:"score"`
	PrimaryType    string         `json:"primary-type"`
	SecondaryTypes []string       `json:"secondary-types"`
	FirstRelease   string         `json:"first-release-date"`
	ArtistCredit   []artistCredit `json:"artist-credit"`
}

// artistCredit represents an artist contribution.
type artistCredit struct {
	Name   string `json:"name"`
	Artist struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		SortName string `json:"sort-name"`
	} `json:"artist"`
	JoinPhrase string `json:"joinphrase"`
}

// medium represents a disc/medium in a release.
type medium struct {
	Position   int     `json:"position"`
	Format     string  `json:"format"`
	TrackCount int     `json:"track-count"`
	Tracks     []track `json:"tracks"`
}

// track is a raw track from the API.
type track struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Title    string `json:"title"`
	Length   int    `json:"length"`
}

// releaseResult is a single release from browse results.
type releaseResult struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Score        int            `json:"score"`
	Date         string         `json:"date"`
	Country      string         `json:"country"`
	Status       string         `json:"status"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	ReleaseGroup *releaseGroup  `json:"release-group"`
	Media        []medium       `json:"media"`
}

// releaseGroup contains release type info.
type releaseGroup struct {
	ID          string `json:"id"`
	PrimaryType string `json:"primary-type"`
}

// releaseBrowseResponse is the response when browsing releases.
type releaseBrowseResponse struct {
	Releases []releaseResult `json:"releases"`
}

// releaseDetailsResponse is the response when fetching a single release.
type releaseDetailsResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Date         string         `json:"date"`
	Country      string         `json:"country"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	ReleaseGroup *releaseGroup  `json:"release-group"`
	Media        []medium       `json:"media"`
}

// artistLookupResponse is the response from an artist lookup with
// aliases included.
type artistLookupResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Aliases []struct {
		Name    string `json:"name"`
		Type    string `json:"type"`
		Primary bool   `json:"primary"`
	} `json:"aliases"`
}
