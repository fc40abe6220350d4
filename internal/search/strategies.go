package search

import (
	"strconv"
	"strings"

	"github.com/cratedig/cratedig/internal/textnorm"
)

// buildQuery assembles a Query from artist/album terms, carrying the
// request's interactive flag and expected track count.
func buildQuery(c *Context, artist, album string, expandDir bool) *Query {
	text := textnorm.CollapseWhitespace(artist + " " + album)
	if text == "" {
		return nil
	}
	return &Query{
		Artist:          artist,
		Album:           album,
		Text:            text,
		Interactive:     c.Interactive,
		ExpandDirectory: expandDir,
		ExpectedTracks:  c.TrackCount,
	}
}

// normalizedStrategy issues the diacritic- and punctuation-stripped
// form of the request first: peers overwhelmingly share ASCII folder
// names, so the normalized spelling is the best shot.
type normalizedStrategy struct{}

func (normalizedStrategy) Name() string { return "normalized" }
func (normalizedStrategy) Tier() Tier { return TierSpecial }
func (normalizedStrategy) Priority() int { return 0 }

func (normalizedStrategy) Enabled(s Settings) bool {
	return s.NormalizeDiacritics || s.StripPunctuation
}

func (normalizedStrategy) Applies(c *Context) bool {
	return c.Traits.Has(TraitNeedsNormalization)
}

func (normalizedStrategy) Build(c *Context) *Query {
	artist := c.NormalizedArtist
	if c.IsVariousArtists() {
		artist = ""
	}
	if artist == "" && c.NormalizedAlbum == "" {
		return nil
	}
	return buildQuery(c, artist, c.NormalizedAlbum, false)
}

// variousArtistsStrategy searches compilations by album only; the
// "artist" on a compilation is a catalog label, not a search term.
type variousArtistsStrategy struct{}

func (variousArtistsStrategy) Name() string { return "various-artists" }
func (variousArtistsStrategy) Tier() Tier { return TierBase }
func (variousArtistsStrategy) Priority() int { return 0 }

func (variousArtistsStrategy) Enabled(s Settings) bool { return s.VariousArtistsHandling }

func (variousArtistsStrategy) Applies(c *Context) bool {
	return c.IsVariousArtists() && c.SearchAlbum() != ""
}

func (variousArtistsStrategy) Build(c *Context) *Query {
	return buildQuery(c, "", c.SearchAlbum(), true)
}

// baseStrategy is the plain "artist album" search.
type baseStrategy struct{}

func (baseStrategy) Name() string { return "base" }
func (baseStrategy) Tier() Tier { return TierBase }
func (baseStrategy) Priority() int { return 10 }
func (baseStrategy) Enabled(Settings) bool { return true }

func (baseStrategy) Applies(c *Context) bool {
	return !c.IsVariousArtists() && c.SearchArtist() != "" && c.SearchAlbum() != ""
}

func (baseStrategy) Build(c *Context) *Query {
	return buildQuery(c, c.SearchArtist(), c.SearchAlbum(), false)
}

// selfTitledStrategy avoids the redundant "Pink Floyd Pink Floyd"
// search: for self-titled albums the artist plus release year pins the
// album down better than repeating the name.
type selfTitledStrategy struct{}

func (selfTitledStrategy) Name() string { return "self-titled" }
func (selfTitledStrategy) Tier() Tier { return TierBase }
func (selfTitledStrategy) Priority() int { return 20 }
func (selfTitledStrategy) Enabled(Settings) bool { return true }

func (selfTitledStrategy) Applies(c *Context) bool {
	return c.Traits.Has(TraitSelfTitled) && !c.IsVariousArtists() && c.SearchArtist() != ""
}

func (selfTitledStrategy) Build(c *Context) *Query {
	if c.HasValidYear() {
		return buildQuery(c, c.SearchArtist(), strconv.Itoa(c.Year), true)
	}
	return buildQuery(c, c.SearchArtist(), "", true)
}

// shortNameStrategy anchors tiny album titles with the release year so
// a three-letter title doesn't drown in noise.
type shortNameStrategy struct{}

func (shortNameStrategy) Name() string { return "short-name" }
func (shortNameStrategy) Tier() Tier { return TierBase }
func (shortNameStrategy) Priority() int { return 30 }
func (shortNameStrategy) Enabled(Settings) bool { return true }

func (shortNameStrategy) Applies(c *Context) bool {
	return c.Traits.Has(TraitShortName) && !c.IsVariousArtists() &&
		c.SearchArtist() != "" && c.SearchAlbum() != "" && c.HasValidYear()
}

func (shortNameStrategy) Build(c *Context) *Query {
	album := c.SearchAlbum() + " " + strconv.Itoa(c.Year)
	return buildQuery(c, c.SearchArtist(), album, false)
}

// typeDisambiguationStrategy appends "EP" or "Single" when the title
// alone is too generic to identify the release.
type typeDisambiguationStrategy struct{}

func (typeDisambiguationStrategy) Name() string { return "type-disambiguation" }
func (typeDisambiguationStrategy) Tier() Tier { return TierBase }
func (typeDisambiguationStrategy) Priority() int { return 40 }
func (typeDisambiguationStrategy) Enabled(Settings) bool { return true }

func (typeDisambiguationStrategy) Applies(c *Context) bool {
	return c.Traits.Has(TraitNeedsTypeDisambiguation) && c.SearchArtist() != ""
}

func (typeDisambiguationStrategy) Build(c *Context) *Query {
	tag := c.ReleaseTypeTag()
	if tag == "" {
		return nil
	}
	album := textnorm.CollapseWhitespace(c.SearchAlbum() + " " + tag)
	return buildQuery(c, c.SearchArtist(), album, false)
}

// volumeVariationStrategy flips the volume numbering between Roman and
// Arabic: peers spell "Vol. 3" and "Vol. III" interchangeably.
type volumeVariationStrategy struct{}

func (volumeVariationStrategy) Name() string { return "volume-variation" }
func (volumeVariationStrategy) Tier() Tier { return TierVariation }
func (volumeVariationStrategy) Priority() int { return 0 }

func (volumeVariationStrategy) Enabled(s Settings) bool { return s.VolumeHandling }

func (volumeVariationStrategy) Applies(c *Context) bool {
	return c.Traits.Has(TraitHasVolume) && c.SearchAlbum() != ""
}

func (volumeVariationStrategy) Build(c *Context) *Query {
	converted, ok := textnorm.FlipVolumeNumber(c.SearchAlbum())
	if !ok {
		return nil
	}
	return buildQuery(c, c.SearchArtist(), converted, false)
}

// romanVariationStrategy converts standalone Roman numerals to Arabic
// ("Led Zeppelin IV" -> "Led Zeppelin 4").
type romanVariationStrategy struct{}

func (romanVariationStrategy) Name() string { return "roman-variation" }
func (romanVariationStrategy) Tier() Tier { return TierVariation }
func (romanVariationStrategy) Priority() int { return 10 }

func (romanVariationStrategy) Enabled(s Settings) bool { return s.VolumeHandling }

func (romanVariationStrategy) Applies(c *Context) bool {
	return c.Traits.Has(TraitHasRomanNumeral) && c.SearchAlbum() != ""
}

func (romanVariationStrategy) Build(c *Context) *Query {
	converted, ok := textnorm.FlipStandaloneRoman(c.SearchAlbum())
	if !ok {
		return nil
	}
	return buildQuery(c, c.SearchArtist(), converted, false)
}

// distinctiveAlbumStrategy searches for the most distinctive part of a
// long title: the words left after dropping filler and numbering, or
// the single longest word.
type distinctiveAlbumStrategy struct{}

func (distinctiveAlbumStrategy) Name() string { return "distinctive-album" }
func (distinctiveAlbumStrategy) Tier() Tier { return TierFallback }
func (distinctiveAlbumStrategy) Priority() int { return 0 }

func (distinctiveAlbumStrategy) Enabled(s Settings) bool { return s.FallbackSearch }

func (distinctiveAlbumStrategy) Applies(c *Context) bool {
	return len(c.SearchAlbum()) >= 10
}

func (distinctiveAlbumStrategy) Build(c *Context) *Query {
	album := c.SearchAlbum()
	distinctive := distinctiveSubstring(album)
	if distinctive == "" || strings.EqualFold(distinctive, album) {
		return nil
	}
	return buildQuery(c, c.SearchArtist(), distinctive, false)
}

// fillerWords are dropped when extracting a distinctive substring.
var fillerWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "and": true, "in": true,
	"on": true, "to": true, "for": true, "at": true, "with": true, "from": true,
	"vol": true, "volume": true, "part": true, "pt": true, "chapter": true,
	"disc": true, "disk": true, "edition": true, "ep": true, "lp": true,
	"remastered": true, "deluxe": true, "expanded": true,
}

func distinctiveSubstring(album string) string {
	var kept []string
	longest := ""
	for _, word := range strings.Fields(album) {
		trimmed := strings.Trim(word, ".,;:()[]!?")
		lower := strings.ToLower(trimmed)
		if trimmed == "" || fillerWords[lower] {
			continue
		}
		if _, err := strconv.Atoi(trimmed); err == nil {
			continue
		}
		if textnorm.IsRomanNumeral(trimmed) && trimmed == strings.ToUpper(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
		if len(trimmed) > len(longest) {
			longest = trimmed
		}
	}
	if len(kept) == 0 {
		return ""
	}
	joined := strings.Join(kept, " ")
	// A couple of meaningful words beat one long one; past that the
	// remainder is no more distinctive than the full title.
	if len(kept) <= 2 {
		return joined
	}
	return longest
}

// partialAlbumStrategy searches with roughly the first half of a long
// album title, catching folders with truncated names.
type partialAlbumStrategy struct{}

func (partialAlbumStrategy) Name() string { return "partial-album" }
func (partialAlbumStrategy) Tier() Tier { return TierFallback }
func (partialAlbumStrategy) Priority() int { return 10 }

func (partialAlbumStrategy) Enabled(s Settings) bool { return s.FallbackSearch }

func (partialAlbumStrategy) Applies(c *Context) bool {
	return len(c.SearchAlbum()) >= 15
}

func (partialAlbumStrategy) Build(c *Context) *Query {
	words := strings.Fields(c.SearchAlbum())
	if len(words) < 2 {
		return nil
	}
	half := strings.Join(words[:(len(words)+1)/2], " ")
	if strings.EqualFold(half, c.SearchAlbum()) {
		return nil
	}
	return buildQuery(c, c.SearchArtist(), half, false)
}

// aliasStrategy retries the search under an alternate artist name,
// picking the first alias not already issued.
type aliasStrategy struct{}

func (aliasStrategy) Name() string { return "alias" }
func (aliasStrategy) Tier() Tier { return TierFallback }
func (aliasStrategy) Priority() int { return 20 }

func (aliasStrategy) Enabled(s Settings) bool { return s.FallbackSearch }

func (aliasStrategy) Applies(c *Context) bool {
	if c.IsVariousArtists() {
		return false
	}
	for _, alias := range c.Aliases {
		if usableAlias(alias, c.Artist) {
			return true
		}
	}
	return false
}

func (a aliasStrategy) Build(c *Context) *Query {
	for _, alias := range c.Aliases {
		if !usableAlias(alias, c.Artist) {
			continue
		}
		q := buildQuery(c, strings.TrimSpace(alias), c.SearchAlbum(), false)
		if q == nil || c.WasProcessed(q.Text) {
			continue
		}
		return q
	}
	return nil
}

func usableAlias(alias, artist string) bool {
	alias = strings.TrimSpace(alias)
	return len(alias) >= 4 && !strings.EqualFold(alias, strings.TrimSpace(artist))
}

// wildcardStrategy right-truncates every term and appends the Soulseek
// wildcard marker, matching folders with misspelled endings.
type wildcardStrategy struct{}

func (wildcardStrategy) Name() string { return "wildcard" }
func (wildcardStrategy) Tier() Tier { return TierFallback }
func (wildcardStrategy) Priority() int { return 30 }

func (wildcardStrategy) Enabled(s Settings) bool { return s.FallbackSearch }

func (wildcardStrategy) Applies(c *Context) bool {
	return len(c.SearchArtist()) > 3 || len(c.SearchAlbum()) > 3
}

func (wildcardStrategy) Build(c *Context) *Query {
	text := textnorm.CollapseWhitespace(c.SearchArtist() + " " + c.SearchAlbum())
	if text == "" {
		return nil
	}
	var terms []string
	for _, word := range strings.Fields(text) {
		terms = append(terms, wildcardTerm(word))
	}
	wild := strings.Join(terms, " ")
	if wild == text {
		return nil
	}
	return &Query{
		Artist:          c.SearchArtist(),
		Album:           c.SearchAlbum(),
		Text:            wild,
		Interactive:     c.Interactive,
		ExpectedTracks:  c.TrackCount,
		ExpandDirectory: false,
	}
}

// wildcardTerm drops the final character of words long enough to
// survive it and appends "*".
func wildcardTerm(word string) string {
	runes := []rune(word)
	if len(runes) <= 3 {
		return word
	}
	return string(runes[:len(runes)-1]) + "*"
}

// trackFallbackStrategy anchors the search on the longest known track
// title, the most distinctive handle an album has when its own title
// finds nothing.
type trackFallbackStrategy struct{}

func (trackFallbackStrategy) Name() string { return "track-fallback" }
func (trackFallbackStrategy) Tier() Tier { return TierFallback }
func (trackFallbackStrategy) Priority() int { return 40 }

func (trackFallbackStrategy) Enabled(s Settings) bool { return s.TrackFallback }

func (trackFallbackStrategy) Applies(c *Context) bool {
	return longestTrack(c.Tracks) != ""
}

func (trackFallbackStrategy) Build(c *Context) *Query {
	track := longestTrack(c.Tracks)
	if track == "" {
		return nil
	}
	return buildQuery(c, c.SearchArtist(), track, false)
}

// longestTrack returns the longest title of at least 5 characters.
func longestTrack(tracks []string) string {
	best := ""
	for _, track := range tracks {
		track = strings.TrimSpace(track)
		if len(track) >= 5 && len(track) > len(best) {
			best = track
		}
	}
	return best
}
