package search

import (
	"strings"

	"github.com/cratedig/cratedig/internal/textnorm"
)

// Traits is a bitset of independent request characteristics. Computed
// once per request by Analyze and never recomputed mid-pipeline.
type Traits uint8

const (
	TraitSelfTitled Traits = 1 << iota
	TraitShortName
	TraitVariousArtists
	TraitHasVolume
	TraitHasRomanNumeral
	TraitNeedsNormalization
	TraitNeedsTypeDisambiguation
)

// Has reports whether all bits in t are set.
func (t Traits) Has(want Traits) bool {
	return t&want == want
}

var traitNames = []struct {
	bit  Traits
	name string
}{
	{TraitSelfTitled, "self-titled"},
	{TraitShortName, "short-name"},
	{TraitVariousArtists, "various-artists"},
	{TraitHasVolume, "volume"},
	{TraitHasRomanNumeral, "roman-numeral"},
	{TraitNeedsNormalization, "normalization"},
	{TraitNeedsTypeDisambiguation, "type-disambiguation"},
}

func (t Traits) String() string {
	if t == 0 {
		return "none"
	}
	var parts []string
	for _, tn := range traitNames {
		if t.Has(tn.bit) {
			parts = append(parts, tn.name)
		}
	}
	return strings.Join(parts, ",")
}

// selfTitledThreshold is the token-set similarity above which album and
// artist count as the same name.
const selfTitledThreshold = 90

// variousArtistsAliases are the compilation markers that disable
// artist-based matching.
var variousArtistsAliases = map[string]bool{
	"various artists":     true,
	"various":             true,
	"va":                  true,
	"v/a":                 true,
	"v.a.":                true,
	"soundtrack":          true,
	"original soundtrack": true,
	"ost":                 true,
	"compilation":         true,
}

// Analyze classifies a request into its trait set.
func Analyze(req Request) Traits {
	var t Traits

	artist := strings.TrimSpace(req.Artist)
	album := strings.TrimSpace(req.Album)

	if variousArtistsAliases[strings.ToLower(artist)] {
		t |= TraitVariousArtists
	}
	if isSelfTitled(artist, album) {
		t |= TraitSelfTitled
	}
	if len(album) < 4 {
		t |= TraitShortName
	}
	if needsTypeDisambiguation(req.ReleaseType, album, t) {
		t |= TraitNeedsTypeDisambiguation
	}
	if textnorm.HasVolumePhrase(album) {
		t |= TraitHasVolume
	}
	if textnorm.HasStandaloneRoman(album) {
		t |= TraitHasRomanNumeral
	}
	if needsNormalization(artist, album) {
		t |= TraitNeedsNormalization
	}

	return t
}

// isSelfTitled detects albums named after the artist: exact normalized
// match, high token-set overlap, or one being a prefix of the other.
func isSelfTitled(artist, album string) bool {
	if artist == "" || album == "" {
		return false
	}
	a, b := textnorm.Clean(artist), textnorm.Clean(album)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if textnorm.TokenSetRatio(artist, album) >= selfTitledThreshold {
		return true
	}
	if len(a) >= 3 && len(b) >= 3 &&
		(strings.HasPrefix(a, b) || strings.HasPrefix(b, a)) {
		return true
	}
	return false
}

// needsTypeDisambiguation marks EPs and singles whose titles are too
// generic to search for on their own.
func needsTypeDisambiguation(rt ReleaseType, album string, t Traits) bool {
	if rt != ReleaseTypeEP && rt != ReleaseTypeSingle {
		return false
	}
	return album == "" ||
		t.Has(TraitShortName) ||
		t.Has(TraitSelfTitled) ||
		!strings.Contains(album, " ")
}

func needsNormalization(artist, album string) bool {
	return textnorm.HasDiacritics(artist) || textnorm.HasDiacritics(album) ||
		textnorm.HasPunctuation(artist) || textnorm.HasPunctuation(album)
}
