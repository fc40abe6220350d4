package search

import (
	"strings"
	"time"

	"github.com/cratedig/cratedig/internal/textnorm"
)

// Context carries one search request through the pipeline. The request
// fields and traits are immutable after construction; Processed is the
// only mutable state and is owned exclusively by this request's
// pipeline (concurrent searches each build their own Context).
type Context struct {
	Request
	Traits Traits

	// Normalized forms, filled only when the request needs them and
	// normalization is enabled.
	NormalizedArtist string
	NormalizedAlbum  string

	processed map[string]bool
}

// NewContext analyzes the request and prepares the per-request state.
func NewContext(req Request, settings Settings) *Context {
	c := &Context{
		Request:   req,
		Traits:    Analyze(req),
		processed: make(map[string]bool),
	}

	if c.Traits.Has(TraitNeedsNormalization) {
		c.NormalizedArtist = normalizeTerm(req.Artist, settings)
		c.NormalizedAlbum = normalizeTerm(req.Album, settings)
	}

	return c
}

// normalizeTerm applies the enabled normalization steps: diacritic
// decomposition and punctuation/article stripping. It changes the text,
// never the trait set.
func normalizeTerm(s string, settings Settings) string {
	if settings.NormalizeDiacritics {
		s = textnorm.StripDiacritics(s)
	}
	if settings.StripPunctuation {
		s = textnorm.StripLeadingArticle(s)
		s = textnorm.StripPunctuation(s)
	}
	return textnorm.CollapseWhitespace(s)
}

// SearchArtist returns the artist term to search with; empty for
// various-artists requests, where artist matching only hurts.
func (c *Context) SearchArtist() string {
	if c.Traits.Has(TraitVariousArtists) {
		return ""
	}
	return strings.TrimSpace(c.Artist)
}

// SearchAlbum returns the album term to search with.
func (c *Context) SearchAlbum() string {
	return strings.TrimSpace(c.Album)
}

// IsVariousArtists reports whether this is a compilation request.
func (c *Context) IsVariousArtists() bool {
	return c.Traits.Has(TraitVariousArtists)
}

// HasValidYear reports whether the request's year is plausible.
func (c *Context) HasValidYear() bool {
	return c.Year >= 1900 && c.Year <= time.Now().Year()+1
}

// ReleaseTypeTag returns the disambiguation suffix for EPs and singles.
func (c *Context) ReleaseTypeTag() string {
	switch c.ReleaseType {
	case ReleaseTypeEP:
		return "EP"
	case ReleaseTypeSingle:
		return "Single"
	}
	return ""
}

// MarkProcessed registers a query text and reports whether it was new.
// Texts are folded so "The Wall" and "the wall " count as duplicates.
func (c *Context) MarkProcessed(text string) bool {
	key := strings.ToLower(textnorm.CollapseWhitespace(text))
	if key == "" || c.processed[key] {
		return false
	}
	c.processed[key] = true
	return true
}

// WasProcessed reports whether a query text is already registered,
// without registering it.
func (c *Context) WasProcessed(text string) bool {
	key := strings.ToLower(textnorm.CollapseWhitespace(text))
	return c.processed[key]
}

// ProcessedCount returns how many distinct queries have been issued.
func (c *Context) ProcessedCount() int {
	return len(c.processed)
}
