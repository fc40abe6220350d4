// Package textnorm provides text normalization primitives for matching
// search queries against peer-supplied folder and file names.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// rePunctuation matches punctuation and symbols that peers routinely
	// drop, swap or invent in shared folder names.
	rePunctuation = regexp.MustCompile(`[.,!?;:'"` + "`" + `’‘“”´&+/\\_\-–—()\[\]{}<>|*%$#@~^=]+`)

	// reSpaces collapses runs of whitespace into a single space.
	reSpaces = regexp.MustCompile(`\s+`)
)

// stripMarks removes Unicode combining marks after NFD decomposition.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics converts accented characters to their ASCII base form
// ("Motörhead" -> "Motorhead"). The input is returned unchanged if the
// transform fails.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// HasDiacritics reports whether s contains any combining or accented
// characters.
func HasDiacritics(s string) bool {
	return StripDiacritics(s) != s
}

// StripPunctuation replaces punctuation with spaces and collapses the
// result.
func StripPunctuation(s string) string {
	s = rePunctuation.ReplaceAllString(s, " ")
	return CollapseWhitespace(s)
}

// HasPunctuation reports whether s contains punctuation that
// StripPunctuation would remove.
func HasPunctuation(s string) bool {
	return rePunctuation.MatchString(s)
}

// StripLeadingArticle removes a leading "the", "a" or "an".
func StripLeadingArticle(s string) string {
	lower := strings.ToLower(s)
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(lower, article) && len(s) > len(article) {
			return s[len(article):]
		}
	}
	return s
}

// CollapseWhitespace trims s and collapses internal whitespace runs.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// Clean normalizes s for fuzzy comparison: lower-case, diacritics
// stripped, leading article removed, punctuation replaced by spaces,
// whitespace collapsed.
func Clean(s string) string {
	s = strings.ToLower(s)
	s = StripDiacritics(s)
	s = StripLeadingArticle(s)
	s = StripPunctuation(s)
	return CollapseWhitespace(s)
}

// Tokens splits s into cleaned lower-case words.
func Tokens(s string) []string {
	cleaned := Clean(s)
	if cleaned == "" {
		return nil
	}
	return strings.Fields(cleaned)
}
