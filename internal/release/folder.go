package release

import (
	"regexp"
	"strings"

	"github.com/cratedig/cratedig/internal/textnorm"
)

// Folder holds metadata parsed from a remote directory path.
type Folder struct {
	Artist string
	Album  string
	Year   string
}

// Package-level compiled patterns; tried in order of structure strength.
var (
	// "Pink Floyd - The Wall (1979)"
	reArtistAlbumYear = regexp.MustCompile(`^(.+?)\s+-\s+(.+?)\s*\(((?:19|20)\d{2})\)\s*$`)

	// "1979 - Pink Floyd - The Wall"
	reYearArtistAlbum = regexp.MustCompile(`^((?:19|20)\d{2})\s*-\s*(.+?)\s+-\s+(.+)$`)

	// "Pink Floyd - The Wall"
	reArtistAlbum = regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`)

	// "The Wall (1979)" — artist comes from the parent directory.
	reAlbumYear = regexp.MustCompile(`^(.+?)\s*\(((?:19|20)\d{2})\)\s*$`)

	// Square brackets always hold annotations ("[FLAC]", "[24bit 96kHz]").
	reBracketAnnotation = regexp.MustCompile(`\s*\[[^\]]*\]`)

	// Parenthesized annotations are stripped only when they look like
	// format/quality/edition tags, not titles like "(What's the Story)".
	reParenAnnotation = regexp.MustCompile(`(?i)\s*\((?:[^)]*\b(?:flac|mp3|m4a|ogg|opus|ape|wav|cd\d*|vinyl|web|cassette|tape|remaster(?:ed)?|reissue|deluxe|expanded|limited|bonus|edition|[0-9]+\s*kbps|[0-9]+\s*bit|v0|v2|320|256|192)\b[^)]*)\)`)

	reAnyYear = regexp.MustCompile(`(?:19|20)\d{2}`)

	reAllDigits = regexp.MustCompile(`^\d+$`)
)

// genericDirNames are parent directories that can never be an artist.
var genericDirNames = map[string]bool{
	"music": true, "mp3": true, "flac": true, "albums": true, "album": true,
	"downloads": true, "download": true, "shared": true, "share": true,
	"soulseek": true, "slsk": true, "complete": true, "completed": true,
	"media": true, "audio": true, "sorted": true, "new": true, "misc": true,
	"various": true, "singles": true, "collection": true,
}

// ParseFolderName extracts artist, album and year from a remote
// directory path. The innermost segment carries most of the structure;
// the parent segment serves as artist fallback when it is not a generic
// library folder.
func ParseFolderName(path string) Folder {
	segments := splitPath(path)
	if len(segments) == 0 {
		return Folder{}
	}

	name := stripAnnotations(segments[len(segments)-1])
	parent := ""
	if len(segments) >= 2 {
		parent = stripAnnotations(segments[len(segments)-2])
	}

	var f Folder
	switch {
	case reArtistAlbumYear.MatchString(name):
		m := reArtistAlbumYear.FindStringSubmatch(name)
		f = Folder{Artist: m[1], Album: m[2], Year: m[3]}
	case reYearArtistAlbum.MatchString(name):
		m := reYearArtistAlbum.FindStringSubmatch(name)
		f = Folder{Artist: m[2], Album: m[3], Year: m[1]}
	case reAlbumYear.MatchString(name):
		m := reAlbumYear.FindStringSubmatch(name)
		f = Folder{Album: m[1], Year: m[2]}
		if usableArtistDir(parent) {
			f.Artist = parent
		}
	case reArtistAlbum.MatchString(name):
		m := reArtistAlbum.FindStringSubmatch(name)
		f = Folder{Artist: m[1], Album: m[2]}
	default:
		f = Folder{Album: name}
		if usableArtistDir(parent) {
			f.Artist = parent
		}
	}

	f.Artist = textnorm.CollapseWhitespace(f.Artist)
	f.Album = textnorm.CollapseWhitespace(strings.Trim(f.Album, " -"))

	// Last resort: any 19xx/20xx year in the full path. The deepest
	// occurrence wins, since outer folders tend to be decade bins.
	if f.Year == "" {
		if years := reAnyYear.FindAllString(path, -1); len(years) > 0 {
			f.Year = years[len(years)-1]
		}
	}

	return f
}

// stripAnnotations removes bracketed format/quality/edition tags.
func stripAnnotations(name string) string {
	name = reBracketAnnotation.ReplaceAllString(name, "")
	name = reParenAnnotation.ReplaceAllString(name, "")
	return textnorm.CollapseWhitespace(name)
}

// usableArtistDir reports whether a parent directory name can stand in
// as the artist.
func usableArtistDir(parent string) bool {
	if parent == "" {
		return false
	}
	if genericDirNames[strings.ToLower(strings.TrimSpace(parent))] {
		return false
	}
	// Share roots like "@@bcdef" or drive prefixes are not artists.
	if strings.HasPrefix(parent, "@@") || strings.Contains(parent, ":") {
		return false
	}
	// Year bins and disc numbers.
	if reAllDigits.MatchString(strings.TrimSpace(parent)) {
		return false
	}
	return true
}

// splitPath splits a remote path on both separator styles, dropping
// empty segments.
func splitPath(path string) []string {
	raw := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	out := raw[:0]
	for _, s := range raw {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
