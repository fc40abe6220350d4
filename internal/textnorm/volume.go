package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

// NumberStyle describes how a volume number is written.
type NumberStyle int

const (
	StyleArabic NumberStyle = iota
	StyleRoman
	StyleWord
)

// VolumePhrase is a numbered-series fragment found in an album title,
// e.g. "Vol. 3" in "Now That's What I Call Music Vol. 3".
type VolumePhrase struct {
	Indicator string // indicator as found ("Vol.", "Part", ...); "" for a bare trailing number
	RawValue  string // value as found ("3", "IV", "three")
	Number    int
	Style     NumberStyle

	start int // byte offsets of the matched phrase
	end   int
}

// reVolume matches a series indicator followed by an Arabic number, a
// number word or a Roman numeral. Longer indicator spellings come first
// so "Volume" is not consumed as "Vol".
var reVolume = regexp.MustCompile(
	`(?i)\b(volume|vol\.?|chapter|ch\.?|part|pt\.?|dis[ck]|book|edition|episode|number|no\.?)` +
		`\s*[.:#-]?\s*` +
		`(\d{1,4}|one|two|three|four|five|six|seven|eight|nine|ten|[ivxlcdm]+)\b`)

// reTrailingNumber matches a bare number at the end of a title
// ("Workout Mix 4").
var reTrailingNumber = regexp.MustCompile(`\s+(\d{1,4})\s*$`)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var wordNumbers = map[int]string{
	1: "one", 2: "two", 3: "three", 4: "four", 5: "five",
	6: "six", 7: "seven", 8: "eight", 9: "nine", 10: "ten",
}

// ParseVolumePhrase finds the first volume phrase in album. A bare
// trailing number is accepted when no indicator is present.
func ParseVolumePhrase(album string) (VolumePhrase, bool) {
	if m := reVolume.FindStringSubmatchIndex(album); m != nil {
		indicator := album[m[2]:m[3]]
		raw := album[m[4]:m[5]]
		number, style := parseVolumeValue(raw)
		if number > 0 {
			return VolumePhrase{
				Indicator: indicator,
				RawValue:  raw,
				Number:    number,
				Style:     style,
				start:     m[0],
				end:       m[1],
			}, true
		}
	}
	if m := reTrailingNumber.FindStringSubmatchIndex(album); m != nil {
		raw := album[m[2]:m[3]]
		number, _ := strconv.Atoi(raw)
		if number > 0 {
			return VolumePhrase{
				RawValue: raw,
				Number:   number,
				Style:    StyleArabic,
				start:    m[0],
				end:      m[1],
			}, true
		}
	}
	return VolumePhrase{}, false
}

func parseVolumeValue(raw string) (int, NumberStyle) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, StyleArabic
	}
	if n, ok := numberWords[strings.ToLower(raw)]; ok {
		return n, StyleWord
	}
	if n := RomanToArabic(raw); n > 0 {
		return n, StyleRoman
	}
	return 0, StyleArabic
}

// HasVolumePhrase reports whether album carries a volume phrase or bare
// trailing number.
func HasVolumePhrase(album string) bool {
	_, ok := ParseVolumePhrase(album)
	return ok
}

// VolumeNumber returns the numeric value of the album's volume phrase,
// or 0 when none exists.
func VolumeNumber(album string) int {
	p, ok := ParseVolumePhrase(album)
	if !ok {
		return 0
	}
	return p.Number
}

// HasStandaloneRoman reports whether album contains a Roman-numeral
// token outside of any volume phrase ("Led Zeppelin IV").
func HasStandaloneRoman(album string) bool {
	rest := album
	if p, ok := ParseVolumePhrase(album); ok && p.Indicator != "" {
		rest = album[:p.start] + " " + album[p.end:]
	}
	for _, token := range strings.Fields(rest) {
		token = strings.Trim(token, ".,;:()[]")
		// Uppercase-only, and never the pronoun "I": lowercase words like
		// "mix" are made of Roman letters but are not numbering.
		if token == "" || token == "I" || token != strings.ToUpper(token) {
			continue
		}
		if IsRomanNumeral(token) {
			return true
		}
	}
	return false
}

// ConvertVolumeFormat rewrites the album's volume phrase using the given
// indicator spelling and number style. Returns the album unchanged with
// ok=false when no phrase exists or the value cannot be rendered in the
// requested style (number words stop at ten).
func ConvertVolumeFormat(album, indicator string, style NumberStyle) (string, bool) {
	p, ok := ParseVolumePhrase(album)
	if !ok {
		return album, false
	}
	value := formatVolumeValue(p.Number, style)
	if value == "" {
		return album, false
	}
	phrase := value
	if indicator != "" {
		phrase = indicator + " " + value
	}
	out := CollapseWhitespace(album[:p.start] + " " + phrase + " " + album[p.end:])
	return out, true
}

// FlipVolumeNumber converts the volume number between Roman and Arabic
// while keeping the indicator as found. Word values ("part two") flip to
// Arabic.
func FlipVolumeNumber(album string) (string, bool) {
	p, ok := ParseVolumePhrase(album)
	if !ok {
		return album, false
	}
	target := StyleArabic
	if p.Style == StyleArabic {
		target = StyleRoman
	}
	converted, ok := ConvertVolumeFormat(album, p.Indicator, target)
	if !ok || converted == album {
		return album, false
	}
	return converted, true
}

// StripVolumePhrase removes the volume phrase entirely. Only titles with
// more than 3 words whose stripped form stays over 10 characters qualify;
// shorter results are too generic to search for.
func StripVolumePhrase(album string) (string, bool) {
	p, ok := ParseVolumePhrase(album)
	if !ok || p.Indicator == "" {
		return album, false
	}
	if len(strings.Fields(album)) <= 3 {
		return album, false
	}
	stripped := CollapseWhitespace(album[:p.start] + " " + album[p.end:])
	if len(stripped) <= 10 || stripped == album {
		return album, false
	}
	return stripped, true
}

func formatVolumeValue(n int, style NumberStyle) string {
	switch style {
	case StyleRoman:
		return ArabicToRoman(n)
	case StyleWord:
		return wordNumbers[n]
	default:
		return strconv.Itoa(n)
	}
}
