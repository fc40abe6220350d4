package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

// romanMax bounds conversions; values past it are treated as noise
// rather than numbering.
const romanMax = 5000

var romanPairs = []struct {
	value  int
	symbol string
}{
	{1000, "M"},
	{900, "CM"},
	{500, "D"},
	{400, "CD"},
	{100, "C"},
	{90, "XC"},
	{50, "L"},
	{40, "XL"},
	{10, "X"},
	{9, "IX"},
	{5, "V"},
	{4, "IV"},
	{1, "I"},
}

var romanValues = map[rune]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// ArabicToRoman renders n in canonical subtractive notation. Returns ""
// for values outside [1, 5000].
func ArabicToRoman(n int) string {
	if n <= 0 || n > romanMax {
		return ""
	}
	var sb strings.Builder
	for _, p := range romanPairs {
		for n >= p.value {
			sb.WriteString(p.symbol)
			n -= p.value
		}
	}
	return sb.String()
}

// RomanToArabic parses a Roman numeral, tolerating irregular repeated
// forms such as "IIII" (additive notation used on clock faces and old
// pressings). Returns 0 when s is not a Roman numeral or the value is
// outside [1, 5000].
func RomanToArabic(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	total := 0
	for i, r := range s {
		v, ok := romanValues[r]
		if !ok {
			return 0
		}
		// Subtractive rule: a smaller symbol before a larger one negates.
		if i+1 < len(s) {
			if next, ok := romanValues[rune(s[i+1])]; ok && v < next {
				total -= v
				continue
			}
		}
		total += v
	}
	if total <= 0 || total > romanMax {
		return 0
	}
	return total
}

// IsRomanNumeral reports whether token parses as a Roman numeral.
func IsRomanNumeral(token string) bool {
	return RomanToArabic(token) > 0
}

// reRomanToken matches standalone uppercase Roman-numeral tokens.
// Case-sensitive on purpose: lowercase words like "mix" are not numbering.
var reRomanToken = regexp.MustCompile(`\b[IVXLCDM]+\b`)

// FlipStandaloneRoman replaces the first standalone Roman-numeral token
// outside any volume phrase with its Arabic value ("Led Zeppelin IV" ->
// "Led Zeppelin 4"). Returns ok=false when no such token exists.
func FlipStandaloneRoman(album string) (string, bool) {
	skipStart, skipEnd := -1, -1
	if p, ok := ParseVolumePhrase(album); ok && p.Indicator != "" {
		skipStart, skipEnd = p.start, p.end
	}

	for _, loc := range reRomanToken.FindAllStringIndex(album, -1) {
		if loc[0] >= skipStart && loc[1] <= skipEnd {
			continue
		}
		token := album[loc[0]:loc[1]]
		if token == "I" {
			continue
		}
		n := RomanToArabic(token)
		if n == 0 {
			continue
		}
		return album[:loc[0]] + strconv.Itoa(n) + album[loc[1]:], true
	}
	return album, false
}

// CanonicalRoman rewrites an irregular Roman numeral ("IIII") in
// standard subtractive form ("IV"). Returns "" when token is not a
// Roman numeral.
func CanonicalRoman(token string) string {
	return ArabicToRoman(RomanToArabic(token))
}
