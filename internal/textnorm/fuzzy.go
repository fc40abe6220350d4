package textnorm

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Ratio returns a 0-100 similarity score between two strings based on
// Levenshtein distance. Both inputs are cleaned first, so "The Wall" and
// "wall" compare as equal.
func Ratio(a, b string) int {
	a, b = Clean(a), Clean(b)
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return int(sim*100 + 0.5)
}

// PartialRatio returns the best Ratio between the shorter string and any
// equal-length substring of the longer one. It scores 100 when one name
// is embedded in the other ("The Wall" inside "Pink Floyd - The Wall").
func PartialRatio(a, b string) int {
	a, b = Clean(a), Clean(b)
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == len(long) {
		return rawRatio(string(short), string(long))
	}

	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		score := rawRatio(string(short), string(long[i:i+len(short)]))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}

// TokenSetRatio compares token sets independent of word order and
// duplication. It is the primary measure for deciding whether a peer's
// folder name refers to the same artist or album as the query.
func TokenSetRatio(a, b string) int {
	tokensA := uniqueSortedTokens(a)
	tokensB := uniqueSortedTokens(b)
	if len(tokensA) == 0 && len(tokensB) == 0 {
		return 100
	}
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	setB := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		setB[t] = true
	}
	setA := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		setA[t] = true
		if setB[t] {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range tokensB {
		if !setA[t] {
			onlyB = append(onlyB, t)
		}
	}

	base := strings.Join(common, " ")
	combinedA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := rawRatio(base, combinedA)
	if s := rawRatio(base, combinedB); s > best {
		best = s
	}
	if s := rawRatio(combinedA, combinedB); s > best {
		best = s
	}
	return best
}

// rawRatio scores two already-cleaned strings.
func rawRatio(a, b string) int {
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return int(sim*100 + 0.5)
}

func uniqueSortedTokens(s string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range Tokens(s) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
