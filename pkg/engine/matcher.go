package engine

import (
	"strings"
)

const (
	// minContainmentLength guards substring matches: a normalized name
	// shorter than this never matches by containment alone.
	minContainmentLength = 3

	// tokenOverlapThreshold is the fraction of the smaller token set
	// that must be shared for two names to match by token overlap.
	tokenOverlapThreshold = 0.5
)

// Named is anything carrying a free-text grocery name to match against.
type Named interface {
	MatchName() string
}

// Normalize reduces a free-text grocery name to its comparison form:
// lowercase, punctuation stripped, whitespace collapsed, common plural
// suffixes removed. It is a simple suffix stripper, not a morphological
// analyzer.
func Normalize(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	for _, r := range lower {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for i, tok := range tokens {
		tokens[i] = singularize(tok)
	}
	return strings.Join(tokens, " ")
}

func singularize(word string) string {
	switch {
	case len(word) > 3 && strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case len(word) > 3 && (strings.HasSuffix(word, "ches") ||
		strings.HasSuffix(word, "shes") ||
		strings.HasSuffix(word, "xes") ||
		strings.HasSuffix(word, "oes")):
		return word[:len(word)-2]
	case len(word) > 2 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	default:
		return word
	}
}

// Matches reports whether two free-text names denote the same grocery
// item. The decision is symmetric and deterministic; empty inputs never
// match.
func Matches(a, b string) bool {
	na := Normalize(a)
	nb := Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	shorter, longer := na, nb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) >= minContainmentLength && strings.Contains(longer, shorter) {
		return true
	}

	return tokenOverlap(na, nb) >= tokenOverlapThreshold
}

// tokenOverlap returns the shared-token fraction relative to the
// smaller of the two token sets, which keeps the measure symmetric.
func tokenOverlap(na, nb string) float64 {
	setA := tokenSet(na)
	setB := tokenSet(nb)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for tok := range setA {
		if setB[tok] {
			shared++
		}
	}

	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	return float64(shared) / float64(smaller)
}

func tokenSet(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(normalized) {
		set[tok] = true
	}
	return set
}

// BestMatches returns every candidate whose name matches the given
// ingredient name. There is no single-winner ranking: callers aggregate
// over all matches, since a household may hold several records with
// related names ("chicken breast", "chicken breasts, frozen").
func BestMatches[T Named](ingredientName string, candidates []T) []T {
	var out []T
	for _, c := range candidates {
		if Matches(ingredientName, c.MatchName()) {
			out = append(out, c)
		}
	}
	return out
}
