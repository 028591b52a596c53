// Package transcript provides an optional correction pass that fixes
// misheard participant names in raw ASR output before mention detection.
//
// Accented-English speech recognition frequently mangles proper nouns
// ("Chidi" → "cheedy", "Adaeze" → "ada easy"). The corrector aligns n-gram
// windows of the transcript against the participant name list using Double
// Metaphone phonetic codes for candidate filtering and Jaro-Winkler
// similarity for ranking. It rewrites only the transcript string handed to
// the detector; detection semantics are untouched.
//
// All types are read-only after construction and safe for concurrent use.
package transcript

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// MatcherOption configures a [NameMatcher].
type MatcherOption func(*NameMatcher)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-filtered candidate to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) MatcherOption {
	return func(m *NameMatcher) { m.phoneticThreshold = threshold }
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// candidate passes the phonetic filter and the matcher falls back to pure
// string similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) MatcherOption {
	return func(m *NameMatcher) { m.fuzzyThreshold = threshold }
}

// NameMatcher resolves a transcript phrase to the most phonetically similar
// participant name.
type NameMatcher struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// NewNameMatcher returns a [NameMatcher] configured with the supplied options.
func NewNameMatcher(opts ...MatcherOption) *NameMatcher {
	m := &NameMatcher{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Match finds the name from names that best matches phrase, which may be a
// single word or a space-separated n-gram. Candidates whose Double Metaphone
// codes overlap with the phrase are ranked by Jaro-Winkler similarity against
// the phonetic threshold; when no candidate overlaps phonetically, a pure
// similarity pass applies the higher fuzzy threshold instead.
//
// When ok is false, name equals phrase unchanged and score is 0.
func (m *NameMatcher) Match(phrase string, names []string) (name string, score float64, ok bool) {
	phraseLC := strings.ToLower(strings.TrimSpace(phrase))
	if phraseLC == "" || len(names) == 0 {
		return phrase, 0, false
	}

	phraseTokens := strings.Fields(phraseLC)
	phraseCodes := metaphoneCodes(phraseTokens)

	var (
		best         string
		bestScore    float64
		bestPhonetic bool
	)

	for _, candidate := range names {
		candLC := strings.ToLower(strings.TrimSpace(candidate))
		if candLC == "" {
			continue
		}
		candTokens := strings.Fields(candLC)

		phonetic := codesOverlap(phraseCodes, metaphoneCodes(candTokens))
		sim := similarity(phraseTokens, candTokens, phraseLC, candLC)

		switch {
		case phonetic && sim >= m.phoneticThreshold:
			if !bestPhonetic || sim > bestScore {
				best, bestScore, bestPhonetic = candidate, sim, true
			}
		case !phonetic && !bestPhonetic:
			if sim >= m.fuzzyThreshold && sim > bestScore {
				best, bestScore = candidate, sim
			}
		}
	}

	if best == "" {
		return phrase, 0, false
	}
	return best, bestScore, true
}

// metaphoneCodes returns the union of Double Metaphone codes for the tokens.
// Tokens too short to produce a code contribute nothing.
func metaphoneCodes(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		primary, secondary := matchr.DoubleMetaphone(t)
		if primary != "" {
			codes[primary] = struct{}{}
		}
		if secondary != "" {
			codes[secondary] = struct{}{}
		}
	}
	return codes
}

func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// similarity is the best Jaro-Winkler score across three comparisons: the
// full strings, the space-stripped strings (one spoken word heard as two),
// and the best token pair.
func similarity(aTokens, bTokens []string, aFull, bFull string) float64 {
	score := matchr.JaroWinkler(aFull, bFull, false)

	if len(aTokens) > 1 || len(bTokens) > 1 {
		if s := matchr.JaroWinkler(strings.Join(aTokens, ""), strings.Join(bTokens, ""), false); s > score {
			score = s
		}
	}

	for _, at := range aTokens {
		for _, bt := range bTokens {
			if s := matchr.JaroWinkler(at, bt, false); s > score {
				score = s
			}
		}
	}

	return score
}
