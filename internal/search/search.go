// Package search implements typo-tolerant transcript search.
//
// The engine is a linear scan over a caller-supplied transcript batch — there
// is no persistent index. Each transcript is scored by combining exact
// substring occurrences of the query with fuzzy word matches within a bounded
// Levenshtein distance, normalized by transcript length so that matches in
// short transcripts rank higher. Results carry a display snippet around the
// first hit.
//
// All functions are pure and safe for concurrent use. Callers searching very
// large batches may shard the transcript list across goroutines and merge the
// per-shard results, as long as the merged list is re-sorted with a stable
// sort to preserve the ordering contract.
package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// fuzzyThreshold is the maximum edit distance for a fuzzy word match.
	fuzzyThreshold = 2

	// minFuzzyWordLen is the minimum cleaned-word length considered for
	// fuzzy matching.
	minFuzzyWordLen = 3

	// minFuzzyQueryLen: queries this short are exempt from fuzzy matching
	// to avoid false positives ("the" would match almost anything).
	minFuzzyQueryLen = 4

	// snippetContext is the number of context bytes kept on each side of
	// the first exact hit.
	snippetContext = 30

	// snippetFallbackLen is the prefix length used when a result is driven
	// only by fuzzy matches and there is no exact hit to anchor on.
	snippetFallbackLen = 100

	exactWeight = 1.0
	fuzzyWeight = 0.5
)

// Transcript is one searchable transcript, identified by its video.
type Transcript struct {
	ID   string `json:"video_id"`
	Text string `json:"transcript"`
}

// Result is a single ranked search hit.
type Result struct {
	VideoID    string  `json:"video_id"`
	Snippet    string  `json:"snippet"`
	MatchCount int     `json:"match_count"`
	Relevance  float64 `json:"relevance_score"`
}

// Transcripts searches items for query and returns ranked results.
//
// For each transcript the engine counts non-overlapping exact occurrences of
// the lowercased query, then runs a fuzzy pass over individual words (see
// [Distance]); transcripts with no matches of either kind are omitted.
// Results are ordered by relevance score descending with a stable sort, so
// ties keep the input transcript order.
//
// Total function: an empty query or batch yields an empty, non-nil slice.
func Transcripts(query string, items []Transcript) []Result {
	results := []Result{}
	if query == "" || len(items) == 0 {
		return results
	}

	queryLC := strings.TrimSpace(strings.ToLower(query))
	if queryLC == "" {
		return results
	}

	for _, item := range items {
		if item.Text == "" {
			continue
		}

		textLC := strings.ToLower(item.Text)
		exact := strings.Count(textLC, queryLC)
		fuzzy := fuzzyMatches(queryLC, textLC)

		total := exact + len(fuzzy)
		if total == 0 {
			continue
		}

		results = append(results, Result{
			VideoID:    item.ID,
			Snippet:    snippet(item.Text, textLC, queryLC, exact > 0),
			MatchCount: total,
			Relevance:  relevance(exact, len(fuzzy), item.Text),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	return results
}

// fuzzyMatches returns every transcript word within [fuzzyThreshold] edits of
// the query, one entry per occurrence. Words are cleaned of non-alphanumeric
// runes before comparison; short words and short queries are excluded.
func fuzzyMatches(queryLC, textLC string) []string {
	if utf8.RuneCountInString(queryLC) < minFuzzyQueryLen {
		return nil
	}

	var matches []string
	for _, word := range strings.Fields(textLC) {
		clean := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return -1
		}, word)

		if utf8.RuneCountInString(clean) < minFuzzyWordLen {
			continue
		}

		if d := Distance(queryLC, clean); d > 0 && d <= fuzzyThreshold {
			matches = append(matches, clean)
		}
	}
	return matches
}

// snippet extracts the display excerpt for a result. Exact hits anchor a
// window of [snippetContext] bytes around the first occurrence; fuzzy-only
// results fall back to the transcript prefix. Window bounds are snapped to
// rune boundaries so the excerpt is always valid UTF-8.
func snippet(text, textLC, queryLC string, exactHit bool) string {
	if exactHit {
		if pos := strings.Index(textLC, queryLC); pos >= 0 {
			start := max(0, pos-snippetContext)
			end := min(len(text), pos+len(queryLC)+snippetContext)
			start = snapRuneStart(text, start)
			end = snapRuneEnd(text, end)

			s := text[start:end]
			if start > 0 {
				s = "..." + s
			}
			if end < len(text) {
				s += "..."
			}
			return s
		}
	}

	if len(text) > snippetFallbackLen {
		return text[:snapRuneStart(text, snippetFallbackLen)] + "..."
	}
	return text
}

// relevance computes the [0,1] density score: weighted match count divided by
// transcript length in hundreds of words, saturating at 1.0.
func relevance(exact, fuzzy int, text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}

	weighted := float64(exact)*exactWeight + float64(fuzzy)*fuzzyWeight
	denom := float64(words) / 100.0
	if denom < 1 {
		denom = 1
	}
	return min(1.0, weighted/denom)
}

// snapRuneStart moves i backwards to the nearest rune boundary in s.
func snapRuneStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// snapRuneEnd moves i forwards to the nearest rune boundary in s.
func snapRuneEnd(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
