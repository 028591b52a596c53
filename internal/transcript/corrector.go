package transcript

import "strings"

// Correction records a single window substitution made by the corrector.
type Correction struct {
	// Term is the transcript phrase as produced by the ASR provider.
	Term string `json:"term"`

	// Replacement is the participant name it was rewritten to.
	Replacement string `json:"replacement"`

	// Score is the Jaro-Winkler similarity that justified the rewrite.
	Score float64 `json:"score"`
}

// Corrector rewrites misheard participant names in ASR text. It is read-only
// after construction and safe for concurrent use.
type Corrector struct {
	matcher *NameMatcher
}

// NewCorrector returns a Corrector that resolves candidate windows with the
// given matcher. A nil matcher gets defaults.
func NewCorrector(matcher *NameMatcher) *Corrector {
	if matcher == nil {
		matcher = NewNameMatcher()
	}
	return &Corrector{matcher: matcher}
}

// Correct scans text for phrases that phonetically match one of names and
// replaces them, returning the rewritten text and the substitutions applied.
//
// The scan is greedy and longest-first: at each token position, n-gram
// windows from the widest name down to a single word are tried, and the
// first match consumes its window. Windows that already equal the matched
// name (ignoring case) pass through unrecorded. With no names, or no text,
// the input is returned unchanged with an empty, non-nil correction list.
func (c *Corrector) Correct(text string, names []string) (string, []Correction) {
	corrections := []Correction{}
	tokens := strings.Fields(text)
	if len(tokens) == 0 || len(names) == 0 {
		return text, corrections
	}

	maxWindow := 1
	for _, n := range names {
		if w := len(strings.Fields(n)); w > maxWindow {
			maxWindow = w
		}
	}

	out := make([]string, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		width := min(maxWindow, len(tokens)-i)

		matched := false
		for n := width; n >= 1; n-- {
			window := strings.Join(tokens[i:i+n], " ")
			name, score, ok := c.matcher.Match(window, names)
			if !ok {
				continue
			}

			out = append(out, strings.Fields(name)...)
			if !strings.EqualFold(window, name) {
				corrections = append(corrections, Correction{
					Term:        window,
					Replacement: name,
					Score:       score,
				})
			}
			i += n
			matched = true
			break
		}

		if !matched {
			out = append(out, tokens[i])
			i++
		}
	}

	return strings.Join(out, " "), corrections
}
