package search

// Distance returns the Levenshtein edit distance between a and b: the minimum
// number of single-rune insertions, deletions, and substitutions required to
// turn one into the other. It is symmetric and total; the distance to an
// empty string is the other string's rune length.
//
// The computation keeps only two rolling rows, so working memory is linear in
// the shorter string while time remains O(len(a)*len(b)).
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)

	// Size the rows by the shorter string.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
