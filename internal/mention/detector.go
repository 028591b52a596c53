package mention

import "strings"

// maxPhraseWords is the longest alias phrase the scanner probes for. Alias
// variants produced by [BuildAliases] are at most "first last" plus spaced
// usernames, which in practice stay within three words.
const maxPhraseWords = 3

// Detector finds participant mentions in transcript text. Construct one per
// participant set with [NewDetector] and reuse it across transcripts; it is
// read-only after construction and safe for concurrent use.
type Detector struct {
	aliases map[string]int64
	byID    map[int64]Participant
}

// NewDetector builds a Detector for the given participants. The alias
// dictionary is built once here via [BuildAliases].
func NewDetector(participants []Participant) *Detector {
	byID := make(map[int64]Participant, len(participants))
	for _, p := range participants {
		if p.ID == 0 {
			continue
		}
		byID[p.ID] = p
	}
	return &Detector{
		aliases: BuildAliases(participants),
		byID:    byID,
	}
}

// Detect scans transcript text for participant aliases and returns the IDs of
// mentioned participants together with one enriched [Mention] per participant.
//
// The transcript is normalized and tokenized, then scanned with phrase
// lengths 3, 2, 1 in that order so multi-word names win over overlapping
// single words. Token positions consumed by a match are excluded from later
// passes, and each participant is reported at most once — the first (longest,
// leftmost) match wins. Both slices are ordered by discovery.
//
// Detect is total: empty text or an empty dictionary yields empty, non-nil
// results.
func (d *Detector) Detect(text string) ([]int64, []Mention) {
	ids := []int64{}
	mentions := []Mention{}
	if text == "" || len(d.aliases) == 0 {
		return ids, mentions
	}

	tokens := strings.Fields(Normalize(text))
	n := len(tokens)
	consumed := make([]bool, n)
	seen := make(map[int64]struct{})

	for length := maxPhraseWords; length >= 1; length-- {
	scan:
		for i := 0; i+length <= n; i++ {
			for j := i; j < i+length; j++ {
				if consumed[j] {
					continue scan
				}
			}

			phrase := strings.Join(tokens[i:i+length], " ")
			id, ok := d.aliases[phrase]
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}

			seen[id] = struct{}{}
			for j := i; j < i+length; j++ {
				consumed[j] = true
			}

			ids = append(ids, id)
			p := d.byID[id]
			mentions = append(mentions, Mention{
				ParticipantID: id,
				FirstName:     p.FirstName,
				LastName:      p.LastName,
				Username:      p.Username,
				MatchedTerm:   phrase,
				DisplayName:   p.DisplayName(),
			})
		}
	}

	return ids, mentions
}
