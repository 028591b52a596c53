package mention

import "strings"

// usernameSeparators are the characters treated as word boundaries inside
// usernames ("nedu_codes", "millennium.py").
const usernameSeparators = "_."

// BuildAliases builds the normalized alias dictionary for a participant list.
// Keys are [Normalize] outputs, values are participant IDs.
//
// For each participant, in input order, the following variants are inserted:
//
//  1. the first name,
//  2. the last name,
//  3. "first last" when both are set,
//  4. username forms (after stripping one leading '@'):
//     the spaced form ("nedu_codes" → "nedu codes"), the joined form
//     ("nedu_codes" → "neducodes"), and — when the username contains a dot —
//     the part before the first dot ("millennium.py" → "millennium").
//
// Later insertions overwrite earlier ones, so when two participants share a
// normalized alias the last one in input order wins. Callers that need
// deterministic ownership of shared aliases must order (or deduplicate) the
// input accordingly.
//
// Participants with ID 0 are skipped. An empty input yields an empty,
// non-nil map.
func BuildAliases(participants []Participant) map[string]int64 {
	dict := make(map[string]int64, len(participants)*4)

	for _, p := range participants {
		if p.ID == 0 {
			continue
		}

		if p.FirstName != "" {
			insert(dict, Normalize(p.FirstName), p.ID)
		}
		if p.LastName != "" {
			insert(dict, Normalize(p.LastName), p.ID)
		}
		if p.FirstName != "" && p.LastName != "" {
			insert(dict, Normalize(p.FirstName+" "+p.LastName), p.ID)
		}

		if p.Username != "" {
			username := strings.TrimPrefix(p.Username, "@")

			spaced := strings.Map(func(r rune) rune {
				if strings.ContainsRune(usernameSeparators, r) {
					return ' '
				}
				return r
			}, username)
			insert(dict, Normalize(spaced), p.ID)

			joined := strings.Map(func(r rune) rune {
				if strings.ContainsRune(usernameSeparators, r) {
					return -1
				}
				return r
			}, username)
			insert(dict, Normalize(joined), p.ID)

			if base, _, found := strings.Cut(username, "."); found {
				insert(dict, Normalize(base), p.ID)
			}
		}
	}

	return dict
}

// insert adds a normalized alias unless normalization collapsed it to the
// empty string, which can never match a transcript phrase.
func insert(dict map[string]int64, alias string, id int64) {
	if alias == "" {
		return
	}
	dict[alias] = id
}
