// Package mention implements verbal mention detection for video transcripts.
//
// Given the set of participants known to the host platform (each with a name
// and/or username) and a transcript string, the detector finds which
// participants are spoken about. Matching is dictionary-based: every
// participant contributes a handful of normalized alias variants (first name,
// last name, full name, username forms), and the transcript is scanned with a
// greedy longest-phrase-first pass so that multi-word names take priority
// over overlapping single words.
//
// All functions in this package are pure and safe for concurrent use; a
// [Detector] is read-only after construction.
package mention

import "strings"

// Participant is a single platform user supplied by the host backend for a
// detection request. Optional fields are empty strings when absent.
//
// ID must be a positive non-zero identifier. Participants with ID 0 are
// skipped entirely during alias generation — the zero value doubles as
// "absent" on the wire.
type Participant struct {
	ID        int64  `json:"user_id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// DisplayName returns the human-readable label for the participant:
// "First Last" (trimmed) when either name is set, otherwise "@username".
func (p Participant) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		return name
	}
	return "@" + p.Username
}

// Mention is a detected occurrence of a participant's alias in a transcript.
type Mention struct {
	ParticipantID int64  `json:"user_id"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Username      string `json:"username,omitempty"`

	// MatchedTerm is the normalized phrase that triggered the match.
	MatchedTerm string `json:"matched_term"`

	// DisplayName is "First Last" or "@username" as a fallback.
	DisplayName string `json:"display_name"`
}
