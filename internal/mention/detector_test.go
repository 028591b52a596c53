package mention_test

import (
	"slices"
	"testing"

	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/mention"
)

func TestDetector_LongestMatchPriority(t *testing.T) {
	t.Parallel()

	// "john paul" (participant A) must suppress the overlapping unigram
	// "paul" (participant B).
	d := mention.NewDetector([]mention.Participant{
		{ID: 1, FirstName: "John", LastName: "Paul"},
		{ID: 2, FirstName: "Paul"},
	})

	ids, mentions := d.Detect("shout out to john paul smith")
	if !slices.Equal(ids, []int64{1}) {
		t.Fatalf("Detect() ids = %v, want [1]", ids)
	}
	if len(mentions) != 1 || mentions[0].MatchedTerm != "john paul" {
		t.Errorf("Detect() mentions = %+v, want one match on %q", mentions, "john paul")
	}
}

func TestDetector_AtMostOncePerParticipant(t *testing.T) {
	t.Parallel()

	d := mention.NewDetector([]mention.Participant{{ID: 5, FirstName: "Ada"}})

	ids, mentions := d.Detect("ada said hi and then ada waved")
	if !slices.Equal(ids, []int64{5}) {
		t.Errorf("Detect() ids = %v, want exactly one entry for 5", ids)
	}
	if len(mentions) != 1 {
		t.Errorf("Detect() returned %d mentions, want 1", len(mentions))
	}
}

func TestDetector_UsernameMatch(t *testing.T) {
	t.Parallel()

	d := mention.NewDetector([]mention.Participant{{ID: 9, Username: "nedu_codes"}})

	ids, mentions := d.Detect("big thanks to nedu codes for the edit")
	if !slices.Equal(ids, []int64{9}) {
		t.Fatalf("Detect() ids = %v, want [9]", ids)
	}
	if mentions[0].DisplayName != "@nedu_codes" {
		t.Errorf("DisplayName = %q, want %q", mentions[0].DisplayName, "@nedu_codes")
	}
	if mentions[0].MatchedTerm != "nedu codes" {
		t.Errorf("MatchedTerm = %q, want %q", mentions[0].MatchedTerm, "nedu codes")
	}
}

func TestDetector_DisplayNamePrefersRealName(t *testing.T) {
	t.Parallel()

	d := mention.NewDetector([]mention.Participant{
		{ID: 3, FirstName: "Chidi", Username: "chidi_o"},
	})

	_, mentions := d.Detect("chidi dropped a new video")
	if len(mentions) != 1 {
		t.Fatalf("Detect() returned %d mentions, want 1", len(mentions))
	}
	if mentions[0].DisplayName != "Chidi" {
		t.Errorf("DisplayName = %q, want %q", mentions[0].DisplayName, "Chidi")
	}
}

func TestDetector_MultipleParticipants(t *testing.T) {
	t.Parallel()

	d := mention.NewDetector([]mention.Participant{
		{ID: 1, FirstName: "John", LastName: "Paul"},
		{ID: 2, FirstName: "Ada"},
		{ID: 3, Username: "millennium.py"},
	})

	ids, mentions := d.Detect("john paul met ada and millennium at the studio")
	// Discovery order: longest phrases first, then position.
	if !slices.Equal(ids, []int64{1, 2, 3}) {
		t.Errorf("Detect() ids = %v, want [1 2 3]", ids)
	}
	if len(mentions) != 3 {
		t.Errorf("Detect() returned %d mentions, want 3", len(mentions))
	}
}

func TestDetector_EmptyInputs(t *testing.T) {
	t.Parallel()

	d := mention.NewDetector([]mention.Participant{{ID: 1, FirstName: "Ada"}})
	if ids, mentions := d.Detect(""); len(ids) != 0 || len(mentions) != 0 {
		t.Errorf("Detect(empty text) = %v, %v; want empty", ids, mentions)
	}

	empty := mention.NewDetector(nil)
	if ids, mentions := empty.Detect("ada is here"); len(ids) != 0 || len(mentions) != 0 {
		t.Errorf("Detect with empty dictionary = %v, %v; want empty", ids, mentions)
	}
}

func TestDetector_PunctuationAroundName(t *testing.T) {
	t.Parallel()

	d := mention.NewDetector([]mention.Participant{{ID: 4, FirstName: "Ada"}})

	ids, _ := d.Detect("Great work, Ada!")
	if !slices.Equal(ids, []int64{4}) {
		t.Errorf("Detect() ids = %v, want [4]", ids)
	}
}
