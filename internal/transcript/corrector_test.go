package transcript_test

import (
	"testing"

	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/transcript"
)

func TestNameMatcher_PhoneticMatch(t *testing.T) {
	t.Parallel()

	m := transcript.NewNameMatcher()
	names := []string{"John", "Adaeze", "Chidi"}

	// "jhon" shares the Double Metaphone code of "John" and scores high on
	// Jaro-Winkler.
	name, score, ok := m.Match("jhon", names)
	if !ok {
		t.Fatalf("Match(%q): ok=false, want true", "jhon")
	}
	if name != "John" {
		t.Errorf("Match(%q): name=%q, want %q", "jhon", name, "John")
	}
	if score < 0.7 {
		t.Errorf("Match(%q): score=%f, want >= 0.7", "jhon", score)
	}
}

func TestNameMatcher_ExactMatch(t *testing.T) {
	t.Parallel()

	m := transcript.NewNameMatcher()

	name, score, ok := m.Match("chidi", []string{"Chidi", "John"})
	if !ok || name != "Chidi" {
		t.Fatalf("Match(%q) = %q, %v; want Chidi, true", "chidi", name, ok)
	}
	if score < 0.9 {
		t.Errorf("Match(%q): score=%f, want >= 0.9 for exact match", "chidi", score)
	}
}

func TestNameMatcher_NoMatch(t *testing.T) {
	t.Parallel()

	m := transcript.NewNameMatcher()

	name, score, ok := m.Match("weather", []string{"John", "Chidi"})
	if ok {
		t.Fatalf("Match(%q): ok=true, want false", "weather")
	}
	if name != "weather" || score != 0 {
		t.Errorf("Match(%q) = %q, %f; want unchanged phrase and zero score", "weather", name, score)
	}
}

func TestNameMatcher_EmptyInputs(t *testing.T) {
	t.Parallel()

	m := transcript.NewNameMatcher()
	if _, _, ok := m.Match("", []string{"John"}); ok {
		t.Error("Match(empty phrase): ok=true, want false")
	}
	if _, _, ok := m.Match("john", nil); ok {
		t.Error("Match with no names: ok=true, want false")
	}
}

func TestCorrector_RewritesMisheardName(t *testing.T) {
	t.Parallel()

	c := transcript.NewCorrector(nil)

	corrected, corrections := c.Correct("big shout out to jhon today", []string{"John"})
	if corrected != "big shout out to John today" {
		t.Errorf("Correct() = %q, want %q", corrected, "big shout out to John today")
	}
	if len(corrections) != 1 {
		t.Fatalf("Correct() applied %d corrections, want 1", len(corrections))
	}
	if corrections[0].Term != "jhon" || corrections[0].Replacement != "John" {
		t.Errorf("correction = %+v, want jhon → John", corrections[0])
	}
}

func TestCorrector_ExactNamePassesThrough(t *testing.T) {
	t.Parallel()

	c := transcript.NewCorrector(nil)

	corrected, corrections := c.Correct("thanks john for the clip", []string{"John"})
	if len(corrections) != 0 {
		t.Errorf("Correct() recorded %d corrections for an exact name, want 0", len(corrections))
	}
	if corrected != "thanks John for the clip" {
		t.Errorf("Correct() = %q, want casing from the name list", corrected)
	}
}

func TestCorrector_NoNames(t *testing.T) {
	t.Parallel()

	c := transcript.NewCorrector(nil)

	in := "nothing to do here"
	corrected, corrections := c.Correct(in, nil)
	if corrected != in {
		t.Errorf("Correct() = %q, want input unchanged", corrected)
	}
	if corrections == nil || len(corrections) != 0 {
		t.Errorf("Correct() corrections = %v, want empty non-nil slice", corrections)
	}
}
