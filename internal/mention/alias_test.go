package mention_test

import (
	"maps"
	"testing"

	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/mention"
)

func TestBuildAliases_NameVariants(t *testing.T) {
	t.Parallel()

	dict := mention.BuildAliases([]mention.Participant{
		{ID: 7, FirstName: "John", LastName: "Paul"},
	})

	want := map[string]int64{
		"john":      7,
		"paul":      7,
		"john paul": 7,
	}
	if !maps.Equal(dict, want) {
		t.Errorf("BuildAliases() = %v, want %v", dict, want)
	}
}

func TestBuildAliases_UsernameVariants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		username string
		want     map[string]int64
	}{
		{
			name:     "underscore separated",
			username: "nedu_codes",
			want:     map[string]int64{"nedu codes": 1, "neducodes": 1},
		},
		{
			name:     "dot suffix registers base",
			username: "millennium.py",
			want:     map[string]int64{"millennium py": 1, "millenniumpy": 1, "millennium": 1},
		},
		{
			name:     "leading handle stripped",
			username: "@ada",
			want:     map[string]int64{"ada": 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dict := mention.BuildAliases([]mention.Participant{{ID: 1, Username: tc.username}})
			if !maps.Equal(dict, tc.want) {
				t.Errorf("BuildAliases(username=%q) = %v, want %v", tc.username, dict, tc.want)
			}
		})
	}
}

func TestBuildAliases_LastWriteWins(t *testing.T) {
	t.Parallel()

	dict := mention.BuildAliases([]mention.Participant{
		{ID: 1, FirstName: "Sam"},
		{ID: 2, FirstName: "Sam"},
	})
	if got := dict["sam"]; got != 2 {
		t.Errorf(`dict["sam"] = %d, want 2 (later participant overwrites)`, got)
	}
}

func TestBuildAliases_SkipsZeroID(t *testing.T) {
	t.Parallel()

	dict := mention.BuildAliases([]mention.Participant{
		{ID: 0, FirstName: "Ghost", Username: "ghost"},
	})
	if len(dict) != 0 {
		t.Errorf("BuildAliases() with zero ID = %v, want empty", dict)
	}
}

func TestBuildAliases_Deterministic(t *testing.T) {
	t.Parallel()

	in := []mention.Participant{
		{ID: 1, FirstName: "John", LastName: "Paul", Username: "jp_codes"},
		{ID: 2, FirstName: "Ada", Username: "ada.dev"},
		{ID: 3, LastName: "Okafor"},
	}
	first := mention.BuildAliases(in)
	second := mention.BuildAliases(in)
	if !maps.Equal(first, second) {
		t.Errorf("BuildAliases not deterministic: %v vs %v", first, second)
	}
}

func TestBuildAliases_Empty(t *testing.T) {
	t.Parallel()

	dict := mention.BuildAliases(nil)
	if dict == nil || len(dict) != 0 {
		t.Errorf("BuildAliases(nil) = %v, want empty non-nil map", dict)
	}
}
