package names

import "testing"

func TestMatch(t *testing.T) {
	candidates := []string{
		"Zone A‏", // trailing RLM as stored in the document
		"Zone B",
		"zone c",
		"Zone A", // later exact duplicate; first in scan order must win
	}

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{
			name:   "exact after normalization",
			target: "Zone A",
			want:   0,
		},
		{
			name:   "bidi marks in target ignored",
			target: "‪Zone B‬",
			want:   1,
		},
		{
			name:   "case difference falls to second tier",
			target: "Zone C",
			want:   2,
		},
		{
			name:   "surrounding whitespace ignored",
			target: "  Zone B  ",
			want:   1,
		},
		{
			name:   "no match",
			target: "Zone Z",
			want:   -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.target, candidates)
			if got != tt.want {
				t.Errorf("Match(%q) = %d, want %d", tt.target, got, tt.want)
			}
		})
	}
}

func TestMatchExactTierBeatsCaseTier(t *testing.T) {
	// "zone a" matches index 0 case-insensitively and index 1 exactly; the
	// exact tier must run to completion before the folded tier is consulted.
	candidates := []string{"Zone A", "zone a"}
	if got := Match("zone a", candidates); got != 1 {
		t.Errorf("Match = %d, want 1 (exact tier wins over earlier folded match)", got)
	}
}

func TestMatchVariantsResolveToSameRecord(t *testing.T) {
	candidates := []string{"B-102"}
	variants := []string{"B-102", " B-102 ", "B-102‏", "‎B-102"}
	for _, v := range variants {
		if got := Match(v, candidates); got != 0 {
			t.Errorf("Match(%q) = %d, want 0", v, got)
		}
	}
}
