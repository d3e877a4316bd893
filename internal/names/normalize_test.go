package names

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   " \t\n ",
			want: "",
		},
		{
			name: "plain name unchanged",
			in:   "Zone A",
			want: "Zone A",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  Zone A  ",
			want: "Zone A",
		},
		{
			name: "internal runs collapsed",
			in:   "Zone \t\n  A",
			want: "Zone A",
		},
		{
			name: "trailing RLM stripped",
			in:   "Zone A‏",
			want: "Zone A",
		},
		{
			name: "embedded LRE and PDF stripped",
			in:   "‪Zone‬ A",
			want: "Zone A",
		},
		{
			name: "all seven marks stripped",
			in:   "‎‏‪‫Zone A‬‭‮",
			want: "Zone A",
		},
		{
			name: "compatibility form folded",
			in:   "Zone A", // no-break space
			want: "Zone A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Zone A",
		"  B-102 ‏",
		"‪ عينات ‬",
		"MIXED case   spacing",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestFold(t *testing.T) {
	if got := Fold("  Zone‎ A "); got != "zone a" {
		t.Errorf("Fold = %q, want %q", got, "zone a")
	}
}
