package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"control chars become boundaries", "foo\x00bar\tbaz", "foo bar baz"},
		{"whitespace collapsed", "a  \n\t b", "a b"},
		{"repeated punct collapsed", "wow!!! ---- done....", "wow! - done."},
		{"leading trailing trimmed", "  hi  ", "hi"},
		{"mixed punct not collapsed", "a.b-c", "a.b-c"},
		{"bullet run", "••• item", "• item"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("%s: Normalize(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestIsHighQuality(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"too short", "tiny", false},
		{"clean sentence", "We help teams ship faster with less toil.", true},
		{"symbol heavy", "@@@@@ ##### $$$$$ %%%%%", false},
		{"symbol run inside", "pricing ======== table of numbers", false},
		{"two replacement chars", "good text here � and � more", false},
		{"one replacement char ok", "good text here � and plenty of letters", true},
		{"digits count as letters", "Revenue grew 40% to $2.3M in 2024 overall", true},
	}
	for _, tc := range cases {
		if got := IsHighQuality(tc.in); got != tc.want {
			t.Errorf("%s: IsHighQuality(%q) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestLooksLikeLogoArtifact(t *testing.T) {
	if !LooksLikeLogoArtifact("D R O P A B L E S") {
		t.Error("spaced wordmark should be flagged")
	}
	if LooksLikeLogoArtifact("Plan B is a bet") {
		t.Error("short single-letter runs should pass")
	}
	if LooksLikeLogoArtifact("series A round closed in Q2") {
		t.Error("ordinary text should pass")
	}
}

func TestUppercaseRatio(t *testing.T) {
	if got := UppercaseRatio("ALL CAPS"); got != 1.0 {
		t.Errorf("all caps ratio = %v, want 1.0", got)
	}
	if got := UppercaseRatio("1234 --"); got != 0 {
		t.Errorf("no letters ratio = %v, want 0", got)
	}
	if got := UppercaseRatio("Half"); got != 0.25 {
		t.Errorf("Half ratio = %v, want 0.25", got)
	}
}
