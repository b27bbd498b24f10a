package dealscreen

import (
	"testing"

	"github.com/joelkehle/dealintel/internal/docpage"
)

func docWithLines(id string, lines ...docpage.Line) documentLines {
	return documentLines{doc: docpage.Document{DocumentID: id}, lines: lines}
}

func TestIsHeadingShaped(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Overview:", true},
		{"The Solution", true},
		{"MARKET OPPORTUNITY AND COMPETITIVE LANDSCAPE", true},
		{"We help regional lenders automate underwriting decisions.", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isHeadingShaped(tc.text); got != tc.want {
			t.Errorf("isHeadingShaped(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestMatchesHeading(t *testing.T) {
	if !matchesHeading("The Solution:", productHeadings) {
		t.Error("colon-terminated heading should match")
	}
	if !matchesHeading("Target Market", marketHeadings) {
		t.Error("exact heading should match")
	}
	if matchesHeading("Solutions architecture diagram", productHeadings) {
		t.Error("mid-word containment must not match")
	}
}

func TestAnchoredPass(t *testing.T) {
	dl := docWithLines("d1",
		docpage.Line{Page: 3, Text: "The Solution"},
		docpage.Line{Page: 3, Text: "We help regional lenders automate underwriting decisions."},
		docpage.Line{Page: 3, Text: "..."},
		docpage.Line{Page: 3, Text: "Decisions arrive in under ten seconds."},
	)
	cands := anchoredPass(dl, FieldProduct)
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2 (punct-only line skipped): %+v", len(cands), cands)
	}
	if cands[0].Source != SourceAnchored || !cands[0].Accepted {
		t.Fatalf("candidate 0 = %+v", cands[0])
	}
	if cands[0].Provenance.DocumentID != "d1" || cands[0].Provenance.PageRange != "3" {
		t.Fatalf("provenance = %+v", cands[0].Provenance)
	}
}

func TestTaglinePassMarketRequiresICPNoun(t *testing.T) {
	dl := docWithLines("d1",
		docpage.Line{Page: 1, Text: "Our platform is the best thing since sliced bread overall."},
		docpage.Line{Page: 1, Text: "We help community lenders reach underserved borrowers."},
	)
	cands := taglinePass(dl, FieldMarket)
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(cands), cands)
	}
	if cands[0].Text != "We help community lenders reach underserved borrowers." {
		t.Fatalf("got %q", cands[0].Text)
	}
}

func TestDefinitionPassJoinsLines(t *testing.T) {
	dl := docWithLines("d1",
		docpage.Line{Page: 2, Text: "Acme is a lending intelligence platform"},
		docpage.Line{Page: 2, Text: "---"},
		docpage.Line{Page: 2, Text: "that scores borrower readiness in seconds."},
		docpage.Line{Page: 2, Text: "This line must not be joined."},
	)
	cands := definitionPass(dl)
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(cands), cands)
	}
	want := "Acme is a lending intelligence platform that scores borrower readiness in seconds."
	if cands[0].Text != want {
		t.Fatalf("joined = %q, want %q", cands[0].Text, want)
	}
	if cands[0].Source != SourceDefinition {
		t.Fatalf("source = %s", cands[0].Source)
	}
}

func TestDefinitionPassStopsAtPageBoundary(t *testing.T) {
	dl := docWithLines("d1",
		docpage.Line{Page: 2, Text: "Acme is a lending intelligence platform"},
		docpage.Line{Page: 3, Text: "next page content here."},
	)
	cands := definitionPass(dl)
	if len(cands) != 1 {
		t.Fatalf("got %d candidates: %+v", len(cands), cands)
	}
	if cands[0].Text != "Acme is a lending intelligence platform" {
		t.Fatalf("join crossed a page boundary: %q", cands[0].Text)
	}
}

func TestTruncateAtWord(t *testing.T) {
	if got := truncateAtWord("short", 100); got != "short" {
		t.Errorf("got %q", got)
	}
	got := truncateAtWord("one two three four", 10)
	if got != "one two" {
		t.Errorf("got %q, want %q", got, "one two")
	}
}
