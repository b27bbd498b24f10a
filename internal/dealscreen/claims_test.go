package dealscreen

import (
	"testing"

	"github.com/joelkehle/dealintel/internal/docpage"
)

func TestClaimIDStableAcrossWhitespaceAndCase(t *testing.T) {
	a := claimID("product", "We score borrower readiness")
	b := claimID("product", "  we   SCORE borrower readiness ")
	if a != b {
		t.Fatalf("normalized texts must hash identically: %s vs %s", a, b)
	}
	if a == claimID("market", "We score borrower readiness") {
		t.Fatal("category must be part of the hash")
	}
	if len(a) != 16 {
		t.Fatalf("claim id length = %d, want 16 hex chars", len(a))
	}
}

func TestBuildClaimsFromOverview(t *testing.T) {
	product := "A lending intelligence platform that scores borrower readiness in seconds."
	docs := []documentLines{docWithLines("d1",
		docpage.Line{Page: 2, Text: product},
	)}
	ov := CanonicalOverview{
		ProductSolution:  &product,
		Raise:            "$4M",
		BusinessModel:    "SaaS subscription",
		TractionSignals:  []string{"Signed pilots with three regional banks this spring"},
		KeyRisksDetected: []string{"Customer concentration"},
	}
	sig := documentSignals{
		raiseProv:    &ProvenanceRef{DocumentID: "d1", PageRange: "2"},
		tractionProv: []ProvenanceRef{{DocumentID: "d1", PageRange: "2"}},
	}
	prodProv := &ProvenanceRef{DocumentID: "d1", PageRange: "2"}

	claims := buildClaims(docs, ov, sig, prodProv, nil, 0)
	if len(claims) != 5 {
		t.Fatalf("got %d claims, want 5: %+v", len(claims), claims)
	}

	categories := map[string]bool{}
	for _, c := range claims {
		categories[c.Category] = true
		if c.ClaimID == "" || len(c.Evidence) != 1 {
			t.Fatalf("claim missing id or evidence: %+v", c)
		}
	}
	for _, want := range []string{"product", "raise", "business_model", "traction", "risk"} {
		if !categories[want] {
			t.Fatalf("category %q missing: %v", want, categories)
		}
	}

	if claims[0].Evidence[0].Snippet != product {
		t.Fatalf("product evidence should quote the clean page line, got %q", claims[0].Evidence[0].Snippet)
	}
	if claims[0].Evidence[0].Page == nil || *claims[0].Evidence[0].Page != 2 {
		t.Fatalf("evidence page = %+v", claims[0].Evidence[0].Page)
	}
}

func TestTractionClaimsCiteTheirOwnPages(t *testing.T) {
	docs := []documentLines{docWithLines("d1",
		docpage.Line{Page: 1, Text: "Zebra bookings grew 40% quarter over quarter."},
		docpage.Line{Page: 2, Text: "Alpha signed a partnership with two national sponsors."},
	)}
	sig := scanSignals(docs)
	ov := CanonicalOverview{
		BusinessModel:   BusinessModelUnknown,
		TractionSignals: append([]string{}, sig.traction...),
	}

	claims := buildClaims(docs, ov, sig, nil, nil, 0)
	if len(claims) != 2 {
		t.Fatalf("got %d claims: %+v", len(claims), claims)
	}

	alpha := claims[0]
	if alpha.Text != "Alpha signed a partnership with two national sponsors." {
		t.Fatalf("claims[0] = %+v", alpha)
	}
	if alpha.Evidence[0].Page == nil || *alpha.Evidence[0].Page != 2 {
		t.Fatalf("alpha evidence page = %+v, want 2", alpha.Evidence[0].Page)
	}
	if alpha.Evidence[0].Snippet != alpha.Text {
		t.Fatalf("alpha evidence snippet = %q", alpha.Evidence[0].Snippet)
	}

	zebra := claims[1]
	if zebra.Evidence[0].Page == nil || *zebra.Evidence[0].Page != 1 {
		t.Fatalf("zebra evidence page = %+v, want 1", zebra.Evidence[0].Page)
	}
}

func TestBuildClaimsRespectsCap(t *testing.T) {
	ov := CanonicalOverview{
		TractionSignals: []string{"s1 signal long enough", "s2 signal long enough", "s3 signal long enough"},
	}
	claims := buildClaims(nil, ov, documentSignals{}, nil, nil, 2)
	if len(claims) != 2 {
		t.Fatalf("got %d claims, want cap of 2", len(claims))
	}
}

func TestEvidenceFallsBackForNoisyPages(t *testing.T) {
	docs := []documentLines{{
		doc: docpage.Document{DocumentID: "d1", Title: "Acme Deck"},
		lines: []docpage.Line{
			{Page: 1, Text: "A C M E C O R P"},
			{Page: 1, Text: "#### ==== ||||"},
		},
	}}
	ev := evidenceFor(docs, &ProvenanceRef{DocumentID: "d1", PageRange: "1"})
	if ev.Snippet != "See document: Acme Deck" {
		t.Fatalf("noisy page must degrade to a document pointer, got %q", ev.Snippet)
	}

	ev = evidenceFor(docs, nil)
	if ev.Snippet != "See document: Acme Deck" {
		t.Fatalf("missing provenance must degrade to a document pointer, got %q", ev.Snippet)
	}
	if ev.DocumentID != "d1" {
		t.Fatalf("document id = %q", ev.DocumentID)
	}

	ev = evidenceFor(nil, nil)
	if ev.Snippet != "See document: (no source document)" {
		t.Fatalf("got %q", ev.Snippet)
	}
}

func TestBuildClaimsEmptyOverview(t *testing.T) {
	claims := buildClaims(nil, CanonicalOverview{BusinessModel: BusinessModelUnknown}, documentSignals{}, nil, nil, 0)
	if claims == nil {
		t.Fatal("claims must be an empty slice, not nil")
	}
	if len(claims) != 0 {
		t.Fatalf("got %d claims, want 0", len(claims))
	}
}
