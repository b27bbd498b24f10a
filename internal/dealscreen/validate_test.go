package dealscreen

import "testing"

func hasReason(reasons []RejectionReason, want RejectionReason) bool {
	for _, r := range reasons {
		if r == want {
			return true
		}
	}
	return false
}

func TestValidateCandidate(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		field  CandidateField
		want   RejectionReason
		reject bool
	}{
		{"clean product sentence", "We help regional lenders automate underwriting decisions.", FieldProduct, "", false},
		{"too short", "Our app.", FieldProduct, RejectTooShort, true},
		{"logo artifact", "D R O P A B L E S builds consumer tools", FieldProduct, RejectLogoArtifact, true},
		{"metaphor", "We are the Uber of lawn care for busy homeowners.", FieldProduct, RejectMetaphor, true},
		{"roster block", "Head coach John Smith, goaltender Mike Jones leads the roster this year", FieldProduct, RejectRosterBlock, true},
		{"schedule block", "Regular season opener follows the tournament format this schedule", FieldProduct, RejectScheduleBlock, true},
		{"financial statement block", "Total assets and total liabilities from the balance sheet", FieldProduct, RejectFinancialStatement, true},
		{"comma storm", "fast, cheap, simple, scalable, proven delivery model", FieldProduct, RejectTooManyCommas, true},
		{"bullet glyphs", "• automated scoring • instant decisions for lenders", FieldProduct, RejectBulletGlyphs, true},
		{"all caps heading", "THE FUTURE OF DIGITAL LENDING STARTS HERE", FieldProduct, RejectAllCapsNoVerb, true},
		{"market without icp noun", "A fast growing category with strong tailwinds overall.", FieldMarket, RejectNoICPNoun, true},
		{"market with icp noun", "Mid-market lenders and community banks across the US.", FieldMarket, "", false},
	}
	for _, tc := range cases {
		reasons := validateCandidate(tc.text, tc.field)
		if tc.reject {
			if !hasReason(reasons, tc.want) {
				t.Errorf("%s: want reason %s, got %v", tc.name, tc.want, reasons)
			}
			continue
		}
		if len(reasons) != 0 {
			t.Errorf("%s: want accepted, got %v", tc.name, reasons)
		}
	}
}

func TestPassesFallbackValidation(t *testing.T) {
	// Soft structural complaints are tolerated; contamination is not.
	if !passesFallbackValidation("fast, cheap, simple, scalable, proven delivery model") {
		t.Error("comma-heavy text should survive the fallback pass")
	}
	if passesFallbackValidation("THE FUTURE OF DIGITAL LENDING STARTS HERE") {
		t.Error("all-caps block must not survive the fallback pass")
	}
	if passesFallbackValidation("D R O P A B L E S builds tools") {
		t.Error("logo artifact must not survive the fallback pass")
	}
	if passesFallbackValidation("col1 | col2 | col3 | col4") {
		t.Error("separator-dense row must not survive the fallback pass")
	}
	if passesFallbackValidation("") {
		t.Error("empty text must not survive the fallback pass")
	}
}

func TestSeparatorDensity(t *testing.T) {
	if got := separatorDensity(""); got != 0 {
		t.Errorf("empty density = %v", got)
	}
	if got := separatorDensity("abcd"); got != 0 {
		t.Errorf("prose density = %v", got)
	}
	if got := separatorDensity("a|b|c|d|"); got != 0.5 {
		t.Errorf("pipe density = %v, want 0.5", got)
	}
}
