package dealscreen

import (
	"fmt"
	"strings"
)

const maxHighlights = 6

// composeSummary renders the canonical overview and decision rubric into
// short human-readable paragraphs and bullets. It reads only canonical
// data, never raw document text, so OCR noise cannot leak in. Missing
// fields are stated explicitly: fail-closed transparency means "not
// provided", never silence.
func composeSummary(ov CanonicalOverview, dec DecisionSummary, cov Coverage) ExecutiveSummary {
	name := ov.DealName
	if name == "" {
		name = "This deal"
	}

	var first strings.Builder
	if ov.ProductSolution != nil {
		fmt.Fprintf(&first, "%s: %s", name, strings.TrimRight(*ov.ProductSolution, "."))
		first.WriteString(".")
	} else {
		fmt.Fprintf(&first, "%s: product/solution not provided in the submitted documents.", name)
	}
	if ov.MarketICP != nil {
		fmt.Fprintf(&first, " Target market: %s", strings.TrimRight(*ov.MarketICP, "."))
		first.WriteString(".")
	} else {
		first.WriteString(" Target market: not provided.")
	}
	if ov.DealType != DealTypeUnknown {
		fmt.Fprintf(&first, " Deal type: %s.", strings.ReplaceAll(string(ov.DealType), "_", " "))
	}

	var second strings.Builder
	if ov.Raise != "" {
		fmt.Fprintf(&second, "The company is raising %s.", ov.Raise)
	} else {
		second.WriteString("Raise amount: not provided.")
	}
	if ov.BusinessModel != BusinessModelUnknown && ov.BusinessModel != "" {
		fmt.Fprintf(&second, " Business model: %s.", ov.BusinessModel)
	} else {
		second.WriteString(" Business model: not provided.")
	}
	fmt.Fprintf(&second, " Screen outcome: %s (score %d/100, confidence %s, %d blocker(s)).",
		dec.Recommendation, dec.Score, dec.Confidence, len(dec.Blockers))

	highlights := buildHighlights(ov, dec, cov)

	return ExecutiveSummary{
		Paragraphs:     []string{first.String(), second.String()},
		Highlights:     highlights,
		Recommendation: dec.Recommendation,
		Score:          dec.Score,
		Confidence:     dec.Confidence,
		BlockerCount:   len(dec.Blockers),
	}
}

func buildHighlights(ov CanonicalOverview, dec DecisionSummary, cov Coverage) []string {
	var out []string
	add := func(s string) {
		if len(out) < maxHighlights {
			out = append(out, s)
		}
	}

	add(fmt.Sprintf("Recommendation: %s (score %d, confidence %s)", dec.Recommendation, dec.Score, dec.Confidence))
	if ov.Raise != "" {
		add("Raise: " + ov.Raise)
	}
	if len(ov.TractionSignals) > 0 {
		add(fmt.Sprintf("Traction: %d signal(s) detected", len(ov.TractionSignals)))
	}
	if len(ov.KeyRisksDetected) > 0 {
		add("Risks: " + strings.Join(ov.KeyRisksDetected, "; "))
	}

	// Missing sections render as explicit "not provided" bullets.
	for _, sec := range cov.Sections {
		if sec.Status != StatusMissing {
			continue
		}
		add(sec.Label + ": not provided")
	}
	return out
}
