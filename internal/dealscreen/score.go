package dealscreen

import (
	"sort"
	"strconv"
	"strings"

	"github.com/joelkehle/dealintel/internal/docpage"
)

// Source-type base bonuses. Definition candidates carry the most structure
// (a joined, sentence-terminated description) and rank accordingly.
var sourceBonus = map[SourceType]int{
	SourceAnchored:   12,
	SourceTagline:    10,
	SourceDefinition: 30,
}

var (
	productNouns = []string{"platform", "software", "solution", "product", "app", "technology", "service", "system", "marketplace", "league", "company"}
	marketNouns  = []string{"customer", "audience", "buyer", "user", "segment", "demographic", "fan", "subscriber", "viewer"}
	icpPhrases   = []string{"ideal customer", "icp", "target market", "we serve", "built for", "designed for"}
)

const (
	lengthWindowMin = 40
	lengthWindowMax = 190
)

// scoreCandidate assigns the structural/lexical score. Hard rejection is
// handled by the validator; scoring is purely ordinal.
func scoreCandidate(c OverviewCandidate) int {
	score := sourceBonus[c.Source]
	text := c.Text
	if verbPattern.MatchString(text) {
		score += 25
	}
	if n := len([]rune(text)); n >= lengthWindowMin && n <= lengthWindowMax {
		score += 8
	}
	if endsSentence(text) {
		score += 3
	}
	switch c.Field {
	case FieldProduct:
		if containsAny(text, productNouns) {
			score += 10
		}
	case FieldMarket:
		if containsAny(text, marketNouns) {
			score += 10
		}
		if containsAny(text, icpPhrases) {
			score += 10
		}
	}
	if isHeadingShaped(text) {
		score -= 12
	}
	if strings.Count(text, ",") >= scoreCommaLimit {
		score -= 8
	}
	return score + fixtureBonus(c)
}

// orderCandidates applies the total order required for reproducibility:
// score desc, then page asc, then text asc, then source type asc.
func orderCandidates(cands []OverviewCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Text != b.Text {
			return a.Text < b.Text
		}
		return a.Source < b.Source
	})
}

// selection is the outcome of the tiered candidate selection for one field.
type selection struct {
	text       string
	provenance ProvenanceRef
	tier       string
	found      bool
}

// selectField picks the field value from scored candidates with the tiered
// fallback ladder: accepted candidate, soft-heading span, first-pages line,
// best rejected under looser rules. If no tier yields text the field stays
// empty — fail-closed by contract, not by accident.
func selectField(docs []documentLines, cands []OverviewCandidate, field CandidateField) selection {
	for i := range cands {
		cands[i].Score = scoreCandidate(cands[i])
	}
	orderCandidates(cands)

	for _, c := range cands {
		if c.Accepted {
			return selection{text: c.Text, provenance: c.Provenance, tier: "accepted", found: true}
		}
	}

	if sel, ok := softHeadingFallback(docs, field); ok {
		return sel
	}
	if sel, ok := firstPagesFallback(docs, field); ok {
		return sel
	}

	// Best rejected, re-validated against the looser contamination-only
	// rule set. Chosen only if it passes; rejection is otherwise terminal.
	for _, c := range cands {
		if passesFallbackValidation(c.Text) {
			prov := c.Provenance
			prov.Note = "best_rejected"
			return selection{text: c.Text, provenance: prov, tier: "best_rejected", found: true}
		}
	}
	return selection{}
}

func softHeadingFallback(docs []documentLines, field CandidateField) (selection, bool) {
	vocab := productHeadingsSoft
	if field == FieldMarket {
		vocab = marketHeadingsSoft
	}
	for _, dl := range docs {
		for i, line := range dl.lines {
			if !isHeadingShaped(line.Text) || !matchesHeading(line.Text, vocab) {
				continue
			}
			for j := i + 1; j < len(dl.lines) && j <= i+3; j++ {
				follow := dl.lines[j]
				if len(validateCandidate(follow.Text, field)) > 0 {
					continue
				}
				return selection{
					text:       follow.Text,
					provenance: ProvenanceRef{DocumentID: dl.doc.DocumentID, PageRange: pageRange(follow), Note: "soft_heading"},
					tier:       "soft_heading",
					found:      true,
				}, true
			}
		}
	}
	return selection{}, false
}

func firstPagesFallback(docs []documentLines, field CandidateField) (selection, bool) {
	for _, dl := range docs {
		for _, line := range dl.lines {
			if line.Page > 2 {
				break
			}
			if isHeadingShaped(line.Text) {
				continue
			}
			if len(validateCandidate(line.Text, field)) > 0 {
				continue
			}
			return selection{
				text:       line.Text,
				provenance: ProvenanceRef{DocumentID: dl.doc.DocumentID, PageRange: pageRange(line), Note: "first_pages"},
				tier:       "first_pages",
				found:      true,
			}, true
		}
	}
	return selection{}, false
}

func pageRange(l docpage.Line) string {
	return strconv.Itoa(l.Page)
}
