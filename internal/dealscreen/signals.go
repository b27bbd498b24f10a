package dealscreen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/joelkehle/dealintel/internal/textnorm"
)

// raisePattern finds a funding ask: a raising/seeking verb within reach of
// a dollar amount, or a bare "$<amount> raise/round".
var (
	raisePattern = regexp.MustCompile(`(?i)\b(raising|seeking|raise of|to raise|looking to raise|raising approximately|seeking up to)\b[^.$]{0,40}\$\s?([\d][\d,.]*)\s*(mm|m|million|k|thousand|b|billion)?`)
	raiseSuffix  = regexp.MustCompile(`(?i)\$\s?([\d][\d,.]*)\s*(mm|m|million|k|thousand|b|billion)?\s+(raise|round|financing)\b`)
)

var tractionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$[\d,.]+\s*(k|m|mm|million|b|billion)?\s*(in\s+)?(arr|mrr|revenue|sales|gmv|bookings)`),
	regexp.MustCompile(`(?i)\b[\d,.]+\s*(k|m|million)?\+?\s*(users|customers|subscribers|members|downloads|fans|viewers)\b`),
	regexp.MustCompile(`(?i)\b(grew|growing|growth of|up)\s+[\d,.]+\s*%`),
	regexp.MustCompile(`(?i)\b(signed|launched|partnered with|partnership with|pilot with)\b`),
	regexp.MustCompile(`(?i)\b(sold out|attendance of|broadcast deal|sponsorship deal)\b`),
}

// Risk keyword families. Each maps to one stable human-readable label so
// repeat runs and diffs compare cleanly.
var riskFamilies = []struct {
	label    string
	keywords []string
}{
	{"Customer concentration", []string{"customer concentration", "largest customer", "top customer accounts", "single customer"}},
	{"Going concern", []string{"going concern", "substantial doubt", "insolvency"}},
	{"Litigation", []string{"litigation", "lawsuit", "legal proceedings", "pending claims"}},
	{"Regulatory exposure", []string{"regulatory", "compliance risk", "licensing requirement", "government approval"}},
	{"Pre-revenue", []string{"pre-revenue", "no revenue to date", "not yet generated revenue"}},
	{"Key-person dependency", []string{"key person", "key-man", "depends on the founder"}},
}

var (
	teamEvidence = []string{"founder", "co-founder", "ceo", "cto", "cfo", "coo", "our team", "leadership team", "advisory board", "previously at"}
	finEvidence  = []string{"income statement", "p&l", "profit and loss", "projections", "pro forma", "ebitda", "burn rate", "gross margin", "cash flow", "unit economics"}
	finWeak      = []string{"revenue", "cost", "margin", "budget"}
	gtmEvidence  = []string{"go-to-market", "gtm", "sales motion", "sales team", "pipeline", "distribution", "acquisition channel", "marketing channel", "partnership strategy", "pricing strategy"}
)

// Business-model keyword families with the label each one supports. Label
// assignment additionally requires an ownership-marker sentence (see
// businessModelEvidence); keyword presence alone is not enough.
var businessModels = []struct {
	label    string
	keywords []string
}{
	{"SaaS subscription", []string{"saas", "subscription", "per seat", "recurring revenue", "arr", "mrr"}},
	{"Marketplace take rate", []string{"take rate", "marketplace", "gmv", "transaction fee"}},
	{"Media and sponsorship revenue", []string{"sponsorship", "media rights", "advertising", "broadcast deal", "ticket sales"}},
	{"Rental income", []string{"rental income", "rent roll", "lease revenue", "noi"}},
	{"Transactional / services", []string{"service fee", "commission", "consulting revenue", "implementation fee"}},
}

// documentSignals is everything the coverage rubric reads from raw text
// rather than from the canonical overview.
type documentSignals struct {
	raise         string
	raiseProv     *ProvenanceRef
	traction      []string
	tractionProv  []ProvenanceRef
	risks         []string
	businessModel string
	dealName      string
	teamStrength  int // count of distinct evidence hits
	finStrength   int
	finWeakHits   int
	gtmStrength   int
	evidenceDocs  map[string][]string // section key -> document ids
}

func scanSignals(docs []documentLines) documentSignals {
	sig := documentSignals{evidenceDocs: map[string][]string{}}
	seenTraction := map[string]bool{}

	for _, dl := range docs {
		for _, line := range dl.lines {
			lower := strings.ToLower(line.Text)

			if sig.raise == "" {
				if amt := extractRaise(line.Text); amt != "" {
					sig.raise = amt
					prov := ProvenanceRef{DocumentID: dl.doc.DocumentID, PageRange: fmt.Sprintf("%d", line.Page), Note: "raise"}
					sig.raiseProv = &prov
					sig.note("raise_terms", dl.doc.DocumentID)
				}
			}

			for _, p := range tractionPatterns {
				if !p.MatchString(line.Text) {
					continue
				}
				if !textnorm.IsHighQuality(line.Text) || isHeadingShaped(line.Text) {
					continue
				}
				key := strings.ToLower(strings.TrimSpace(line.Text))
				if seenTraction[key] {
					continue
				}
				seenTraction[key] = true
				sig.traction = append(sig.traction, strings.TrimSpace(line.Text))
				sig.tractionProv = append(sig.tractionProv, ProvenanceRef{DocumentID: dl.doc.DocumentID, PageRange: fmt.Sprintf("%d", line.Page), Note: "traction"})
				sig.note("traction", dl.doc.DocumentID)
				break
			}

			if hits := countAny(lower, teamEvidence); hits > 0 {
				sig.teamStrength += hits
				sig.note("team", dl.doc.DocumentID)
			}
			if hits := countAny(lower, finEvidence); hits > 0 {
				sig.finStrength += hits
				sig.note("financials", dl.doc.DocumentID)
			} else if countAny(lower, finWeak) > 0 {
				sig.finWeakHits++
			}
			if hits := countAny(lower, gtmEvidence); hits > 0 {
				sig.gtmStrength += hits
				sig.note("go_to_market", dl.doc.DocumentID)
			}
		}
	}

	var riskDocs []string
	sig.risks, riskDocs = detectRisks(docs)
	for _, id := range riskDocs {
		sig.note("risks", id)
	}
	sig.businessModel = detectBusinessModel(docs)
	sig.dealName = inferDealName(docs)

	sort.Sort(byTractionText{sig.traction, sig.tractionProv})
	return sig
}

// byTractionText orders traction lines alphabetically while keeping each
// line paired with the provenance recorded for it.
type byTractionText struct {
	texts []string
	provs []ProvenanceRef
}

func (b byTractionText) Len() int           { return len(b.texts) }
func (b byTractionText) Less(i, j int) bool { return b.texts[i] < b.texts[j] }
func (b byTractionText) Swap(i, j int) {
	b.texts[i], b.texts[j] = b.texts[j], b.texts[i]
	b.provs[i], b.provs[j] = b.provs[j], b.provs[i]
}

func (s *documentSignals) note(section, docID string) {
	for _, id := range s.evidenceDocs[section] {
		if id == docID {
			return
		}
	}
	s.evidenceDocs[section] = append(s.evidenceDocs[section], docID)
}

// extractRaise normalizes a matched funding ask into a compact string such
// as "$10M". Returns "" when no ask is present on the line.
func extractRaise(text string) string {
	// raisePattern captures (verb, amount, unit); raiseSuffix captures
	// (amount, unit).
	var amount, unit string
	if m := raisePattern.FindStringSubmatch(text); m != nil {
		amount, unit = m[2], m[3]
	} else if m := raiseSuffix.FindStringSubmatch(text); m != nil {
		amount, unit = m[1], m[2]
	} else {
		return ""
	}
	amount = strings.ReplaceAll(amount, ",", "")
	unit = strings.ToLower(unit)
	switch unit {
	case "m", "mm", "million":
		return "$" + trimZeros(amount) + "M"
	case "k", "thousand":
		return "$" + trimZeros(amount) + "K"
	case "b", "billion":
		return "$" + trimZeros(amount) + "B"
	default:
		return "$" + trimZeros(amount)
	}
}

func trimZeros(amount string) string {
	if strings.Contains(amount, ".") {
		amount = strings.TrimRight(amount, "0")
		amount = strings.TrimRight(amount, ".")
	}
	return amount
}

// detectRisks returns the sorted risk labels plus the ids of the documents
// the keywords were found in, in document order.
func detectRisks(docs []documentLines) ([]string, []string) {
	found := map[string]bool{}
	seenDoc := map[string]bool{}
	var docIDs []string
	for _, dl := range docs {
		for _, line := range dl.lines {
			lower := strings.ToLower(line.Text)
			for _, fam := range riskFamilies {
				if containsAny(lower, fam.keywords) {
					found[fam.label] = true
					if !seenDoc[dl.doc.DocumentID] {
						seenDoc[dl.doc.DocumentID] = true
						docIDs = append(docIDs, dl.doc.DocumentID)
					}
				}
			}
		}
	}
	out := make([]string, 0, len(found))
	for label := range found {
		out = append(out, label)
	}
	sort.Strings(out)
	return out, docIDs
}

// detectBusinessModel picks the first model family whose keywords appear in
// an ownership-marker sentence outside legal boilerplate. Fail-closed:
// anything weaker stays Unknown.
func detectBusinessModel(docs []documentLines) string {
	best, bestHits := BusinessModelUnknown, 0
	for _, bm := range businessModels {
		hits := 0
		for _, dl := range docs {
			for _, line := range dl.lines {
				hits += countAny(strings.ToLower(line.Text), bm.keywords)
			}
		}
		if hits > bestHits && businessModelEvidence(docs, bm.keywords) {
			best, bestHits = bm.label, hits
		}
	}
	return best
}

// inferDealName uses the first document title, or the first short clean
// line of page one when titles are absent.
func inferDealName(docs []documentLines) string {
	for _, dl := range docs {
		if t := strings.TrimSpace(dl.doc.Title); t != "" {
			return t
		}
	}
	for _, dl := range docs {
		for _, line := range dl.lines {
			if line.Page > 1 {
				break
			}
			t := strings.TrimSpace(line.Text)
			if t == "" || textnorm.LooksLikeLogoArtifact(t) {
				continue
			}
			if fields := strings.Fields(t); len(fields) <= 6 {
				return strings.TrimRight(t, " /|-")
			}
		}
	}
	return ""
}
