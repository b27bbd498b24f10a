package dealscreen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/joelkehle/dealintel/internal/textnorm"
)

// DefaultMaxClaims caps the claims list unless the caller raises it.
const DefaultMaxClaims = 10

const claimSnippetMax = 160

// claimID is a stable deterministic hash over the category and normalized
// claim text; identical input always yields identical ids.
func claimID(category, text string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(text), " "))
	sum := sha256.Sum256([]byte(category + "|" + norm))
	return hex.EncodeToString(sum[:8])
}

// buildClaims derives the evidence-backed assertion list from the canonical
// overview and detected signals. Claims never quote raw document text that
// failed quality checks; the evidence snippet falls back to a document
// pointer instead.
func buildClaims(docs []documentLines, ov CanonicalOverview, sig documentSignals, prodProv, mktProv *ProvenanceRef, maxClaims int) []Claim {
	if maxClaims <= 0 {
		maxClaims = DefaultMaxClaims
	}
	claims := []Claim{}
	add := func(category, text string, prov *ProvenanceRef) {
		if len(claims) >= maxClaims || strings.TrimSpace(text) == "" {
			return
		}
		claims = append(claims, Claim{
			ClaimID:  claimID(category, text),
			Category: category,
			Text:     text,
			Evidence: []Evidence{evidenceFor(docs, prov)},
		})
	}

	if ov.ProductSolution != nil {
		add("product", *ov.ProductSolution, prodProv)
	}
	if ov.MarketICP != nil {
		add("market", *ov.MarketICP, mktProv)
	}
	if ov.Raise != "" {
		add("raise", fmt.Sprintf("The company is raising %s.", ov.Raise), sig.raiseProv)
	}
	if ov.BusinessModel != BusinessModelUnknown && ov.BusinessModel != "" {
		add("business_model", fmt.Sprintf("Business model: %s.", ov.BusinessModel), nil)
	}
	for i, t := range ov.TractionSignals {
		var prov *ProvenanceRef
		if i < len(sig.tractionProv) {
			prov = &sig.tractionProv[i]
		}
		add("traction", t, prov)
	}
	for _, r := range ov.KeyRisksDetected {
		add("risk", fmt.Sprintf("Risk detected: %s.", r), nil)
	}
	return claims
}

// evidenceFor resolves a provenance ref into a citable evidence entry. When
// the referenced page text is noise (or the ref is missing entirely) the
// snippet degrades to "See document: <title>" rather than quoting garbage.
func evidenceFor(docs []documentLines, prov *ProvenanceRef) Evidence {
	if prov == nil || prov.DocumentID == "" || prov.DocumentID == "upstream" {
		title := "(no source document)"
		if len(docs) > 0 {
			title = docs[0].doc.DisplayTitle()
		}
		docID := ""
		if len(docs) > 0 {
			docID = docs[0].doc.DocumentID
		}
		return Evidence{DocumentID: docID, Snippet: "See document: " + title}
	}

	var dl *documentLines
	for i := range docs {
		if docs[i].doc.DocumentID == prov.DocumentID {
			dl = &docs[i]
			break
		}
	}
	ev := Evidence{DocumentID: prov.DocumentID}
	if page, err := strconv.Atoi(prov.PageRange); err == nil {
		ev.Page = &page
	}
	if dl == nil {
		ev.Snippet = "See document: " + prov.DocumentID
		return ev
	}
	if ev.Page != nil {
		if snippet := pageSnippet(*dl, *ev.Page); snippet != "" {
			ev.Snippet = snippet
			return ev
		}
	}
	ev.Snippet = "See document: " + dl.doc.DisplayTitle()
	return ev
}

func pageSnippet(dl documentLines, page int) string {
	for _, line := range dl.lines {
		if line.Page != page {
			continue
		}
		if !textnorm.IsHighQuality(line.Text) || textnorm.LooksLikeLogoArtifact(line.Text) {
			continue
		}
		return truncateAtWord(line.Text, claimSnippetMax)
	}
	return ""
}
