package dealscreen

import (
	"sort"
	"strings"
)

// Synonym field names accepted from upstream structured data, normalized
// into canonical names before merging.
var fieldSynonyms = map[string]string{
	"product":          "product_solution",
	"solution":         "product_solution",
	"product_solution": "product_solution",
	"what_we_do":       "product_solution",
	"icp":              "market_icp",
	"market":           "market_icp",
	"market_icp":       "market_icp",
	"target_market":    "market_icp",
	"terms":            "raise",
	"raise":            "raise",
	"funding_ask":      "raise",
	"business_model":   "business_model",
	"model":            "business_model",
	"revenue_model":    "business_model",
	"deal_name":        "deal_name",
	"company":          "deal_name",
	"company_name":     "deal_name",
	"deal_type":        "deal_type",
	"gtm":              "go_to_market",
	"go_to_market":     "go_to_market",
}

// normalizeOverrides maps upstream field names through the synonym table
// and drops empty or literal-"Unknown" values, which by contract mean "not
// provided" rather than an assertion. Keys are merged in sorted order so a
// synonym collision resolves the same way on every run; the alphabetically
// first key wins.
func normalizeOverrides(in map[string]string) map[string]string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := map[string]string{}
	for _, k := range keys {
		canon, ok := fieldSynonyms[strings.ToLower(strings.TrimSpace(k))]
		if !ok {
			continue
		}
		v := strings.TrimSpace(in[k])
		if v == "" || strings.EqualFold(v, BusinessModelUnknown) {
			continue
		}
		if _, exists := out[canon]; !exists {
			out[canon] = v
		}
	}
	return out
}

// buildOverview merges extractor output, upstream overrides, and detected
// signals into the canonical record, then applies domain arbitration and a
// final hard validation. Values removed by that validation are not replaced
// by any later fallback; rejection is terminal for the run.
func buildOverview(docs []documentLines, prodSel, mktSel selection, sig documentSignals, d domainScores, overrides map[string]string) CanonicalOverview {
	ov := CanonicalOverview{
		DealType:         DealTypeUnknown,
		BusinessModel:    BusinessModelUnknown,
		TractionSignals:  append([]string{}, sig.traction...),
		KeyRisksDetected: append([]string{}, sig.risks...),
	}
	norm := normalizeOverrides(overrides)
	var sources []ProvenanceRef

	// Product: override, then extractor, then domain-specific sparse-text
	// fallback for an unmistakable real-estate memo with no extractable
	// sentence.
	switch {
	case norm["product_solution"] != "":
		v := norm["product_solution"]
		ov.ProductSolution = &v
		sources = append(sources, ProvenanceRef{DocumentID: "upstream", Note: "caller_override:product_solution"})
	case prodSel.found:
		v := prodSel.text
		ov.ProductSolution = &v
		sources = append(sources, prodSel.provenance)
	case d.strongDomain() == DomainRealEstate:
		v := "Real estate investment opportunity (no usable description in documents)"
		ov.ProductSolution = &v
		sources = append(sources, ProvenanceRef{DocumentID: firstDocID(docs), Note: "sparse_text_fallback"})
	}

	switch {
	case norm["market_icp"] != "":
		v := norm["market_icp"]
		ov.MarketICP = &v
		sources = append(sources, ProvenanceRef{DocumentID: "upstream", Note: "caller_override:market_icp"})
	case mktSel.found:
		v := mktSel.text
		ov.MarketICP = &v
		sources = append(sources, mktSel.provenance)
	}

	if v := norm["raise"]; v != "" {
		ov.Raise = v
	} else if sig.raise != "" {
		ov.Raise = sig.raise
		if sig.raiseProv != nil {
			sources = append(sources, *sig.raiseProv)
		}
	}

	if v := norm["business_model"]; v != "" {
		ov.BusinessModel = v
	} else {
		ov.BusinessModel = sig.businessModel
	}

	if v := norm["deal_name"]; v != "" {
		ov.DealName = v
	} else {
		ov.DealName = sig.dealName
	}
	if v := norm["deal_type"]; v != "" {
		ov.DealType = DealType(v)
	}

	sources = append(sources, sig.tractionProv...)

	arbitrate(&ov, d)
	finalValidation(&ov)

	ov.Sources = dedupSources(sources)
	return ov
}

// finalValidation re-runs the hard rejects once more after arbitration.
// A value failing here becomes nil and stays nil.
func finalValidation(ov *CanonicalOverview) {
	if ov.ProductSolution != nil {
		t := *ov.ProductSolution
		if isAllCapsNoVerb(t) || rejectedHard(validateCandidate(t, FieldProduct)) {
			ov.ProductSolution = nil
		}
	}
	if ov.MarketICP != nil {
		t := *ov.MarketICP
		if isAllCapsNoVerb(t) || !containsAny(t, icpNouns) || rejectedHard(validateCandidate(t, FieldMarket)) {
			ov.MarketICP = nil
		}
	}
}

// rejectedHard keeps only the contamination-class reasons for the final
// pass; structural complaints (length, commas) were already traded off
// during selection.
func rejectedHard(reasons []RejectionReason) bool {
	for _, r := range reasons {
		switch r {
		case RejectLogoArtifact, RejectMetaphor, RejectRosterBlock,
			RejectScheduleBlock, RejectFinancialStatement, RejectAllCapsNoVerb:
			return true
		}
	}
	return false
}

// dedupSources deduplicates provenance refs and orders them
// deterministically so identical runs serialize identically.
func dedupSources(sources []ProvenanceRef) []ProvenanceRef {
	seen := map[string]bool{}
	out := []ProvenanceRef{}
	for _, s := range sources {
		key := s.DocumentID + "|" + s.PageRange + "|" + s.Note
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DocumentID != out[j].DocumentID {
			return out[i].DocumentID < out[j].DocumentID
		}
		if out[i].PageRange != out[j].PageRange {
			return out[i].PageRange < out[j].PageRange
		}
		return out[i].Note < out[j].Note
	})
	return out
}

func firstDocID(docs []documentLines) string {
	if len(docs) == 0 {
		return ""
	}
	return docs[0].doc.DocumentID
}
