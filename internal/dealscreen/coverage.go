package dealscreen

import (
	"fmt"
	"strings"

	"github.com/joelkehle/dealintel/internal/policy"
)

const (
	goScoreThreshold       = 75
	considerScoreThreshold = 50
	maxBlockers            = 5
	shortFieldChars        = 40
)

// NoDocumentsBlocker is the explicit blocker emitted for an empty input.
const NoDocumentsBlocker = "No documents available"

// evaluateCoverage maps the canonical overview plus raw document signals
// onto the policy's required sections.
func evaluateCoverage(rubric policy.Rubric, ov CanonicalOverview, sig documentSignals) Coverage {
	cov := Coverage{PolicyID: rubric.ID}
	for _, sec := range rubric.Sections {
		status := sectionStatus(sec.Key, ov, sig)
		cs := CoverageSection{
			Key:            sec.Key,
			Label:          sec.Label,
			Status:         status,
			ConfidenceBand: bandFor(status),
			EvidenceIDs:    sig.evidenceDocs[sec.Key],
		}
		cov.Sections = append(cov.Sections, cs)
		if status == StatusMissing {
			cov.MissingSections = append(cov.MissingSections, sec.Key)
		}
	}
	return cov
}

func sectionStatus(key string, ov CanonicalOverview, sig documentSignals) SectionStatus {
	switch key {
	case policy.SectionProduct:
		return textFieldStatus(ov.ProductSolution)
	case policy.SectionMarket:
		return textFieldStatus(ov.MarketICP)
	case policy.SectionRaiseTerms:
		if strings.TrimSpace(ov.Raise) == "" {
			return StatusMissing
		}
		return StatusPresent
	case policy.SectionBusinessModel:
		if ov.BusinessModel == "" || ov.BusinessModel == BusinessModelUnknown {
			return StatusMissing
		}
		return StatusPresent
	case policy.SectionTraction:
		switch {
		case len(ov.TractionSignals) >= 2:
			return StatusPresent
		case len(ov.TractionSignals) == 1:
			return StatusPartial
		default:
			return StatusMissing
		}
	case policy.SectionFinancials:
		switch {
		case sig.finStrength >= 2:
			return StatusPresent
		case sig.finStrength == 1 || sig.finWeakHits >= 3:
			return StatusPartial
		default:
			return StatusMissing
		}
	case policy.SectionTeam:
		switch {
		case sig.teamStrength >= 2:
			return StatusPresent
		case sig.teamStrength == 1:
			return StatusPartial
		default:
			return StatusMissing
		}
	case policy.SectionGTM:
		switch {
		case sig.gtmStrength >= 2:
			return StatusPresent
		case sig.gtmStrength == 1:
			return StatusPartial
		default:
			return StatusMissing
		}
	case policy.SectionRisks:
		if len(ov.KeyRisksDetected) > 0 {
			return StatusPresent
		}
		return StatusMissing
	}
	return StatusMissing
}

// textFieldStatus treats a populated-but-thin field as partial evidence.
func textFieldStatus(v *string) SectionStatus {
	if v == nil || strings.TrimSpace(*v) == "" {
		return StatusMissing
	}
	if len([]rune(strings.TrimSpace(*v))) < shortFieldChars {
		return StatusPartial
	}
	return StatusPresent
}

func bandFor(status SectionStatus) ConfidenceBand {
	switch status {
	case StatusPresent:
		return ConfidenceHigh
	case StatusPartial:
		return ConfidenceMed
	default:
		return ConfidenceLow
	}
}

// decide computes the decision summary from coverage states alone, plus the
// hard override for an illegible product or market: such a deal can never
// be a top recommendation, whatever the raw score says.
func decide(rubric policy.Rubric, cov Coverage, ov CanonicalOverview, docCount int) DecisionSummary {
	score := 100
	statuses := map[string]SectionStatus{}
	for _, s := range cov.Sections {
		statuses[s.Key] = s.Status
	}

	var reasons []string
	for _, sec := range rubric.Sections {
		switch statuses[sec.Key] {
		case StatusMissing:
			score -= sec.MissingPenalty
			if sec.MissingPenalty > 0 {
				reasons = append(reasons, fmt.Sprintf("%s missing (-%d)", sec.Label, sec.MissingPenalty))
			}
		case StatusPartial:
			score -= sec.PartialPenalty
			if sec.PartialPenalty > 0 {
				reasons = append(reasons, fmt.Sprintf("%s partially evidenced (-%d)", sec.Label, sec.PartialPenalty))
			}
		}
	}
	if docCount == 0 {
		score = 0
	}
	score = clamp(score, 0, 100)

	coreMissing := 0
	for _, key := range []string{policy.SectionProduct, policy.SectionMarket, policy.SectionTeam, policy.SectionFinancials} {
		if statuses[key] == StatusMissing {
			coreMissing++
		}
	}

	var rec Recommendation
	switch {
	case score >= goScoreThreshold && coreMissing <= 1:
		rec = RecommendationGo
	case score >= considerScoreThreshold:
		rec = RecommendationConsider
	default:
		rec = RecommendationPass
	}

	confidence := ConfidenceLow
	switch {
	case score >= goScoreThreshold && coreMissing == 0:
		confidence = ConfidenceHigh
	case score >= considerScoreThreshold:
		confidence = ConfidenceMed
	}

	// Hard override: no legible product or market forces low confidence and
	// caps the recommendation below GO.
	if ov.ProductSolution == nil || ov.MarketICP == nil {
		confidence = ConfidenceLow
		if rec == RecommendationGo {
			rec = RecommendationConsider
			reasons = append(reasons, "GO capped to CONSIDER: product or market not legible")
		}
	}

	blockers, requests := buildBlockers(rubric, statuses, docCount)
	if docCount == 0 {
		rec = RecommendationPass
		confidence = ConfidenceLow
		reasons = []string{"no documents available for analysis"}
	}

	return DecisionSummary{
		Score:          score,
		Recommendation: rec,
		Reasons:        reasons,
		Blockers:       blockers,
		NextRequests:   requests,
		Confidence:     confidence,
	}
}

// buildBlockers lists the missing critical sections, capped, each paired
// with its deterministic next-request prompt.
func buildBlockers(rubric policy.Rubric, statuses map[string]SectionStatus, docCount int) ([]string, []string) {
	var blockers, requests []string
	if docCount == 0 {
		blockers = append(blockers, NoDocumentsBlocker)
		requests = append(requests, "Upload the pitch deck or memo for this deal.")
	}
	for _, sec := range rubric.Sections {
		if len(blockers) >= maxBlockers {
			break
		}
		if sec.Critical && statuses[sec.Key] == StatusMissing {
			blockers = append(blockers, fmt.Sprintf("%s not provided", sec.Label))
			requests = append(requests, sec.NextRequest)
		}
	}
	if len(blockers) > maxBlockers {
		blockers = blockers[:maxBlockers]
		requests = requests[:maxBlockers]
	}
	return blockers, requests
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
