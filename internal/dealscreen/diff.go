package dealscreen

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Score bands used only for decision-change detection; a score moving
// within a band is not a decision change.
func scoreBand(score int) string {
	switch {
	case score < 40:
		return "low"
	case score < 70:
		return "med"
	default:
		return "high"
	}
}

const noChangesSummary = "No changes compared to the previous analysis."

// diffSnapshots produces the field-level update report between the previous
// stored snapshot and the current run. Scalars diff by normalized-text
// equality, list fields by normalized deduplicated set equality, coverage
// per section key, and decision by recommendation, score band, confidence,
// and blocker count.
func diffSnapshots(prev *Snapshot, cur Snapshot, generatedAt time.Time) UpdateReport {
	report := UpdateReport{GeneratedAt: generatedAt}
	if prev == nil {
		report.Summary = "No previous analysis found; this run is the baseline."
		report.Changes = []Change{}
		return report
	}
	report.PreviousFound = true

	var changes []Change

	scalar := func(field, before, after string) {
		b, a := normText(before), normText(after)
		switch {
		case b == a:
		case b == "":
			changes = append(changes, Change{Field: field, ChangeType: ChangeAdded, Category: CategoryPopulated, After: after})
		case a == "":
			changes = append(changes, Change{Field: field, ChangeType: ChangeRemoved, Category: CategoryLost, Before: before})
		default:
			changes = append(changes, Change{Field: field, ChangeType: ChangeUpdated, Category: CategoryUpdated, Before: before, After: after})
		}
	}

	scalar("deal_name", prev.Overview.DealName, cur.Overview.DealName)
	scalar("product_solution", strOrEmpty(prev.Overview.ProductSolution), strOrEmpty(cur.Overview.ProductSolution))
	scalar("market_icp", strOrEmpty(prev.Overview.MarketICP), strOrEmpty(cur.Overview.MarketICP))
	scalar("deal_type", unknownAsEmpty(string(prev.Overview.DealType), string(DealTypeUnknown)), unknownAsEmpty(string(cur.Overview.DealType), string(DealTypeUnknown)))
	scalar("raise", prev.Overview.Raise, cur.Overview.Raise)
	scalar("business_model", unknownAsEmpty(prev.Overview.BusinessModel, BusinessModelUnknown), unknownAsEmpty(cur.Overview.BusinessModel, BusinessModelUnknown))

	changes = append(changes, diffSet("traction_signals", prev.Overview.TractionSignals, cur.Overview.TractionSignals)...)
	changes = append(changes, diffSet("key_risks_detected", prev.Overview.KeyRisksDetected, cur.Overview.KeyRisksDetected)...)
	changes = append(changes, diffCoverage(prev.Coverage, cur.Coverage)...)
	changes = append(changes, diffDecision(prev.Decision, cur.Decision)...)

	if changes == nil {
		changes = []Change{}
	}
	report.Changes = changes
	report.Summary = summarizeChanges(changes)
	return report
}

func normText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func unknownAsEmpty(v, unknown string) string {
	if strings.EqualFold(v, unknown) {
		return ""
	}
	return v
}

// diffSet compares list fields as normalized, deduplicated, sorted sets.
func diffSet(field string, before, after []string) []Change {
	b, a := normSet(before), normSet(after)
	switch {
	case strings.Join(b, "\n") == strings.Join(a, "\n"):
		return nil
	case len(b) == 0:
		return []Change{{Field: field, ChangeType: ChangeAdded, Category: CategoryPopulated, After: strings.Join(a, "; ")}}
	case len(a) == 0:
		return []Change{{Field: field, ChangeType: ChangeRemoved, Category: CategoryLost, Before: strings.Join(b, "; ")}}
	default:
		return []Change{{Field: field, ChangeType: ChangeUpdated, Category: CategoryUpdated, Before: strings.Join(b, "; "), After: strings.Join(a, "; ")}}
	}
}

func normSet(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		n := normText(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func diffCoverage(before, after Coverage) []Change {
	prevStatus := map[string]SectionStatus{}
	for _, s := range before.Sections {
		prevStatus[s.Key] = s.Status
	}
	var changes []Change
	for _, s := range after.Sections {
		p, ok := prevStatus[s.Key]
		if !ok || p == s.Status {
			continue
		}
		changes = append(changes, Change{
			Field:      "coverage." + s.Key,
			ChangeType: ChangeUpdated,
			Category:   CategoryCoverageChanged,
			Before:     string(p),
			After:      string(s.Status),
		})
	}
	return changes
}

func diffDecision(before, after DecisionSummary) []Change {
	var changes []Change
	if string(before.Recommendation) != string(after.Recommendation) {
		changes = append(changes, Change{
			Field:      "decision_summary.recommendation",
			ChangeType: ChangeUpdated,
			Category:   CategoryDecisionChanged,
			Before:     string(before.Recommendation),
			After:      string(after.Recommendation),
		})
	}
	if scoreBand(before.Score) != scoreBand(after.Score) {
		changes = append(changes, Change{
			Field:      "decision_summary.score_band",
			ChangeType: ChangeUpdated,
			Category:   CategoryDecisionChanged,
			Before:     scoreBand(before.Score),
			After:      scoreBand(after.Score),
		})
	}
	if before.Confidence != after.Confidence {
		changes = append(changes, Change{
			Field:      "decision_summary.confidence",
			ChangeType: ChangeUpdated,
			Category:   CategoryDecisionChanged,
			Before:     string(before.Confidence),
			After:      string(after.Confidence),
		})
	}
	if len(before.Blockers) != len(after.Blockers) {
		changes = append(changes, Change{
			Field:      "decision_summary.blocker_count",
			ChangeType: ChangeUpdated,
			Category:   CategoryDecisionChanged,
			Before:     fmt.Sprintf("%d", len(before.Blockers)),
			After:      fmt.Sprintf("%d", len(after.Blockers)),
		})
	}
	return changes
}

// summarizeChanges renders a ranked natural-language summary, capped at
// three lines: recommendation changes first, then field population/loss,
// then coverage movement.
func summarizeChanges(changes []Change) string {
	if len(changes) == 0 {
		return noChangesSummary
	}
	var lines []string
	addLine := func(s string) {
		if len(lines) < 3 {
			lines = append(lines, s)
		}
	}

	for _, c := range changes {
		if c.Field == "decision_summary.recommendation" {
			addLine(fmt.Sprintf("Recommendation changed: %s → %s.", c.Before, c.After))
		}
	}
	for _, c := range changes {
		switch c.Category {
		case CategoryPopulated:
			addLine(fmt.Sprintf("%s is now populated.", fieldLabel(c.Field)))
		case CategoryLost:
			addLine(fmt.Sprintf("%s is no longer supported by the documents.", fieldLabel(c.Field)))
		}
	}
	for _, c := range changes {
		if c.Category == CategoryCoverageChanged {
			addLine(fmt.Sprintf("Coverage for %s moved %s → %s.", strings.TrimPrefix(c.Field, "coverage."), c.Before, c.After))
		}
	}
	if len(lines) == 0 {
		addLine(fmt.Sprintf("%d field(s) updated.", len(changes)))
	}
	return strings.Join(lines, " ")
}

func fieldLabel(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
