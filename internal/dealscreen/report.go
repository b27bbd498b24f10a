package dealscreen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BuildReportMarkdown renders a result as a markdown report for operators
// and for PDF rendering. Built exclusively from canonical and decision
// data; raw document text never reaches this surface.
func BuildReportMarkdown(res Result) string {
	var b strings.Builder
	name := res.DealOverview.DealName
	if name == "" {
		name = "Unnamed deal"
	}

	fmt.Fprintf(&b, "# Deal Intelligence Report — %s\n\n", name)
	fmt.Fprintf(&b, "- Recommendation: **%s**\n", res.DecisionSummary.Recommendation)
	fmt.Fprintf(&b, "- Score: **%d/100**\n", res.DecisionSummary.Score)
	fmt.Fprintf(&b, "- Confidence: `%s`\n", res.DecisionSummary.Confidence)
	fmt.Fprintf(&b, "- Policy: `%s`\n\n", res.Coverage.PolicyID)

	fmt.Fprintf(&b, "## Executive Summary\n\n")
	for _, p := range res.ExecutiveSummary.Paragraphs {
		fmt.Fprintf(&b, "%s\n\n", p)
	}
	for _, h := range res.ExecutiveSummary.Highlights {
		fmt.Fprintf(&b, "- %s\n", h)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Coverage\n\n")
	fmt.Fprintf(&b, "| Section | Status | Confidence |\n|---|---|---|\n")
	for _, s := range res.Coverage.Sections {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", s.Label, s.Status, s.ConfidenceBand)
	}
	b.WriteString("\n")

	if len(res.DecisionSummary.Blockers) > 0 {
		fmt.Fprintf(&b, "## Blockers & Next Requests\n\n")
		for i, blocker := range res.DecisionSummary.Blockers {
			fmt.Fprintf(&b, "- %s", blocker)
			if i < len(res.DecisionSummary.NextRequests) {
				fmt.Fprintf(&b, " — next: %s", res.DecisionSummary.NextRequests[i])
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(res.Claims) > 0 {
		fmt.Fprintf(&b, "## Claims\n\n")
		for _, c := range res.Claims {
			fmt.Fprintf(&b, "- [%s] %s", c.Category, sanitizeLine(c.Text))
			for _, ev := range c.Evidence {
				fmt.Fprintf(&b, " _(source: %s", ev.DocumentID)
				if ev.Page != nil {
					fmt.Fprintf(&b, " p.%d", *ev.Page)
				}
				b.WriteString(")_")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if res.UpdateReport != nil {
		fmt.Fprintf(&b, "## Update Report\n\n")
		fmt.Fprintf(&b, "%s\n\n", res.UpdateReport.Summary)
		for _, ch := range res.UpdateReport.Changes {
			fmt.Fprintf(&b, "- `%s` %s (%s)", ch.Field, ch.ChangeType, ch.Category)
			if ch.Before != "" || ch.After != "" {
				fmt.Fprintf(&b, ": %s → %s", orDash(ch.Before), orDash(ch.After))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Appendix\n\n### Canonical Overview (JSON)\n\n```json\n%s\n```\n", prettyJSON(res.DealOverview))
	return b.String()
}

func prettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func sanitizeLine(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if s == "" {
		return "-"
	}
	return s
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
