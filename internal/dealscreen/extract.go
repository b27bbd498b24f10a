package dealscreen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joelkehle/dealintel/internal/docpage"
	"github.com/joelkehle/dealintel/internal/textnorm"
)

// Heading vocabularies for the anchored pass. A line is an anchor when it
// contains one of these and is itself heading-shaped.
var (
	productHeadings = []string{
		"overview", "what we do", "solution", "the solution", "our product",
		"product", "the platform", "about us", "executive summary", "the company",
	}
	marketHeadings = []string{
		"who we serve", "customers", "target market", "icp", "ideal customer",
		"our customers", "who it's for", "audience", "market",
	}

	// Softer vocabularies used only by the tier-b selection fallback.
	productHeadingsSoft = []string{"about", "mission", "vision", "introduction", "summary"}
	marketHeadingsSoft  = []string{"market opportunity", "opportunity", "tam", "segments", "demand"}
)

// definitionOpener starts the multi-line definition pass: a first-person
// definitional verb or a "<Name> is a/an/the ..." construction.
var definitionOpener = regexp.MustCompile(`(?i)^(we\s+(predict|help|build|provide|enable|connect|automate|deliver|make|offer)\b|` +
	`[A-Z0-9][\w&.'’\- ]{0,40}\s+is\s+(a|an|the)\b|` +
	`(our|the)\s+(platform|solution|product|software|app)\s+(is|helps|enables|provides|delivers|connects)\b)`)

// punctuation-only OCR artifacts skipped while joining definition lines.
var punctOnlyLine = regexp.MustCompile(`^[\s\p{P}\p{S}]+$`)

const (
	anchoredFollowLines  = 6
	definitionJoinLines  = 8
	definitionMaxChars   = 420
	anchoredHeadingMaxCh = 48
)

// documentLines pairs a document with its reconstructed lines; the
// extractor and the signals scanner share it.
type documentLines struct {
	doc   docpage.Document
	lines []docpage.Line
}

// isHeadingShaped reports whether a line looks like a section heading:
// short, colon-terminated, or mostly uppercase.
func isHeadingShaped(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	if strings.HasSuffix(t, ":") {
		return true
	}
	runes := []rune(t)
	if len(runes) <= anchoredHeadingMaxCh && len(strings.Fields(t)) <= 6 && !strings.ContainsAny(t, ".!?") {
		return true
	}
	return textnorm.UppercaseRatio(t) >= 0.8 && len(runes) <= 64
}

func matchesHeading(text string, vocab []string) bool {
	lower := strings.ToLower(strings.TrimRight(strings.TrimSpace(text), ":"))
	for _, h := range vocab {
		if lower == h || strings.HasPrefix(lower, h+" ") || strings.HasSuffix(lower, " "+h) {
			return true
		}
	}
	return false
}

// extractCandidates runs every extraction pass for one field across all
// documents. Every raw candidate is recorded with its rejection reasons;
// nothing is discarded, because the selection fallbacks need the rejected
// ones too.
func extractCandidates(docs []documentLines, field CandidateField) []OverviewCandidate {
	var out []OverviewCandidate
	for _, dl := range docs {
		out = append(out, anchoredPass(dl, field)...)
		out = append(out, taglinePass(dl, field)...)
		if field == FieldProduct {
			out = append(out, definitionPass(dl)...)
		}
	}
	return out
}

func anchoredPass(dl documentLines, field CandidateField) []OverviewCandidate {
	vocab := productHeadings
	if field == FieldMarket {
		vocab = marketHeadings
	}
	var out []OverviewCandidate
	for i, line := range dl.lines {
		if !isHeadingShaped(line.Text) || !matchesHeading(line.Text, vocab) {
			continue
		}
		taken := 0
		for j := i + 1; j < len(dl.lines) && taken < anchoredFollowLines; j++ {
			follow := dl.lines[j]
			if punctOnlyLine.MatchString(follow.Text) {
				continue
			}
			out = append(out, newCandidate(dl, follow, field, SourceAnchored))
			taken++
		}
	}
	return out
}

func taglinePass(dl documentLines, field CandidateField) []OverviewCandidate {
	var out []OverviewCandidate
	for _, line := range dl.lines {
		if !verbPattern.MatchString(line.Text) {
			continue
		}
		if field == FieldMarket && !containsAny(line.Text, icpNouns) {
			continue
		}
		out = append(out, newCandidate(dl, line, field, SourceTagline))
	}
	return out
}

// definitionPass joins a definitional opener with its continuation lines
// into one candidate, stopping at sentence-final punctuation or the line
// cap, skipping punctuation-only OCR debris in between.
func definitionPass(dl documentLines) []OverviewCandidate {
	var out []OverviewCandidate
	for i, line := range dl.lines {
		if !definitionOpener.MatchString(line.Text) {
			continue
		}
		joined := line.Text
		for j := i + 1; j < len(dl.lines) && j <= i+definitionJoinLines; j++ {
			if endsSentence(joined) || len(joined) >= definitionMaxChars {
				break
			}
			next := dl.lines[j]
			if next.Page != line.Page {
				break
			}
			if punctOnlyLine.MatchString(next.Text) {
				continue
			}
			joined = joined + " " + next.Text
		}
		if len(joined) > definitionMaxChars {
			joined = truncateAtWord(joined, definitionMaxChars)
		}
		cand := newCandidate(dl, docpage.Line{Page: line.Page, Text: joined, SlideTitle: line.SlideTitle}, FieldProduct, SourceDefinition)
		cand.RawText = line.Text
		out = append(out, cand)
	}
	return out
}

func endsSentence(s string) bool {
	t := strings.TrimRight(strings.TrimSpace(s), `"'”’)`)
	return strings.HasSuffix(t, ".") || strings.HasSuffix(t, "!") || strings.HasSuffix(t, "?")
}

func truncateAtWord(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,;:")
}

func newCandidate(dl documentLines, line docpage.Line, field CandidateField, source SourceType) OverviewCandidate {
	text := textnorm.Normalize(line.Text)
	reasons := validateCandidate(text, field)
	return OverviewCandidate{
		Page:             line.Page,
		Text:             text,
		RawText:          line.Text,
		Field:            field,
		Source:           source,
		RejectionReasons: reasons,
		Accepted:         len(reasons) == 0,
		Provenance: ProvenanceRef{
			DocumentID: dl.doc.DocumentID,
			PageRange:  fmt.Sprintf("%d", line.Page),
			Note:       string(source),
		},
	}
}
