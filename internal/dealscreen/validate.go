package dealscreen

import (
	"regexp"
	"strings"

	"github.com/joelkehle/dealintel/internal/textnorm"
)

// verbPattern matches the tagline verbs and constructions that signal an
// actual description of what a company does, as opposed to a heading, a
// roster row, or a logo rendering.
var verbPattern = regexp.MustCompile(`(?i)(\b(helps?|enables?|automates?|provides?|delivers?|connects?|predicts?|builds?|offers?|empowers?)\b|\bbuilt (for|to)\b|\bplatform for\b|\bis (a|an|the)\b)`)

// metaphorPattern rejects "Uber of X" style comparisons; the canonical
// overview must describe the company, not analogize it.
var metaphorPattern = regexp.MustCompile(`(?i)(\b(uber|airbnb|netflix|amazon|tinder|shopify)\s+(of|for)\b|\bequivalent of\b)`)

var (
	rosterKeywords = []string{
		"roster", "lineup", "line-up", "head coach", "goaltender", "goalie",
		"defenseman", "captain", "draft pick", "jersey",
	}
	scheduleKeywords = []string{
		"schedule", "season opener", "regular season", "tournament format",
		"bracket", "matchup", "game 1", "game schedule", "fixture", "weekend series",
	}
	financialStatementKeywords = []string{
		"balance sheet", "income statement", "statement of cash flows",
		"cash flow statement", "total assets", "total liabilities",
		"cost of goods sold", "accumulated depreciation",
	}
	icpNouns = []string{
		"customer", "consumer", "business", "businesses", "team", "teams",
		"brand", "enterprise", "smb", "startup", "agency", "agencies",
		"homeowner", "fan", "patient", "developer", "retailer", "operator",
		"investor", "buyer", "audience", "user", "merchant", "lender",
		"borrower", "tenant", "manufacturer", "viewer",
	}
)

const (
	hardCommaLimit   = 4
	scoreCommaLimit  = 3
	bulletGlyphLimit = 2
	allCapsThreshold = 0.85
)

func countAny(text string, needles []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, k := range needles {
		n += strings.Count(lower, k)
	}
	return n
}

func containsAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, k := range needles {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func bulletGlyphCount(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case '•', '▪', '●', '◦', '‣', '·':
			n++
		}
	}
	return n
}

// separatorDensity is the share of characters that are list/table
// separators; dense rows of pipes, slashes, and dots are table exports, not
// prose.
func separatorDensity(text string) float64 {
	if text == "" {
		return 0
	}
	n := 0
	for _, r := range text {
		switch r {
		case '|', '/', '\\', '·', '•', ';':
			n++
		}
	}
	return float64(n) / float64(len([]rune(text)))
}

func isAllCapsNoVerb(text string) bool {
	return textnorm.UppercaseRatio(text) >= allCapsThreshold && !verbPattern.MatchString(text)
}

// validateCandidate runs the shared hard-reject rule set for a field.
// The returned slice is empty when the candidate is acceptable. Reasons are
// recorded, never hidden: downstream fallback tiers re-examine rejected
// candidates under looser rules.
func validateCandidate(text string, field CandidateField) []RejectionReason {
	var reasons []RejectionReason
	trimmed := strings.TrimSpace(text)

	if len([]rune(trimmed)) < textnorm.MinQualityLength {
		reasons = append(reasons, RejectTooShort)
	}
	if !textnorm.IsHighQuality(trimmed) {
		reasons = append(reasons, RejectLowQuality)
	}
	if textnorm.LooksLikeLogoArtifact(trimmed) {
		reasons = append(reasons, RejectLogoArtifact)
	}
	if metaphorPattern.MatchString(trimmed) {
		reasons = append(reasons, RejectMetaphor)
	}
	if countAny(trimmed, rosterKeywords) >= 2 {
		reasons = append(reasons, RejectRosterBlock)
	}
	if countAny(trimmed, scheduleKeywords) >= 2 {
		reasons = append(reasons, RejectScheduleBlock)
	}
	if countAny(trimmed, financialStatementKeywords) >= 2 {
		reasons = append(reasons, RejectFinancialStatement)
	}
	if strings.Count(trimmed, ",") >= hardCommaLimit {
		reasons = append(reasons, RejectTooManyCommas)
	}
	if bulletGlyphCount(trimmed) >= bulletGlyphLimit {
		reasons = append(reasons, RejectBulletGlyphs)
	}
	if isAllCapsNoVerb(trimmed) {
		reasons = append(reasons, RejectAllCapsNoVerb)
	}
	if field == FieldMarket && !containsAny(trimmed, icpNouns) {
		reasons = append(reasons, RejectNoICPNoun)
	}
	return reasons
}

// passesFallbackValidation is the looser rule set applied only to the
// best-rejected tier: it refuses hard contamination (all-caps blocks,
// roster/schedule language, dense separator rows) but tolerates the softer
// structural complaints that sank the candidate on the strict pass.
func passesFallbackValidation(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if isAllCapsNoVerb(trimmed) {
		return false
	}
	if textnorm.LooksLikeLogoArtifact(trimmed) {
		return false
	}
	if countAny(trimmed, rosterKeywords) >= 2 || countAny(trimmed, scheduleKeywords) >= 2 {
		return false
	}
	if separatorDensity(trimmed) > 0.08 {
		return false
	}
	return true
}
