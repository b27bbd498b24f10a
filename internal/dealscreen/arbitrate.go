package dealscreen

import (
	"strings"
)

// Domain anchor vocabularies. Counted over the head of the document set
// (title plus the first two pages of each document, capped) to decide which
// domain's vocabulary to trust when several co-occur — the classic failure
// being offering-memo boilerplate ("this is not an offering memorandum for
// any hotel or property") dragging a sports deck into real estate.
var (
	sportsAnchors = []string{
		"league", "hockey", "basketball", "soccer", "football", "athletes",
		"sports", "broadcast", "media rights", "sponsorship", "season",
		"fans", "teams", "tournament", "new media",
	}
	realEstateAnchors = []string{
		"property", "real estate", "noi", "cap rate", "lease", "tenant",
		"square feet", "offering memorandum", "preferred equity", "lease-up",
		"occupancy", "rent roll", "acquisition", "development site", "zoning",
	}
	saasAnchors = []string{
		"saas", "subscription", "arr", "mrr", "churn", "software", "api",
		"cloud", "platform", "integration", "per seat", "enterprise software",
	}
	marketplaceAnchors = []string{
		"marketplace", "take rate", "gmv", "buyers and sellers", "liquidity",
		"two-sided", "supply side", "demand side", "network effects",
	}

	// Real-estate vocabulary that must not appear in a non-real-estate
	// deal's product/market text.
	realEstateBlockers = []string{
		"property", "noi", "cap rate", "lease-up", "tenant", "offering memorandum",
		"preferred equity", "rent roll", "square feet",
	}
	// SaaS/marketplace vocabulary stripped from a strongly real-estate deal.
	softwareBlockers = []string{
		"saas", "subscription", "churn", "arr", "mrr", "take rate", "gmv",
	}
	// Explicit software anchors that excuse SaaS vocabulary even inside a
	// sports- or real-estate-dominated document set.
	explicitSoftwareAnchors = []string{
		"software", "api", "mobile app", "web app", "cloud platform", "sdk",
		"machine learning", "codebase",
	}

	legalBoilerplateMarkers = []string{
		"not an offering", "offering memorandum", "securities", "disclaimer",
		"forward-looking statements", "no representation", "solicitation",
	}
)

const (
	domainHeadChars    = 8000
	strongAnchorCount  = 4
	strongAnchorMargin = 2
)

// Domain identifies one lexical domain family.
type Domain string

const (
	DomainSports      Domain = "sports_media"
	DomainRealEstate  Domain = "real_estate"
	DomainSaaS        Domain = "saas"
	DomainMarketplace Domain = "marketplace"
	DomainNone        Domain = ""
)

// domainScores holds the anchor counts for one run.
type domainScores struct {
	counts map[Domain]int
	head   string
}

// scoreDomains computes anchor counts over the head text: every document's
// title plus its first two pages, concatenated and capped.
func scoreDomains(docs []documentLines) domainScores {
	var b strings.Builder
	for _, dl := range docs {
		b.WriteString(dl.doc.Title)
		b.WriteString(" ")
		for _, line := range dl.lines {
			if line.Page > 2 {
				break
			}
			b.WriteString(line.Text)
			b.WriteString(" ")
			if b.Len() >= domainHeadChars {
				break
			}
		}
		if b.Len() >= domainHeadChars {
			break
		}
	}
	head := b.String()
	if len(head) > domainHeadChars {
		head = head[:domainHeadChars]
	}
	lower := strings.ToLower(head)
	return domainScores{
		head: lower,
		counts: map[Domain]int{
			DomainSports:      countAny(lower, sportsAnchors),
			DomainRealEstate:  countAny(lower, realEstateAnchors),
			DomainSaaS:        countAny(lower, saasAnchors),
			DomainMarketplace: countAny(lower, marketplaceAnchors),
		},
	}
}

// strongDomain returns the dominating domain, if any: count >= 4 and at
// least 2 clear of the runner-up.
func (d domainScores) strongDomain() Domain {
	order := []Domain{DomainSports, DomainRealEstate, DomainSaaS, DomainMarketplace}
	best, second := DomainNone, DomainNone
	for _, dom := range order {
		switch {
		case best == DomainNone || d.counts[dom] > d.counts[best]:
			second = best
			best = dom
		case second == DomainNone || d.counts[dom] > d.counts[second]:
			second = dom
		}
	}
	if best == DomainNone || d.counts[best] < strongAnchorCount {
		return DomainNone
	}
	if second != DomainNone && d.counts[best]-d.counts[second] < strongAnchorMargin {
		return DomainNone
	}
	return best
}

func (d domainScores) hasExplicitSoftware() bool {
	return containsAny(d.head, explicitSoftwareAnchors)
}

// arbitrate applies cross-domain contamination guards to the merged
// overview. It is the only step allowed to veto earlier extraction output.
func arbitrate(ov *CanonicalOverview, d domainScores) {
	strong := d.strongDomain()

	switch strong {
	case DomainSports:
		ov.DealType = DealTypeStartupRaise
		stripFieldIfContaminated(&ov.ProductSolution, realEstateBlockers)
		stripFieldIfContaminated(&ov.MarketICP, realEstateBlockers)
		if isSoftwareModelLabel(ov.BusinessModel) && !d.hasExplicitSoftware() {
			ov.BusinessModel = BusinessModelUnknown
		}
	case DomainRealEstate:
		if ov.DealType == DealTypeUnknown {
			ov.DealType = DealTypeRealEstate
		}
		if !d.hasExplicitSoftware() {
			stripFieldIfContaminated(&ov.ProductSolution, softwareBlockers)
			stripFieldIfContaminated(&ov.MarketICP, softwareBlockers)
			if isSoftwareModelLabel(ov.BusinessModel) {
				ov.BusinessModel = BusinessModelUnknown
			}
		}
	case DomainSaaS, DomainMarketplace:
		if ov.DealType == DealTypeUnknown {
			ov.DealType = DealTypeStartupRaise
		}
	}
}

func stripFieldIfContaminated(field **string, blockers []string) {
	if *field == nil {
		return
	}
	if containsAny(**field, blockers) {
		*field = nil
	}
}

func isSoftwareModelLabel(label string) bool {
	lower := strings.ToLower(label)
	return strings.Contains(lower, "saas") || strings.Contains(lower, "subscription")
}

// businessModelEvidence checks that a model label rests on a real in-text
// commitment: a sentence containing both an ownership marker (we/our) and a
// domain keyword, and not itself legal boilerplate. Labels without such a
// sentence revert to Unknown.
func businessModelEvidence(docs []documentLines, keywords []string) bool {
	for _, dl := range docs {
		for _, line := range dl.lines {
			lower := strings.ToLower(line.Text)
			if !containsAny(lower, keywords) {
				continue
			}
			if !strings.Contains(lower, "we ") && !strings.Contains(lower, "our ") {
				continue
			}
			if containsAny(lower, legalBoilerplateMarkers) {
				continue
			}
			return true
		}
	}
	return false
}
