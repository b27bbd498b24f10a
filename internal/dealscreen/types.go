// Package dealscreen is the deal intelligence engine: a deterministic,
// rule-driven pipeline that reads normalized deal documents and produces a
// canonical, evidence-backed overview, a coverage score, a go/no-go
// recommendation, and a diff against the previous analysis. The pipeline is
// a pure function of its inputs; it performs no I/O and holds no state
// between invocations, so the hosting job layer can run many deals in
// parallel worker slots.
package dealscreen

import "time"

// CandidateField names the two extracted field families.
type CandidateField string

const (
	FieldProduct CandidateField = "product"
	FieldMarket  CandidateField = "market"
)

// SourceType records which extraction pass produced a candidate.
type SourceType string

const (
	SourceAnchored   SourceType = "anchored"
	SourceDefinition SourceType = "definition"
	SourceTagline    SourceType = "tagline"
)

// RejectionReason is the closed set of validator outcomes. Candidates keep
// every reason ever assigned so fallback tiers and audit output can see why
// a candidate was passed over.
type RejectionReason string

const (
	RejectTooShort           RejectionReason = "too_short"
	RejectLowQuality         RejectionReason = "low_quality_text"
	RejectLogoArtifact       RejectionReason = "spaced_logo_artifact"
	RejectMetaphor           RejectionReason = "metaphor_phrase"
	RejectRosterBlock        RejectionReason = "roster_block"
	RejectScheduleBlock      RejectionReason = "schedule_block"
	RejectFinancialStatement RejectionReason = "financial_statement_block"
	RejectTooManyCommas      RejectionReason = "excessive_commas"
	RejectBulletGlyphs       RejectionReason = "bullet_glyphs"
	RejectAllCapsNoVerb      RejectionReason = "all_caps_without_verb"
	RejectNoICPNoun          RejectionReason = "missing_icp_noun_phrase"
	RejectDomainContaminated RejectionReason = "cross_domain_contamination"
	RejectSeparatorDensity   RejectionReason = "excessive_separator_density"
)

// ProvenanceRef links an output field back to the source text it came from.
// Every populated field carries at least one.
type ProvenanceRef struct {
	DocumentID string `json:"document_id"`
	PageRange  string `json:"page_range,omitempty"`
	Note       string `json:"note,omitempty"`
}

// OverviewCandidate is one scored extraction candidate. Candidates are
// transient: many exist per field during a run, at most one survives
// selection, none are persisted.
type OverviewCandidate struct {
	Page             int
	Text             string
	RawText          string
	Field            CandidateField
	Source           SourceType
	Score            int
	RejectionReasons []RejectionReason
	Accepted         bool
	Provenance       ProvenanceRef
}

// DealType classifies what kind of deal the document set describes.
type DealType string

const (
	DealTypeStartupRaise DealType = "startup_raise"
	DealTypeRealEstate   DealType = "real_estate_offering"
	DealTypeUnknown      DealType = "unknown"
)

// BusinessModelUnknown is the explicit fail-closed business-model label.
const BusinessModelUnknown = "Unknown"

// CanonicalOverview is the merged, validated deal record. Fields are nil or
// "Unknown" rather than a guess whenever validation failed; the engine never
// fabricates facts. The overview builder is the only mutator; the record is
// immutable afterward.
type CanonicalOverview struct {
	DealName         string          `json:"deal_name,omitempty"`
	ProductSolution  *string         `json:"product_solution"`
	MarketICP        *string         `json:"market_icp"`
	DealType         DealType        `json:"deal_type"`
	Raise            string          `json:"raise,omitempty"`
	BusinessModel    string          `json:"business_model"`
	TractionSignals  []string        `json:"traction_signals"`
	KeyRisksDetected []string        `json:"key_risks_detected"`
	Sources          []ProvenanceRef `json:"sources"`
}

// SectionStatus is the coverage state of one rubric section.
type SectionStatus string

const (
	StatusPresent SectionStatus = "present"
	StatusPartial SectionStatus = "partial"
	StatusMissing SectionStatus = "missing"
)

// ConfidenceBand is the per-section and overall confidence scale.
type ConfidenceBand string

const (
	ConfidenceLow  ConfidenceBand = "low"
	ConfidenceMed  ConfidenceBand = "med"
	ConfidenceHigh ConfidenceBand = "high"
)

// CoverageSection is the evaluated status of one required section.
type CoverageSection struct {
	Key            string         `json:"key"`
	Label          string         `json:"label"`
	Status         SectionStatus  `json:"status"`
	ConfidenceBand ConfidenceBand `json:"confidence_band"`
	EvidenceIDs    []string       `json:"evidence_ids,omitempty"`
}

// Coverage is the full rubric evaluation for one run.
type Coverage struct {
	PolicyID        string            `json:"policy_id"`
	Sections        []CoverageSection `json:"sections"`
	MissingSections []string          `json:"missing_sections"`
}

// Recommendation is the three-level screening outcome.
type Recommendation string

const (
	RecommendationPass     Recommendation = "PASS"
	RecommendationConsider Recommendation = "CONSIDER"
	RecommendationGo       Recommendation = "GO"
)

// DecisionSummary is derived purely from coverage states and recomputed
// every run.
type DecisionSummary struct {
	Score          int            `json:"score"`
	Recommendation Recommendation `json:"recommendation"`
	Reasons        []string       `json:"reasons"`
	Blockers       []string       `json:"blockers"`
	NextRequests   []string       `json:"next_requests"`
	Confidence     ConfidenceBand `json:"confidence"`
}

// Evidence is one source citation for a claim.
type Evidence struct {
	DocumentID string `json:"document_id"`
	Page       *int   `json:"page,omitempty"`
	Snippet    string `json:"snippet"`
}

// Claim is an auditable, evidence-backed assertion. ClaimID is a stable
// hash of the normalized text, so repeated runs over identical input
// produce identical ids.
type Claim struct {
	ClaimID  string     `json:"claim_id"`
	Category string     `json:"category"`
	Text     string     `json:"text"`
	Evidence []Evidence `json:"evidence"`
}

// ExecutiveSummary is the human-readable rendering of the run, built
// strictly from canonical data so OCR noise cannot leak into it.
type ExecutiveSummary struct {
	Paragraphs     []string       `json:"paragraphs"`
	Highlights     []string       `json:"highlights"`
	Recommendation Recommendation `json:"recommendation"`
	Score          int            `json:"score"`
	Confidence     ConfidenceBand `json:"confidence"`
	BlockerCount   int            `json:"blocker_count"`
}

// ChangeType is the field-level diff outcome.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeUpdated ChangeType = "updated"
	ChangeRemoved ChangeType = "removed"
)

// ChangeCategory groups changes for the update summary.
type ChangeCategory string

const (
	CategoryPopulated       ChangeCategory = "populated"
	CategoryLost            ChangeCategory = "lost"
	CategoryUpdated         ChangeCategory = "updated"
	CategoryCoverageChanged ChangeCategory = "coverage_changed"
	CategoryDecisionChanged ChangeCategory = "decision_changed"
)

// Change is one field-level difference between two snapshots.
type Change struct {
	Field      string         `json:"field"`
	ChangeType ChangeType     `json:"change_type"`
	Category   ChangeCategory `json:"category"`
	Before     string         `json:"before,omitempty"`
	After      string         `json:"after,omitempty"`
}

// UpdateReport is the diff between the previous stored result and the
// current run. It is stateless; it has no lifecycle of its own.
type UpdateReport struct {
	GeneratedAt   time.Time `json:"generated_at"`
	PreviousFound bool      `json:"previous_found"`
	Changes       []Change  `json:"changes"`
	Summary       string    `json:"summary"`
}

// Snapshot is the diffable bundle: what the persistence layer stores and
// what the update reporter compares.
type Snapshot struct {
	Overview CanonicalOverview `json:"deal_overview"`
	Coverage Coverage          `json:"coverage"`
	Decision DecisionSummary   `json:"decision_summary"`
}

// Result is the complete Deal Intelligence Object for one run.
type Result struct {
	ExecutiveSummary ExecutiveSummary  `json:"executive_summary"`
	DecisionSummary  DecisionSummary   `json:"decision_summary"`
	Claims           []Claim           `json:"claims"`
	Coverage         Coverage          `json:"coverage"`
	DealOverview     CanonicalOverview `json:"deal_overview"`
	UpdateReport     *UpdateReport     `json:"update_report,omitempty"`
}

// Snapshot extracts the diffable bundle from a result.
func (r Result) Snapshot() Snapshot {
	return Snapshot{Overview: r.DealOverview, Coverage: r.Coverage, Decision: r.DecisionSummary}
}
