package dealscreen

import (
	"time"

	"github.com/joelkehle/dealintel/internal/docpage"
	"github.com/joelkehle/dealintel/internal/policy"
)

// TraceSink receives per-stage progress from an analysis run. The engine is
// otherwise silent: no logging, no stdout, no globals. The default sink is
// a no-op; adapters for slog and OpenTelemetry live in internal/trace.
type TraceSink interface {
	Stage(stage, message string)
}

type noopSink struct{}

func (noopSink) Stage(string, string) {}

// Options configures one analysis run.
type Options struct {
	// PolicyID selects the coverage rubric; unknown ids fall back to the
	// startup default.
	PolicyID string
	// MaxClaims caps the claims list; zero means DefaultMaxClaims.
	MaxClaims int
	// Overrides are upstream-provided canonical field values, accepted
	// under their canonical or synonym names.
	Overrides map[string]string
	// Trace receives stage progress; nil means no tracing.
	Trace TraceSink
	// Now supplies the report timestamp. Injectable so that identical
	// inputs produce byte-identical output under a fixed clock. Nil means
	// time.Now.
	Now func() time.Time
}

func (o Options) trace() TraceSink {
	if o.Trace == nil {
		return noopSink{}
	}
	return o.Trace
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now().UTC()
	}
	return o.Now().UTC()
}

// Analyze runs the full pipeline over a document set: reconstruction,
// candidate extraction and selection, domain arbitration, canonical
// overview assembly, coverage and decision scoring, claims, executive
// summary, and the diff against the previous snapshot. It is a pure
// synchronous function: no I/O, no shared mutable state, safe to call
// concurrently for different deals. It never fails — malformed or empty
// input degrades to an explicit empty result, not an error.
func Analyze(docs []docpage.Document, prev *Snapshot, opts Options) Result {
	sink := opts.trace()
	rubric := policy.ForID(opts.PolicyID)

	sink.Stage("reconstruct", "Reconstructing page lines...")
	lined := make([]documentLines, 0, len(docs))
	for _, d := range docs {
		lined = append(lined, documentLines{doc: d, lines: docpage.Reconstruct(d)})
	}

	sink.Stage("extract", "Extracting product and market candidates...")
	prodCands := extractCandidates(lined, FieldProduct)
	mktCands := extractCandidates(lined, FieldMarket)

	sink.Stage("arbitrate", "Scoring domain anchors...")
	domains := scoreDomains(lined)

	sink.Stage("select", "Selecting best candidates...")
	prodSel := selectField(lined, prodCands, FieldProduct)
	mktSel := selectField(lined, mktCands, FieldMarket)

	sink.Stage("signals", "Scanning raise, traction, and risk signals...")
	sig := scanSignals(lined)

	sink.Stage("overview", "Building canonical overview...")
	ov := buildOverview(lined, prodSel, mktSel, sig, domains, opts.Overrides)

	sink.Stage("coverage", "Evaluating coverage rubric "+rubric.ID+"...")
	cov := evaluateCoverage(rubric, ov, sig)
	dec := decide(rubric, cov, ov, len(docs))

	sink.Stage("claims", "Assembling evidence-backed claims...")
	var prodProv, mktProv *ProvenanceRef
	if prodSel.found {
		prodProv = &prodSel.provenance
	}
	if mktSel.found {
		mktProv = &mktSel.provenance
	}
	claims := buildClaims(lined, ov, sig, prodProv, mktProv, opts.MaxClaims)

	sink.Stage("summary", "Composing executive summary...")
	summary := composeSummary(ov, dec, cov)

	result := Result{
		ExecutiveSummary: summary,
		DecisionSummary:  dec,
		Claims:           claims,
		Coverage:         cov,
		DealOverview:     ov,
	}

	sink.Stage("diff", "Diffing against previous snapshot...")
	report := diffSnapshots(prev, result.Snapshot(), opts.now())
	result.UpdateReport = &report

	sink.Stage("done", "Analysis complete")
	return result
}
