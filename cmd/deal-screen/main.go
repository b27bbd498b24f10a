package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/joelkehle/dealintel/internal/dealscreen"
	"github.com/joelkehle/dealintel/internal/docpage"
	"github.com/joelkehle/dealintel/internal/policy"
	"github.com/joelkehle/dealintel/internal/store"
	"github.com/joelkehle/dealintel/internal/trace"
)

func main() {
	inputPath := flag.String("input", "", "Path to documents JSON array")
	dealID := flag.String("deal-id", "", "Deal identifier")
	policyID := flag.String("policy", policy.PolicyStartup, "Coverage policy id")
	dbPath := flag.String("db", "", "Optional SQLite path: read previous snapshot, persist result")
	outputPath := flag.String("output", "", "Path to write result JSON (defaults to stdout)")
	markdownPath := flag.String("markdown", "", "Optional path to write the markdown report")
	maxClaims := flag.Int("max-claims", dealscreen.DefaultMaxClaims, "Maximum claims in the output")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}
	if *dealID == "" {
		log.Fatal("missing required -deal-id")
	}
	if !policy.Known(*policyID) {
		log.Printf("unknown policy %q, using %s (known: %s)", *policyID, policy.PolicyStartup, strings.Join(policy.IDs(), ", "))
	}

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	docs := docpage.DecodeDocuments(raw)

	ctx := context.Background()
	shutdown, tracer := setupTracing(ctx)
	defer shutdown()

	var prev *dealscreen.Snapshot
	var db *store.Store
	if *dbPath != "" {
		db, err = store.Open(*dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer db.Close()
		snap, found, err := db.LatestSnapshot(*dealID)
		if err != nil {
			log.Fatalf("load previous snapshot: %v", err)
		}
		if found {
			prev = snap
		}
	}

	_, span, sink := trace.StartSpan(ctx, tracer, *dealID)
	result := dealscreen.Analyze(docs, prev, dealscreen.Options{
		PolicyID:  *policyID,
		MaxClaims: *maxClaims,
		Trace:     sink,
	})
	span.End()

	if db != nil {
		runID, err := db.Save(*dealID, *policyID, result)
		if err != nil {
			log.Fatalf("persist result: %v", err)
		}
		log.Printf("persisted run %s for deal %s", runID, *dealID)
	}

	if *markdownPath != "" {
		if err := os.WriteFile(*markdownPath, []byte(dealscreen.BuildReportMarkdown(result)), 0o644); err != nil {
			log.Fatalf("write markdown: %v", err)
		}
	}
	if err := writeResult(*outputPath, result); err != nil {
		log.Fatalf("write result: %v", err)
	}
	log.Printf("deal %s: %s (score %d, confidence %s)", *dealID,
		result.DecisionSummary.Recommendation, result.DecisionSummary.Score, result.DecisionSummary.Confidence)
}

// setupTracing wires an OTLP exporter when OTEL_EXPORTER_OTLP_ENDPOINT is
// set; without it spans go to the default no-op provider.
func setupTracing(ctx context.Context) (func(), oteltrace.Tracer) {
	endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	if endpoint == "" {
		return func() {}, otel.Tracer("deal-screen")
	}
	exp, err := otlptracehttp.New(ctx)
	if err != nil {
		log.Printf("otlp exporter disabled: %v", err)
		return func() {}, otel.Tracer("deal-screen")
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}
	return shutdown, tp.Tracer("deal-screen")
}

func writeResult(outputPath string, result dealscreen.Result) error {
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if outputPath == "" {
		_, err = fmt.Println(string(b))
		return err
	}
	return os.WriteFile(outputPath, b, 0o644)
}
