package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/joelkehle/dealintel/internal/dealscreen"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "dealintel.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func resultFixture(product string) dealscreen.Result {
	return dealscreen.Result{
		DecisionSummary: dealscreen.DecisionSummary{
			Score:          62,
			Recommendation: dealscreen.RecommendationConsider,
			Confidence:     dealscreen.ConfidenceMed,
		},
		DealOverview: dealscreen.CanonicalOverview{
			DealName:        "Acme",
			ProductSolution: &product,
			DealType:        dealscreen.DealTypeStartupRaise,
			BusinessModel:   dealscreen.BusinessModelUnknown,
		},
		Coverage: dealscreen.Coverage{PolicyID: "startup"},
	}
}

func TestLatestSnapshotEmptyStore(t *testing.T) {
	s := openTestStore(t)
	snap, found, err := s.LatestSnapshot("deal-1")
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if found || snap != nil {
		t.Fatalf("empty store returned a snapshot: %+v", snap)
	}
}

func TestSaveAndLatestSnapshot(t *testing.T) {
	s := openTestStore(t)

	runID, err := s.Save("deal-1", "startup", resultFixture("First product description for the deal."))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	// created_at has nanosecond precision; keep the second insert ordered.
	time.Sleep(2 * time.Millisecond)
	if _, err := s.Save("deal-1", "startup", resultFixture("Second product description for the deal.")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Save("deal-2", "startup", resultFixture("Other deal entirely.")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	snap, found, err := s.LatestSnapshot("deal-1")
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if !found {
		t.Fatal("expected a snapshot")
	}
	if snap.Overview.ProductSolution == nil || *snap.Overview.ProductSolution != "Second product description for the deal." {
		t.Fatalf("latest snapshot wrong: %+v", snap.Overview.ProductSolution)
	}
	if snap.Decision.Recommendation != dealscreen.RecommendationConsider {
		t.Fatalf("decision = %+v", snap.Decision)
	}
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Save("deal-1", "startup", resultFixture("one")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := s.Save("deal-1", "real_estate_underwriting", resultFixture("two")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	runs, err := s.ListRuns("deal-1")
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].PolicyID != "real_estate_underwriting" {
		t.Fatalf("newest run first expected, got %+v", runs)
	}
	if runs[0].CreatedAt.Before(runs[1].CreatedAt) {
		t.Fatalf("runs out of order: %v then %v", runs[0].CreatedAt, runs[1].CreatedAt)
	}

	other, err := s.ListRuns("deal-404")
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("got %d runs for unknown deal", len(other))
	}
}
