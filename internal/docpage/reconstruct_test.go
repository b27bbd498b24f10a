package docpage

import "testing"

func TestReconstructFullTextFallback(t *testing.T) {
	doc := Document{FullText: "line one\n\nline two\nline two"}
	lines := Reconstruct(doc)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %+v", len(lines), lines)
	}
	if lines[0].Page != 1 || lines[0].Text != "line one" {
		t.Fatalf("line 0 = %+v", lines[0])
	}
	if lines[1].Text != "line two" {
		t.Fatalf("adjacent duplicate not removed: %+v", lines[1])
	}
}

func TestReconstructSlidePages(t *testing.T) {
	doc := Document{Pages: []Page{
		{Number: 1, Content: SlidePage{Title: "The Problem", Body: "Lending is slow.\nUnderwriting is manual."}},
	}}
	lines := Reconstruct(doc)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %+v", len(lines), lines)
	}
	if lines[0].Text != "The Problem" || lines[0].SlideTitle != "The Problem" {
		t.Fatalf("title line = %+v", lines[0])
	}
	for _, l := range lines[1:] {
		if l.SlideTitle != "The Problem" {
			t.Fatalf("body line missing slide title: %+v", l)
		}
	}
}

func TestReconstructAssignsPositionalPageNumbers(t *testing.T) {
	doc := Document{Pages: []Page{
		{Content: PlainTextPage{Text: "first"}},
		{Content: PlainTextPage{Text: "second"}},
	}}
	lines := Reconstruct(doc)
	if len(lines) != 2 || lines[0].Page != 1 || lines[1].Page != 2 {
		t.Fatalf("got %+v", lines)
	}
}

func TestClusterWords(t *testing.T) {
	// Two visual lines: tokens arrive out of order and with y jitter.
	words := []Word{
		{Text: "readiness", X: 200, Y: 52},
		{Text: "We", X: 10, Y: 50},
		{Text: "predict", X: 60, Y: 48},
		{Text: "borrower", X: 120, Y: 51},
		{Text: "Scored", X: 10, Y: 120},
		{Text: "in", X: 80, Y: 121},
		{Text: "seconds", X: 110, Y: 119},
		{Text: ".", X: 170, Y: 120},
		{Text: "  ", X: 0, Y: 0},
	}
	lines := clusterWords(4, words)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %+v", len(lines), lines)
	}
	if lines[0].Text != "We predict borrower readiness" {
		t.Errorf("line 0 = %q", lines[0].Text)
	}
	if lines[1].Text != "Scored in seconds." {
		t.Errorf("line 1 = %q (typography fixup should remove space before period)", lines[1].Text)
	}
	if lines[0].Page != 4 {
		t.Errorf("page = %d, want 4", lines[0].Page)
	}
}

func TestClusterWordsDeterministicAcrossInputOrder(t *testing.T) {
	words := []Word{
		{Text: "alpha", X: 10, Y: 10},
		{Text: "beta", X: 50, Y: 12},
		{Text: "gamma", X: 90, Y: 9},
	}
	reversed := []Word{words[2], words[1], words[0]}
	a := clusterWords(1, words)
	b := clusterWords(1, reversed)
	if len(a) != 1 || len(b) != 1 || a[0].Text != b[0].Text {
		t.Fatalf("order-dependent output: %+v vs %+v", a, b)
	}
	if a[0].Text != "alpha beta gamma" {
		t.Fatalf("got %q", a[0].Text)
	}
}

func TestFixTypography(t *testing.T) {
	if got := fixTypography("hello , world ( x )"); got != "hello, world (x)" {
		t.Errorf("got %q", got)
	}
}
