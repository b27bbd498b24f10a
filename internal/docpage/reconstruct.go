package docpage

import (
	"sort"
	"strings"

	"github.com/joelkehle/dealintel/internal/textnorm"
)

// yTolerance is the vertical band, in page units, within which OCR tokens
// are clustered into the same reconstructed line. The running-average
// cluster center absorbs per-token jitter from skewed scans.
const yTolerance = 14.0

// Line is one reconstructed text line with its page of origin. SlideTitle
// carries the slide heading for slide-shaped pages so candidate scoring can
// down-rank lines that merely restate it.
type Line struct {
	Page       int
	Text       string
	SlideTitle string
}

// Reconstruct flattens a document into ordered, sanitized lines. Page
// numbers are taken from the payload when present, otherwise assigned by
// position (1-based). Documents with no structured pages fall back to
// FullText split on newlines.
func Reconstruct(doc Document) []Line {
	if len(doc.Pages) == 0 {
		return splitPlain(1, doc.FullText, "")
	}

	var lines []Line
	for i, page := range doc.Pages {
		num := page.Number
		if num <= 0 {
			num = i + 1
		}
		switch c := page.Content.(type) {
		case WordPage:
			lines = append(lines, clusterWords(num, c.Words)...)
		case SlidePage:
			title := textnorm.Normalize(c.Title)
			if title != "" {
				lines = append(lines, Line{Page: num, Text: title, SlideTitle: title})
			}
			lines = append(lines, splitPlain(num, c.Body, title)...)
			lines = append(lines, splitPlain(num, c.Notes, title)...)
		case PlainTextPage:
			lines = append(lines, splitPlain(num, c.Text, "")...)
		}
	}
	return dedupAdjacent(lines)
}

func splitPlain(page int, text, slideTitle string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		t := textnorm.Normalize(raw)
		if t == "" {
			continue
		}
		lines = append(lines, Line{Page: page, Text: t, SlideTitle: slideTitle})
	}
	return dedupAdjacent(lines)
}

type lineCluster struct {
	sumY  float64
	words []Word
}

func (c *lineCluster) centerY() float64 {
	return c.sumY / float64(len(c.words))
}

func (c *lineCluster) add(w Word) {
	c.sumY += w.Y
	c.words = append(c.words, w)
}

// clusterWords groups positioned tokens into lines by y band, orders each
// line by x, and applies typographic cleanup. Token order within the input
// is irrelevant; output order is top-to-bottom, left-to-right.
func clusterWords(page int, words []Word) []Line {
	var clusters []*lineCluster
	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })

	for _, w := range sorted {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		var best *lineCluster
		for _, c := range clusters {
			if abs(c.centerY()-w.Y) <= yTolerance {
				best = c
				break
			}
		}
		if best == nil {
			best = &lineCluster{}
			clusters = append(clusters, best)
		}
		best.add(w)
	}

	sort.SliceStable(clusters, func(i, j int) bool { return clusters[i].centerY() < clusters[j].centerY() })

	var lines []Line
	for _, c := range clusters {
		sort.SliceStable(c.words, func(i, j int) bool { return c.words[i].X < c.words[j].X })
		parts := make([]string, 0, len(c.words))
		for _, w := range c.words {
			parts = append(parts, strings.TrimSpace(w.Text))
		}
		text := textnorm.Normalize(fixTypography(strings.Join(parts, " ")))
		if text == "" {
			continue
		}
		lines = append(lines, Line{Page: page, Text: text})
	}
	return dedupAdjacent(lines)
}

// fixTypography removes the space OCR joins leave before closing
// punctuation and after opening brackets.
func fixTypography(s string) string {
	for _, p := range []string{",", ".", ";", ":", "!", "?", ")", "]", "}"} {
		s = strings.ReplaceAll(s, " "+p, p)
	}
	for _, p := range []string{"(", "[", "{"} {
		s = strings.ReplaceAll(s, p+" ", p)
	}
	return s
}

func dedupAdjacent(lines []Line) []Line {
	out := lines[:0]
	for _, l := range lines {
		if len(out) > 0 && out[len(out)-1].Page == l.Page && out[len(out)-1].Text == l.Text {
			continue
		}
		out = append(out, l)
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
