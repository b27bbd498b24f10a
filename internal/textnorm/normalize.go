// Package textnorm cleans raw document text before any scoring or
// extraction happens. OCR output in particular arrives with control
// characters, replacement characters, spaced-out logo renderings, and
// runs of decorative punctuation that would otherwise poison every
// downstream heuristic.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MinQualityLength is the shortest string treated as usable evidence.
	MinQualityLength = 18

	// minLetterRatio is the letters-to-content floor below which a string
	// is considered symbol noise.
	minLetterRatio = 0.55
)

// Normalize strips NUL and other C0 control characters, collapses runs of
// the same punctuation mark ("!!!" -> "!"), collapses whitespace runs to a
// single space, and trims. Tab, newline, and carriage return are treated as
// whitespace, not preserved: callers that store text into JSON columns rely
// on the output containing no control bytes at all.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))

	var lastRune rune
	pendingSpace := false
	for _, r := range raw {
		switch {
		case r < 0x20 || r == 0x7f:
			// Control characters become word boundaries.
			pendingSpace = b.Len() > 0
			continue
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
			lastRune = ' '
		}
		if isCollapsiblePunct(r) && r == lastRune {
			continue
		}
		b.WriteRune(r)
		lastRune = r
	}
	return b.String()
}

func isCollapsiblePunct(r rune) bool {
	switch r {
	case '!', '?', '.', '-', '_', '*', '=', '~', '#', '|', '•':
		return true
	}
	return false
}

// IsHighQuality reports whether text is clean enough to be quoted as
// evidence or selected as a canonical field. It rejects short fragments,
// strings with more than one replacement character, heavy symbol runs, and
// strings whose letter ratio falls below the noise floor.
func IsHighQuality(text string) bool {
	t := strings.TrimSpace(text)
	if utf8.RuneCountInString(t) < MinQualityLength {
		return false
	}
	letters, content, replacements, symbolRun, maxSymbolRun := 0, 0, 0, 0, 0
	for _, r := range t {
		if r == utf8.RuneError {
			replacements++
		}
		if unicode.IsSpace(r) {
			continue
		}
		content++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			letters++
			symbolRun = 0
			continue
		}
		symbolRun++
		if symbolRun > maxSymbolRun {
			maxSymbolRun = symbolRun
		}
	}
	if replacements > 1 {
		return false
	}
	if maxSymbolRun >= 5 {
		return false
	}
	if content == 0 {
		return false
	}
	return float64(letters)/float64(content) >= minLetterRatio
}

// LooksLikeLogoArtifact flags the classic OCR rendering of a wordmark as
// spaced single letters ("D R O P A B L E S"). A run of four or more
// single-letter tokens is a hard reject wherever product or market text is
// being chosen.
func LooksLikeLogoArtifact(text string) bool {
	run := 0
	for _, tok := range strings.Fields(text) {
		if utf8.RuneCountInString(tok) == 1 && isLetterToken(tok) {
			run++
			if run >= 4 {
				return true
			}
			continue
		}
		run = 0
	}
	return false
}

func isLetterToken(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsLetter(r)
}

// UppercaseRatio returns the share of letters that are uppercase. Callers
// use it to detect shouted headings and OCR title blocks.
func UppercaseRatio(text string) float64 {
	letters, upper := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}
