// Package docpage models the heterogeneous document shapes the engine
// receives (plain page text, OCR word tokens with coordinates, slide
// title/body pairs) and reconstructs them into an ordered list of per-page
// text lines. Everything downstream of this package operates only on the
// normalized (page, line) representation.
package docpage

import (
	"encoding/json"
	"strings"
)

// DocumentType is the caller-declared kind of an input document.
type DocumentType string

const (
	TypePitchDeck  DocumentType = "pitch_deck"
	TypeMemo       DocumentType = "memo"
	TypeFinancials DocumentType = "financials"
	TypePowerPoint DocumentType = "powerpoint"
	TypeUnknown    DocumentType = ""
)

// Document is one input document for a deal. It is owned by the caller and
// read-only to the engine.
type Document struct {
	DocumentID string       `json:"document_id"`
	Title      string       `json:"title,omitempty"`
	Type       DocumentType `json:"type,omitempty"`
	FullText   string       `json:"full_text,omitempty"`
	Pages      []Page       `json:"structured_pages,omitempty"`
}

// Page is one structured page with its resolved content union.
type Page struct {
	Number  int
	Content PageContent
}

// PageContent is a closed union over the three page payload shapes. The
// union is resolved exactly once, during JSON decode; malformed payloads
// coerce to an empty PlainTextPage rather than failing the whole document.
type PageContent interface {
	isPageContent()
}

// PlainTextPage is a page delivered as one text blob.
type PlainTextPage struct {
	Text string
}

// Word is one OCR token with its position on the page.
type Word struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// WordPage is a page delivered as positioned OCR tokens.
type WordPage struct {
	Words []Word
}

// SlidePage is a presentation slide with separated title, body, and notes.
type SlidePage struct {
	Title string
	Body  string
	Notes string
}

func (PlainTextPage) isPageContent() {}
func (WordPage) isPageContent()      {}
func (SlidePage) isPageContent()     {}

type pageEnvelope struct {
	PageNumber int             `json:"page_number"`
	Page       int             `json:"page"`
	Text       json.RawMessage `json:"text"`
	Words      []Word          `json:"words"`
	Title      string          `json:"title"`
	Body       string          `json:"body"`
	Notes      string          `json:"notes"`
}

// UnmarshalJSON resolves the polymorphic structured_pages payload. Accepted
// shapes, in precedence order: word tokens, slide title/body, plain text.
// A page that matches none of them (including a bare JSON string) becomes a
// plain-text page so the pipeline always sees a complete, well-typed input.
func (p *Page) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		p.Content = PlainTextPage{Text: asString}
		return nil
	}

	var env pageEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		p.Content = PlainTextPage{}
		return nil
	}
	p.Number = env.PageNumber
	if p.Number == 0 {
		p.Number = env.Page
	}

	switch {
	case len(env.Words) > 0:
		p.Content = WordPage{Words: env.Words}
	case env.Title != "" || env.Body != "" || env.Notes != "":
		p.Content = SlidePage{Title: env.Title, Body: env.Body, Notes: env.Notes}
	default:
		var text string
		if len(env.Text) > 0 {
			_ = json.Unmarshal(env.Text, &text)
		}
		p.Content = PlainTextPage{Text: text}
	}
	return nil
}

// MarshalJSON renders the resolved union back into the wire envelope.
func (p Page) MarshalJSON() ([]byte, error) {
	switch c := p.Content.(type) {
	case WordPage:
		return json.Marshal(map[string]any{"page_number": p.Number, "words": c.Words})
	case SlidePage:
		return json.Marshal(map[string]any{"page_number": p.Number, "title": c.Title, "body": c.Body, "notes": c.Notes})
	case PlainTextPage:
		return json.Marshal(map[string]any{"page_number": p.Number, "text": c.Text})
	default:
		return json.Marshal(map[string]any{"page_number": p.Number, "text": ""})
	}
}

// DecodeDocuments parses a JSON array of input documents. Entries that are
// not objects are coerced to an empty document; the engine must always be
// able to run over whatever the caller hands it.
func DecodeDocuments(data []byte) []Document {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	docs := make([]Document, 0, len(raw))
	for _, r := range raw {
		var d Document
		if err := json.Unmarshal(r, &d); err != nil {
			d = Document{}
		}
		docs = append(docs, d)
	}
	return docs
}

// DisplayTitle is the human-facing name of a document, falling back to the
// document id when the caller supplied no title.
func (d Document) DisplayTitle() string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	if id := strings.TrimSpace(d.DocumentID); id != "" {
		return id
	}
	return "untitled document"
}
