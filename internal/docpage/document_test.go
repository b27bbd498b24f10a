package docpage

import (
	"encoding/json"
	"testing"
)

func TestPageUnmarshalShapes(t *testing.T) {
	t.Run("bare string", func(t *testing.T) {
		var p Page
		if err := json.Unmarshal([]byte(`"just text"`), &p); err != nil {
			t.Fatal(err)
		}
		pt, ok := p.Content.(PlainTextPage)
		if !ok || pt.Text != "just text" {
			t.Fatalf("got %#v", p.Content)
		}
	})

	t.Run("words win over text", func(t *testing.T) {
		var p Page
		raw := `{"page_number": 3, "text": "ignored", "words": [{"text":"hi","x":1,"y":2}]}`
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			t.Fatal(err)
		}
		wp, ok := p.Content.(WordPage)
		if !ok || len(wp.Words) != 1 || wp.Words[0].Text != "hi" {
			t.Fatalf("got %#v", p.Content)
		}
		if p.Number != 3 {
			t.Fatalf("page number = %d, want 3", p.Number)
		}
	})

	t.Run("slide title body", func(t *testing.T) {
		var p Page
		raw := `{"page": 2, "title": "Team", "body": "Two founders"}`
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			t.Fatal(err)
		}
		sp, ok := p.Content.(SlidePage)
		if !ok || sp.Title != "Team" || sp.Body != "Two founders" {
			t.Fatalf("got %#v", p.Content)
		}
		if p.Number != 2 {
			t.Fatalf("page number = %d, want 2", p.Number)
		}
	})

	t.Run("malformed coerces to empty plain page", func(t *testing.T) {
		var p Page
		if err := json.Unmarshal([]byte(`42`), &p); err != nil {
			t.Fatal(err)
		}
		pt, ok := p.Content.(PlainTextPage)
		if !ok || pt.Text != "" {
			t.Fatalf("got %#v", p.Content)
		}
	})
}

func TestDecodeDocuments(t *testing.T) {
	data := []byte(`[
		{"document_id": "d1", "title": "Deck", "full_text": "hello"},
		"not an object",
		{"document_id": "d2", "structured_pages": [{"page_number": 1, "text": "p1"}]}
	]`)
	docs := DecodeDocuments(data)
	if len(docs) != 3 {
		t.Fatalf("got %d docs, want 3", len(docs))
	}
	if docs[0].DocumentID != "d1" || docs[0].FullText != "hello" {
		t.Fatalf("doc 0 = %+v", docs[0])
	}
	if docs[1].DocumentID != "" {
		t.Fatalf("malformed entry should coerce to empty document, got %+v", docs[1])
	}
	if len(docs[2].Pages) != 1 {
		t.Fatalf("doc 2 pages = %d, want 1", len(docs[2].Pages))
	}

	if got := DecodeDocuments([]byte(`{`)); got != nil {
		t.Fatalf("invalid JSON should return nil, got %v", got)
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := (Document{Title: " Deck "}).DisplayTitle(); got != "Deck" {
		t.Errorf("got %q", got)
	}
	if got := (Document{DocumentID: "d9"}).DisplayTitle(); got != "d9" {
		t.Errorf("got %q", got)
	}
	if got := (Document{}).DisplayTitle(); got != "untitled document" {
		t.Errorf("got %q", got)
	}
}
