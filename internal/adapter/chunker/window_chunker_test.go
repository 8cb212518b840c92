package chunker

import (
	"errors"
	"strings"
	"testing"

	"workflowai/internal/domain"
)

func TestNewWindowChunkerValidation(t *testing.T) {
	cases := []struct {
		name    string
		maxSize int
		overlap int
		wantErr bool
	}{
		{"valid", 100, 20, false},
		{"zero overlap", 100, 0, false},
		{"overlap equals size", 100, 100, true},
		{"overlap exceeds size", 100, 150, true},
		{"negative overlap", 100, -1, true},
		{"zero size", 0, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWindowChunker(tc.maxSize, tc.overlap)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidChunkConfig) {
					t.Fatalf("expected ErrInvalidChunkConfig, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestShortRecordSingleChunk(t *testing.T) {
	c := mustChunker(t, 100, 20)

	rec := domain.Record{
		Text:       "a short record",
		Kind:       domain.SourceAudit,
		Attributes: map[string]string{"item_key": "PO12345"},
	}

	chunks, err := c.Split([]domain.Record{rec})
	if err != nil {
		t.Fatal(err)
	}

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != rec.Text {
		t.Errorf("chunk text %q != record text %q", chunks[0].Text, rec.Text)
	}
	if chunks[0].Kind != domain.SourceAudit {
		t.Errorf("expected kind audit, got %s", chunks[0].Kind)
	}
	if chunks[0].Attributes["item_key"] != "PO12345" {
		t.Error("attributes not copied onto chunk")
	}
}

func TestEmptyRecordNoChunks(t *testing.T) {
	c := mustChunker(t, 100, 20)

	chunks, err := c.Split([]domain.Record{{Text: "", Kind: domain.SourceDocument}})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestOverlapAndReconstruction(t *testing.T) {
	const maxSize, overlap = 20, 5
	c := mustChunker(t, maxSize, overlap)

	text := strings.Repeat("abcdefghij", 7) // 70 chars, not a window multiple
	chunks, err := c.Split([]domain.Record{{Text: text, Kind: domain.SourceDocument}})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, ch := range chunks {
		if len([]rune(ch.Text)) > maxSize {
			t.Errorf("chunk %d exceeds max size: %d", i, len(ch.Text))
		}
		if i == 0 {
			continue
		}
		prev := []rune(chunks[i-1].Text)
		cur := []rune(ch.Text)
		tail := string(prev[len(prev)-overlap:])
		head := string(cur[:overlap])
		if tail != head {
			t.Errorf("chunk %d overlap mismatch: %q vs %q", i, tail, head)
		}
	}

	// Concatenating the non-overlapping spans reconstructs the text.
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0].Text)
	for _, ch := range chunks[1:] {
		runes := []rune(ch.Text)
		rebuilt.WriteString(string(runes[overlap:]))
	}
	if rebuilt.String() != text {
		t.Errorf("reconstruction mismatch:\nwant %q\ngot  %q", text, rebuilt.String())
	}
}

func TestChunkOffsetsAdvanceByStep(t *testing.T) {
	c := mustChunker(t, 10, 4)

	text := strings.Repeat("x", 25)
	chunks, _ := c.Split([]domain.Record{{Text: text, Kind: domain.SourceDocument}})

	for i, ch := range chunks {
		want := i * 6 // maxSize - overlap
		if ch.Offset != want {
			t.Errorf("chunk %d offset = %d, want %d", i, ch.Offset, want)
		}
	}
}

func TestSourceOrderPreserved(t *testing.T) {
	c := mustChunker(t, 100, 10)

	records := []domain.Record{
		{Text: "first", Kind: domain.SourceDocument},
		{Text: "second", Kind: domain.SourceAudit},
		{Text: "third", Kind: domain.SourceTicket},
	}
	chunks, err := c.Split(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, want := range []string{"first", "second", "third"} {
		if chunks[i].Text != want {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i].Text, want)
		}
	}
}

func mustChunker(t *testing.T, maxSize, overlap int) *WindowChunker {
	t.Helper()
	c, err := NewWindowChunker(maxSize, overlap)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
