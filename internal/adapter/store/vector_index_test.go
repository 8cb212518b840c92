package store

import (
	"errors"
	"path/filepath"
	"testing"

	"workflowai/internal/domain"
)

func testEntries() []Entry {
	return []Entry{
		{Chunk: domain.Chunk{ID: "a", Kind: domain.SourceDocument, Text: "alpha"}, Vector: []float32{1, 0, 0}},
		{Chunk: domain.Chunk{ID: "b", Kind: domain.SourceAudit, Text: "beta"}, Vector: []float32{0, 1, 0}},
		{Chunk: domain.Chunk{ID: "c", Kind: domain.SourceTicket, Text: "gamma"}, Vector: []float32{0, 0, 1}},
	}
}

func TestCreateAndOpen(t *testing.T) {
	location := filepath.Join(t.TempDir(), "index.db")

	if err := Create(location, "hash-embedder", 3, testEntries()); err != nil {
		t.Fatal(err)
	}

	idx, err := Open(location)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	if idx.Count() != 3 {
		t.Errorf("expected 3 entries, got %d", idx.Count())
	}
	if idx.Dimension() != 3 {
		t.Errorf("expected dimension 3, got %d", idx.Dimension())
	}
	if idx.ModelName() != "hash-embedder" {
		t.Errorf("expected model hash-embedder, got %s", idx.ModelName())
	}
}

func TestCreateEmptyFails(t *testing.T) {
	location := filepath.Join(t.TempDir(), "index.db")

	err := Create(location, "hash-embedder", 3, nil)
	if !errors.Is(err, domain.ErrEmptyIndex) {
		t.Fatalf("expected ErrEmptyIndex, got %v", err)
	}
}

func TestCreateDimensionMismatch(t *testing.T) {
	location := filepath.Join(t.TempDir(), "index.db")

	entries := []Entry{
		{Chunk: domain.Chunk{ID: "a", Text: "alpha"}, Vector: []float32{1, 0}},
	}
	if err := Create(location, "m", 3, entries); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "never-built.db"))
	if !errors.Is(err, domain.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestSearchRankingAndLimit(t *testing.T) {
	location := filepath.Join(t.TempDir(), "index.db")
	if err := Create(location, "m", 3, testEntries()); err != nil {
		t.Fatal(err)
	}
	idx, err := Open(location)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	results, err := idx.Search([]float32{0.9, 0.1, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.ID != "a" {
		t.Errorf("expected nearest chunk a, got %s", results[0].Chunk.ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not in non-increasing score order at %d", i)
		}
	}
}

func TestSearchReturnsAllWhenKExceedsCount(t *testing.T) {
	location := filepath.Join(t.TempDir(), "index.db")
	if err := Create(location, "m", 3, testEntries()); err != nil {
		t.Fatal(err)
	}
	idx, err := Open(location)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	results, err := idx.Search([]float32{1, 1, 1}, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected all 3 entries, got %d", len(results))
	}
}

func TestSearchTiesKeepInsertionOrder(t *testing.T) {
	location := filepath.Join(t.TempDir(), "index.db")

	// Two identical vectors score identically against any query.
	entries := []Entry{
		{Chunk: domain.Chunk{ID: "first", Text: "one"}, Vector: []float32{1, 1, 0}},
		{Chunk: domain.Chunk{ID: "second", Text: "two"}, Vector: []float32{1, 1, 0}},
	}
	if err := Create(location, "m", 3, entries); err != nil {
		t.Fatal(err)
	}
	idx, err := Open(location)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	results, err := idx.Search([]float32{1, 1, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Chunk.ID != "first" || results[1].Chunk.ID != "second" {
		t.Errorf("tie not broken by insertion order: %s, %s", results[0].Chunk.ID, results[1].Chunk.ID)
	}
}

func TestSearchQueryDimensionMismatch(t *testing.T) {
	location := filepath.Join(t.TempDir(), "index.db")
	if err := Create(location, "m", 3, testEntries()); err != nil {
		t.Fatal(err)
	}
	idx, err := Open(location)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	if _, err := idx.Search([]float32{1, 0}, 1); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestRebuildReplacesAtomically(t *testing.T) {
	location := filepath.Join(t.TempDir(), "index.db")

	if err := Create(location, "m", 3, testEntries()); err != nil {
		t.Fatal(err)
	}

	replacement := []Entry{
		{Chunk: domain.Chunk{ID: "z", Kind: domain.SourceDocument, Text: "zeta"}, Vector: []float32{0, 1, 1}},
	}
	if err := Create(location, "m", 3, replacement); err != nil {
		t.Fatal(err)
	}

	idx, err := Open(location)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	if idx.Count() != 1 {
		t.Fatalf("expected rebuilt index with 1 entry, got %d", idx.Count())
	}
	results, err := idx.Search([]float32{0, 1, 1}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Chunk.ID != "z" {
		t.Error("rebuilt index still serves pre-rebuild entries")
	}
}

func TestAttributesSurviveRoundTrip(t *testing.T) {
	location := filepath.Join(t.TempDir(), "index.db")

	entries := []Entry{
		{
			Chunk: domain.Chunk{
				ID:         "a",
				Kind:       domain.SourceAudit,
				Text:       "retry of PO12345",
				Attributes: map[string]string{"item_key": "PO12345", "actor": "ops"},
			},
			Vector: []float32{1, 0, 0},
		},
	}
	if err := Create(location, "m", 3, entries); err != nil {
		t.Fatal(err)
	}
	idx, err := Open(location)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	results, err := idx.Search([]float32{1, 0, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	got := results[0].Chunk
	if got.Attributes["item_key"] != "PO12345" || got.Kind != domain.SourceAudit {
		t.Errorf("provenance lost in round trip: %+v", got)
	}
}
