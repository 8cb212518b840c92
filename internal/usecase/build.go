package usecase

import (
	"fmt"
	"log"

	"workflowai/internal/adapter/store"
	"workflowai/internal/domain"
	"workflowai/internal/port"
)

// Builder orchestrates a full index build: fetch records from the
// selected sources, chunk, embed, and persist a fresh index at an
// explicit location. A rebuild replaces the prior index atomically.
type Builder struct {
	sources   []port.RecordSource
	chunker   port.Chunker
	embedder  port.Embedder
	batchSize int
	progress  func(done, total int)
}

func NewBuilder(sources []port.RecordSource, chunker port.Chunker, embedder port.Embedder) *Builder {
	return &Builder{
		sources:   sources,
		chunker:   chunker,
		embedder:  embedder,
		batchSize: 100,
	}
}

// SetBatchSize overrides the embedding batch size.
func (b *Builder) SetBatchSize(n int) {
	if n > 0 {
		b.batchSize = n
	}
}

// SetProgress installs a callback invoked after each embedded batch
// with the number of chunks embedded so far and the total.
func (b *Builder) SetProgress(fn func(done, total int)) {
	b.progress = fn
}

// Build produces a fresh persisted index at location. A failing source
// is logged and contributes nothing; all sources empty is a fatal
// ErrNoContent, surfaced before the index layer is touched.
func (b *Builder) Build(location string) (*domain.BuildReport, error) {
	report := &domain.BuildReport{
		RecordsBySource: make(map[domain.SourceKind]int),
		Location:        location,
	}

	var records []domain.Record
	for _, src := range b.sources {
		recs, err := src.Fetch()
		if err != nil {
			log.Printf("source %s unavailable, continuing without it: %v", src.Name(), err)
			continue
		}
		for _, r := range recs {
			report.RecordsBySource[r.Kind]++
		}
		records = append(records, recs...)
	}
	report.TotalRecords = len(records)

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no document found and no dynamic source returned entries", domain.ErrNoContent)
	}

	chunks, err := b.chunker.Split(records)
	if err != nil {
		return nil, err
	}
	report.TotalChunks = len(chunks)

	vectors, err := b.embedChunks(chunks)
	if err != nil {
		return nil, err
	}

	entries := make([]store.Entry, len(chunks))
	for i := range chunks {
		entries[i] = store.Entry{Chunk: chunks[i], Vector: vectors[i]}
	}

	if err := store.Create(location, b.embedder.ModelName(), b.embedder.Dimension(), entries); err != nil {
		return nil, err
	}
	return report, nil
}

func (b *Builder) embedChunks(chunks []domain.Chunk) ([][]float32, error) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += b.batchSize {
		end := i + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := b.embedder.Embed(texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("embedding chunks %d-%d: %w", i, end, err)
		}
		if len(batch) != end-i {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(batch), end-i)
		}
		vectors = append(vectors, batch...)

		if b.progress != nil {
			b.progress(end, len(texts))
		}
	}
	return vectors, nil
}
