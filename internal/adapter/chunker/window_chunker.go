package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"workflowai/internal/domain"
)

// WindowChunker splits record text into overlapping character windows.
// Consecutive chunks of one record share exactly `overlap` runes, so a
// match spanning a cut point survives in at least one chunk.
type WindowChunker struct {
	maxSize int
	overlap int
}

func NewWindowChunker(maxSize, overlap int) (*WindowChunker, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("%w: max size must be positive, got %d", domain.ErrInvalidChunkConfig, maxSize)
	}
	if overlap < 0 || overlap >= maxSize {
		return nil, fmt.Errorf("%w: overlap %d must be in [0, %d)", domain.ErrInvalidChunkConfig, overlap, maxSize)
	}
	return &WindowChunker{maxSize: maxSize, overlap: overlap}, nil
}

// Split chunks every record in order, copying the record's attributes
// onto each resulting chunk. Empty records yield no chunks.
func (c *WindowChunker) Split(records []domain.Record) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for _, rec := range records {
		chunks = append(chunks, c.splitRecord(rec)...)
	}
	return chunks, nil
}

func (c *WindowChunker) splitRecord(rec domain.Record) []domain.Chunk {
	runes := []rune(rec.Text)
	if len(runes) == 0 {
		return nil
	}

	step := c.maxSize - c.overlap
	var chunks []domain.Chunk

	for start := 0; start < len(runes); start += step {
		end := start + c.maxSize
		if end > len(runes) {
			end = len(runes)
		}
		text := string(runes[start:end])

		chunks = append(chunks, domain.Chunk{
			ID:         generateChunkID(rec.Kind, text, start),
			Kind:       rec.Kind,
			Text:       text,
			Offset:     start,
			Attributes: copyAttributes(rec.Attributes),
		})

		if end == len(runes) {
			break
		}
	}

	return chunks
}

func copyAttributes(attrs map[string]string) map[string]string {
	if attrs == nil {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

func generateChunkID(kind domain.SourceKind, text string, offset int) string {
	data := fmt.Sprintf("%s:%d:%s", kind, offset, text)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:8])
}
