package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"workflowai/internal/domain"
)

var (
	bucketMeta    = []byte("meta")
	bucketEntries = []byte("entries")

	keyDimension = []byte("dimension")
	keyModel     = []byte("model")
)

// Entry is one (vector, chunk) pair to be persisted.
type Entry struct {
	Chunk  domain.Chunk
	Vector []float32
}

type storedEntry struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	Text       string            `json:"text"`
	Offset     int               `json:"offset"`
	Attributes map[string]string `json:"attrs,omitempty"`
	Vector     []float32         `json:"vector"`
}

// Index is an opened, read-only vector index. Entries are held in
// memory in insertion order; Search is safe for concurrent use.
type Index struct {
	db        *bbolt.DB
	dimension int
	model     string
	chunks    []domain.Chunk
	vectors   [][]float32
}

// Create builds a fresh index file at location, atomically replacing
// any previous index there. The index is written to a temporary
// sibling file first and renamed into place, so a concurrent reader
// observes either the old or the new index, never a partial write.
func Create(location, model string, dimension int, entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: at %s", domain.ErrEmptyIndex, location)
	}
	for i, e := range entries {
		if len(e.Vector) != dimension {
			return fmt.Errorf("entry %d: vector dimension mismatch: expected %d, got %d", i, dimension, len(e.Vector))
		}
	}

	if err := os.MkdirAll(filepath.Dir(location), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	tmp := fmt.Sprintf("%s.tmp-%s", location, uuid.NewString())
	if err := writeIndexFile(tmp, model, dimension, entries); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, location); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace index at %s: %w", location, err)
	}
	return nil
}

func writeIndexFile(path, model string, dimension int, entries []Entry) error {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer db.Close()

	return db.Update(func(tx *bbolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		if err := meta.Put(keyDimension, encodeInt(dimension)); err != nil {
			return err
		}
		if err := meta.Put(keyModel, []byte(model)); err != nil {
			return err
		}

		bucket, err := tx.CreateBucketIfNotExists(bucketEntries)
		if err != nil {
			return err
		}
		for i, e := range entries {
			stored := storedEntry{
				ID:         e.Chunk.ID,
				Kind:       string(e.Chunk.Kind),
				Text:       e.Chunk.Text,
				Offset:     e.Chunk.Offset,
				Attributes: e.Chunk.Attributes,
				Vector:     e.Vector,
			}
			data, err := json.Marshal(stored)
			if err != nil {
				return err
			}
			// Sequential keys preserve insertion order, which breaks
			// similarity ties at query time.
			if err := bucket.Put(encodeInt(i), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Open loads a previously persisted index for querying.
func Open(location string) (*Index, error) {
	if _, err := os.Stat(location); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: at %s (run a build first)", domain.ErrIndexNotFound, location)
	}

	db, err := bbolt.Open(location, 0600, &bbolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open index at %s: %w", location, err)
	}

	idx := &Index{db: db}
	if err := idx.load(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *Index) load() error {
	return idx.db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if meta == nil {
			return fmt.Errorf("%w: missing metadata", domain.ErrIndexNotFound)
		}
		idx.dimension = decodeInt(meta.Get(keyDimension))
		idx.model = string(meta.Get(keyModel))

		entries := tx.Bucket(bucketEntries)
		if entries == nil {
			return fmt.Errorf("%w: missing entries", domain.ErrIndexNotFound)
		}
		return entries.ForEach(func(k, v []byte) error {
			var stored storedEntry
			if err := json.Unmarshal(v, &stored); err != nil {
				return fmt.Errorf("corrupt index entry: %w", err)
			}
			idx.chunks = append(idx.chunks, domain.Chunk{
				ID:         stored.ID,
				Kind:       domain.SourceKind(stored.Kind),
				Text:       stored.Text,
				Offset:     stored.Offset,
				Attributes: stored.Attributes,
			})
			idx.vectors = append(idx.vectors, stored.Vector)
			return nil
		})
	})
}

// Search returns up to k chunks ranked by decreasing cosine similarity
// to the query vector. Ties keep insertion order.
func (idx *Index) Search(query []float32, k int) ([]domain.ScoredChunk, error) {
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("query dimension mismatch: index has %d, query has %d", idx.dimension, len(query))
	}
	if k <= 0 {
		return nil, nil
	}

	results := make([]domain.ScoredChunk, len(idx.chunks))
	for i := range idx.chunks {
		results[i] = domain.ScoredChunk{
			Chunk: idx.chunks[i],
			Score: cosineSimilarity(query, idx.vectors[i]),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of entries in the index.
func (idx *Index) Count() int {
	return len(idx.chunks)
}

// Dimension returns the index's declared vector dimension.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// ModelName returns the embedding model the index was built with.
func (idx *Index) ModelName() string {
	return idx.model
}

func (idx *Index) Close() error {
	return idx.db.Close()
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func encodeInt(n int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(n))
	return buf
}

func decodeInt(data []byte) int {
	if len(data) != 8 {
		return 0
	}
	return int(binary.BigEndian.Uint64(data))
}
