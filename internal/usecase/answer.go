package usecase

import (
	"errors"
	"fmt"
	"strings"

	"workflowai/internal/adapter/store"
	"workflowai/internal/domain"
	"workflowai/internal/port"
)

const answerSystemPrompt = "You are a workflow operations assistant. " +
	"Answer the question using only the provided context from the knowledge base. " +
	"If the context does not contain the answer, say you don't know."

// Answerer runs the per-query retrieval-answering pipeline against a
// previously built index.
type Answerer struct {
	embedder  port.Embedder
	generator port.Generator
}

func NewAnswerer(embedder port.Embedder, generator port.Generator) *Answerer {
	return &Answerer{embedder: embedder, generator: generator}
}

// Answer opens the index at location, retrieves the top-k chunks for
// the query, and delegates to the generator for the final answer.
func (a *Answerer) Answer(query, location string, k int) (string, error) {
	chunks, err := a.Retrieve(query, location, k)
	if err != nil {
		return "", err
	}

	var context strings.Builder
	for i, c := range chunks {
		if i > 0 {
			context.WriteString("\n\n")
		}
		context.WriteString(c.Chunk.Text)
	}

	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", context.String(), query)

	answer, err := a.generator.Generate(answerSystemPrompt, userPrompt)
	if err != nil {
		if errors.Is(err, domain.ErrGenerationFailed) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	return answer, nil
}

// Retrieve returns the top-k chunks for the query without generating
// an answer.
func (a *Answerer) Retrieve(query, location string, k int) ([]domain.ScoredChunk, error) {
	idx, err := store.Open(location)
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	// The query must be embedded with the model the index was built
	// with; mixing models produces meaningless distances.
	if idx.ModelName() != a.embedder.ModelName() {
		return nil, fmt.Errorf("index at %s was built with model %q but the configured embedder is %q",
			location, idx.ModelName(), a.embedder.ModelName())
	}
	if idx.Dimension() != a.embedder.Dimension() {
		return nil, fmt.Errorf("index dimension %d does not match embedder dimension %d",
			idx.Dimension(), a.embedder.Dimension())
	}

	vectors, err := a.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: embedder returned no vector for query", domain.ErrEmbeddingUnavailable)
	}

	return idx.Search(vectors[0], k)
}
