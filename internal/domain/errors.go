package domain

import "errors"

// Error taxonomy for the build and answer pipelines. Each failure mode
// is a distinct sentinel so the CLI can render an actionable message
// per kind instead of one generic failure.
var (
	// ErrSourceUnavailable indicates a single source adapter failed.
	// The builder absorbs it: the source contributes nothing and the
	// build continues with the remaining sources.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrInvalidChunkConfig indicates the chunk parameters are unusable
	// (overlap >= max size, or a non-positive size). Fatal to the build.
	ErrInvalidChunkConfig = errors.New("invalid chunk configuration")

	// ErrEmbeddingUnavailable indicates the embedding model could not be
	// reached. Fatal to a build and to a query.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

	// ErrNoContent indicates every selected source came back empty, so
	// there is nothing to index. Surfaced before the index layer is
	// touched; distinct from a "successful" empty index.
	ErrNoContent = errors.New("no content to index")

	// ErrEmptyIndex indicates the index layer was asked to persist zero
	// entries.
	ErrEmptyIndex = errors.New("refusing to create empty index")

	// ErrIndexNotFound indicates no index exists at the given location.
	// The caller should run a build first.
	ErrIndexNotFound = errors.New("index not found")

	// ErrGenerationFailed indicates the answer-generation step failed.
	// Not retried.
	ErrGenerationFailed = errors.New("answer generation failed")
)
