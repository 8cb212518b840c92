package port

import "workflowai/internal/domain"

type Chunker interface {
	Split(records []domain.Record) ([]domain.Chunk, error)
}
