package source

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"workflowai/internal/domain"
)

// DocumentSource loads the static reference material. The path may be a
// single document file or a directory tree; a directory is walked and
// filtered with doublestar glob patterns. A missing path is not an
// error: the source simply contributes nothing.
type DocumentSource struct {
	path     string
	includes []string
	excludes []string
}

func NewDocumentSource(path string, includes, excludes []string) *DocumentSource {
	if len(includes) == 0 {
		includes = []string{"**/*.md", "**/*.txt"}
	}
	return &DocumentSource{
		path:     path,
		includes: includes,
		excludes: excludes,
	}
}

func (s *DocumentSource) Name() string {
	return "document"
}

func (s *DocumentSource) Fetch() ([]domain.Record, error) {
	if s.path == "" {
		return nil, nil
	}

	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		log.Printf("document source: %s not found, skipping", s.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("document source: %w", err)
	}

	if !info.IsDir() {
		rec, err := s.readFile(s.path)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}

	paths, err := s.walk(s.path)
	if err != nil {
		return nil, fmt.Errorf("document source: %w", err)
	}

	var records []domain.Record
	for _, p := range paths {
		recs, err := s.readFile(p)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

func (s *DocumentSource) readFile(path string) ([]domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document source: failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return []domain.Record{{
		Text: string(data),
		Kind: domain.SourceDocument,
		Attributes: map[string]string{
			"path": path,
		},
	}}, nil
}

func (s *DocumentSource) walk(root string) ([]string, error) {
	var paths []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if s.matchesAny(s.excludes, relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if s.matchesAny(s.includes, relPath) && !s.matchesAny(s.excludes, relPath) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Walk order is already lexical per directory; sorting the full
	// list keeps record order reproducible across platforms.
	sort.Strings(paths)
	return paths, nil
}

func (s *DocumentSource) matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}
