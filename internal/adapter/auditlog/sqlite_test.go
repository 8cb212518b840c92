package auditlog

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"workflowai/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndFetchRecent(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := s.Append(domain.AuditEntry{
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
			Actor:         "ops",
			ActionType:    "RetryWorkflow",
			ItemType:      "PO",
			ItemKey:       fmt.Sprintf("PO%d", 1000+i),
			ResultMessage: "retried",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.FetchRecent(3)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].ItemKey != "PO1004" {
		t.Errorf("expected newest entry first, got %s", entries[0].ItemKey)
	}
	if entries[2].ItemKey != "PO1002" {
		t.Errorf("expected PO1002 last, got %s", entries[2].ItemKey)
	}
	if !entries[0].Timestamp.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("timestamp not round-tripped: %v", entries[0].Timestamp)
	}
}

func TestFetchRecentEmpty(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.FetchRecent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestAppendStampsZeroTimestamp(t *testing.T) {
	s := openTestStore(t)

	if err := s.Append(domain.AuditEntry{Actor: "system", ActionType: "RAGQuery"}); err != nil {
		t.Fatal(err)
	}

	entries, err := s.FetchRecent(1)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("expected a stamped timestamp")
	}
}
