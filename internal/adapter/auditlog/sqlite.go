// Package auditlog is the operational audit-trail collaborator, backed
// by a local SQLite database. The production system writes this table
// from workflow operations; here it is also writable through the CLI so
// a demo can populate the dynamic source.
package auditlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"workflowai/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS wf_audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	log_timestamp TEXT NOT NULL,
	user_name TEXT NOT NULL,
	action_type TEXT NOT NULL,
	item_type TEXT,
	item_key TEXT,
	result_message TEXT,
	ticket_number TEXT
)`

const timestampLayout = "2006-01-02 15:04:05"

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the audit log database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating audit log directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating audit log schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Append records an entry. A zero timestamp is stamped with the
// current time.
func (s *Store) Append(e domain.AuditEntry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO wf_audit_log
		(log_timestamp, user_name, action_type, item_type, item_key, result_message, ticket_number)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts.Format(timestampLayout), e.Actor, e.ActionType, e.ItemType, e.ItemKey, e.ResultMessage, e.TicketNumber,
	)
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}

// FetchRecent returns the most recent entries, newest first.
func (s *Store) FetchRecent(limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
		SELECT log_timestamp, user_name, action_type, item_type, item_key, result_message, ticket_number
		FROM wf_audit_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var ts string
		var itemType, itemKey, result, ticket sql.NullString
		if err := rows.Scan(&ts, &e.Actor, &e.ActionType, &itemType, &itemKey, &result, &ticket); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.Timestamp, _ = time.Parse(timestampLayout, ts)
		e.ItemType = itemType.String
		e.ItemKey = itemKey.String
		e.ResultMessage = result.String
		e.TicketNumber = ticket.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading audit entries: %w", err)
	}
	return entries, nil
}
