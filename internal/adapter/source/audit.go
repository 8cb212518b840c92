package source

import (
	"fmt"

	"workflowai/internal/domain"
	"workflowai/internal/port"
)

const timestampLayout = "2006-01-02 15:04:05"

// AuditSource renders the most recent audit-trail entries as records,
// one single-line summary per entry.
type AuditSource struct {
	log   port.AuditLog
	limit int
}

func NewAuditSource(log port.AuditLog, limit int) *AuditSource {
	if limit <= 0 {
		limit = 200
	}
	return &AuditSource{log: log, limit: limit}
}

func (s *AuditSource) Name() string {
	return "audit"
}

func (s *AuditSource) Fetch() ([]domain.Record, error) {
	entries, err := s.log.FetchRecent(s.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: audit log: %v", domain.ErrSourceUnavailable, err)
	}

	records := make([]domain.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, domain.Record{
			Text: RenderAuditEntry(e),
			Kind: domain.SourceAudit,
			Attributes: map[string]string{
				"item_key":  e.ItemKey,
				"actor":     e.Actor,
				"timestamp": e.Timestamp.Format(timestampLayout),
			},
		})
	}
	return records, nil
}

// RenderAuditEntry formats one audit entry as the single-line summary
// that gets indexed.
func RenderAuditEntry(e domain.AuditEntry) string {
	return fmt.Sprintf("[Audit] %s | user:%s | action:%s | item:%s | result:%s | incident:%s",
		e.Timestamp.Format(timestampLayout), e.Actor, e.ActionType, e.ItemKey, e.ResultMessage, e.TicketNumber)
}
