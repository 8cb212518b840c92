package port

import "workflowai/internal/domain"

// RecordSource produces the records of one origin (document, audit
// trail, or tickets). A failing source returns an error; the builder
// treats that as an empty contribution rather than aborting the build.
type RecordSource interface {
	// Name identifies the source in logs and build reports.
	Name() string

	// Fetch returns the source's current records. Order is
	// source-defined and preserved through chunking.
	Fetch() ([]domain.Record, error)
}

// AuditLog is the operational audit-trail collaborator.
type AuditLog interface {
	// FetchRecent returns the most recent entries, newest first.
	FetchRecent(limit int) ([]domain.AuditEntry, error)
}

// TicketSource is the external ticketing collaborator.
type TicketSource interface {
	// Search returns up to limit tickets matching the query expression.
	Search(query string, limit int) ([]domain.Ticket, error)
}
