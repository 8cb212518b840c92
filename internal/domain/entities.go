package domain

import "time"

// SourceKind identifies the origin of a Record.
type SourceKind string

const (
	SourceDocument SourceKind = "document"
	SourceAudit    SourceKind = "audit"
	SourceTicket   SourceKind = "ticket"
)

// Record is one normalized unit of source text before chunking.
// Attributes carry provenance (item key, ticket number, timestamp)
// for filtering and debugging; they never influence ranking.
type Record struct {
	Text       string
	Kind       SourceKind
	Attributes map[string]string
}

// Chunk is a bounded-size slice of a Record's text. It carries a copy
// of the Record's attributes and its rune offset within the Record.
type Chunk struct {
	ID         string
	Kind       SourceKind
	Text       string
	Offset     int
	Attributes map[string]string
}

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// AuditEntry is one row of the operational audit trail.
type AuditEntry struct {
	Timestamp     time.Time
	Actor         string
	ActionType    string
	ItemType      string
	ItemKey       string
	ResultMessage string
	TicketNumber  string
}

// Ticket is one incident from the ticketing system.
type Ticket struct {
	Number           string
	ShortDescription string
	Description      string
	State            string
	UpdatedAt        time.Time
}

// BuildReport summarizes an index build for the caller.
type BuildReport struct {
	RecordsBySource map[SourceKind]int
	TotalRecords    int
	TotalChunks     int
	Location        string
}
