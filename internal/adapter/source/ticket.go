package source

import (
	"fmt"

	"workflowai/internal/domain"
	"workflowai/internal/port"
)

// TicketSource renders tickets from the ticketing system as records,
// one single-line summary per ticket.
type TicketSource struct {
	client port.TicketSource
	query  string
	limit  int
}

func NewTicketSource(client port.TicketSource, query string, limit int) *TicketSource {
	if limit <= 0 {
		limit = 100
	}
	return &TicketSource{client: client, query: query, limit: limit}
}

func (s *TicketSource) Name() string {
	return "ticket"
}

func (s *TicketSource) Fetch() ([]domain.Record, error) {
	tickets, err := s.client.Search(s.query, s.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: ticketing: %v", domain.ErrSourceUnavailable, err)
	}

	records := make([]domain.Record, 0, len(tickets))
	for _, t := range tickets {
		records = append(records, domain.Record{
			Text: renderTicket(t),
			Kind: domain.SourceTicket,
			Attributes: map[string]string{
				"number": t.Number,
				"state":  t.State,
			},
		})
	}
	return records, nil
}

func renderTicket(t domain.Ticket) string {
	return fmt.Sprintf("[Ticket] %s | %s | %s | state:%s | updated:%s",
		t.Number, t.ShortDescription, t.Description, t.State, t.UpdatedAt.Format(timestampLayout))
}
