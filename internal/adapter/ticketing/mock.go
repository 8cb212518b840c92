package ticketing

import (
	"fmt"
	"time"

	"workflowai/internal/domain"
)

// Mock returns deterministic fake incidents so the full pipeline can
// run without a ticketing backend. Numbers start at INC1000 and every
// other ticket is Closed, which keeps retrieval tests reproducible.
type Mock struct {
	updatedAt time.Time
}

func NewMock() *Mock {
	return &Mock{
		updatedAt: time.Date(2025, 10, 30, 10, 0, 0, 0, time.UTC),
	}
}

func (m *Mock) Search(query string, limit int) ([]domain.Ticket, error) {
	tickets := make([]domain.Ticket, 0, limit)
	for i := 0; i < limit; i++ {
		state := "Open"
		if i%2 == 0 {
			state = "Closed"
		}
		tickets = append(tickets, domain.Ticket{
			Number:           fmt.Sprintf("INC%d", 1000+i),
			ShortDescription: fmt.Sprintf("Workflow issue %d", i),
			Description:      fmt.Sprintf("Workflow failed for PO%d", 1000+i),
			State:            state,
			UpdatedAt:        m.updatedAt,
		})
	}
	return tickets, nil
}
