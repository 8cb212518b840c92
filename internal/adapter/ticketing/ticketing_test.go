package ticketing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMockDeterministic(t *testing.T) {
	m := NewMock()

	first, err := m.Search("workflow", 4)
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Search("workflow", 4)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != 4 {
		t.Fatalf("expected 4 tickets, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("ticket %d differs between calls", i)
		}
	}

	if first[0].Number != "INC1000" || first[0].State != "Closed" {
		t.Errorf("unexpected first ticket: %+v", first[0])
	}
	if first[1].State != "Open" {
		t.Errorf("expected alternating states, got %+v", first[1])
	}
}

func TestClientSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/now/table/incident" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("sysparm_limit") != "2" {
			t.Errorf("unexpected limit %s", r.URL.Query().Get("sysparm_limit"))
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "demo" || pass != "secret" {
			t.Error("missing basic auth")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]string{
				{
					"number":            "INC2001",
					"short_description": "Stuck approval",
					"description":       "Approval stuck for PO777",
					"state":             "Open",
					"sys_updated_on":    "2026-02-10 12:00:00",
				},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "demo", "secret", 5*time.Second)
	tickets, err := c.Search("active=true", 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(tickets))
	}
	if tickets[0].Number != "INC2001" || tickets[0].State != "Open" {
		t.Errorf("unexpected ticket: %+v", tickets[0])
	}
	want := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	if !tickets[0].UpdatedAt.Equal(want) {
		t.Errorf("updated_at not parsed: %v", tickets[0].UpdatedAt)
	}
}

func TestClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL, "demo", "secret", 5*time.Second)
	if _, err := c.Search("", 10); err == nil {
		t.Fatal("expected error on 503")
	}
}
