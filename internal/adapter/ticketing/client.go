// Package ticketing provides the ticketing-system collaborator: an
// HTTP client for a ServiceNow-style table API and a deterministic
// mock for offline use.
package ticketing

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"workflowai/internal/domain"
)

// Client queries incidents over the ServiceNow table API.
type Client struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

type incidentResponse struct {
	Result []incidentRow `json:"result"`
}

type incidentRow struct {
	Number           string `json:"number"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	State            string `json:"state"`
	SysUpdatedOn     string `json:"sys_updated_on"`
}

func NewClient(baseURL, username, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		client:   &http.Client{Timeout: timeout},
	}
}

// Search returns up to limit incidents matching the query expression.
func (c *Client) Search(query string, limit int) ([]domain.Ticket, error) {
	params := url.Values{}
	if query != "" {
		params.Set("sysparm_query", query)
	}
	params.Set("sysparm_limit", strconv.Itoa(limit))

	req, err := http.NewRequest("GET", c.baseURL+"/api/now/table/incident?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ticketing API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed incidentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(parsed.Result))
	for _, row := range parsed.Result {
		updated, _ := time.Parse("2006-01-02 15:04:05", row.SysUpdatedOn)
		tickets = append(tickets, domain.Ticket{
			Number:           row.Number,
			ShortDescription: row.ShortDescription,
			Description:      row.Description,
			State:            row.State,
			UpdatedAt:        updated,
		})
	}
	return tickets, nil
}
