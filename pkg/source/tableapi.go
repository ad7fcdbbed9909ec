package source

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.airtable.com/v0"

type TableClient struct {
	apiKey     string
	baseID     string
	table      string
	baseURL    string
	httpClient *http.Client
}

func NewTableClient(apiKey, baseID, table string) *TableClient {
	return &TableClient{
		apiKey:     apiKey,
		baseID:     baseID,
		table:      table,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *TableClient) Name() string {
	return "airtable"
}

func (c *TableClient) FetchPage(offset string, pageSize int) (*Page, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(pageSize))
	if offset != "" {
		q.Set("offset", offset)
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.baseID, url.PathEscape(c.table), q.Encode())

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("source request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source fetch: unexpected status %d", resp.StatusCode)
	}

	var raw tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("source decode: %w", err)
	}

	return &Page{Rows: raw.Records, NextOffset: raw.Offset}, nil
}

type tableResponse struct {
	Records []Row  `json:"records"`
	Offset  string `json:"offset"`
}
