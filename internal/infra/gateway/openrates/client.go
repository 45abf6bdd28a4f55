// Package openrates fetches daily fiat exchange rates from a
// Frankfurter-compatible HTTP API.
package openrates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook/finbook/internal/platform/rates"
)

const (
	defaultBaseURL = "https://api.frankfurter.dev/v1"
	requestTimeout = 10 * time.Second
)

// Client represents a rates API client
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new rates API client. An empty baseURL selects the
// public Frankfurter endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: baseURL,
	}
}

// latestResponse is the wire form of the latest-rates endpoint. Rates are
// decoded as json.Number to avoid float rounding before the decimal
// conversion.
type latestResponse struct {
	Base  string                 `json:"base"`
	Date  string                 `json:"date"`
	Rates map[string]json.Number `json:"rates"`
}

// FetchLatest fetches the current rate table for the base currency
func (c *Client) FetchLatest(ctx context.Context, base string) (*rates.Table, error) {
	params := url.Values{}
	params.Set("base", base)

	reqURL := fmt.Sprintf("%s/latest?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var raw latestResponse
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	asOf, err := time.Parse("2006-01-02", raw.Date)
	if err != nil {
		asOf = time.Now().UTC()
	}

	table := &rates.Table{
		Base:  raw.Base,
		AsOf:  asOf,
		Rates: make(map[string]decimal.Decimal, len(raw.Rates)),
	}
	for code, num := range raw.Rates {
		d, err := decimal.NewFromString(num.String())
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %w", code, err)
		}
		table.Rates[code] = d
	}

	return table, nil
}

// Ensure Client implements rates.Provider
var _ rates.Provider = (*Client)(nil)
