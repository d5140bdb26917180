package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"freemodels/internal/metrics"
	"freemodels/pkg/types"
)

// DefaultURL is the public OpenRouter model catalog.
const DefaultURL = "https://openrouter.ai/api/v1/models"

// Client fetches the model catalog with a single unauthenticated GET.
type Client struct {
	url        string
	httpClient *http.Client
}

// New returns a Client for url. A zero timeout leaves the request unbounded.
func New(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout < 0 {
		timeout = 0
	}
	return &Client{url: url, httpClient: &http.Client{Timeout: timeout}}
}

// URL returns the endpoint the client queries.
func (c *Client) URL() string { return c.url }

// Fetch downloads the catalog and returns its records in response order.
func (c *Client) Fetch(ctx context.Context) ([]types.Model, error) {
	start := time.Now()
	models, outcome, err := c.fetch(ctx)
	metrics.ObserveFetch(outcome, time.Since(start))
	return models, err
}

func (c *Client) fetch(ctx context.Context) ([]types.Model, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, metrics.OutcomeTransport, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, metrics.OutcomeTransport, fmt.Errorf("get %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, metrics.OutcomeStatus, statusError{code: resp.StatusCode, status: resp.Status}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, metrics.OutcomeTransport, fmt.Errorf("read body: %w", err)
	}
	models, err := Decode(body)
	switch {
	case err == nil:
		return models, metrics.OutcomeOK, nil
	case IsShape(err):
		return nil, metrics.OutcomeShape, err
	default:
		return nil, metrics.OutcomeDecode, err
	}
}

// Decode parses a catalog body. The top level must be an object whose "data"
// key holds an array; anything else is a shape error. Every record must be an
// object with a string "id". Other record fields are not inspected.
func Decode(body []byte) ([]types.Model, error) {
	if !utf8.Valid(body) {
		return nil, decodeError{err: fmt.Errorf("invalid UTF-8 (%d bytes)", len(body))}
	}
	if !json.Valid(body) {
		return nil, decodeError{err: fmt.Errorf("invalid JSON (%d bytes)", len(body))}
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, errShape("top level is not an object")
	}
	raw, ok := top["data"]
	if !ok {
		return nil, errShape(`missing "data"`)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, errShape(`"data" is not an array`)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, decodeError{err: err}
	}
	models := make([]types.Model, 0, len(records))
	for i, rec := range records {
		m, err := decodeRecord(rec)
		if err != nil {
			return nil, decodeError{err: fmt.Errorf("record %d: %w", i, err)}
		}
		models = append(models, m)
	}
	return models, nil
}

func decodeRecord(rec json.RawMessage) (types.Model, error) {
	rec = bytes.TrimSpace(rec)
	if len(rec) == 0 || rec[0] != '{' {
		return types.Model{}, fmt.Errorf("not an object")
	}
	var fields struct {
		ID           *string         `json:"id"`
		Architecture json.RawMessage `json:"architecture"`
	}
	if err := json.Unmarshal(rec, &fields); err != nil {
		return types.Model{}, err
	}
	if fields.ID == nil {
		return types.Model{}, fmt.Errorf(`missing "id"`)
	}
	return types.Model{ID: *fields.ID, Architecture: fields.Architecture}, nil
}
