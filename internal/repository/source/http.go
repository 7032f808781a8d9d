package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

// maxDocumentBytes caps the size of a fetched data resource.
const maxDocumentBytes = 16 << 20

// HTTP fetches the data resource with a single GET.
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP creates an HTTP source. A nil client falls back to http.DefaultClient.
func NewHTTP(url string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{url: url, client: client}
}

// Name identifies the source in logs and metrics.
func (h *HTTP) Name() string { return "http" }

// Load fetches and decodes the resource. Non-2xx responses are failures.
func (h *HTTP) Load(ctx context.Context) ([]restaurant.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, http.NoBody)
	if err != nil {
		return nil, &Error{Source: h.Name(), Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &Error{Source: h.Name(), Err: fmt.Errorf("fetch %s: %w", h.url, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Source: h.Name(), Err: fmt.Errorf("fetch %s: unexpected status %d", h.url, resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, &Error{Source: h.Name(), Err: fmt.Errorf("read body: %w", err)}
	}
	records, err := Decode(data)
	if err != nil {
		return nil, &Error{Source: h.Name(), Err: err}
	}
	return records, nil
}
