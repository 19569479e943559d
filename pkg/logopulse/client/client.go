// Package client implements the submitting side of the label-detection
// protocol: validating and keying a submission, uploading it through
// the relay, and polling for the result with a bounded attempt budget.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
)

// DefaultHTTPTimeout bounds each individual request to the relay.
const DefaultHTTPTimeout = 30 * time.Second

// Client talks to the relay API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a client for the relay at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Upload submits image bytes under the given submission key and
// returns the work identifier for the detection job. A response whose
// identifier is missing or the "unknown" sentinel fails with
// logopulse.ErrMalformedUploadResult; it must never be polled.
func (c *Client) Upload(ctx context.Context, key, contentType string, data io.Reader) (*logopulse.UploadResult, error) {
	uploadURL := c.baseURL + "/upload/" + url.PathEscape(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &logopulse.TransportError{Op: "upload", URL: uploadURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &logopulse.TransportError{Op: "upload", URL: uploadURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &logopulse.UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	var result logopulse.UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if !result.Valid() {
		return nil, logopulse.ErrMalformedUploadResult
	}

	return &result, nil
}

// GetResult queries the result for one work identifier. A 404 answer
// means the job is still processing and is reported as
// logopulse.ErrResultNotReady, which callers retry rather than fail.
func (c *Client) GetResult(ctx context.Context, imageID string) (*logopulse.Label, error) {
	resultURL := c.baseURL + "/results/" + url.PathEscape(imageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resultURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create result request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &logopulse.TransportError{Op: "results", URL: resultURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &logopulse.TransportError{Op: "results", URL: resultURL, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, logopulse.ErrResultNotReady
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &logopulse.UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	var label logopulse.Label
	if err := json.Unmarshal(body, &label); err != nil {
		return nil, fmt.Errorf("failed to decode result response: %w", err)
	}

	return &label, nil
}

// ListHistory fetches all prior submissions, in the order the relay
// returned them, each already enriched with its display URL.
func (c *Client) ListHistory(ctx context.Context) ([]logopulse.HistoryRecord, error) {
	historyURL := c.baseURL + "/history"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, historyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create history request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &logopulse.TransportError{Op: "history", URL: historyURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &logopulse.TransportError{Op: "history", URL: historyURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &logopulse.UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	var records []logopulse.HistoryRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to decode history response: %w", err)
	}

	return records, nil
}
