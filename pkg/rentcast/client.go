// Package rentcast wraps the RentCast property-data lookup endpoint.
package rentcast

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client performs property lookups against the RentCast API.
type Client interface {
	PropertyLookup(ctx context.Context, req LookupRequest) (Record, error)
}

// LookupRequest is the request body for a property lookup.
type LookupRequest struct {
	Address string `json:"address"`
}

// Record is the loosely-typed lookup response. RentCast is not consistent
// about field naming across endpoints, so callers resolve known aliases.
type Record map[string]any

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the requests-per-second limit for lookups.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

type httpClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a RentCast API client for the given endpoint URL.
func NewClient(endpoint, apiKey string, opts ...Option) Client {
	c := &httpClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(5, 5),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) PropertyLookup(ctx context.Context, req LookupRequest) (Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "rentcast: rate limit")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "rentcast: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "rentcast: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "rentcast: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "rentcast: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("rentcast: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var rec Record
	if err := json.Unmarshal(respBody, &rec); err != nil {
		return nil, eris.Wrap(err, "rentcast: unmarshal response")
	}

	return rec, nil
}
