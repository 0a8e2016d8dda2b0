// Package leadconnector wraps the LeadConnector (HighLevel) REST API
// operations used by the CRM connector.
package leadconnector

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

const defaultBaseURL = "https://services.leadconnectorhq.com"

// Client defines the LeadConnector API operations used by this application.
type Client interface {
	UpsertContact(ctx context.Context, req ContactUpsertRequest) (*ContactUpsertResponse, error)
	SetCustomField(ctx context.Context, contactID string, req CustomFieldRequest) error
	CreateNote(ctx context.Context, contactID string, req NoteRequest) error
	CreateEstimate(ctx context.Context, req EstimateRequest) error
	CreateOpportunity(ctx context.Context, req OpportunityRequest) error
	CreateTask(ctx context.Context, req TaskRequest) error
}

// ContactUpsertRequest is the payload for POST /contacts/upsert.
type ContactUpsertRequest struct {
	LocationID string   `json:"locationId"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Address1   string   `json:"address1"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postalCode"`
	Tags       []string `json:"tags"`
}

// Contact is the contact record embedded in an upsert response.
type Contact struct {
	ID string `json:"id"`
}

// ContactUpsertResponse is the response from POST /contacts/upsert. The
// API returns the contact either nested or at the top level depending on
// whether the upsert created or matched.
type ContactUpsertResponse struct {
	Contact *Contact `json:"contact"`
	ID      string   `json:"id"`
}

// ContactID returns the contact identifier wherever the API placed it.
func (r *ContactUpsertResponse) ContactID() string {
	if r == nil {
		return ""
	}
	if r.Contact != nil && r.Contact.ID != "" {
		return r.Contact.ID
	}
	return r.ID
}

// CustomFieldRequest is the payload for POST /contacts/{id}/custom-fields.
type CustomFieldRequest struct {
	ContactID   string      `json:"contactId"`
	CustomField CustomField `json:"customField"`
}

// CustomField is a named custom-field value.
type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NoteRequest is the payload for POST /contacts/{id}/notes.
type NoteRequest struct {
	Body   string `json:"body"`
	UserID string `json:"userId"`
}

// EstimateLineItem is one line of an estimate payload.
type EstimateLineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// EstimateRequest is the payload for POST /estimates.
type EstimateRequest struct {
	ContactID  string             `json:"contactId"`
	LocationID string             `json:"locationId"`
	Name       string             `json:"name"`
	Status     string             `json:"status"`
	LineItems  []EstimateLineItem `json:"lineItems"`
	Total      float64            `json:"total"`
	Notes      string             `json:"notes"`
}

// OpportunityRequest is the payload for POST /opportunities.
type OpportunityRequest struct {
	LocationID    string  `json:"locationId"`
	ContactID     string  `json:"contactId"`
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	MonetaryValue float64 `json:"monetaryValue"`
	Notes         string  `json:"notes"`
}

// TaskRequest is the payload for POST /tasks.
type TaskRequest struct {
	LocationID string `json:"locationId"`
	Title      string `json:"title"`
	DueDate    string `json:"dueDate"`
	Body       string `json:"body"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the requests-per-second limit for API calls.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a LeadConnector API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(10, 10),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) UpsertContact(ctx context.Context, req ContactUpsertRequest) (*ContactUpsertResponse, error) {
	var resp ContactUpsertResponse
	if err := c.post(ctx, "/contacts/upsert", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) SetCustomField(ctx context.Context, contactID string, req CustomFieldRequest) error {
	return c.post(ctx, "/contacts/"+contactID+"/custom-fields", req, nil)
}

func (c *httpClient) CreateNote(ctx context.Context, contactID string, req NoteRequest) error {
	return c.post(ctx, "/contacts/"+contactID+"/notes", req, nil)
}

func (c *httpClient) CreateEstimate(ctx context.Context, req EstimateRequest) error {
	return c.post(ctx, "/estimates", req, nil)
}

func (c *httpClient) CreateOpportunity(ctx context.Context, req OpportunityRequest) error {
	return c.post(ctx, "/opportunities", req, nil)
}

func (c *httpClient) CreateTask(ctx context.Context, req TaskRequest) error {
	return c.post(ctx, "/tasks", req, nil)
}

// post sends a JSON payload and decodes the response into out when
// provided. Any non-2xx status is an error.
func (c *httpClient) post(ctx context.Context, path string, payload, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "leadconnector: rate limit")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrap(err, "leadconnector: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "leadconnector: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return eris.Wrap(err, "leadconnector: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "leadconnector: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return eris.Errorf("leadconnector: unexpected status %d on %s: %s", resp.StatusCode, path, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return eris.Wrap(err, "leadconnector: unmarshal response")
		}
	}

	return nil
}
