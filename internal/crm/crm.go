// Package crm pushes processed submissions into the LeadConnector CRM.
// Every operation short-circuits to a safe no-op when its backend is
// unconfigured or its preconditions are unmet; a missing credential is a
// normal runtime condition here, not an error.
package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/estimate-intake/internal/model"
	"github.com/sells-group/estimate-intake/pkg/leadconnector"
)

const contactTag = "auto estimate"

// Connector exposes the CRM operations the pipeline needs. A nil client
// marks the backend as unconfigured.
type Connector struct {
	client     leadconnector.Client
	locationID string
	userID     string
}

// New creates a Connector. The client may be nil.
func New(client leadconnector.Client, locationID, userID string) *Connector {
	return &Connector{client: client, locationID: locationID, userID: userID}
}

// UpsertContact creates or updates the CRM contact for the submitter and
// best-effort attaches the estimate document URL as a custom field.
// Returns the contact ID, or "" on any failure or when unconfigured.
func (c *Connector) UpsertContact(ctx context.Context, sub model.Submission, addr model.NormalizedAddress, docURL string) string {
	if c == nil || c.client == nil {
		return ""
	}

	resp, err := c.client.UpsertContact(ctx, leadconnector.ContactUpsertRequest{
		LocationID: c.locationID,
		FirstName:  sub.FirstName,
		LastName:   sub.LastName,
		Email:      sub.Email,
		Phone:      sub.Phone,
		Address1:   addr.StreetAddress,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.ZipCode,
		Tags:       []string{contactTag},
	})
	if err != nil {
		zap.L().Warn("crm: contact upsert failed", zap.Error(err))
		return ""
	}

	contactID := resp.ContactID()
	if contactID == "" {
		return ""
	}

	if docURL != "" {
		fieldErr := c.client.SetCustomField(ctx, contactID, leadconnector.CustomFieldRequest{
			ContactID: contactID,
			CustomField: leadconnector.CustomField{
				Name:  "Estimate Doc URL",
				Value: docURL,
			},
		})
		if fieldErr != nil {
			zap.L().Warn("crm: set custom field failed",
				zap.String("contact_id", contactID), zap.Error(fieldErr))
		}
	}

	return contactID
}

// AddNote attaches a note to the contact. Silently no-ops when the
// contact ID or note text is missing, or when unconfigured.
func (c *Connector) AddNote(ctx context.Context, contactID, note string) {
	if c == nil || c.client == nil || contactID == "" || note == "" {
		return
	}

	err := c.client.CreateNote(ctx, contactID, leadconnector.NoteRequest{
		Body:   note,
		UserID: c.userID,
	})
	if err != nil {
		zap.L().Warn("crm: add note failed", zap.String("contact_id", contactID), zap.Error(err))
	}
}

// CreateDraftEstimate creates a draft estimate from the pricing result.
// Returns whether the CRM reported success.
func (c *Connector) CreateDraftEstimate(ctx context.Context, contactID string, addr model.NormalizedAddress, pricing model.PricingResult, docURL string) bool {
	if c == nil || c.client == nil {
		return false
	}

	items := make([]leadconnector.EstimateLineItem, len(pricing.LineItems))
	for i, item := range pricing.LineItems {
		items[i] = leadconnector.EstimateLineItem{
			Name:     item.Name,
			Price:    item.UnitPrice,
			Quantity: item.Qty,
		}
	}

	err := c.client.CreateEstimate(ctx, leadconnector.EstimateRequest{
		ContactID:  contactID,
		LocationID: c.locationID,
		Name:       "Auto Estimate – " + addr.DisplayAddress(),
		Status:     "draft",
		LineItems:  items,
		Total:      pricing.EstimatedTotal,
		Notes:      docNote(docURL),
	})
	if err != nil {
		zap.L().Warn("crm: create draft estimate failed", zap.Error(err))
		return false
	}
	return true
}

// CreateOpportunityFallback records an open opportunity when the draft
// estimate could not be created, and, only if the opportunity call
// succeeds, a follow-up task carrying the pricing summary.
func (c *Connector) CreateOpportunityFallback(ctx context.Context, contactID string, addr model.NormalizedAddress, pricing model.PricingResult, docURL string) {
	if c == nil || c.client == nil {
		return
	}

	err := c.client.CreateOpportunity(ctx, leadconnector.OpportunityRequest{
		LocationID:    c.locationID,
		ContactID:     contactID,
		Name:          "Estimate – " + addr.DisplayAddress(),
		Status:        "open",
		MonetaryValue: pricing.EstimatedTotal,
		Notes:         docNote(docURL),
	})
	if err != nil {
		zap.L().Warn("crm: fallback opportunity failed", zap.Error(err))
		return
	}

	taskErr := c.client.CreateTask(ctx, leadconnector.TaskRequest{
		LocationID: c.locationID,
		Title:      "Pricing details for " + addr.DisplayAddress(),
		DueDate:    time.Now().UTC().Format(time.RFC3339),
		Body:       TaskBody(pricing, docURL),
	})
	if taskErr != nil {
		zap.L().Warn("crm: fallback task failed", zap.Error(taskErr))
	}
}

// TaskBody renders the plain-text pricing summary carried by a fallback
// task.
func TaskBody(pricing model.PricingResult, docURL string) string {
	var b strings.Builder
	b.WriteString("Estimate items:\n")
	for _, item := range pricing.LineItems {
		fmt.Fprintf(&b, "%s: $%.2f\n", item.Name, item.UnitPrice)
	}
	fmt.Fprintf(&b, "Total: $%.2f\n", pricing.EstimatedTotal)
	fmt.Fprintf(&b, "Doc: %s", docURL)
	return b.String()
}

func docNote(docURL string) string {
	if docURL == "" {
		return ""
	}
	return "Estimate Doc: " + docURL
}
