package docgen

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sells-group/estimate-intake/internal/model"
)

// Context is the full accumulated pipeline state rendered into the
// estimate document.
type Context struct {
	Submission model.Submission
	Normalized model.NormalizedAddress
	Enrichment model.EnrichmentResult
	Pricing    model.PricingResult
	ErrorFlags []string
}

// Title returns the document title for the estimate.
func (c Context) Title() string {
	addr := c.Normalized.StreetAddress
	if addr == "" {
		addr = c.Submission.PropertyAddress
	}
	return "Estimate – " + addr
}

// BuildContent renders the plain-text estimate summary inserted into the
// document body.
func BuildContent(c Context) string {
	var b strings.Builder

	address := c.Normalized.FullAddress
	if address == "" {
		address = c.Submission.PropertyAddress
	}

	residential := c.Submission.PropertyType == model.PropertyTypeResidential

	ownerOrContact := c.Enrichment.OwnerName
	if !residential {
		ownerOrContact = c.Enrichment.ContactName
		if ownerOrContact == "" {
			ownerOrContact = c.Enrichment.CompanyName
		}
	}

	var contactParts []string
	for _, v := range []string{c.Submission.Email, c.Submission.Phone} {
		if v != "" {
			contactParts = append(contactParts, v)
		}
	}

	b.WriteString("Estimate Summary\n")
	fmt.Fprintf(&b, "Address: %s\n", address)
	fmt.Fprintf(&b, "Property type: %s\n", c.Submission.PropertyType)
	fmt.Fprintf(&b, "Owner / Contact / Company: %s\n", ownerOrContact)
	fmt.Fprintf(&b, "Phone / Email: %s\n\n", strings.Join(contactParts, " / "))

	b.WriteString("Services Requested\n")
	if len(c.Submission.ServicesRequested) == 0 {
		b.WriteString("-\n")
	} else {
		for _, svc := range c.Submission.ServicesRequested {
			fmt.Fprintf(&b, "- %s\n", svc)
		}
	}
	b.WriteString("\n")

	b.WriteString("Pricing Table\n")
	b.WriteString("Service | Qty | Unit Price | Total\n")
	if len(c.Pricing.LineItems) == 0 {
		b.WriteString("-\n")
	} else {
		for _, item := range c.Pricing.LineItems {
			fmt.Fprintf(&b, "%s | %d | $%.2f | $%.2f\n", item.Name, item.Qty, item.UnitPrice, item.Total)
		}
	}
	fmt.Fprintf(&b, "Estimated Total: $%.2f\n\n", c.Pricing.EstimatedTotal)

	b.WriteString("Enrichment Details\n")
	if residential {
		sqft := c.Enrichment.Sqft
		if sqft == 0 {
			sqft = c.Pricing.ResolvedSqft
		}
		fmt.Fprintf(&b, "Owner name: %s\n", c.Enrichment.OwnerName)
		fmt.Fprintf(&b, "Sqft: %s\n", formatNumber(sqft))
		fmt.Fprintf(&b, "Lot size: %s\n", c.Enrichment.LotSize)
		fmt.Fprintf(&b, "Assessed value: %s\n", c.Enrichment.AssessedValue)
	} else {
		companyName := c.Enrichment.CompanyName
		if companyName == "" {
			companyName = c.Submission.CompanyName
		}
		fmt.Fprintf(&b, "Company name: %s\n", companyName)
		fmt.Fprintf(&b, "Contact: %s\n", c.Enrichment.ContactName)
		fmt.Fprintf(&b, "Job title: %s\n", c.Enrichment.JobTitle)
		fmt.Fprintf(&b, "Email: %s\n", c.Enrichment.Email)
		fmt.Fprintf(&b, "Phone: %s\n", c.Enrichment.Phone)
	}
	b.WriteString("\n")

	b.WriteString("Field Notes\n")
	fmt.Fprintf(&b, "Special conditions: %s\n", c.Submission.SpecialConditions)
	fmt.Fprintf(&b, "Access notes: %s\n", c.Submission.AccessNotes)
	fmt.Fprintf(&b, "Timing preference: %s\n\n", c.Submission.TimingPreference)

	if c.Submission.PropertyType == model.PropertyTypeCommercial {
		fmt.Fprintf(&b, "Commercial Measurement Link: https://www.google.com/maps?q=%s&t=k\n\n",
			url.QueryEscape(address))
	}

	source := c.Submission.Source
	if source == "" {
		source = "web_form"
	}
	b.WriteString("Metadata\n")
	fmt.Fprintf(&b, "Source: %s\n", source)
	fmt.Fprintf(&b, "Submission timestamp: %s\n", c.Submission.SubmissionTimestamp)
	b.WriteString("Tag: auto estimate\n")
	if len(c.ErrorFlags) > 0 {
		fmt.Fprintf(&b, "Error flags: %s\n", strings.Join(c.ErrorFlags, "; "))
	} else {
		b.WriteString("Error flags: none\n")
	}

	return b.String()
}

// formatNumber prints a float without a trailing ".0" for whole values.
func formatNumber(v float64) string {
	if v == 0 {
		return ""
	}
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
