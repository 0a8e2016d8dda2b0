// Package model defines the core types shared across the intake pipeline.
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// PropertyType selects the enrichment variant and pricing table.
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "Residential"
	PropertyTypeCommercial  PropertyType = "Commercial"
)

// Submission is the raw estimate request as posted by the web form.
// It is immutable once received; the pipeline only derives from it.
type Submission struct {
	// ID is assigned at intake for log correlation. Not part of the form.
	ID string `json:"-"`

	FirstName           string       `json:"first_name,omitempty"`
	LastName            string       `json:"last_name,omitempty"`
	PropertyAddress     string       `json:"property_address"`
	PropertyType        PropertyType `json:"property_type"`
	ServicesRequested   []string     `json:"services_requested"`
	CompanyName         string       `json:"company_name,omitempty"`
	Email               string       `json:"email,omitempty"`
	Phone               string       `json:"phone,omitempty"`
	EstimatedSqft       FlexFloat    `json:"estimated_sqft,omitempty"`
	SpecialConditions   string       `json:"special_conditions,omitempty"`
	AccessNotes         string       `json:"access_notes,omitempty"`
	TimingPreference    string       `json:"timing_preference,omitempty"`
	Source              string       `json:"source,omitempty"`
	SubmissionTimestamp string       `json:"submission_timestamp,omitempty"`
}

// PreferredContact returns the submitter's preferred contact channel:
// email, falling back to phone, falling back to "n/a".
func (s Submission) PreferredContact() string {
	if s.Email != "" {
		return s.Email
	}
	if s.Phone != "" {
		return s.Phone
	}
	return "n/a"
}

// FlexFloat is a float64 that tolerates loosely-typed form input: JSON
// numbers, numeric strings, and null all decode. Anything that does not
// parse as a finite number decodes to zero, which the pipeline treats as
// unresolved.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	s := string(data)
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// NormalizedAddress is the structured postal record derived once per
// submission from Submission.PropertyAddress. The JSON keys match the
// normalization backend's contract.
type NormalizedAddress struct {
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	FullAddress   string `json:"full_address"`
	IsValid       bool   `json:"isValid"`
	IsAmbiguous   bool   `json:"isAmbiguous"`
}

// DisplayAddress returns the best label for the property: street address,
// falling back to the full address string.
func (a NormalizedAddress) DisplayAddress() string {
	if a.StreetAddress != "" {
		return a.StreetAddress
	}
	return a.FullAddress
}

// EnrichmentResult holds supplementary property/contact data from the
// third-party lookup selected by property type. Residential lookups fill
// the owner/property fields; commercial lookups fill the company/contact
// fields. NeedsReview marks a failed or unconfigured lookup.
type EnrichmentResult struct {
	NeedsReview bool     `json:"needsReview"`
	Errors      []string `json:"errors,omitempty"`

	// Residential
	OwnerName     string  `json:"owner_name,omitempty"`
	Sqft          float64 `json:"sqft,omitempty"`
	LotSize       string  `json:"lot_size,omitempty"`
	AssessedValue string  `json:"assessed_value,omitempty"`

	// Commercial
	CompanyName string `json:"company_name,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	JobTitle    string `json:"job_title,omitempty"`

	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// DocResult is the outcome of estimate document generation. An empty URL
// signals failure; the orchestrator treats that as degraded, not fatal.
type DocResult struct {
	URL   string `json:"url"`
	DocID string `json:"doc_id"`
}
