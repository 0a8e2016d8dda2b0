// Package pipeline orchestrates the processing of one accepted submission:
// address normalization, enrichment, pricing, document generation, and CRM
// writes. Stage failures accumulate as flags; only intake validation is
// fatal, and that happens before the pipeline runs.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/estimate-intake/internal/docgen"
	"github.com/sells-group/estimate-intake/internal/model"
	"github.com/sells-group/estimate-intake/internal/pricing"
)

// Flag texts for degraded stages. The merged flag list is a de-duplicated
// set, so stages may raise the same text independently.
const (
	FlagAddressInvalid    = "Address format could not be validated."
	FlagAddressAmbiguous  = "Address appears ambiguous and needs review."
	FlagRentCastFailed    = "RentCast enrichment failed."
	FlagLushaFailed       = "Lusha enrichment failed."
	FlagPricingAssumed    = "Pricing assumptions applied."
	FlagDocCreationFailed = "Google Doc creation failed."
)

// AddressNormalizer resolves raw address text into a structured record.
type AddressNormalizer interface {
	Normalize(ctx context.Context, raw string) model.NormalizedAddress
}

// Enricher augments a submission with third-party data by property type.
type Enricher interface {
	Residential(ctx context.Context, addr model.NormalizedAddress, sub model.Submission) model.EnrichmentResult
	Commercial(ctx context.Context, addr model.NormalizedAddress, sub model.Submission) model.EnrichmentResult
}

// DocGenerator writes the estimate summary document.
type DocGenerator interface {
	Generate(ctx context.Context, docCtx docgen.Context) model.DocResult
}

// CRMConnector pushes contact, estimate, and fallback records to the CRM.
type CRMConnector interface {
	UpsertContact(ctx context.Context, sub model.Submission, addr model.NormalizedAddress, docURL string) string
	AddNote(ctx context.Context, contactID, note string)
	CreateDraftEstimate(ctx context.Context, contactID string, addr model.NormalizedAddress, pricing model.PricingResult, docURL string) bool
	CreateOpportunityFallback(ctx context.Context, contactID string, addr model.NormalizedAddress, pricing model.PricingResult, docURL string)
}

// Pipeline runs the submission stages strictly sequentially.
type Pipeline struct {
	normalizer AddressNormalizer
	enricher   Enricher
	docs       DocGenerator
	crm        CRMConnector
}

// New creates a Pipeline with all stage dependencies.
func New(normalizer AddressNormalizer, enricher Enricher, docs DocGenerator, crm CRMConnector) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		enricher:   enricher,
		docs:       docs,
		crm:        crm,
	}
}

// Result captures everything one pipeline run derived. External systems
// are the record of truth; this exists for logging and tests.
type Result struct {
	Normalized      model.NormalizedAddress
	Enrichment      model.EnrichmentResult
	Pricing         model.PricingResult
	Doc             model.DocResult
	ContactID       string
	EstimateCreated bool
	Flags           []string
}

// Process runs the full pipeline for one submission. It never returns an
// error: every downstream failure is converted to a flag and processing
// continues. The caller has already answered the HTTP request, so the
// only observable outputs are side effects and the final warning log.
func (p *Pipeline) Process(ctx context.Context, sub model.Submission) *Result {
	log := zap.L().With(
		zap.String("submission_id", sub.ID),
		zap.String("property_type", string(sub.PropertyType)),
	)
	log.Info("pipeline: processing submission")

	var flags []string

	normalized := p.normalizer.Normalize(ctx, sub.PropertyAddress)
	if !normalized.IsValid {
		flags = append(flags, FlagAddressInvalid)
	}
	if normalized.IsAmbiguous {
		flags = append(flags, FlagAddressAmbiguous)
	}

	// Enrichment is skipped entirely for unrecognized property types.
	var enrichment model.EnrichmentResult
	switch sub.PropertyType {
	case model.PropertyTypeResidential:
		enrichment = p.enricher.Residential(ctx, normalized, sub)
		if enrichment.NeedsReview {
			flags = append(flags, FlagRentCastFailed)
		}
	case model.PropertyTypeCommercial:
		enrichment = p.enricher.Commercial(ctx, normalized, sub)
		if enrichment.NeedsReview {
			flags = append(flags, FlagLushaFailed)
		}
	}

	// The submitted square footage takes precedence over enrichment.
	priced := pricing.Compute(sub.PropertyType, sub.ServicesRequested, float64(sub.EstimatedSqft), enrichment.Sqft)
	if priced.HasAssumptions {
		flags = append(flags, FlagPricingAssumed)
	}

	doc := p.docs.Generate(ctx, docgen.Context{
		Submission: sub,
		Normalized: normalized,
		Enrichment: enrichment,
		Pricing:    priced,
		ErrorFlags: flags,
	})
	if doc.URL == "" {
		flags = append(flags, FlagDocCreationFailed)
	}

	contactID := p.crm.UpsertContact(ctx, sub, normalized, doc.URL)

	if contactID != "" {
		docLabel := doc.URL
		if docLabel == "" {
			docLabel = "(missing)"
		}
		note := fmt.Sprintf("Estimate doc ready: %s. Preferred contact: %s.", docLabel, sub.PreferredContact())
		p.crm.AddNote(ctx, contactID, note)
	}

	estimateCreated := p.crm.CreateDraftEstimate(ctx, contactID, normalized, priced, doc.URL)
	if !estimateCreated {
		p.crm.CreateOpportunityFallback(ctx, contactID, normalized, priced, doc.URL)
	}

	finalFlags := MergeFlags(flags, enrichment.Errors)
	if len(finalFlags) > 0 {
		log.Warn("pipeline: submission processed with flags", zap.Strings("flags", finalFlags))
	} else {
		log.Info("pipeline: submission processed clean")
	}

	return &Result{
		Normalized:      normalized,
		Enrichment:      enrichment,
		Pricing:         priced,
		Doc:             doc,
		ContactID:       contactID,
		EstimateCreated: estimateCreated,
		Flags:           finalFlags,
	}
}
