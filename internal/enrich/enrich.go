// Package enrich augments a submission with third-party property or
// contact data, selected by property type. Connector failures convert to
// a needs-review result; nothing here ever aborts the pipeline.
package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/estimate-intake/internal/model"
	"github.com/sells-group/estimate-intake/pkg/lusha"
	"github.com/sells-group/estimate-intake/pkg/rentcast"
)

// Enricher holds the per-property-type lookup clients. A nil client marks
// that backend as unconfigured.
type Enricher struct {
	rentcast rentcast.Client
	lusha    lusha.Client
}

// New creates an Enricher. Either client may be nil.
func New(rentcastClient rentcast.Client, lushaClient lusha.Client) *Enricher {
	return &Enricher{rentcast: rentcastClient, lusha: lushaClient}
}

// Residential looks up owner and property data for a residential address.
func (e *Enricher) Residential(ctx context.Context, addr model.NormalizedAddress, sub model.Submission) model.EnrichmentResult {
	if e == nil || e.rentcast == nil {
		return model.EnrichmentResult{
			NeedsReview: true,
			Errors:      []string{"RentCast API not configured."},
		}
	}

	address := addr.FullAddress
	if address == "" {
		address = sub.PropertyAddress
	}

	rec, err := e.rentcast.PropertyLookup(ctx, rentcast.LookupRequest{Address: address})
	if err != nil {
		zap.L().Warn("enrich: rentcast lookup failed", zap.Error(err))
		return model.EnrichmentResult{
			NeedsReview: true,
			Errors:      []string{"RentCast request failed."},
		}
	}

	return model.EnrichmentResult{
		OwnerName:     stringField(rec, "owner_name", "ownerName"),
		Email:         stringField(rec, "email"),
		Phone:         stringField(rec, "phone"),
		Sqft:          numberField(rec, "sqft", "squareFeet"),
		LotSize:       stringField(rec, "lot_size", "lotSize"),
		AssessedValue: stringField(rec, "assessed_value", "assessedValue"),
	}
}

// Commercial looks up company and contact data for a commercial property.
func (e *Enricher) Commercial(ctx context.Context, addr model.NormalizedAddress, sub model.Submission) model.EnrichmentResult {
	if e == nil || e.lusha == nil {
		return model.EnrichmentResult{
			NeedsReview: true,
			Errors:      []string{"Lusha API not configured."},
		}
	}

	rec, err := e.lusha.ContactLookup(ctx, lusha.LookupRequest{
		CompanyName: sub.CompanyName,
		Address:     addr.StreetAddress,
		City:        addr.City,
		State:       addr.State,
	})
	if err != nil {
		zap.L().Warn("enrich: lusha lookup failed", zap.Error(err))
		return model.EnrichmentResult{
			NeedsReview: true,
			Errors:      []string{"Lusha request failed."},
		}
	}

	result := model.EnrichmentResult{
		CompanyName: stringField(rec, "company_name", "companyName"),
		ContactName: stringField(rec, "contact_name", "name"),
		JobTitle:    stringField(rec, "job_title", "title"),
		Email:       stringField(rec, "email"),
		Phone:       stringField(rec, "phone"),
	}
	if result.CompanyName == "" {
		result.CompanyName = sub.CompanyName
	}
	return result
}
