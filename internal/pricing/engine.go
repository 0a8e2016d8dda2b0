// Package pricing maps a property type and requested services to priced
// line items and a total, substituting fallback assumptions when required
// inputs are missing.
package pricing

import (
	"math"
	"strings"

	"github.com/sells-group/estimate-intake/internal/model"
)

// defaultResidentialSqft is substituted when a residential submission
// resolves no square footage from the form or enrichment.
const defaultResidentialSqft = 2500

// roundEpsilon nudges values off binary-representation boundaries before
// rounding so 2-decimal currency rounding never truncates (e.g. 1.005).
const roundEpsilon = 1e-9

// rate prices one service. usesSqft marks rates whose output depends on
// the resolved square footage, so an unresolved value counts as an
// assumption.
type rate struct {
	fn       func(sqft float64) float64
	usesSqft bool
}

func flat(price float64) rate {
	return rate{fn: func(float64) float64 { return price }}
}

func perSqft(floor, perSq float64) rate {
	return rate{
		fn:       func(sqft float64) float64 { return math.Max(floor, perSq*sqft) },
		usesSqft: true,
	}
}

var residentialRates = map[string]rate{
	"House Washing":     perSqft(250, 0.10),
	"Driveway Cleaning": flat(150),
	"Sidewalk Cleaning": flat(75),
	"Deck Cleaning":     flat(175),
	"Fence Cleaning":    flat(150),
	"Roof Cleaning":     flat(400),
	"Gutter Cleaning":   flat(150),
	"Window Cleaning":   flat(150),
	"Patio Cleaning":    flat(150),
}

var commercialRates = map[string]rate{
	"Commercial Building Wash":  perSqft(1000, 0.12),
	"Fleet Washing":             flat(0),
	"Post-Construction Cleanup": flat(0),
}

// ratesFor returns the rate table owned by the property type, or nil for
// unrecognized types.
func ratesFor(propertyType model.PropertyType) map[string]rate {
	switch propertyType {
	case model.PropertyTypeResidential:
		return residentialRates
	case model.PropertyTypeCommercial:
		return commercialRates
	default:
		return nil
	}
}

// Compute prices the requested services for the given property type.
// Service names are trimmed and empty entries dropped; duplicates are
// preserved and priced per occurrence. suppliedSqft takes precedence over
// enrichedSqft; zero means unresolved. Pure function of its inputs.
func Compute(propertyType model.PropertyType, services []string, suppliedSqft, enrichedSqft float64) model.PricingResult {
	result := model.PricingResult{
		LineItems: []model.LineItem{},
	}

	resolved := suppliedSqft
	if resolved == 0 {
		resolved = enrichedSqft
	}
	if resolved == 0 && propertyType == model.PropertyTypeResidential {
		resolved = defaultResidentialSqft
		result.HasAssumptions = true
	}
	result.ResolvedSqft = resolved

	rates := ratesFor(propertyType)

	var total float64
	for _, name := range NormalizeServices(services) {
		var unitPrice float64
		r, known := rates[name]
		if known {
			unitPrice = r.fn(resolved)
			if r.usesSqft && resolved == 0 {
				result.HasAssumptions = true
			}
		} else {
			// Unknown or unsupported service: priced at zero for review.
			result.HasAssumptions = true
		}

		total += unitPrice
		result.LineItems = append(result.LineItems, model.LineItem{
			Name:      name,
			Qty:       1,
			UnitPrice: RoundCurrency(unitPrice),
			Total:     RoundCurrency(unitPrice),
		})
	}

	result.EstimatedTotal = RoundCurrency(total)
	return result
}

// NormalizeServices trims each entry and drops empties. Duplicates are
// intentionally kept: each listed occurrence becomes its own line item.
func NormalizeServices(services []string) []string {
	out := make([]string, 0, len(services))
	for _, s := range services {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// RoundCurrency rounds half-up to 2 decimal places.
func RoundCurrency(v float64) float64 {
	return math.Round((v+roundEpsilon)*100) / 100
}
