package model

// LineItem is one priced service entry in an estimate. Quantity is fixed
// at 1 in this domain, so Total always equals UnitPrice.
type LineItem struct {
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// PricingResult is the output of the pricing engine. LineItems preserve
// the order of the requested services after trimming, duplicates included.
type PricingResult struct {
	LineItems      []LineItem `json:"line_items"`
	EstimatedTotal float64    `json:"estimated_total"`
	ResolvedSqft   float64    `json:"resolved_sqft"`
	HasAssumptions bool       `json:"has_assumptions"`
}
