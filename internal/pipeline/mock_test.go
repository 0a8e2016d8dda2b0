package pipeline

import (
	"context"

	"github.com/sells-group/estimate-intake/internal/docgen"
	"github.com/sells-group/estimate-intake/internal/model"
)

// mockNormalizer returns a canned address.
type mockNormalizer struct {
	result model.NormalizedAddress
	calls  int
}

func (m *mockNormalizer) Normalize(_ context.Context, _ string) model.NormalizedAddress {
	m.calls++
	return m.result
}

// mockEnricher returns canned enrichment results and records which
// variant was invoked.
type mockEnricher struct {
	residential      model.EnrichmentResult
	commercial       model.EnrichmentResult
	residentialCalls int
	commercialCalls  int
}

func (m *mockEnricher) Residential(_ context.Context, _ model.NormalizedAddress, _ model.Submission) model.EnrichmentResult {
	m.residentialCalls++
	return m.residential
}

func (m *mockEnricher) Commercial(_ context.Context, _ model.NormalizedAddress, _ model.Submission) model.EnrichmentResult {
	m.commercialCalls++
	return m.commercial
}

// mockDocGen returns a canned DocResult and captures the context it saw.
type mockDocGen struct {
	result model.DocResult
	seen   *docgen.Context
}

func (m *mockDocGen) Generate(_ context.Context, docCtx docgen.Context) model.DocResult {
	m.seen = &docCtx
	return m.result
}

// mockCRM records every operation in call order.
type mockCRM struct {
	contactID       string
	estimateSuccess bool

	upsertCalls   int
	notes         []string
	estimateCalls int
	fallbackCalls int
	upsertDocURL  string
}

func (m *mockCRM) UpsertContact(_ context.Context, _ model.Submission, _ model.NormalizedAddress, docURL string) string {
	m.upsertCalls++
	m.upsertDocURL = docURL
	return m.contactID
}

func (m *mockCRM) AddNote(_ context.Context, _ string, note string) {
	m.notes = append(m.notes, note)
}

func (m *mockCRM) CreateDraftEstimate(_ context.Context, _ string, _ model.NormalizedAddress, _ model.PricingResult, _ string) bool {
	m.estimateCalls++
	return m.estimateSuccess
}

func (m *mockCRM) CreateOpportunityFallback(_ context.Context, _ string, _ model.NormalizedAddress, _ model.PricingResult, _ string) {
	m.fallbackCalls++
}
