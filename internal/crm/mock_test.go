package crm

import (
	"context"

	"github.com/sells-group/estimate-intake/pkg/leadconnector"
)

// mockClient records every payload and returns the configured results.
type mockClient struct {
	upsertResp *leadconnector.ContactUpsertResponse
	upsertErr  error
	fieldErr   error
	noteErr    error
	estimateErr    error
	opportunityErr error
	taskErr        error

	upsertReq      *leadconnector.ContactUpsertRequest
	fieldReq       *leadconnector.CustomFieldRequest
	noteReq        *leadconnector.NoteRequest
	noteContactID  string
	estimateReq    *leadconnector.EstimateRequest
	opportunityReq *leadconnector.OpportunityRequest
	taskReq        *leadconnector.TaskRequest
}

func (m *mockClient) UpsertContact(_ context.Context, req leadconnector.ContactUpsertRequest) (*leadconnector.ContactUpsertResponse, error) {
	m.upsertReq = &req
	return m.upsertResp, m.upsertErr
}

func (m *mockClient) SetCustomField(_ context.Context, _ string, req leadconnector.CustomFieldRequest) error {
	m.fieldReq = &req
	return m.fieldErr
}

func (m *mockClient) CreateNote(_ context.Context, contactID string, req leadconnector.NoteRequest) error {
	m.noteContactID = contactID
	m.noteReq = &req
	return m.noteErr
}

func (m *mockClient) CreateEstimate(_ context.Context, req leadconnector.EstimateRequest) error {
	m.estimateReq = &req
	return m.estimateErr
}

func (m *mockClient) CreateOpportunity(_ context.Context, req leadconnector.OpportunityRequest) error {
	m.opportunityReq = &req
	return m.opportunityErr
}

func (m *mockClient) CreateTask(_ context.Context, req leadconnector.TaskRequest) error {
	m.taskReq = &req
	return m.taskErr
}
