package gdocs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), nil,
		WithHTTPClient(srv.Client()),
		WithEndpoint(srv.URL))
	require.NoError(t, err)
	return client
}

func TestNewClient_BadCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), []byte("not json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse service account credentials")
}

func TestCreateDocument(t *testing.T) {
	var gotTitle string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotTitle, _ = body["title"].(string)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documentId":"doc-1"}`))
	}))

	docID, err := client.CreateDocument(context.Background(), "Estimate – 123 Oak St")

	require.NoError(t, err)
	assert.Equal(t, "doc-1", docID)
	assert.Equal(t, "Estimate – 123 Oak St", gotTitle)
}

func TestCreateDocument_NoID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))

	_, err := client.CreateDocument(context.Background(), "t")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no document id")
}

func TestInsertText(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))

	err := client.InsertText(context.Background(), "doc-1", "Estimate Summary\n")

	require.NoError(t, err)
	requests, ok := gotBody["requests"].([]any)
	require.True(t, ok)
	require.Len(t, requests, 1)
	insert := requests[0].(map[string]any)["insertText"].(map[string]any)
	assert.Equal(t, "Estimate Summary\n", insert["text"])
	assert.Equal(t, float64(1), insert["location"].(map[string]any)["index"])
}

func TestMoveToFolder(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"doc-1","parents":["folder-1"]}`))
	}))

	err := client.MoveToFolder(context.Background(), "doc-1", "folder-1")

	require.NoError(t, err)
	assert.Contains(t, gotQuery, "addParents=folder-1")
	assert.Contains(t, gotQuery, "removeParents=root")
}

func TestMoveToFolder_Error(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
	}))

	err := client.MoveToFolder(context.Background(), "doc-1", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "move to folder")
}
