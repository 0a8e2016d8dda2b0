package rentcast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyLookup(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody LookupRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"ownerName":"Jane Smith","squareFeet":1850}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")

	rec, err := client.PropertyLookup(context.Background(), LookupRequest{Address: "123 Oak St"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "123 Oak St", gotBody.Address)
	assert.Equal(t, "Jane Smith", rec["ownerName"])
	assert.Equal(t, float64(1850), rec["squareFeet"])
}

func TestPropertyLookup_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no match", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k")

	_, err := client.PropertyLookup(context.Background(), LookupRequest{Address: "nowhere"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestPropertyLookup_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k")

	_, err := client.PropertyLookup(context.Background(), LookupRequest{Address: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal response")
}

func TestPropertyLookup_ContextCanceled(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "k")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.PropertyLookup(ctx, LookupRequest{Address: "x"})

	require.Error(t, err)
}
