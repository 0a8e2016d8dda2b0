package lusha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactLookup(t *testing.T) {
	var gotAuth string
	var gotBody LookupRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"companyName":"Acme Warehousing","name":"Pat Doe","title":"Facilities Manager"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")

	rec, err := client.ContactLookup(context.Background(), LookupRequest{
		CompanyName: "Acme",
		Address:     "500 Industrial Way",
		City:        "Springfield",
		State:       "IL",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "Acme", gotBody.CompanyName)
	assert.Equal(t, "Springfield", gotBody.City)
	assert.Equal(t, "Acme Warehousing", rec["companyName"])
	assert.Equal(t, "Pat Doe", rec["name"])
}

func TestContactLookup_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k")

	_, err := client.ContactLookup(context.Background(), LookupRequest{CompanyName: "Acme"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
}

func TestContactLookup_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k")

	_, err := client.ContactLookup(context.Background(), LookupRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal response")
}
