package openrates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchLatest_ParsesRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("base"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"amount":1.0,"base":"USD","date":"2024-06-14","rates":{"EUR":0.9321,"JPY":157.3}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	table, err := client.FetchLatest(context.Background(), "USD")
	require.NoError(t, err)

	assert.Equal(t, "USD", table.Base)
	assert.Equal(t, "2024-06-14", table.AsOf.Format("2006-01-02"))

	eur, ok := table.Rate("EUR")
	require.True(t, ok)
	assert.Equal(t, "0.9321", eur.String())

	// 100.00 USD in JPY, truncated to whole minor units
	converted, err := table.Convert(10000, "USD", "JPY")
	require.NoError(t, err)
	assert.Equal(t, int64(1573000), converted)
}

func TestFetchLatest_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchLatest(context.Background(), "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
