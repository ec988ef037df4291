package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fundwatch/internal/config"
	"fundwatch/internal/errorwrapper"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher() *Fetcher {
	cfg := config.NewDefaultSourceConfig()
	return NewFetcher(&cfg, zerolog.Nop())
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, config.DefaultSourceUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>calls</body></html>"))
	}))
	defer server.Close()

	result, err := newTestFetcher().Fetch(context.Background(), FetchInput{URL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, string(result.Body), "calls")
	assert.Contains(t, result.ContentType, "text/html")
}

func TestFetch_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	input := FetchInput{
		URL:     server.URL,
		Headers: map[string]string{"Accept": "application/json"},
	}
	_, err := newTestFetcher().Fetch(context.Background(), input)
	require.NoError(t, err)
}

func TestFetch_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	result, err := newTestFetcher().Fetch(context.Background(), FetchInput{URL: server.URL})
	require.Error(t, err)
	assert.True(t, errorwrapper.IsHTTPError(err))
	require.NotNil(t, result)
	assert.Equal(t, http.StatusServiceUnavailable, result.StatusCode)
}

func TestFetch_TransportError(t *testing.T) {
	_, err := newTestFetcher().Fetch(context.Background(), FetchInput{URL: "http://127.0.0.1:1/unreachable"})
	require.Error(t, err)
	assert.True(t, errorwrapper.IsNetworkError(err))
}
