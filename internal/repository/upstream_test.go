package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*UpstreamClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewUpstreamClient(server.URL, 2*time.Second, DefaultRetryPolicy(3, time.Millisecond), nil, zap.NewNop())
	return client, server
}

func TestUpstreamClientDecodesJSON(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teachers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Alice"}]`))
	}))

	var payload []map[string]interface{}
	err := client.GetJSON(context.Background(), "/teachers", nil, &payload)
	require.NoError(t, err)
	require.Len(t, payload, 1)
	assert.Equal(t, "Alice", payload[0]["name"])
}

func TestUpstreamClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))

	var payload map[string]bool
	err := client.GetJSON(context.Background(), "/bookings", nil, &payload)
	require.NoError(t, err)
	assert.True(t, payload["ok"])
	assert.Equal(t, int32(3), calls.Load())
}

func TestUpstreamClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.GetJSON(context.Background(), "/bookings", nil, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestUpstreamClientGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.GetJSON(context.Background(), "/bookings", nil, nil)
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}
