package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perkgrid/internal/eventdata"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithRetryMax(0), WithRetryWait(time.Millisecond, time.Millisecond)}, opts...)
	return New(srv.URL, opts...)
}

func TestClient_URL(t *testing.T) {
	assert.Equal(t, "http://api.test/api/v1/perk_grids/abc.json", New("http://api.test").URL("abc"))
	assert.Equal(t, "http://api.test/api/v1/perk_grids/a%2Fb.json", New("http://api.test/").URL("a/b"))
	assert.Equal(t, DefaultAPIRoot+"api/v1/perk_grids/x.json", New("").URL("x"))
}

func TestClient_FetchSuccess(t *testing.T) {
	sample := eventdata.Sample()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/perk_grids/sample.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(sample))
	})

	data, err := client.Fetch(context.Background(), "sample")
	require.NoError(t, err)
	assert.Equal(t, sample, data)
}

func TestClient_FetchNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	})

	_, err := client.Fetch(context.Background(), "missing")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
	assert.Equal(t, `Problem fetching data for event id "missing", error={"error":"not found"}`, fetchErr.Message)
	assert.True(t, IsFetchError(err))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(eventdata.Sample())
	}, WithRetryMax(1))

	_, err := client.Fetch(context.Background(), "sample")
	require.NoError(t, err)
	assert.EqualValues(t, 2, attempts.Load())
}

func TestClient_ServerErrorAfterRetriesKeepsStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}, WithRetryMax(1))

	_, err := client.Fetch(context.Background(), "x")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.Status)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(srv.URL, WithRetryMax(0)).Fetch(context.Background(), "x")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.Status)
	assert.Contains(t, fetchErr.Message, `Problem fetching data for event id "x", error=`)
	assert.NotNil(t, fetchErr.Unwrap())
}

func TestClient_InvalidBodyIsTypeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": 1}`))
	})

	_, err := client.Fetch(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, eventdata.IsTypeError(err))
	assert.False(t, IsFetchError(err))
	assert.Equal(t, "Expected event.name to be a string, not 1", err.Error())
}

func TestClient_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
