package demo

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perkgrid/internal/config"
	"perkgrid/internal/cssclass"
	"perkgrid/internal/eventdata"
	"perkgrid/internal/fetch"
	"perkgrid/internal/render"
	"perkgrid/internal/widget"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T, origins ...string) *Server {
	t.Helper()
	store, err := NewStore("")
	require.NoError(t, err)
	cfg := config.GetDefaultConfig().Demo
	cfg.AllowedOrigins = origins
	return NewServer(cfg, map[string]string{"limitedText": "Few left"}, store)
}

func get(t *testing.T, s *Server, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_GetPerkGrid(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/api/v1/perk_grids/sample.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, s.store.Revision(), w.Header().Get(RevisionHeader))

	data, err := eventdata.Decode(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, eventdata.Sample(), data)
}

func TestServer_GetPerkGridNotFound(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "unknown event", path: "/api/v1/perk_grids/missing.json"},
		{name: "no json suffix", path: "/api/v1/perk_grids/sample"},
		{name: "bare suffix", path: "/api/v1/perk_grids/.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, s, tt.path)
			assert.Equal(t, http.StatusNotFound, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestServer_RequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/healthz", RequestIDHeader, "req-123")
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestServer_CORS(t *testing.T) {
	s := newTestServer(t, "https://docs.example.com")

	w := get(t, s, "/api/v1/perk_grids/sample.json", "Origin", "https://docs.example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://docs.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(t, s, "/api/v1/perk_grids/sample.json", "Origin", "https://elsewhere.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	open := newTestServer(t, "*")
	w = get(t, open, "/api/v1/perk_grids/sample.json", "Origin", "https://elsewhere.example.com")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Healthz(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status   string `json:"status"`
		Fixtures int    `json:"fixtures"`
		Revision string `json:"revision"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 1, body.Fixtures)
	assert.Equal(t, s.store.Revision(), body.Revision)
}

func TestServer_Stylesheet(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/perk-grid.css")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/css"))
	assert.Equal(t, render.DefaultCSS, w.Body.String())
}

func TestServer_GridPage(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/grids/sample?display=grid&grid-title=Sponsors&ignored=1")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "<title>EmberConf</title>")
	assert.Contains(t, body, `<perk-grid `)
	assert.Contains(t, body, `data-event-id="sample"`)
	assert.Contains(t, body, `data-display="grid"`)
	assert.NotContains(t, body, "ignored")
	assert.Contains(t, body, cssclass.Grid)
	assert.Contains(t, body, cssclass.DisplayAsGrid)
	assert.Contains(t, body, "Sponsors")
	assert.Contains(t, body, "Silver")
	assert.Contains(t, body, "Few left", "configured widget defaults apply")
	assert.NotContains(t, body, cssclass.Loading)
	assert.Contains(t, body, `aria-current="page"`)
}

func TestServer_GridPageUnknownEvent(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/grids/missing?error-text=No+such+event")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), cssclass.Error)
	assert.Contains(t, w.Body.String(), "No such event")
}

func TestServer_GridPageDefaultErrorText(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/grids/missing")
	assert.Contains(t, w.Body.String(), widget.DefaultErrorText)
}

func TestServer_Index(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/grids/sample"`)
	assert.Contains(t, w.Body.String(), `href="/api/v1/perk_grids/sample.json"`)
}

func TestServer_ServesTheFetchClient(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	client := fetch.New(ts.URL, fetch.WithRetryMax(0))
	data, err := client.Fetch(context.Background(), eventdata.SampleID)
	require.NoError(t, err)
	assert.Equal(t, eventdata.Sample(), data)

	_, err = client.Fetch(context.Background(), "missing")
	var fetchErr *fetch.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	cfg := config.GetDefaultConfig().Demo
	cfg.Host = "127.0.0.1"
	cfg.Port = freePort(t)
	s := NewServer(cfg, nil, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + s.Addr() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not return")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()
	return ts.Listener.Addr().(*net.TCPAddr).Port
}
