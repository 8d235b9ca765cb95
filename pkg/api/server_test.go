package api

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/variantdb/pkg/storage"
)

func TestRoutes_Authentication(t *testing.T) {
	env := setupTestServer(t, nil)

	tests := []struct {
		name           string
		path           string
		apiKey         string
		expectedStatus int
	}{
		{name: "health with key", path: "/api/v1/health", apiKey: testAPIKey, expectedStatus: http.StatusOK},
		{name: "health without key", path: "/api/v1/health", expectedStatus: http.StatusUnauthorized},
		{name: "list with wrong key", path: "/api/v1/variants", apiKey: "nope", expectedStatus: http.StatusUnauthorized},
		{name: "metrics without key", path: "/metrics", expectedStatus: http.StatusOK},
		{name: "swagger without key", path: "/swagger/index.html", expectedStatus: http.StatusOK},
		{name: "unknown swagger path", path: "/swagger/other", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set(apiKeyHeader, tt.apiKey)
			}
			w := httptest.NewRecorder()
			env.handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(env.server.metrics.authRequestsTotal.WithLabelValues(statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.server.metrics.authRequestsTotal.WithLabelValues(statusError)))
}

func TestRoutes_MetricsEndpoint(t *testing.T) {
	env := setupTestServer(t, nil)
	metadata, value := sampleObject()
	env.do(t, "POST", "/api/v1/decode", VariantRequest{Value: value, Metadata: metadata})

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `variantdb_decode_total{format="json",result="ok"} 1`)
	assert.Contains(t, body, "variantdb_http_requests_total")
}

func TestRoutes_SwaggerJSON(t *testing.T) {
	env := setupTestServer(t, nil)

	req := httptest.NewRequest("GET", "/swagger/swagger.json", nil)
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Swagger  string                 `json:"swagger"`
		BasePath string                 `json:"basePath"`
		Paths    map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Contains(t, doc.Paths, "/decode")
	assert.Contains(t, doc.Paths, "/variants/{id}")
}

func TestStartServer_Shutdown(t *testing.T) {
	store, err := storage.Open(t.TempDir(), nil)
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServerFactory().CreateServerStarter().StartServer(ctx, store, ServerConfig{
			Bind:   "127.0.0.1",
			Port:   0,
			APIKey: testAPIKey,
		})
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStartServer_BindError(t *testing.T) {
	l, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	port := l.Addr().(*net.TCPAddr).Port
	err = StartServer(context.Background(), nil, ServerConfig{Bind: "127.0.0.1", Port: port})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "serve"))
}

func TestSwaggerUI(t *testing.T) {
	env := setupTestServer(t, nil)

	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/swagger/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "swagger-ui")
}
