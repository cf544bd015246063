package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvuong92/nova/internal/config"
	"github.com/quocvuong92/nova/internal/constants"
)

// captureServer records the last request body and answers with status/body
type captureServer struct {
	*httptest.Server

	mu          sync.Mutex
	lastBody    map[string]interface{}
	lastHeaders http.Header
	lastPath    string
	requests    int
}

func newCaptureServer(t *testing.T, status int, body string) *captureServer {
	t.Helper()
	cs := &captureServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		cs.mu.Lock()
		cs.requests++
		cs.lastHeaders = r.Header.Clone()
		cs.lastPath = r.URL.Path
		cs.lastBody = nil
		_ = json.Unmarshal(raw, &cs.lastBody)
		cs.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(cs.Close)
	return cs
}

// body returns the last decoded request body
func (cs *captureServer) body() map[string]interface{} {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.lastBody
}

func (cs *captureServer) path() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.lastPath
}

func (cs *captureServer) headers() http.Header {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.lastHeaders
}

func (cs *captureServer) count() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.requests
}

func testMessages() []Message {
	return []Message{
		{Role: RoleSystem, Content: "you write shell commands"},
		{Role: RoleUser, Content: "list files"},
	}
}

func newTestOllama(endpoint string) *OllamaClient {
	return NewOllamaClient(config.Config{
		Backend:  constants.BackendOllama,
		Endpoint: endpoint,
		Model:    "gemma3n:e4b",
	}, http.DefaultClient)
}

func TestOllamaClient_Complete(t *testing.T) {
	srv := newCaptureServer(t, http.StatusOK, `{"model":"gemma3n:e4b","message":{"role":"assistant","content":"hello"},"done":true}`)
	client := newTestOllama(srv.URL)

	got, err := client.Complete(context.Background(), testMessages(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, 1, srv.count())

	assert.Equal(t, "gemma3n:e4b", srv.body()["model"])
	assert.Equal(t, false, srv.body()["stream"])
	assert.NotContains(t, srv.body(), "format")

	msgs, ok := srv.body()["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]interface{})["role"])
	assert.Equal(t, "list files", msgs[1].(map[string]interface{})["content"])
}

func TestOllamaClient_Format(t *testing.T) {
	type shape struct {
		Command string `json:"command"`
	}

	tests := []struct {
		name  string
		opts  Options
		check func(t *testing.T, format interface{})
	}{
		{
			name: "json flag",
			opts: Options{JSON: true},
			check: func(t *testing.T, format interface{}) {
				assert.Equal(t, "json", format)
			},
		},
		{
			name: "schema",
			opts: Options{Schema: SchemaFor(&shape{})},
			check: func(t *testing.T, format interface{}) {
				obj, ok := format.(map[string]interface{})
				require.True(t, ok, "format = %T, want object", format)
				assert.Equal(t, "object", obj["type"])
				assert.Contains(t, obj["properties"], "command")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newCaptureServer(t, http.StatusOK, `{"message":{"role":"assistant","content":"{}"}}`)
			_, err := newTestOllama(srv.URL).Complete(context.Background(), testMessages(), tt.opts)
			require.NoError(t, err)
			tt.check(t, srv.body()["format"])
		})
	}
}

func TestOllamaClient_ModelOverride(t *testing.T) {
	srv := newCaptureServer(t, http.StatusOK, `{"message":{"role":"assistant","content":"ok"}}`)

	_, err := newTestOllama(srv.URL).Complete(context.Background(), testMessages(), Options{Model: "llama3"})
	require.NoError(t, err)
	assert.Equal(t, "llama3", srv.body()["model"])
}

func TestOllamaClient_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"missing message", `{"done":true}`},
		{"missing content", `{"message":{"role":"assistant"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newCaptureServer(t, http.StatusOK, tt.body)
			_, err := newTestOllama(srv.URL).Complete(context.Background(), testMessages(), Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse), "err = %v", err)
		})
	}
}

func TestOllamaClient_BackendError(t *testing.T) {
	srv := newCaptureServer(t, http.StatusNotFound, `{"error":"model 'nope' not found"}`)

	_, err := newTestOllama(srv.URL).Complete(context.Background(), testMessages(), Options{})
	require.Error(t, err)

	var be *BackendError
	require.True(t, errors.As(err, &be), "err = %v", err)
	assert.Equal(t, http.StatusNotFound, be.StatusCode)
	assert.Equal(t, "model 'nope' not found", be.Message)
	assert.Contains(t, be.Body, "not found")
	assert.Equal(t, constants.BackendOllama, be.Backend)
	assert.Equal(t, 1, srv.count(), "gateway must not retry")
}

func TestOllamaClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestOllama(url).Complete(context.Background(), testMessages(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackendUnavailable), "err = %v", err)
}
