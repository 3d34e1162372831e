package main

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckHandler(t *testing.T) {
	app := newOfflineApplication(t)
	ts := newTestServer(t, app.routes())

	status, header, body := ts.get(t, "/api/healthcheck", "")
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, header.Get("X-Request-ID"))
	assert.JSONEq(t, `{"status": "available", "system_info": {"environment": "testing", "version": "test"}}`, string(body))
}

func TestUnknownEndpoint(t *testing.T) {
	app := newOfflineApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown api path", method: http.MethodGet, path: "/api/nothing"},
		{name: "unknown post", method: http.MethodPost, path: "/api/nothing"},
		{name: "missing static file", method: http.MethodGet, path: "/missing.js"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.do(t, tc.method, tc.path, "", nil)
			assert.Equal(t, http.StatusNotFound, status)
			assert.JSONEq(t, `{"error": "unknown endpoint"}`, string(body))
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	app := newOfflineApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.do(t, http.MethodPatch, "/api/blogs", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.JSONEq(t, `{"error": "method not allowed"}`, string(body))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newOfflineApplication(t)
	ts := newTestServer(t, app.routes())

	id := "5a422a851b54a676234d17f7"

	testCases := []struct {
		method string
		path   string
	}{
		{method: http.MethodPost, path: "/api/blogs"},
		{method: http.MethodPut, path: "/api/blogs/" + id},
		{method: http.MethodDelete, path: "/api/blogs/" + id},
	}

	for _, tc := range testCases {
		t.Run(tc.method, func(t *testing.T) {
			status, header, body := ts.do(t, tc.method, tc.path, "", map[string]any{"title": "x", "url": "y"})
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "Bearer", header.Get("WWW-Authenticate"))
			assert.JSONEq(t, `{"error": "token missing"}`, string(body))
		})
	}
}

func TestStaticHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>bloglist</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600))

	app := newOfflineApplication(t)
	app.config.StaticDir = dir
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "<html>bloglist</html>", string(body))

	status, _, body = ts.get(t, "/app.js", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "console.log(1)", string(body))

	// /api stays json even if a file with that name exists
	require.NoError(t, os.Mkdir(filepath.Join(dir, "api"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "secret.txt"), []byte("nope"), 0o600))

	status, _, body = ts.get(t, "/api/secret.txt", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error": "unknown endpoint"}`, string(body))
}
