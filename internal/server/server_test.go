package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"classforge/internal/archive"
	"classforge/internal/config"
	"classforge/internal/models"
	"classforge/internal/server"
)

const librarySnapshot = `{
	"classes": [
		{"name": "Author", "attributes": ["name: String"]},
		{"name": "Book", "attributes": ["title: String"]}
	],
	"relations": [
		{"source": "Author", "target": "Book", "type": "ONE_TO_MANY"}
	]
}`

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := config.Default()
	cfg.Database.DSN = "file:" + filepath.Join(t.TempDir(), "classforge.db")

	srv, err := server.New(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})
	return srv
}

func do(t *testing.T, srv *server.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestServerHealthz(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestServerUnknownDialect(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Dialect = "oracle"

	_, err := server.New(cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestServerDiagramLifecycle(t *testing.T) {
	srv := newTestServer(t)

	var created models.Diagram
	t.Run("create", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/v1/diagrams",
			`{"name": "Library", "snapshot": `+librarySnapshot+`}`)
		require.Equal(t, http.StatusCreated, w.Code)

		env := decode(t, w)
		require.Equal(t, "success", env.Status)
		require.NoError(t, json.Unmarshal(env.Data, &created))
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, "Library", created.Name)
		assert.JSONEq(t, librarySnapshot, string(created.Snapshot))
	})

	t.Run("get", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/v1/diagrams/"+created.ID.String(), "")
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Diagram
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
		assert.Equal(t, created.ID, got.ID)
		assert.JSONEq(t, librarySnapshot, string(got.Snapshot))
	})

	t.Run("list", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/v1/diagrams", "")
		require.Equal(t, http.StatusOK, w.Code)

		var got []models.Diagram
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
		require.Len(t, got, 1)
		assert.Equal(t, created.ID, got[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		w := do(t, srv, http.MethodPut, "/api/v1/diagrams/"+created.ID.String(),
			`{"name": "Library v2", "snapshot": `+librarySnapshot+`}`)
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Diagram
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
		assert.Equal(t, "Library v2", got.Name)
	})

	var token uuid.UUID
	t.Run("share", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/v1/diagrams/"+created.ID.String()+"/share", "")
		require.Equal(t, http.StatusOK, w.Code)

		var data struct {
			ShareToken uuid.UUID `json:"share_token"`
		}
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
		require.NotEqual(t, uuid.Nil, data.ShareToken)
		token = data.ShareToken
	})

	t.Run("shared fetch", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/v1/shared/"+token.String(), "")
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Diagram
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("export", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/v1/diagrams/"+created.ID.String()+"/export", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "demo.zip")

		project, err := archive.Unzip(w.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, 16, len(project.Paths()))
	})

	t.Run("delete", func(t *testing.T) {
		w := do(t, srv, http.MethodDelete, "/api/v1/diagrams/"+created.ID.String(), "")
		require.Equal(t, http.StatusOK, w.Code)

		w = do(t, srv, http.MethodGet, "/api/v1/diagrams/"+created.ID.String(), "")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "error", decode(t, w).Status)
	})
}

func TestServerGenerate(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/v1/generate?format=zip", librarySnapshot)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))

	project, err := archive.Unzip(w.Body.Bytes())
	require.NoError(t, err)
	assert.Contains(t, project.Paths(), "src/main/java/com/example/demo/model/Author.java")
}

func TestServerCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/generate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
