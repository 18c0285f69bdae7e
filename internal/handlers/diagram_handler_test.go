package handlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classforge/internal/archive"
	"classforge/internal/cache"
	"classforge/internal/repositories"
	"classforge/internal/services"
)

const validSnapshot = `{"classes":[{"name":"Author","attributes":["name: String"]}]}`

func setupDiagramRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dialect, err := repositories.NewDialect("sqlite")
	require.NoError(t, err)
	repo := repositories.NewDiagramRepository(db, dialect)

	diagramService := services.NewDiagramService(repo)
	generateService := services.NewGenerateService(cache.NewMemory(), time.Minute, nil)
	h := NewDiagramHandler(diagramService, generateService)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/diagrams", h.CreateDiagram)
	api.GET("/diagrams", h.ListDiagrams)
	api.GET("/diagrams/:id", h.GetDiagram)
	api.PUT("/diagrams/:id", h.UpdateDiagram)
	api.DELETE("/diagrams/:id", h.DeleteDiagram)
	api.POST("/diagrams/:id/share", h.ShareDiagram)
	api.GET("/diagrams/:id/export", h.ExportDiagram)
	api.GET("/shared/:token", h.GetSharedDiagram)
	return r, mock
}

func diagramRows(id uuid.UUID, name, snapshot string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "name", "snapshot", "share_token", "created_at", "updated_at"}).
		AddRow(id.String(), name, snapshot, nil, now, now)
}

func TestCreateDiagramEndpoint(t *testing.T) {
	router, mock := setupDiagramRouter(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO diagrams")).
		WithArgs(sqlmock.AnyArg(), "Library", validSnapshot, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	body := `{"name": "Library", "snapshot": ` + validSnapshot + `}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/diagrams", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, "success", envelope.Status)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDiagramEndpointRejects(t *testing.T) {
	router, _ := setupDiagramRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"snapshot": {"classes":[{"name":"A"}]}}`},
		{name: "empty snapshot", body: `{"name": "X", "snapshot": {"classes":[]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/diagrams", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "error", decodeEnvelope(t, w).Status)
		})
	}
}

func TestGetDiagramEndpoint(t *testing.T) {
	router, mock := setupDiagramRouter(t)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM diagrams WHERE id = ?")).
		WithArgs(id.String()).
		WillReturnRows(diagramRows(id, "Library", validSnapshot))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/diagrams/"+id.String(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Library", data["name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDiagramEndpointNotFound(t *testing.T) {
	router, mock := setupDiagramRouter(t)

	t.Run("malformed id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/diagrams/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "error", decodeEnvelope(t, w).Status)
	})

	t.Run("missing row", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta("FROM diagrams WHERE id = ?")).
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "snapshot", "share_token", "created_at", "updated_at"}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/diagrams/"+id.String(), nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareDiagramEndpoint(t *testing.T) {
	router, mock := setupDiagramRouter(t)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM diagrams WHERE id = ?")).
		WithArgs(id.String()).
		WillReturnRows(diagramRows(id, "Library", validSnapshot))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE diagrams SET share_token = ? WHERE id = ?")).
		WithArgs(sqlmock.AnyArg(), id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/diagrams/"+id.String()+"/share", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data, ok := decodeEnvelope(t, w).Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["share_token"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportDiagramEndpoint(t *testing.T) {
	router, mock := setupDiagramRouter(t)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM diagrams WHERE id = ?")).
		WithArgs(id.String()).
		WillReturnRows(diagramRows(id, "Library", validSnapshot))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/diagrams/"+id.String()+"/export", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))

	project, err := archive.Unzip(w.Body.Bytes())
	require.NoError(t, err)
	assert.Contains(t, project, "src/main/java/com/example/demo/model/Author.java")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDiagramEndpoint(t *testing.T) {
	router, mock := setupDiagramRouter(t)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM diagrams WHERE id = ?")).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/diagrams/"+id.String(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
