package faults

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() (*chi.Mux, *mockRepository) {
	svc, repo := setupService()
	handler := NewHandler(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, repo
}

func TestReportIncidentEndpoint(t *testing.T) {
	router, repo := setupRouter()

	body := `{"title":"Transformer overheating","severity":"critical","asset_type":"transformer"}`
	req := httptest.NewRequest(http.MethodPost, "/incidents", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Transformer overheating", repo.created[0].Title)

	var resp struct {
		Data struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, "pending", resp.Data.Status)
}

func TestReportIncidentValidation(t *testing.T) {
	router, repo := setupRouter()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing title", body: `{"severity":"critical"}`},
		{name: "bad severity", body: `{"title":"x","severity":"urgent"}`},
		{name: "non-initial status", body: `{"title":"x","severity":"minor","status":"resolved"}`},
		{name: "latitude out of range", body: `{"title":"x","severity":"minor","latitude":120}`},
		{name: "invalid json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/incidents", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	assert.Empty(t, repo.created)
}

func TestGetIncidentEndpointNotFound(t *testing.T) {
	router, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/incidents/ghost", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListIncidentsEndpointBadPagination(t *testing.T) {
	router, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/incidents?limit=-5", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
