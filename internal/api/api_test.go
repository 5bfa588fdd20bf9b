package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/annel0/dungeon-gen/internal/pipeline"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type levelResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    LevelSnapshot `json:"data"`
}

func newTestServer(t *testing.T) *RestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRestServer(Config{MaxLevelSize: 64})
}

func postLevel(t *testing.T, rs *RestServer, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/levels", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	rs := newTestServer(t)

	w := httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestLevelTypes(t *testing.T) {
	rs := newTestServer(t)

	w := httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/levels/types", nil))

	require.Equal(t, http.StatusOK, w.Code)
	for _, lt := range pipeline.LevelTypes {
		assert.Contains(t, w.Body.String(), string(lt))
	}
}

func TestGenerate_Dungeon(t *testing.T) {
	rs := newTestServer(t)

	w := postLevel(t, rs, map[string]interface{}{
		"type":          "dungeon",
		"width":         40,
		"height":        30,
		"seed":          7,
		"include_cells": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp levelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	snap := resp.Data
	require.NotNil(t, snap.Summary)
	assert.Equal(t, 40, snap.Summary.Width)
	assert.Equal(t, 30, snap.Summary.Height)
	assert.NotEmpty(t, snap.Sectors, "хотя бы корневой сектор")
	assert.Len(t, snap.Rooms, snap.Summary.Rooms)
	require.Len(t, snap.Cells, 30, "строки по высоте")
	assert.Len(t, snap.Cells[0], 40, "столбцы по ширине")

	assert.Equal(t, int64(1), rs.Metrics().Generated())
	assert.Equal(t, int64(0), rs.Metrics().Failed())
}

func TestGenerate_SameSeedSameLevel(t *testing.T) {
	rs := newTestServer(t)
	body := map[string]interface{}{"type": "cave", "width": 24, "height": 24, "seed": 99, "include_cells": true}

	var first, second levelResponse
	require.NoError(t, json.Unmarshal(postLevel(t, rs, body).Body.Bytes(), &first))
	require.NoError(t, json.Unmarshal(postLevel(t, rs, body).Body.Bytes(), &second))

	assert.Equal(t, first.Data.Cells, second.Data.Cells, "одинаковый seed даёт одинаковые клетки")
}

func TestGenerate_Rejected(t *testing.T) {
	cases := []struct {
		name string
		body interface{}
	}{
		{"unknown type", map[string]interface{}{"type": "maze"}},
		{"too small", map[string]interface{}{"type": "dungeon", "width": 4, "height": 4}},
		{"chance out of range", map[string]interface{}{"prop_chance": 1.5}},
		{"too large", map[string]interface{}{"width": 65, "height": 10}},
		{"not json", "{"},
	}

	rs := newTestServer(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postLevel(t, rs, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
	assert.Equal(t, int64(len(cases)), rs.Metrics().Failed())
}

func TestStatsAndMetrics(t *testing.T) {
	rs := newTestServer(t)
	require.Equal(t, http.StatusOK, postLevel(t, rs, map[string]interface{}{"type": "test", "seed": 3}).Code)

	w := httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"generated":1`)

	w = httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "levelgen_api_http_request_duration_seconds")
}
