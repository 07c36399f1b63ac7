package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	auth "Meyerhof/internal/auth"
	analysis "Meyerhof/internal/calc/analysis"
	bearing "Meyerhof/internal/calc/bearing"
	config "Meyerhof/internal/config"
	repo "Meyerhof/internal/repo"
	soil "Meyerhof/internal/soil"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		TokenKey:      "test-key",
		DefaultMethod: bearing.MethodBowlesFS3,
		RateLimit:     1000,
		RateBurst:     1000,
		UploadLimitMB: 1,
	}
	router := mux.NewRouter()
	HandleList(router, cfg, repo.NewMemory())
	return CORS(router)
}

func send(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func project() analysis.Input {
	return analysis.Input{
		Title:       "Abutment",
		WaterTableM: 4,
		Strata: []soil.Stratum{
			{ID: 1, Description: "Sand", TopM: 0, BottomM: 10, GammaMoistKNM3: 18, GammaSatKNM3: 20, PhiDeg: 32},
		},
		DepthsM: []float64{1},
		WidthsM: []float64{1.5, 2},
	}
}

func TestPublicTools(t *testing.T) {
	h := testServer(t)

	rec := send(t, h, "POST", "/api/tools/bearing/calc", "", project())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = send(t, h, "POST", "/api/tools/loads/calc", "", map[string]any{"method": bearing.MethodBowlesFS3, "dead_kn": 10, "live_kn": 5})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = send(t, h, "GET", "/api/tools/bearing/calc", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = send(t, h, "OPTIONS", "/api/tools/bearing/calc", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUserProjects(t *testing.T) {
	h := testServer(t)

	rec := send(t, h, "GET", "/api/user/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = send(t, h, "POST", "/api/register", "", auth.RegisterRequest{Login: "eng", Email: "eng@example.com", Password: "bearing"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tok auth.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tok))

	rec = send(t, h, "POST", "/api/user/projects", tok.Token, map[string]any{"name": "abutment", "input": project()})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = send(t, h, "POST", "/api/user/projects/1/run", tok.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var r analysis.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&r))
	assert.Len(t, r.Combinations, 2)
}
