package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitbuzz/fitness-api/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFullRouter() *gin.Engine {
	router := gin.New()
	cfg := &config.Config{
		Server: config.ServerConfig{Address: ":8080", BaseURL: "http://localhost:8080"},
		JWT:    config.JWTConfig{Secret: "test-secret", Expiration: time.Hour},
		CORS:   config.CORSConfig{Origins: []string{"http://localhost:5173"}},
	}
	SetupRoutes(router, cfg,
		&stubAuthService{},
		&stubExerciseService{},
		&stubWorkoutService{},
		&stubNutritionService{},
	)
	return router
}

func TestHealthEndpoint(t *testing.T) {
	router := newFullRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["status"])
}

func TestUnknownAPIRouteReturnsJSON404(t *testing.T) {
	router := newFullRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["message"])
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	router := newFullRouter()

	for _, path := range []string{"/api/exercises", "/api/workouts", "/api/nutrition", "/api/auth/me"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newFullRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
