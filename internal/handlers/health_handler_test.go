package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/storefront/internal/database/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t)

	engine := gin.New()
	engine.GET("/health", Health(db))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	require.Equal(t, "ok", resp.Data.(map[string]any)["status"])
}

func TestHealthEndpointDegraded(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	engine := gin.New()
	engine.GET("/health", Health(db))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Failures use the same envelope as every other response.
	resp := decodeResponse(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, "SERVICE_UNAVAILABLE", resp.Error.Code)
}
