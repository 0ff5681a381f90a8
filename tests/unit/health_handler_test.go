package unit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom-api/internal/config"
	"github.com/stockroomhq/stockroom-api/internal/handler"
)

func TestHealthCheckReportsServiceIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/api/health", handler.HealthCheck(config.Config{AppName: "Stockroom API", AppEnv: "test"}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Status      string `json:"status"`
			Service     string `json:"service"`
			Environment string `json:"environment"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, "ok", body.Data.Status)
	require.Equal(t, "Stockroom API", body.Data.Service)
	require.Equal(t, "test", body.Data.Environment)
}
