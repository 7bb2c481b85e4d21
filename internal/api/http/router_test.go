package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/auth"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/config"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/domain"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/observability"
)

const testSecret = "router-test-secret"

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)

	tokens := auth.NewTokenManager(testSecret, 8)
	middleware := auth.NewMiddleware(tokens)

	app.Get("/agent-only", middleware.Handle, auth.RequireRole(domain.RoleAgent),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"success": true})
		})
	app.Get("/admin-only", middleware.Handle, auth.RequireRole(domain.RoleAdmin),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"success": true})
		})
	return app, tokens
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestMissingCredential(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/agent-only", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, false, envelope["success"])
	assert.NotEmpty(t, envelope["error"])
}

func TestInvalidCredential(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/agent-only", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleEqualityNotHierarchy(t *testing.T) {
	app, tokens := newTestApp(t)
	adminToken, _, err := tokens.GenerateToken("admin-1", domain.RoleAdmin)
	require.NoError(t, err)

	// an admin hitting an agent-gated route is rejected
	req := httptest.NewRequest(http.MethodGet, "/agent-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "FORBIDDEN", envelope["code"])
}

func TestMatchingRoleAllowed(t *testing.T) {
	app, tokens := newTestApp(t)
	agentToken, _, err := tokens.GenerateToken("agent-1", domain.RoleAgent)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/agent-only", nil)
	req.Header.Set("Authorization", "Bearer "+agentToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCookieCredentialAccepted(t *testing.T) {
	app, tokens := newTestApp(t)
	adminToken, _, err := tokens.GenerateToken("admin-1", domain.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: adminToken})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFailedRequestsCountedWithFinalStatus(t *testing.T) {
	app := fiber.New()
	metrics := observability.NewMetrics()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 5*time.Second)
	middleware := auth.NewMiddleware(auth.NewTokenManager(testSecret, 8))
	app.Get("/gated", middleware.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gated", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	reqCounts, errCounts := metrics.Snapshot()
	assert.Equal(t, int64(1), reqCounts["/gated|GET|401"])
	assert.Zero(t, reqCounts["/gated|GET|200"])
	assert.Equal(t, int64(1), errCounts["/gated|GET|UNAUTHORIZED"])
}

func TestRateLimiterFailsOpenWithoutRedis(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimiter(nil, config.RateLimitConfig{Enabled: true, MaxRequests: 1}, zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
