package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/impulse-lab/lab-booking-service/internal/observability"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

func newMiddlewareTestApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	return app
}

func TestErrorMiddlewareMapsDomainError(t *testing.T) {
	app := newMiddlewareTestApp()
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return apperrors.NewForbidden("insufficient role")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/forbidden", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "insufficient role", body["message"])
}

func TestErrorMiddlewareHidesInternalCauses(t *testing.T) {
	app := newMiddlewareTestApp()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return assert.AnError
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, body["message"], assert.AnError.Error())
}

func TestErrorMiddlewareRecoversPanic(t *testing.T) {
	app := newMiddlewareTestApp()
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected state")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestSuccessPassesThrough(t *testing.T) {
	app := newMiddlewareTestApp()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
