package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"eventhub/helper"
	"eventhub/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/private", Protected(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestProtectedRejectsMissingToken(t *testing.T) {
	app := newProtectedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRejectsGarbageToken(t *testing.T) {
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedAcceptsBearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newProtectedApp()

	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: 1, Email: "a@b.c", Role: "attendee"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectedAcceptsCookieToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newProtectedApp()

	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: 1, Email: "a@b.c", Role: "attendee"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalJWTLetsGuestsThrough(t *testing.T) {
	app := fiber.New()
	app.Get("/public", OptionalJWT(), func(c *fiber.Ctx) error {
		if c.Locals("user") == nil {
			return c.SendString("guest")
		}
		return c.SendString("user")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/public", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
