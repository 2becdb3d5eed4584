package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.InDelta(t, 179.94, Round2(5998*0.03), 1e-9)
	assert.InDelta(t, 2.5, Round2(2.5), 1e-9)
	assert.InDelta(t, 0.0, Round2(0.004), 1e-9)
	assert.InDelta(t, 0.01, Round2(0.005), 1e-9)
}

func TestRound1(t *testing.T) {
	assert.InDelta(t, 4.3, Round1(4.333333), 1e-9)
	assert.InDelta(t, 4.7, Round1(4.65), 1e-9)
	assert.InDelta(t, 5.0, Round1(4.96), 1e-9)
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()

	var page, limit int
	app.Get("/items", func(c *fiber.Ctx) error {
		page, limit = ParsePagination(c)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name      string
		target    string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/items", 1, 10},
		{"explicit values", "/items?page=3&limit=25", 3, 25},
		{"zero page falls back", "/items?page=0", 1, 10},
		{"negative limit falls back", "/items?limit=-5", 1, 10},
		{"garbage falls back", "/items?page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestListResponseEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/events", func(c *fiber.Ctx) error {
		rows := []fiber.Map{{"title": "a"}, {"title": "b"}}
		return ListResponse(c, "events", rows, len(rows), 25, 2, 10)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/events", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Success    bool `json:"success"`
		Count      int  `json:"count"`
		Total      int  `json:"total"`
		Pagination struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Pages int `json:"pages"`
		} `json:"pagination"`
		Events []map[string]any `json:"events"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 25, body.Total)
	assert.Equal(t, 2, body.Pagination.Page)
	assert.Equal(t, 10, body.Pagination.Limit)
	assert.Equal(t, 3, body.Pagination.Pages)
	assert.Len(t, body.Events, 2)
}

func TestPaymentErrorResponseUsesErrorKey(t *testing.T) {
	app := fiber.New()
	app.Post("/verify", func(c *fiber.Ctx) error {
		return PaymentErrorResponse(c, fiber.StatusBadRequest, "Verification Failed")
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/verify", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Verification Failed", body["error"])
	assert.NotContains(t, body, "message")
}
