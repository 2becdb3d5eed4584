package validate

import (
	"net/http/httptest"
	"strings"
	"testing"

	"eventhub/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByIdParsesParam(t *testing.T) {
	app := fiber.New()

	var got uint
	app.Get("/things/:id", GetById("id"), func(c *fiber.Ctx) error {
		got = c.Locals("inputId").(uint)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/things/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(42), got)

	resp, err = app.Test(httptest.NewRequest("GET", "/things/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/things/0", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateBookingRejectsAttendeeMismatch(t *testing.T) {
	app := fiber.New()
	app.Post("/bookings", CreateBooking(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	body := `{
		"eventId": 1,
		"items": [{"ticketTypeId": 1, "quantity": 2}],
		"attendees": [{"name": "Only One", "email": "one@example.com"}]
	}`
	req := httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateBookingAcceptsMatchingAttendees(t *testing.T) {
	app := fiber.New()

	var got model.CreateBookingInput
	app.Post("/bookings", CreateBooking(), func(c *fiber.Ctx) error {
		got = c.Locals("CreateBookingInput").(model.CreateBookingInput)
		return c.SendStatus(fiber.StatusCreated)
	})

	body := `{
		"eventId": 1,
		"items": [{"ticketTypeId": 1, "quantity": 2}],
		"attendees": [
			{"name": "First Person", "email": "first@example.com"},
			{"name": "Second Person", "email": "second@example.com"}
		]
	}`
	req := httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, uint(1), got.EventID)
	assert.Len(t, got.Attendees, 2)
}

func TestCancelBookingAllowsEmptyBody(t *testing.T) {
	app := fiber.New()
	app.Put("/bookings/:id/cancel", CancelBooking(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("PUT", "/bookings/1/cancel", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
