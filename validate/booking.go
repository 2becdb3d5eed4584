package validate

import (
	"errors"
	"eventhub/model"
	"eventhub/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBookingInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		totalQty := 0
		for _, line := range input.Items {
			totalQty += line.Quantity
		}
		if len(input.Attendees) != totalQty {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Attendee count must match the number of tickets", errors.New("attendee mismatch"))
		}
		c.Locals("CreateBookingInput", input)
		return c.Next()
	}
}

func CancelBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CancelBookingInput
		// body is optional on cancel: an empty body means no reason given
		if len(c.Body()) > 0 {
			if err := parseBody(c, &input); err != nil {
				return err
			}
		}
		c.Locals("CancelBookingInput", input)
		return c.Next()
	}
}

func RejectCancellation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RejectCancellationInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("RejectCancellationInput", input)
		return c.Next()
	}
}

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateOrderInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		totalQty := 0
		for _, line := range input.Items {
			totalQty += line.Quantity
		}
		if len(input.Attendees) != totalQty {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Attendee count must match the number of tickets", errors.New("attendee mismatch"))
		}
		c.Locals("CreateOrderInput", input)
		return c.Next()
	}
}

func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.VerifyPaymentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.PaymentErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate.Struct(&input); err != nil {
			return utils.PaymentErrorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		c.Locals("VerifyPaymentInput", input)
		return c.Next()
	}
}

func PaymentFailed() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.PaymentFailedInput
		if err := c.BodyParser(&input); err != nil {
			return utils.PaymentErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate.Struct(&input); err != nil {
			return utils.PaymentErrorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		c.Locals("PaymentFailedInput", input)
		return c.Next()
	}
}
