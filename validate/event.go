package validate

import (
	"errors"
	"eventhub/model"
	"eventhub/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateEventInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		if !input.EndDate.After(input.StartDate) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "End date must be after start date", errors.New("invalid date range"))
		}
		for _, tier := range input.TicketTypes {
			if tier.SaleStart != nil && tier.SaleEnd != nil && !tier.SaleEnd.After(*tier.SaleStart) {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ticket sale window is invalid for "+tier.Name, errors.New("invalid sale window"))
			}
		}
		c.Locals("CreateEventInput", input)
		return c.Next()
	}
}

func UpdateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateEventInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		if input.StartDate != nil && input.EndDate != nil && !input.EndDate.After(*input.StartDate) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "End date must be after start date", errors.New("invalid date range"))
		}
		c.Locals("UpdateEventInput", input)
		return c.Next()
	}
}
