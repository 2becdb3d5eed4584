package validate

import (
	"eventhub/model"

	"github.com/gofiber/fiber/v2"
)

func CreateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateReviewInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("CreateReviewInput", input)
		return c.Next()
	}
}

func UpdateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateReviewInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("UpdateReviewInput", input)
		return c.Next()
	}
}

func ModerateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ModerateReviewInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("ModerateReviewInput", input)
		return c.Next()
	}
}
