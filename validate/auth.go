package validate

import (
	"eventhub/model"

	"github.com/gofiber/fiber/v2"
)

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("RegisterInput", input)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.LoginInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("LoginInput", input)
		return c.Next()
	}
}

func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateProfileInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("UpdateProfileInput", input)
		return c.Next()
	}
}

func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ChangePasswordInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("ChangePasswordInput", input)
		return c.Next()
	}
}

func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ForgotPasswordInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("ForgotPasswordInput", input)
		return c.Next()
	}
}

func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ResetPasswordInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("ResetPasswordInput", input)
		return c.Next()
	}
}

func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.VerifyOTPInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("VerifyOTPInput", input)
		return c.Next()
	}
}
