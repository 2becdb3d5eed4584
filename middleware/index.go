package middleware

import (
	"errors"
	"eventhub/helper"
	"eventhub/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func extractToken(c *fiber.Ctx) string {
	token := c.Cookies("access_token")
	if token == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return token
}

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// OptionalJWT parses a token when present but lets guests through.
func OptionalJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			c.Locals("user", nil)
			return c.Next()
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			c.Locals("user", nil)
			return c.Next()
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after Protected.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, user := helper.GetUserFromToken(c)
		if user == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
		}
		for _, role := range roles {
			if claim.Role == role {
				return c.Next()
			}
		}
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Insufficient permissions", nil)
	}
}
