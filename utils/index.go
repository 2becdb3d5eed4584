package utils

import (
	"eventhub/config"
	"eventhub/constants"
	"eventhub/model"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	// raw error detail only leaves the server in development mode
	if err != nil && config.IsDevelopment() {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

// PaymentErrorResponse uses the `error` key the payment endpoints expose
// instead of `message`.
func PaymentErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func SuccessResponse(c *fiber.Ctx, status int, data fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// ListResponse wraps a paginated collection as
// {success, count, total, pagination:{page,limit,pages}, <key>: rows}.
func ListResponse(c *fiber.Ctx, key string, rows any, count int, total int64, page, limit int) error {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   count,
		"total":   total,
		"pagination": model.Pagination{
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
		key: rows,
	})
}

// ParsePagination reads 1-indexed page/limit query params with defaults.
func ParsePagination(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(constants.DEFAULT_PAGE_LIMIT)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = constants.DEFAULT_PAGE_LIMIT
	}
	return page, limit
}

func ApplyPagination(query *gorm.DB, page, limit int) *gorm.DB {
	if limit > 0 && page >= 1 {
		query = query.Limit(limit).Offset(limit * (page - 1))
	}
	return query
}

// Round2 rounds a money amount to 2 decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds an aggregate rating to 1 decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func Ptr[T any](v T) *T {
	return &v
}
