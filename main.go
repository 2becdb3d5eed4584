package main

import (
	"eventhub/config"
	"eventhub/database"
	"eventhub/helper"
	"eventhub/router"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	frontend := config.ConfigDefault("FRONTEND_URL", "http://localhost:5173")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     frontend,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartEventStatusScheduler()
	defer helper.StopEventStatusScheduler()
	helper.StartBookingExpiryScheduler()
	defer helper.StopBookingExpiryScheduler()

	router.SetupRoutes(app)

	port := config.ConfigDefault("PORT", "8000")
	log.Fatal(app.Listen(":" + port))
}
