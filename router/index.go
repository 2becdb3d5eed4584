package router

import (
	"eventhub/handler"
	"eventhub/helper"
	"eventhub/middleware"
	"eventhub/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.Me)
	auth.Put("/profile", middleware.Protected(), validate.UpdateProfile(), handler.UpdateProfile)
	auth.Put("/change-password", middleware.Protected(), validate.ChangePassword(), handler.ChangePassword)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)
	auth.Post("/send-otp", middleware.Protected(), handler.SendOTP)
	auth.Post("/verify-otp", validate.VerifyOTP(), handler.VerifyOTP)
	auth.Post("/avatar", middleware.Protected(), handler.UploadAvatar)

	events := v1.Group("/events")
	events.Get("/", middleware.OptionalJWT(), handler.GetEvents)
	events.Get("/categories", handler.GetCategories)
	events.Get("/search", handler.SearchEvents)
	events.Get("/organizer/my-events", middleware.Protected(), handler.GetMyEvents)
	events.Post("/", middleware.Protected(), validate.CreateEvent(), handler.CreateEvent)
	events.Get("/:id", middleware.OptionalJWT(), handler.GetEventById)
	events.Put("/:id", middleware.Protected(), validate.UpdateEvent(), handler.UpdateEvent)
	events.Delete("/:id", middleware.Protected(), handler.DeleteEvent)
	events.Get("/:id/analytics", middleware.Protected(), handler.GetEventAnalytics)
	events.Get("/:id/reviews", validate.GetById("id"), handler.GetEventReviews)

	bookings := v1.Group("/bookings")
	bookings.Post("/", middleware.Protected(), validate.CreateBooking(), handler.CreateBooking)
	bookings.Get("/", middleware.Protected(), handler.GetBookings)
	bookings.Get("/:id", middleware.Protected(), validate.GetById("id"), handler.GetBookingById)
	bookings.Put("/:id/cancel", middleware.Protected(), validate.GetById("id"), validate.CancelBooking(), handler.CancelBooking)
	bookings.Post("/:id/request-cancel", middleware.Protected(), validate.GetById("id"), validate.CancelBooking(), handler.RequestCancellation)
	bookings.Put("/:id/reject-request", middleware.Protected(), validate.GetById("id"), validate.RejectCancellation(), handler.RejectCancellation)
	bookings.Get("/event/:eventId", middleware.Protected(), validate.GetById("eventId"), handler.GetEventBookings)
	bookings.Post("/check-in/:ticketCode", middleware.Protected(), handler.CheckInAttendee)

	payments := v1.Group("/payments")
	payments.Post("/create-order", middleware.Protected(), validate.CreateOrder(), handler.CreateOrder)
	payments.Post("/verify-payment", middleware.Protected(), validate.VerifyPayment(), handler.VerifyPayment)
	payments.Post("/failed", middleware.Protected(), validate.PaymentFailed(), handler.PaymentFailed)

	reviews := v1.Group("/reviews")
	reviews.Post("/", middleware.Protected(), validate.CreateReview(), handler.CreateReview)
	reviews.Get("/my-reviews", middleware.Protected(), handler.GetMyReviews)
	reviews.Put("/:id", middleware.Protected(), validate.GetById("id"), validate.UpdateReview(), handler.UpdateReview)
	reviews.Delete("/:id", middleware.Protected(), validate.GetById("id"), handler.DeleteReview)
	reviews.Post("/:id/vote", validate.GetById("id"), handler.VoteHelpful)
	reviews.Post("/:id/report", validate.GetById("id"), handler.ReportReview)

	adminReviews := v1.Group("/reviews/admin", middleware.Protected(), middleware.RequireRole("admin"))
	adminReviews.Get("/pending", handler.GetPendingReviews)
	adminReviews.Put("/:id/moderate", validate.GetById("id"), validate.ModerateReview(), handler.ModerateReview)

	notifications := v1.Group("/notifications", middleware.Protected())
	notifications.Get("/", handler.GetNotifications)
	notifications.Get("/unread-count", handler.GetUnreadCount)
	notifications.Put("/read-all", handler.MarkAllNotificationsRead)
	notifications.Put("/:id/read", validate.GetById("id"), handler.MarkNotificationRead)

	// websocket upgrade needs the user resolved before the connection handler runs
	notifications.Use("/stream", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		_, user := helper.GetUserFromToken(c)
		if user == nil {
			return fiber.ErrUnauthorized
		}
		c.Locals("streamUserId", user.ID)
		return c.Next()
	})
	notifications.Get("/stream", websocket.New(handler.NotificationStream))

	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateUploadSignature)
}
