package handler

import (
	"errors"
	"eventhub/constants"
	"eventhub/database"
	"eventhub/helper"
	"eventhub/model"
	"eventhub/utils"
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// settleGuard rejects gateway callbacks for orders that are already paid or
// belong to another user. Returns 0 and an empty message when the order may
// be settled. The paid check runs first: it is the only replay guard.
func settleGuard(order *model.PaymentOrder, userID uint) (int, string) {
	if order.PaymentStatus == constants.ORDER_PAID {
		return fiber.StatusBadRequest, constants.PAYMENT_ALREADY_VERIFIED
	}
	if order.UserID != userID {
		return fiber.StatusForbidden, "This payment order belongs to another user"
	}
	return 0, ""
}

// CreateOrder is the gateway booking path: it re-validates availability the
// same way the direct path does, creates a Razorpay order and persists a
// Pending PaymentOrder with a pending companion Booking cross-linked by id.
func CreateOrder(c *fiber.Ctx) error {
	db := database.DB
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.PaymentErrorResponse(c, fiber.StatusUnauthorized, "Login required")
	}

	input, ok := c.Locals("CreateOrderInput").(model.CreateOrderInput)
	if !ok {
		return utils.PaymentErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}

	event, items, subtotal, err := helper.ValidateBookingLines(db, input.EventID, input.Items)
	if err != nil {
		if errors.Is(err, helper.ErrEventNotFound) {
			return utils.PaymentErrorResponse(c, fiber.StatusNotFound, err.Error())
		}
		return utils.PaymentErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	// the order needs a contact address for the gateway checkout
	contactEmail := user.Email
	if contactEmail == "" {
		contactEmail = input.BillingAddress.Email
	}
	if contactEmail == "" {
		return utils.PaymentErrorResponse(c, fiber.StatusBadRequest, constants.EMAIL_REQUIRED_FOR_ORDER)
	}

	platformFee, processingFee, finalAmount := helper.ComputeFees(subtotal)
	amountPaise := int64(math.Round(finalAmount * 100))

	gateway := NewRazorpay()
	receipt := "rcpt_" + uuid.NewString()[:18]
	razorpayOrderID, err := gateway.CreateOrder(amountPaise, "INR", receipt, map[string]interface{}{
		"eventId": fmt.Sprintf("%d", event.ID),
		"email":   contactEmail,
	})
	if err != nil {
		return utils.PaymentErrorResponse(c, fiber.StatusBadGateway, "Could not create payment order")
	}

	order := model.PaymentOrder{
		UserID:          user.ID,
		EventID:         event.ID,
		Amount:          finalAmount,
		Currency:        "INR",
		Receipt:         receipt,
		RazorpayOrderID: razorpayOrderID,
		PaymentStatus:   constants.ORDER_PENDING,
	}
	if err := db.Create(&order).Error; err != nil {
		return utils.PaymentErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR)
	}

	booking := model.Booking{
		BookingNumber:  helper.GenerateBookingNumber(),
		UserID:         user.ID,
		EventID:        event.ID,
		Items:          items,
		TotalAmount:    subtotal,
		PlatformFee:    platformFee,
		ProcessingFee:  processingFee,
		FinalAmount:    finalAmount,
		Status:         constants.BOOKING_PENDING,
		PaymentStatus:  constants.PAYMENT_PENDING,
		PaymentMethod:  "razorpay",
		PaymentOrderID: &order.ID,
		BillingName:    input.BillingAddress.Name,
		BillingEmail:   contactEmail,
		BillingAddress: input.BillingAddress.Address,
		BillingCity:    input.BillingAddress.City,
	}
	for _, attendee := range input.Attendees {
		booking.Attendees = append(booking.Attendees, model.Attendee{
			Name:       attendee.Name,
			Email:      attendee.Email,
			TicketCode: helper.GenerateTicketCode(),
		})
	}
	if err := db.Create(&booking).Error; err != nil {
		return utils.PaymentErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR)
	}
	// without the back-link a paid order could never confirm its booking
	if err := db.Model(&order).Update("booking_id", booking.ID).Error; err != nil {
		return utils.PaymentErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"order": fiber.Map{
			"id":        razorpayOrderID,
			"amount":    amountPaise,
			"currency":  order.Currency,
			"receipt":   receipt,
			"keyId":     gateway.KeyID,
			"bookingId": booking.ID,
		},
	})
}

// VerifyPayment validates the checkout callback signature and, on first
// success, flips the order to Paid and the linked booking to confirmed.
// The read-then-check on PaymentStatus is the sole duplicate-payment guard.
func VerifyPayment(c *fiber.Ctx) error {
	db := database.DB
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.PaymentErrorResponse(c, fiber.StatusUnauthorized, "Login required")
	}

	input, ok := c.Locals("VerifyPaymentInput").(model.VerifyPaymentInput)
	if !ok {
		return utils.PaymentErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}

	gateway := NewRazorpay()
	if !gateway.VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature) {
		return utils.PaymentErrorResponse(c, fiber.StatusBadRequest, constants.VERIFICATION_FAILED)
	}

	var order model.PaymentOrder
	if err := db.Where("razorpay_order_id = ?", input.RazorpayOrderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.PaymentErrorResponse(c, fiber.StatusNotFound, constants.PAYMENT_ORDER_NOT_FOUND)
		}
		return utils.PaymentErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR)
	}

	if status, msg := settleGuard(&order, user.ID); status != 0 {
		return utils.PaymentErrorResponse(c, status, msg)
	}

	if err := db.Model(&order).Updates(map[string]interface{}{
		"payment_status":      constants.ORDER_PAID,
		"razorpay_payment_id": input.RazorpayPaymentID,
	}).Error; err != nil {
		return utils.PaymentErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR)
	}

	var booking model.Booking
	if order.BookingID != nil {
		if err := db.Preload("Items").Preload("Event").Preload("User").
			First(&booking, *order.BookingID).Error; err == nil {
			db.Model(&booking).Updates(map[string]interface{}{
				"status":         constants.BOOKING_CONFIRMED,
				"payment_status": constants.PAYMENT_COMPLETED,
			})

			// same non-atomic per-tier updates as the direct path
			helper.AdjustSoldCounters(db, booking.Items, 1)

			PushNotification(db, booking.UserID, constants.NOTIF_BOOKING_CONFIRMED,
				"Booking confirmed",
				fmt.Sprintf("Payment received. Your booking %s for %s is confirmed.",
					booking.BookingNumber, booking.Event.Title))
			if booking.User != nil {
				utils.SendBookingEmail(booking.User.Email, "Booking confirmed "+booking.BookingNumber,
					utils.BookingConfirmedBody(utils.BookingEmailData{
						Name:          booking.User.Name,
						BookingNumber: booking.BookingNumber,
						EventTitle:    booking.Event.Title,
						EventDate:     booking.Event.StartDate.Format("02 Jan 2006 15:04"),
						Amount:        booking.FinalAmount,
					}))
			}
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":   "Payment verified",
		"orderId":   order.RazorpayOrderID,
		"paymentId": input.RazorpayPaymentID,
		"bookingId": order.BookingID,
		"paidAt":    time.Now(),
	})
}

// PaymentFailed records an aborted or failed checkout so the pending booking
// does not linger until the expiry sweep.
func PaymentFailed(c *fiber.Ctx) error {
	db := database.DB
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.PaymentErrorResponse(c, fiber.StatusUnauthorized, "Login required")
	}

	input, ok := c.Locals("PaymentFailedInput").(model.PaymentFailedInput)
	if !ok {
		return utils.PaymentErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}

	var order model.PaymentOrder
	if err := db.Where("razorpay_order_id = ?", input.RazorpayOrderID).First(&order).Error; err != nil {
		return utils.PaymentErrorResponse(c, fiber.StatusNotFound, constants.PAYMENT_ORDER_NOT_FOUND)
	}
	if status, msg := settleGuard(&order, user.ID); status != 0 {
		return utils.PaymentErrorResponse(c, status, msg)
	}

	db.Model(&order).Update("payment_status", constants.ORDER_FAILED)
	if order.BookingID != nil {
		db.Model(&model.Booking{}).Where("id = ?", *order.BookingID).
			Update("payment_status", constants.PAYMENT_FAILED)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Payment marked as failed"})
}
