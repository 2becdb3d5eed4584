package handler

import (
	"encoding/base64"
	"errors"
	"eventhub/constants"
	"eventhub/database"
	"eventhub/helper"
	"eventhub/model"
	"eventhub/utils"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBooking is the direct (non-gateway) booking path: it models an
// already-settled payment and lands confirmed/completed immediately.
func CreateBooking(c *fiber.Ctx) error {
	db := database.DB
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	input, ok := c.Locals("CreateBookingInput").(model.CreateBookingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	event, items, subtotal, err := helper.ValidateBookingLines(db, input.EventID, input.Items)
	if err != nil {
		if errors.Is(err, helper.ErrEventNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, err.Error(), nil)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	platformFee, processingFee, finalAmount := helper.ComputeFees(subtotal)

	booking := model.Booking{
		BookingNumber:  helper.GenerateBookingNumber(),
		UserID:         user.ID,
		EventID:        event.ID,
		Items:          items,
		TotalAmount:    subtotal,
		PlatformFee:    platformFee,
		ProcessingFee:  processingFee,
		FinalAmount:    finalAmount,
		Status:         constants.BOOKING_CONFIRMED,
		PaymentStatus:  constants.PAYMENT_COMPLETED,
		PaymentMethod:  input.PaymentMethod,
		BillingName:    input.BillingAddress.Name,
		BillingEmail:   input.BillingAddress.Email,
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
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// N independent updates, not a transaction with the insert above
	helper.AdjustSoldCounters(db, booking.Items, 1)

	PushNotification(db, user.ID, constants.NOTIF_BOOKING_CONFIRMED,
		"Booking confirmed",
		fmt.Sprintf("Your booking %s for %s is confirmed.", booking.BookingNumber, event.Title))
	utils.SendBookingEmail(user.Email, "Booking confirmed "+booking.BookingNumber,
		utils.BookingConfirmedBody(utils.BookingEmailData{
			Name:          user.Name,
			BookingNumber: booking.BookingNumber,
			EventTitle:    event.Title,
			EventDate:     event.StartDate.Format("02 Jan 2006 15:04"),
			Amount:        booking.FinalAmount,
		}))

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"booking": booking})
}

// loadBookingForCaller fetches a booking and checks the caller is its owner,
// the event's organizer, or an admin.
func loadBookingForCaller(c *fiber.Ctx) (*model.Booking, *model.User, model.TokenClaim, error) {
	claim, user := helper.GetUserFromToken(c)
	if user == nil {
		return nil, nil, claim, utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	id := c.Locals("inputId").(uint)

	var booking model.Booking
	if err := database.DB.
		Preload("Items").
		Preload("Attendees").
		Preload("Event").
		Preload("User").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, claim, utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
		}
		return nil, nil, claim, utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	isOwner := booking.UserID == user.ID
	isOrganizer := booking.Event != nil && booking.Event.OrganizerID == user.ID
	isAdmin := claim.Role == constants.ROLE_ADMIN
	if !isOwner && !isOrganizer && !isAdmin {
		return nil, nil, claim, utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_BOOKING_OWNER, nil)
	}

	return &booking, user, claim, nil
}

func GetBookingById(c *fiber.Ctx) error {
	booking, _, _, errResp := loadBookingForCaller(c)
	if errResp != nil {
		return errResp
	}

	// one QR per booking, encoding the booking number for door check-in
	qrBase64 := ""
	if qrBytes, err := utils.GenerateQRCode(booking.BookingNumber, 400); err != nil {
		log.Printf("failed to render QR for booking %s: %v", booking.BookingNumber, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"booking": booking,
		"qrCode":  qrBase64,
	})
}

func GetBookings(c *fiber.Ctx) error {
	claim, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	page, limit := utils.ParsePagination(c)

	query := database.DB.Model(&model.Booking{})
	if claim.Role != constants.ROLE_ADMIN {
		query = query.Where("user_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var bookings []model.Booking
	if err := utils.ApplyPagination(query, page, limit).
		Preload("Items").
		Preload("Attendees").
		Preload("Event").
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, "bookings", bookings, len(bookings), total, page, limit)
}

// GetEventBookings lists the bookings for one event, organizer/admin only.
func GetEventBookings(c *fiber.Ctx) error {
	claim, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	eventID := c.Locals("inputId").(uint)

	var event model.Event
	if err := database.DB.First(&event, eventID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}
	if event.OrganizerID != user.ID && claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You do not own this event", nil)
	}

	page, limit := utils.ParsePagination(c)
	query := database.DB.Model(&model.Booking{}).Where("event_id = ?", eventID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var bookings []model.Booking
	if err := utils.ApplyPagination(query, page, limit).
		Preload("Items").
		Preload("Attendees").
		Preload("User").
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, "bookings", bookings, len(bookings), total, page, limit)
}

// CancelBooking cancels a booking, rolls the sold counters back and notifies
// the owner. Attendees are held to the 24-hour cutoff; the event's organizer
// and admins may override it.
func CancelBooking(c *fiber.Ctx) error {
	booking, user, claim, errResp := loadBookingForCaller(c)
	if errResp != nil {
		return errResp
	}
	db := database.DB

	input, _ := c.Locals("CancelBookingInput").(model.CancelBookingInput)

	if booking.Status == constants.BOOKING_CANCELLED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.BOOKING_ALREADY_CANCELLED, nil)
	}

	isPrivileged := claim.Role == constants.ROLE_ADMIN ||
		(booking.Event != nil && booking.Event.OrganizerID == user.ID)
	if !helper.CanCancelNow(booking.Event.StartDate, isPrivileged, time.Now()) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.CANCEL_WINDOW_CLOSED, nil)
	}

	now := time.Now()
	refund := model.RefundDetails{
		Amount:        booking.FinalAmount,
		TransactionID: "rfnd_" + uuid.NewString(),
		Reason:        input.Reason,
		RefundedAt:    &now,
	}

	if err := db.Model(booking).Updates(map[string]interface{}{
		"status":                constants.BOOKING_CANCELLED,
		"payment_status":        constants.PAYMENT_REFUNDED,
		"refund_amount":         refund.Amount,
		"refund_transaction_id": refund.TransactionID,
		"refund_reason":         refund.Reason,
		"refund_refunded_at":    refund.RefundedAt,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// only confirmed bookings ever incremented the counters
	if booking.PaymentStatus == constants.PAYMENT_COMPLETED {
		helper.AdjustSoldCounters(db, booking.Items, -1)
	}

	owner := booking.User
	PushNotification(db, booking.UserID, constants.NOTIF_BOOKING_CANCELLED,
		"Booking cancelled",
		fmt.Sprintf("Your booking %s for %s has been cancelled.", booking.BookingNumber, booking.Event.Title))
	if owner != nil {
		utils.SendBookingEmail(owner.Email, "Booking cancelled "+booking.BookingNumber,
			utils.BookingCancelledBody(utils.BookingEmailData{
				Name:          owner.Name,
				BookingNumber: booking.BookingNumber,
				EventTitle:    booking.Event.Title,
				EventDate:     booking.Event.StartDate.Format("02 Jan 2006 15:04"),
				Amount:        refund.Amount,
				Reason:        refund.Reason,
			}))
	}

	booking.Status = constants.BOOKING_CANCELLED
	booking.PaymentStatus = constants.PAYMENT_REFUNDED
	booking.Refund = refund

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"booking": booking})
}

// RequestCancellation starts the two-step attendee cancellation flow: the
// booking waits in cancellation_requested until the organizer decides.
func RequestCancellation(c *fiber.Ctx) error {
	booking, user, _, errResp := loadBookingForCaller(c)
	if errResp != nil {
		return errResp
	}
	db := database.DB

	if booking.UserID != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Only the booking owner can request cancellation", nil)
	}
	if booking.Status != constants.BOOKING_CONFIRMED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only confirmed bookings can request cancellation", nil)
	}

	input, _ := c.Locals("CancelBookingInput").(model.CancelBookingInput)
	now := time.Now()

	if err := db.Model(booking).Updates(map[string]interface{}{
		"status":                  constants.BOOKING_CANCELLATION_REQUESTED,
		"cancel_req_requested":    true,
		"cancel_req_reason":       input.Reason,
		"cancel_req_requested_at": &now,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// notify the organizer, in-app and by email
	var organizer model.User
	if err := db.First(&organizer, booking.Event.OrganizerID).Error; err == nil {
		PushNotification(db, organizer.ID, constants.NOTIF_CANCELLATION_REQUESTED,
			"Cancellation requested",
			fmt.Sprintf("Booking %s for %s has a pending cancellation request.", booking.BookingNumber, booking.Event.Title))
		utils.SendBookingEmail(organizer.Email, "Cancellation requested for "+booking.BookingNumber,
			utils.CancellationRequestedBody(utils.BookingEmailData{
				BookingNumber: booking.BookingNumber,
				EventTitle:    booking.Event.Title,
				Reason:        input.Reason,
			}))
	}

	booking.Status = constants.BOOKING_CANCELLATION_REQUESTED
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"booking": booking})
}

// RejectCancellation reverts a cancellation_requested booking to confirmed
// and stamps the rejection. Organizer/admin only.
func RejectCancellation(c *fiber.Ctx) error {
	booking, user, claim, errResp := loadBookingForCaller(c)
	if errResp != nil {
		return errResp
	}
	db := database.DB

	isOrganizer := booking.Event != nil && booking.Event.OrganizerID == user.ID
	if !isOrganizer && claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Only the organizer can reject a cancellation request", nil)
	}
	if booking.Status != constants.BOOKING_CANCELLATION_REQUESTED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Booking has no pending cancellation request", nil)
	}

	input, ok := c.Locals("RejectCancellationInput").(model.RejectCancellationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	now := time.Now()

	if err := db.Model(booking).Updates(map[string]interface{}{
		"status":                 constants.BOOKING_CONFIRMED,
		"cancel_rej_reason":      input.Reason,
		"cancel_rej_rejected_at": &now,
		"cancel_rej_rejected_by": user.ID,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	PushNotification(db, booking.UserID, constants.NOTIF_CANCELLATION_REJECTED,
		"Cancellation request rejected",
		fmt.Sprintf("Your cancellation request for booking %s was rejected.", booking.BookingNumber))
	if booking.User != nil {
		utils.SendBookingEmail(booking.User.Email, "Cancellation request rejected "+booking.BookingNumber,
			utils.CancellationRejectedBody(utils.BookingEmailData{
				Name:          booking.User.Name,
				BookingNumber: booking.BookingNumber,
				EventTitle:    booking.Event.Title,
				Reason:        input.Reason,
			}))
	}

	booking.Status = constants.BOOKING_CONFIRMED
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"booking": booking})
}

// CheckInAttendee marks a ticket code as used at the door. Organizer/admin only.
func CheckInAttendee(c *fiber.Ctx) error {
	claim, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	code := c.Params("ticketCode")
	db := database.DB

	var attendee model.Attendee
	if err := db.Where("ticket_code = ?", code).First(&attendee).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Ticket code not found", err)
	}

	var booking model.Booking
	if err := db.Preload("Event").First(&booking, attendee.BookingID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if booking.Event.OrganizerID != user.ID && claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You do not own this event", nil)
	}
	if booking.Status != constants.BOOKING_CONFIRMED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Booking is not confirmed", nil)
	}
	if attendee.CheckedIn {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ticket already checked in", nil)
	}

	if err := db.Model(&attendee).Update("checked_in", true).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	attendee.CheckedIn = true
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"attendee": attendee})
}
