package handler

import (
	"errors"
	"eventhub/constants"
	"eventhub/database"
	"eventhub/helper"
	"eventhub/model"
	"eventhub/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetEvents lists published events with optional filters. Ended events are
// flipped to completed before listing (lazy transition, no scheduler on the
// read path).
func GetEvents(c *fiber.Ctx) error {
	db := database.DB
	helper.CompleteEndedEvents(db)

	page, limit := utils.ParsePagination(c)

	query := db.Model(&model.Event{}).Where("status = ?", constants.EVENT_PUBLISHED)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("venue_city = ?", city)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if c.Query("upcoming") == "true" {
		query = query.Where("start_date > ?", time.Now())
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("start_date >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("start_date < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var events []model.Event
	if err := utils.ApplyPagination(query, page, limit).
		Preload("TicketTypes").
		Order("start_date asc").
		Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, "events", events, len(events), total, page, limit)
}

// GetEventById fetches one event by numeric id or slug, applying the lazy
// completion transition to the single row.
func GetEventById(c *fiber.Ctx) error {
	db := database.DB
	param := c.Params("id")

	var event model.Event
	query := db.Preload("TicketTypes").Preload("Organizer")
	if id, err := strconv.Atoi(param); err == nil {
		err = query.First(&event, id).Error
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
		}
	} else {
		if err := query.Where("slug = ?", param).First(&event).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
		}
	}

	helper.CompleteEventIfEnded(db, &event)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"event": event})
}

func GetCategories(c *fiber.Ctx) error {
	var categories []string
	if err := database.DB.Model(&model.Event{}).
		Where("status = ?", constants.EVENT_PUBLISHED).
		Distinct().
		Order("category asc").
		Pluck("category", &categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"categories": categories})
}

func SearchEvents(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Search query is required", errors.New("missing q"))
	}
	db := database.DB
	helper.CompleteEndedEvents(db)

	page, limit := utils.ParsePagination(c)
	like := "%" + q + "%"

	query := db.Model(&model.Event{}).
		Where("status = ?", constants.EVENT_PUBLISHED).
		Where("title ILIKE ? OR description ILIKE ? OR venue_name ILIKE ? OR venue_city ILIKE ?", like, like, like, like)

	var total int64
	query.Count(&total)

	var events []model.Event
	if err := utils.ApplyPagination(query, page, limit).
		Preload("TicketTypes").
		Order("start_date asc").
		Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, "events", events, len(events), total, page, limit)
}

func CreateEvent(c *fiber.Ctx) error {
	db := database.DB
	claim, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}
	if claim.Role != constants.ROLE_ORGANIZER && claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Only organizers can create events", nil)
	}

	input, ok := c.Locals("CreateEventInput").(model.CreateEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	event := model.Event{
		OrganizerID:  user.ID,
		Title:        input.Title,
		Slug:         helper.GenerateUniqueEventSlug(db, input.Title),
		Description:  input.Description,
		Category:     input.Category,
		VenueName:    input.VenueName,
		VenueAddress: input.VenueAddress,
		VenueCity:    input.VenueCity,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       constants.EVENT_DRAFT,
		ImageURL:     input.ImageURL,
	}
	if input.Status != "" {
		event.Status = input.Status
	}
	for _, tier := range input.TicketTypes {
		maxPerOrder := tier.MaxPerOrder
		if maxPerOrder == 0 {
			maxPerOrder = 10
		}
		event.TicketTypes = append(event.TicketTypes, model.TicketType{
			Name:        tier.Name,
			Description: tier.Description,
			Price:       tier.Price,
			Quantity:    tier.Quantity,
			MaxPerOrder: maxPerOrder,
			SaleStart:   tier.SaleStart,
			SaleEnd:     tier.SaleEnd,
		})
	}

	if err := db.Create(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"event": event})
}

func loadOwnedEvent(c *fiber.Ctx) (*model.Event, *model.User, error) {
	claim, user := helper.GetUserFromToken(c)
	if user == nil {
		return nil, nil, utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, nil, utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid event id", err)
	}

	var event model.Event
	if err := database.DB.Preload("TicketTypes").First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
		}
		return nil, nil, utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if event.OrganizerID != user.ID && claim.Role != constants.ROLE_ADMIN {
		return nil, nil, utils.ErrorResponse(c, fiber.StatusForbidden, "You do not own this event", nil)
	}
	return &event, user, nil
}

func UpdateEvent(c *fiber.Ctx) error {
	event, _, errResp := loadOwnedEvent(c)
	if errResp != nil {
		return errResp
	}

	input, ok := c.Locals("UpdateEventInput").(model.UpdateEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.VenueName != nil {
		updates["venue_name"] = *input.VenueName
	}
	if input.VenueAddress != nil {
		updates["venue_address"] = *input.VenueAddress
	}
	if input.VenueCity != nil {
		updates["venue_city"] = *input.VenueCity
	}
	if input.StartDate != nil {
		updates["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		updates["end_date"] = *input.EndDate
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}

	if len(updates) > 0 {
		if err := database.DB.Model(event).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"event": event})
}

func DeleteEvent(c *fiber.Ctx) error {
	event, _, errResp := loadOwnedEvent(c)
	if errResp != nil {
		return errResp
	}
	db := database.DB

	var activeBookings int64
	db.Model(&model.Booking{}).
		Where("event_id = ? AND status IN ?", event.ID,
			[]string{constants.BOOKING_PENDING, constants.BOOKING_CONFIRMED, constants.BOOKING_CANCELLATION_REQUESTED}).
		Count(&activeBookings)
	if activeBookings > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot delete an event with active bookings", nil)
	}

	if err := db.Delete(&model.TicketType{}, "event_id = ?", event.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := db.Delete(event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Event deleted"})
}

func GetMyEvents(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	page, limit := utils.ParsePagination(c)
	query := database.DB.Model(&model.Event{}).Where("organizer_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var events []model.Event
	if err := utils.ApplyPagination(query, page, limit).
		Preload("TicketTypes").
		Order("created_at desc").
		Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, "events", events, len(events), total, page, limit)
}

// GetEventAnalytics summarizes per-tier sales and booking counts for the organizer.
func GetEventAnalytics(c *fiber.Ctx) error {
	event, _, errResp := loadOwnedEvent(c)
	if errResp != nil {
		return errResp
	}
	db := database.DB

	tiers := make([]fiber.Map, 0, len(event.TicketTypes))
	totalSold := 0
	totalRevenue := 0.0
	for _, tier := range event.TicketTypes {
		revenue := utils.Round2(tier.Price * float64(tier.Sold))
		totalSold += tier.Sold
		totalRevenue += revenue
		tiers = append(tiers, fiber.Map{
			"ticketTypeId": tier.ID,
			"name":         tier.Name,
			"price":        tier.Price,
			"quantity":     tier.Quantity,
			"sold":         tier.Sold,
			"remaining":    tier.Quantity - tier.Sold,
			"revenue":      revenue,
		})
	}

	var bookingCounts []struct {
		Status string
		Count  int64
	}
	db.Model(&model.Booking{}).
		Select("status, COUNT(*) as count").
		Where("event_id = ?", event.ID).
		Group("status").
		Scan(&bookingCounts)

	byStatus := fiber.Map{}
	for _, row := range bookingCounts {
		byStatus[row.Status] = row.Count
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"analytics": fiber.Map{
			"eventId":       event.ID,
			"title":         event.Title,
			"status":        event.Status,
			"totalSold":     totalSold,
			"totalRevenue":  utils.Round2(totalRevenue),
			"averageRating": event.AverageRating,
			"totalReviews":  event.TotalReviews,
			"tiers":         tiers,
			"bookings":      byStatus,
		},
	})
}
