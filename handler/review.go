package handler

import (
	"errors"
	"eventhub/constants"
	"eventhub/database"
	"eventhub/helper"
	"eventhub/model"
	"eventhub/utils"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// reviewWindowOpen reports whether an event can be reviewed yet: either the
// status already flipped to completed, or the end date has passed and the
// lazy transition simply has not run.
func reviewWindowOpen(event *model.Event, now time.Time) bool {
	return event.Status == constants.EVENT_COMPLETED || !event.EndDate.After(now)
}

// CreateReview lets a user with a confirmed booking review an ended event,
// once. Uniqueness per (user, event) is enforced by the store's unique index,
// not by the application.
func CreateReview(c *fiber.Ctx) error {
	db := database.DB
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	input, ok := c.Locals("CreateReviewInput").(model.CreateReviewInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	var event model.Event
	if err := db.First(&event, input.EventID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}
	if !reviewWindowOpen(&event, time.Now()) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.REVIEW_EVENT_NOT_ENDED, nil)
	}

	var booking model.Booking
	if err := db.Where("user_id = ? AND event_id = ? AND status = ?",
		user.ID, event.ID, constants.BOOKING_CONFIRMED).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.REVIEW_REQUIRES_BOOKING, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	review := model.Review{
		UserID:           user.ID,
		EventID:          event.ID,
		BookingID:        booking.ID,
		Rating:           input.Rating,
		VenueRating:      input.VenueRating,
		OrganizerRating:  input.OrganizerRating,
		ValueRating:      input.ValueRating,
		Title:            input.Title,
		Comment:          input.Comment,
		IsPublic:         isPublic,
		ModerationStatus: constants.MODERATION_PENDING,
	}
	if err := db.Create(&review).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DUPLICATE_REVIEW, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := helper.RecomputeEventRating(db, event.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"review": review})
}

func GetEventReviews(c *fiber.Ctx) error {
	eventID := c.Locals("inputId").(uint)
	page, limit := utils.ParsePagination(c)

	query := database.DB.Model(&model.Review{}).
		Where("event_id = ? AND is_public = ? AND moderation_status = ?",
			eventID, true, constants.MODERATION_APPROVED)

	var total int64
	query.Count(&total)

	var reviews []model.Review
	if err := utils.ApplyPagination(query, page, limit).
		Preload("User").
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, "reviews", reviews, len(reviews), total, page, limit)
}

func GetMyReviews(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	page, limit := utils.ParsePagination(c)
	query := database.DB.Model(&model.Review{}).Where("user_id = ?", user.ID)

	var total int64
	query.Count(&total)

	var reviews []model.Review
	if err := utils.ApplyPagination(query, page, limit).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, "reviews", reviews, len(reviews), total, page, limit)
}

func loadReview(c *fiber.Ctx) (*model.Review, error) {
	id := c.Locals("inputId").(uint)
	var review model.Review
	if err := database.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorResponse(c, fiber.StatusNotFound, constants.REVIEW_NOT_FOUND, err)
		}
		return nil, utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return &review, nil
}

// UpdateReview edits the caller's own review and resets moderation to pending.
func UpdateReview(c *fiber.Ctx) error {
	db := database.DB
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	review, errResp := loadReview(c)
	if errResp != nil {
		return errResp
	}
	if review.UserID != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You can only edit your own review", nil)
	}

	input, ok := c.Locals("UpdateReviewInput").(model.UpdateReviewInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	updates := map[string]interface{}{
		// any edit goes back through moderation
		"moderation_status": constants.MODERATION_PENDING,
	}
	if input.Rating != nil {
		updates["rating"] = *input.Rating
	}
	if input.VenueRating != nil {
		updates["venue_rating"] = *input.VenueRating
	}
	if input.OrganizerRating != nil {
		updates["organizer_rating"] = *input.OrganizerRating
	}
	if input.ValueRating != nil {
		updates["value_rating"] = *input.ValueRating
	}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Comment != nil {
		updates["comment"] = *input.Comment
	}
	if input.IsPublic != nil {
		updates["is_public"] = *input.IsPublic
	}

	if err := db.Model(review).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := helper.RecomputeEventRating(db, review.EventID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"review": review})
}

func DeleteReview(c *fiber.Ctx) error {
	db := database.DB
	claim, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	review, errResp := loadReview(c)
	if errResp != nil {
		return errResp
	}
	if review.UserID != user.ID && claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You can only delete your own review", nil)
	}

	if err := db.Delete(review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := helper.RecomputeEventRating(db, review.EventID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Review deleted"})
}

// VoteHelpful bumps the helpful counter. Counters are anonymous: repeat votes
// from the same caller are counted again.
func VoteHelpful(c *fiber.Ctx) error {
	review, errResp := loadReview(c)
	if errResp != nil {
		return errResp
	}

	if err := database.DB.Model(review).
		Update("helpful_votes", gorm.Expr("helpful_votes + 1")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Vote recorded"})
}

func ReportReview(c *fiber.Ctx) error {
	review, errResp := loadReview(c)
	if errResp != nil {
		return errResp
	}

	if err := database.DB.Model(review).
		Update("report_count", gorm.Expr("report_count + 1")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Report recorded"})
}

// ModerateReview is admin-only; the route is gated by RequireRole.
func ModerateReview(c *fiber.Ctx) error {
	db := database.DB

	review, errResp := loadReview(c)
	if errResp != nil {
		return errResp
	}

	input, ok := c.Locals("ModerateReviewInput").(model.ModerateReviewInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	if err := db.Model(review).Update("moderation_status", input.Status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := helper.RecomputeEventRating(db, review.EventID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	review.ModerationStatus = input.Status
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"review": review})
}

// GetPendingReviews lists reviews awaiting moderation, admin-only.
func GetPendingReviews(c *fiber.Ctx) error {
	page, limit := utils.ParsePagination(c)

	query := database.DB.Model(&model.Review{}).
		Where("moderation_status = ?", constants.MODERATION_PENDING)

	var total int64
	query.Count(&total)

	var reviews []model.Review
	if err := utils.ApplyPagination(query, page, limit).
		Preload("User").
		Order("created_at asc").
		Find(&reviews).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, "reviews", reviews, len(reviews), total, page, limit)
}
