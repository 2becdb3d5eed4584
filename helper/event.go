package helper

import (
	"eventhub/constants"
	"eventhub/model"
	"eventhub/utils"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniqueEventSlug derives a slug from the title and uniquifies it
// with a numeric suffix when taken.
func GenerateUniqueEventSlug(tx *gorm.DB, title string) string {
	base := slug.Make(title)
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.Event{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}

// CompleteEndedEvents flips published events whose end date has passed to
// completed. Called from the list read path and the daily sweep; the status
// is lazily corrected, there is no guarantee an unread event is up to date.
func CompleteEndedEvents(db *gorm.DB) {
	db.Model(&model.Event{}).
		Where("status = ? AND end_date < ?", constants.EVENT_PUBLISHED, time.Now()).
		Update("status", constants.EVENT_COMPLETED)
}

// CompleteEventIfEnded applies the same lazy transition to a single loaded event.
func CompleteEventIfEnded(db *gorm.DB, event *model.Event) {
	if event.Status == constants.EVENT_PUBLISHED && event.EndDate.Before(time.Now()) {
		event.Status = constants.EVENT_COMPLETED
		db.Model(event).Update("status", constants.EVENT_COMPLETED)
	}
}

// RecomputeEventRating aggregates approved public reviews into the event's
// averageRating (1 decimal) and totalReviews.
func RecomputeEventRating(db *gorm.DB, eventID uint) error {
	type agg struct {
		Avg   float64
		Total int64
	}
	var a agg
	err := db.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS total").
		Where("event_id = ? AND is_public = ? AND moderation_status = ?",
			eventID, true, constants.MODERATION_APPROVED).
		Scan(&a).Error
	if err != nil {
		return err
	}

	return db.Model(&model.Event{}).Where("id = ?", eventID).Updates(map[string]interface{}{
		"average_rating": utils.Round1(a.Avg),
		"total_reviews":  a.Total,
	}).Error
}
