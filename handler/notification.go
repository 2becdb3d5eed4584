package handler

import (
	"context"
	"encoding/json"
	"eventhub/constants"
	"eventhub/database"
	"eventhub/helper"
	"eventhub/model"
	"eventhub/utils"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	notifClients = make(map[uint]map[*websocket.Conn]bool)
	notifMu      sync.Mutex
)

// PushNotification persists an in-app notification and publishes it to the
// user's Redis channel for live websocket delivery. Both writes are
// best-effort side effects of the triggering operation.
func PushNotification(db *gorm.DB, userID uint, ntype, title, message string) {
	notification := model.Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("failed to store notification for user %d: %v", userID, err)
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return
	}
	if err := utils.Redis().Publish(context.Background(),
		fmt.Sprintf("notifications:%d", userID), payload).Err(); err != nil {
		log.Printf("failed to publish notification for user %d: %v", userID, err)
	}
}

func GetNotifications(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	page, limit := utils.ParsePagination(c)
	query := database.DB.Model(&model.Notification{}).Where("user_id = ?", user.ID)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	query.Count(&total)

	var notifications []model.Notification
	if err := utils.ApplyPagination(query, page, limit).
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, "notifications", notifications, len(notifications), total, page, limit)
}

func GetUnreadCount(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	var count int64
	database.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&count)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"unread": count})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	id := c.Locals("inputId").(uint)

	var notification model.Notification
	if err := database.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&notification).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOTIFICATION_NOT_FOUND, err)
	}

	if err := database.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	notification.IsRead = true
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"notification": notification})
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	_, user := helper.GetUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	if err := database.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "All notifications marked read"})
}

// NotificationStream keeps a websocket open per user and relays messages
// published on the user's Redis channel.
func NotificationStream(c *websocket.Conn) {
	userID, ok := c.Locals("streamUserId").(uint)
	if !ok || userID == 0 {
		c.Close()
		return
	}

	defer func() {
		notifMu.Lock()
		if notifClients[userID] != nil {
			delete(notifClients[userID], c)
		}
		notifMu.Unlock()
		c.Close()
	}()

	notifMu.Lock()
	if notifClients[userID] == nil {
		notifClients[userID] = make(map[*websocket.Conn]bool)
	}
	notifClients[userID][c] = true
	notifMu.Unlock()

	pubsub := utils.Redis().Subscribe(
		context.Background(),
		fmt.Sprintf("notifications:%d", userID),
	)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		payload := []byte(msg.Payload)

		notifMu.Lock()
		for conn := range notifClients[userID] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(notifClients[userID], conn)
			}
		}
		notifMu.Unlock()
	}
}
