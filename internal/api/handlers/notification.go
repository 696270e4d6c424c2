package handlers

import (
	"strconv"

	"github.com/campus-connect/campus-backend/internal/services"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	unreadOnly := c.DefaultQuery("unread_only", "false") == "true"

	result, err := h.notificationService.ListNotifications(userID, unreadOnly, page, limit)
	if err != nil {
		respondError(c, "Failed to fetch notifications", err)
		return
	}

	utils.SendPaginated(c, "Notifications retrieved successfully", result, result.Pagination)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetUint("user_id")
	notificationID, ok := parseIDParam(c, "notification_id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(notificationID, userID); err != nil {
		respondError(c, "Failed to mark notification as read", err)
		return
	}

	utils.SendSuccess(c, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		respondError(c, "Failed to mark notifications as read", err)
		return
	}

	utils.SendSuccess(c, "All notifications marked as read", nil)
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID := c.GetUint("user_id")
	notificationID, ok := parseIDParam(c, "notification_id")
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(notificationID, userID); err != nil {
		respondError(c, "Failed to delete notification", err)
		return
	}

	utils.SendSuccess(c, "Notification deleted successfully", nil)
}
