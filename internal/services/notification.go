package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/utils"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify is a pure insert. Duplicate notifications are possible if callers
// retry; delivery is persistence only.
func (s *NotificationService) Notify(userID uint, notifType models.NotificationType, title, message string, priority models.NotificationPriority) error {
	if priority == "" {
		priority = models.PriorityNormal
	}

	notification := models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Priority: priority,
	}

	if err := s.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (s *NotificationService) NotifyNewMessage(recipientID, senderID, conversationID uint) error {
	var sender models.User
	senderName := "Someone"
	if err := s.db.Select("id", "name").First(&sender, senderID).Error; err == nil {
		senderName = sender.Name
	}

	return s.Notify(
		recipientID,
		models.NotificationNewMessage,
		"New Message",
		fmt.Sprintf("%s sent you a message", senderName),
		models.PriorityNormal,
	)
}

func (s *NotificationService) NotifyListingSold(buyerID uint, listingTitle string) error {
	return s.Notify(
		buyerID,
		models.NotificationListingSold,
		"Purchase Recorded",
		fmt.Sprintf("The listing %q has been marked as sold to you. Don't forget to rate the seller.", listingTitle),
		models.PriorityHigh,
	)
}

func (s *NotificationService) NotifyRatingReceived(userID uint, rating int) error {
	return s.Notify(
		userID,
		models.NotificationRatingReceived,
		"New Rating",
		fmt.Sprintf("You received a %d-star rating", rating),
		models.PriorityNormal,
	)
}

func (s *NotificationService) NotifyFlagResolved(reporterID uint, contentType models.FlaggedContentType) error {
	return s.Notify(
		reporterID,
		models.NotificationFlagResolved,
		"Report Reviewed",
		fmt.Sprintf("Your report on a %s has been reviewed by a moderator", contentType),
		models.PriorityNormal,
	)
}

func (s *NotificationService) NotifyEventCancelled(userID uint, eventTitle string) error {
	return s.Notify(
		userID,
		models.NotificationEventCancelled,
		"Event Cancelled",
		fmt.Sprintf("The event %q you RSVPed to has been cancelled", eventTitle),
		models.PriorityHigh,
	)
}

func (s *NotificationService) NotifySellerApproved(userID uint) error {
	return s.Notify(
		userID,
		models.NotificationSellerApproved,
		"Seller Account Approved",
		"Your seller account has been approved. You can now create listings.",
		models.PriorityHigh,
	)
}

type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	Pagination    *utils.Pagination     `json:"-"`
}

func (s *NotificationService) ListNotifications(userID uint, unreadOnly bool, page, limit int) (*NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.New("failed to count notifications")
	}

	var notifications []models.Notification
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, errors.New("failed to fetch notifications")
	}

	var unreadCount int64
	s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unreadCount)

	return &NotificationPage{
		Notifications: notifications,
		UnreadCount:   unreadCount,
		Pagination:    utils.NewPagination(page, limit, total),
	}, nil
}

// MarkRead marks one of the requester's notifications as read. The update is
// scoped to the requester's own rows, so an id belonging to someone else is a
// silent no-op rather than an error.
func (s *NotificationService) MarkRead(notificationID, requesterID uint) error {
	now := time.Now()
	return s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", notificationID, requesterID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
}

func (s *NotificationService) MarkAllRead(requesterID uint) error {
	now := time.Now()
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", requesterID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
}

// DeleteNotification removes one of the requester's own notifications.
func (s *NotificationService) DeleteNotification(notificationID, requesterID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", notificationID, requesterID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: notification not found", ErrNotFound)
	}
	return nil
}
