package models

import (
	"time"
)

type NotificationType string

const (
	NotificationNewMessage     NotificationType = "new_message"
	NotificationListingSold    NotificationType = "listing_sold"
	NotificationRatingReceived NotificationType = "rating_received"
	NotificationFlagResolved   NotificationType = "flag_resolved"
	NotificationEventCancelled NotificationType = "event_cancelled"
	NotificationSellerApproved NotificationType = "seller_approved"
	NotificationSystem         NotificationType = "system"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

type Notification struct {
	ID        uint                 `json:"id" gorm:"primaryKey"`
	UserID    uint                 `json:"user_id" gorm:"not null;index"`
	Type      NotificationType     `json:"type" gorm:"type:varchar(50);not null"`
	Title     string               `json:"title" gorm:"type:varchar(255);not null"`
	Message   string               `json:"message" gorm:"type:text;not null"`
	Priority  NotificationPriority `json:"priority" gorm:"type:varchar(20);default:'normal'"`
	IsRead    bool                 `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time            `json:"created_at"`
	ReadAt    *time.Time           `json:"read_at,omitempty"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (Notification) TableName() string {
	return "notifications"
}
