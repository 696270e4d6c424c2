package models

import (
	"time"
)

type FlagStatus string

const (
	FlagPending     FlagStatus = "pending"
	FlagUnderReview FlagStatus = "under_review"
	FlagResolved    FlagStatus = "resolved"
	FlagDismissed   FlagStatus = "dismissed"
)

type FlaggedContentType string

const (
	FlaggedListing      FlaggedContentType = "listing"
	FlaggedEvent        FlaggedContentType = "event"
	FlaggedAnnouncement FlaggedContentType = "announcement"
	FlaggedLostFound    FlaggedContentType = "lost_found"
)

type FlaggedContent struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	ContentType FlaggedContentType `json:"content_type" gorm:"type:varchar(30);not null;index"`
	ContentID   uint               `json:"content_id" gorm:"not null;index"`
	ReporterID  uint               `json:"reporter_id" gorm:"not null;index"`
	Reason      string             `json:"reason" gorm:"type:varchar(255);not null"`
	Details     string             `json:"details" gorm:"type:text"`
	Status      FlagStatus         `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ResolvedBy  *uint              `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time         `json:"resolved_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	Reporter User `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
}

func (FlaggedContent) TableName() string {
	return "flagged_contents"
}

type FlagContentRequest struct {
	ContentType FlaggedContentType `json:"content_type" binding:"required"`
	ContentID   uint               `json:"content_id" binding:"required"`
	Reason      string             `json:"reason" binding:"required,min=1,max=255"`
	Details     string             `json:"details"`
}
