package models

import (
	"time"
)

type LostFoundKind string

const (
	ItemLost  LostFoundKind = "lost"
	ItemFound LostFoundKind = "found"
)

type LostFoundStatus string

const (
	ItemOpen     LostFoundStatus = "open"
	ItemClaimed  LostFoundStatus = "claimed"
	ItemReturned LostFoundStatus = "returned"
	ItemClosed   LostFoundStatus = "closed"
)

type LostFoundItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ReporterID  uint            `json:"reporter_id" gorm:"not null;index"`
	Kind        LostFoundKind   `json:"kind" gorm:"type:varchar(10);not null;index"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Location    string          `json:"location"`
	OccurredOn  *time.Time      `json:"occurred_on,omitempty"`
	Status      LostFoundStatus `json:"status" gorm:"type:varchar(20);default:'open';index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Reporter User `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
}

func (LostFoundItem) TableName() string {
	return "lost_found_items"
}

type ReportLostFoundRequest struct {
	Kind        LostFoundKind `json:"kind" binding:"required"`
	Title       string        `json:"title" binding:"required,min=1,max=255"`
	Description string        `json:"description" binding:"required"`
	Location    string        `json:"location"`
	OccurredOn  *time.Time    `json:"occurred_on"`
}
