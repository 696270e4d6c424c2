package models

import (
	"time"
)

type Announcement struct {
	ID        uint                 `json:"id" gorm:"primaryKey"`
	AuthorID  uint                 `json:"author_id" gorm:"not null"`
	Title     string               `json:"title" gorm:"not null"`
	Body      string               `json:"body" gorm:"type:text;not null"`
	Priority  NotificationPriority `json:"priority" gorm:"type:varchar(20);default:'normal'"`
	IsPinned  bool                 `json:"is_pinned" gorm:"default:false"`
	IsActive  bool                 `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`

	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

type CreateAnnouncementRequest struct {
	Title    string               `json:"title" binding:"required,min=1,max=255"`
	Body     string               `json:"body" binding:"required"`
	Priority NotificationPriority `json:"priority"`
	IsPinned bool                 `json:"is_pinned"`
}
