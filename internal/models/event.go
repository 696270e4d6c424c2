package models

import (
	"time"
)

type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventCancelled EventStatus = "cancelled"
)

type RSVPStatus string

const (
	RSVPGoing      RSVPStatus = "going"
	RSVPInterested RSVPStatus = "interested"
	RSVPNotGoing   RSVPStatus = "not_going"
)

type Event struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	OrganizerID uint        `json:"organizer_id" gorm:"not null;index"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
	Location    string      `json:"location" gorm:"not null"`
	StartsAt    time.Time   `json:"starts_at" gorm:"not null;index"`
	EndsAt      *time.Time  `json:"ends_at,omitempty"`
	Capacity    int         `json:"capacity" gorm:"default:0"` // 0 means unlimited
	Status      EventStatus `json:"status" gorm:"type:varchar(20);default:'active'"`

	OrganizerName string `json:"organizer_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RSVPs []RSVP `json:"rsvps,omitempty" gorm:"foreignKey:EventID"`
}

type RSVP struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	EventID   uint       `json:"event_id" gorm:"not null;uniqueIndex:idx_event_user"`
	UserID    uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_event_user"`
	Status    RSVPStatus `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=255"`
	Description string     `json:"description"`
	Location    string     `json:"location" binding:"required,min=1,max=255"`
	StartsAt    time.Time  `json:"starts_at" binding:"required"`
	EndsAt      *time.Time `json:"ends_at"`
	Capacity    int        `json:"capacity" binding:"gte=0"`
}
