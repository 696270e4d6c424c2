package models

import (
	"time"
)

// Conversation is always two-party. Participant1ID < Participant2ID is
// normalized at creation so the (pair, listing) lookup is order-independent,
// and each participant gets a fixed unread counter slot.
type Conversation struct {
	ID             uint  `json:"id" gorm:"primaryKey"`
	Participant1ID uint  `json:"participant1_id" gorm:"not null;index:idx_conversation_pair"`
	Participant2ID uint  `json:"participant2_id" gorm:"not null;index:idx_conversation_pair"`
	ListingID      *uint `json:"listing_id,omitempty" gorm:"index:idx_conversation_pair"`

	Participant1Unread int `json:"participant1_unread" gorm:"default:0"`
	Participant2Unread int `json:"participant2_unread" gorm:"default:0"`

	LastMessageContent string    `json:"last_message" gorm:"type:text"`
	LastMessageAt      time.Time `json:"last_message_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}

type Message struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ConversationID uint      `json:"conversation_id" gorm:"not null;index"`
	SenderID       uint      `json:"sender_id" gorm:"not null;index"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	IsRead         bool      `json:"is_read" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`

	Sender User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}

func (c *Conversation) HasParticipant(userID uint) bool {
	return c.Participant1ID == userID || c.Participant2ID == userID
}

func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.Participant1ID == userID {
		return c.Participant2ID
	}
	return c.Participant1ID
}

func (c *Conversation) UnreadFor(userID uint) int {
	if c.Participant1ID == userID {
		return c.Participant1Unread
	}
	return c.Participant2Unread
}

// NormalizePair orders two user ids so participant1 < participant2.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}
