package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/campus-connect/campus-backend/pkg/logger"
	"gorm.io/gorm"
)

type ConversationService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewConversationService(db *gorm.DB, notifications *NotificationService) *ConversationService {
	return &ConversationService{db: db, notifications: notifications}
}

type StartConversationRequest struct {
	RecipientID uint  `json:"recipient_id" binding:"required"`
	ListingID   *uint `json:"listing_id"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// ConversationSummary is the inbox row: the conversation plus the
// counterpart's public profile and the caller's unread count.
type ConversationSummary struct {
	models.Conversation
	OtherUserID   uint   `json:"other_user_id"`
	OtherUserName string `json:"other_user_name"`
	UnreadCount   int    `json:"unread_count"`
}

// StartConversation returns the existing conversation for the (pair, listing)
// combination or lazily creates one. Calling it twice with the same arguments
// yields the same conversation.
func (s *ConversationService) StartConversation(userID, recipientID uint, listingID *uint) (*models.Conversation, error) {
	if userID == recipientID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", ErrValidation)
	}

	var recipient models.User
	if err := s.db.First(&recipient, recipientID).Error; err != nil {
		return nil, fmt.Errorf("%w: recipient not found", ErrNotFound)
	}

	p1, p2 := models.NormalizePair(userID, recipientID)

	query := s.db.Where("participant1_id = ? AND participant2_id = ?", p1, p2)
	if listingID != nil {
		query = query.Where("listing_id = ?", *listingID)
	} else {
		query = query.Where("listing_id IS NULL")
	}

	var conversation models.Conversation
	if err := query.First(&conversation).Error; err == nil {
		return &conversation, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if listingID != nil {
		var listing models.Listing
		if err := s.db.First(&listing, *listingID).Error; err != nil {
			return nil, fmt.Errorf("%w: listing not found", ErrNotFound)
		}
	}

	conversation = models.Conversation{
		Participant1ID: p1,
		Participant2ID: p2,
		ListingID:      listingID,
		// Both unread counters start at zero
	}

	if err := s.db.Create(&conversation).Error; err != nil {
		return nil, errors.New("failed to create conversation")
	}

	return &conversation, nil
}

// SendMessage appends a message, refreshes the conversation's last-message
// fields, and bumps the other participant's unread counter by exactly one.
// All three writes happen in one database transaction.
func (s *ConversationService) SendMessage(conversationID, senderID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content cannot be empty", ErrValidation)
	}

	var conversation models.Conversation
	if err := s.db.First(&conversation, conversationID).Error; err != nil {
		return nil, fmt.Errorf("%w: conversation not found", ErrNotFound)
	}

	if !conversation.HasParticipant(senderID) {
		return nil, fmt.Errorf("%w: not a participant of this conversation", ErrForbidden)
	}

	message := models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return errors.New("failed to create message")
		}

		unreadColumn := "participant2_unread"
		if conversation.Participant2ID == senderID {
			unreadColumn = "participant1_unread"
		}

		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Updates(map[string]interface{}{
				"last_message_content": content,
				"last_message_at":      time.Now(),
				unreadColumn:           gorm.Expr(unreadColumn+" + ?", 1),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		recipientID := conversation.OtherParticipant(senderID)
		if err := s.notifications.NotifyNewMessage(recipientID, senderID, conversationID); err != nil {
			logger.Warn("Failed to notify message recipient: ", err)
		}
	}

	return &message, nil
}

// FetchAndAcknowledgeMessages returns a page of messages in chronological
// order. It is deliberately not a pure query: fetching marks every message
// not sent by the requester as read and resets the requester's unread
// counter to zero.
func (s *ConversationService) FetchAndAcknowledgeMessages(conversationID, requesterID uint, page, limit int) ([]models.Message, *utils.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	var conversation models.Conversation
	if err := s.db.First(&conversation, conversationID).Error; err != nil {
		return nil, nil, fmt.Errorf("%w: conversation not found", ErrNotFound)
	}

	if !conversation.HasParticipant(requesterID) {
		return nil, nil, fmt.Errorf("%w: not a participant of this conversation", ErrForbidden)
	}

	var total int64
	if err := s.db.Model(&models.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&total).Error; err != nil {
		return nil, nil, errors.New("failed to count messages")
	}

	// Stored newest-first so page 1 is the latest messages; reversed below
	// for chronological delivery.
	var messages []models.Message
	if err := s.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, nil, errors.New("failed to fetch messages")
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	unreadColumn := "participant1_unread"
	if conversation.Participant2ID == requesterID {
		unreadColumn = "participant2_unread"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, requesterID, false).
			Update("is_read", true).Error; err != nil {
			return err
		}

		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Update(unreadColumn, 0).Error
	})
	if err != nil {
		return nil, nil, errors.New("failed to acknowledge messages")
	}

	for i := range messages {
		if messages[i].SenderID != requesterID {
			messages[i].IsRead = true
		}
	}

	return messages, utils.NewPagination(page, limit, total), nil
}

// ListConversations returns the user's inbox ordered by last activity.
func (s *ConversationService) ListConversations(userID uint) ([]ConversationSummary, error) {
	var conversations []models.Conversation
	if err := s.db.
		Where("participant1_id = ? OR participant2_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, errors.New("failed to fetch conversations")
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		otherID := conversation.OtherParticipant(userID)

		var other models.User
		if err := s.db.Select("id", "name").First(&other, otherID).Error; err != nil {
			continue
		}

		summaries = append(summaries, ConversationSummary{
			Conversation:  conversation,
			OtherUserID:   otherID,
			OtherUserName: other.Name,
			UnreadCount:   conversation.UnreadFor(userID),
		})
	}

	return summaries, nil
}
