package handlers

import (
	"strconv"

	"github.com/campus-connect/campus-backend/internal/services"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	conversationService *services.ConversationService
}

func NewConversationHandler(conversationService *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

func (h *ConversationHandler) StartConversation(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req services.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Recipient ID is required")
		return
	}

	conversation, err := h.conversationService.StartConversation(userID, req.RecipientID, req.ListingID)
	if err != nil {
		respondError(c, "Failed to start conversation", err)
		return
	}

	utils.SendSuccess(c, "Conversation ready", conversation)
}

func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID := c.GetUint("user_id")

	conversations, err := h.conversationService.ListConversations(userID)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch conversations", err)
		return
	}

	utils.SendSuccess(c, "Conversations retrieved successfully", conversations)
}

func (h *ConversationHandler) SendMessage(c *gin.Context) {
	userID := c.GetUint("user_id")
	conversationID, ok := parseIDParam(c, "conversation_id")
	if !ok {
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Message content is required")
		return
	}

	message, err := h.conversationService.SendMessage(conversationID, userID, req.Content)
	if err != nil {
		respondError(c, "Failed to send message", err)
		return
	}

	utils.SendSuccess(c, "Message sent successfully", message)
}

// GetMessages returns a page of messages and, as a side effect, marks the
// requester's unread messages as read.
func (h *ConversationHandler) GetMessages(c *gin.Context) {
	userID := c.GetUint("user_id")
	conversationID, ok := parseIDParam(c, "conversation_id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, pagination, err := h.conversationService.FetchAndAcknowledgeMessages(conversationID, userID, page, limit)
	if err != nil {
		respondError(c, "Failed to fetch messages", err)
		return
	}

	utils.SendPaginated(c, "Messages retrieved successfully", messages, pagination)
}
