package handlers

import (
	"strconv"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/services"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) FlagContent(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.FlagContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Content type, content ID and reason are required")
		return
	}

	flag, err := h.moderationService.FlagContent(userID, req)
	if err != nil {
		respondError(c, "Failed to flag content", err)
		return
	}

	utils.SendSuccess(c, "Content flagged for review", flag)
}

func (h *ModerationHandler) ListFlags(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := c.Query("status")

	flags, pagination, err := h.moderationService.ListFlags(status, page, limit)
	if err != nil {
		respondError(c, "Failed to fetch flags", err)
		return
	}

	utils.SendPaginated(c, "Flags retrieved successfully", flags, pagination)
}

func (h *ModerationHandler) ResolveFlag(c *gin.Context) {
	userID := c.GetUint("user_id")
	flagID, ok := parseIDParam(c, "flag_id")
	if !ok {
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Action is required")
		return
	}

	flag, err := h.moderationService.ResolveFlag(flagID, userID, req.Action)
	if err != nil {
		respondError(c, "Failed to resolve flag", err)
		return
	}

	utils.SendSuccess(c, "Flag resolved successfully", flag)
}
