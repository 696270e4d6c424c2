package handlers

import (
	"strconv"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/services"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Title and body are required")
		return
	}

	announcement, err := h.announcementService.CreateAnnouncement(userID, req)
	if err != nil {
		respondError(c, "Failed to create announcement", err)
		return
	}

	utils.SendSuccess(c, "Announcement created successfully", announcement)
}

func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	announcements, pagination, err := h.announcementService.ListAnnouncements(page, limit)
	if err != nil {
		respondError(c, "Failed to fetch announcements", err)
		return
	}

	utils.SendPaginated(c, "Announcements retrieved successfully", announcements, pagination)
}

func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	userID := c.GetUint("user_id")
	announcementID, ok := parseIDParam(c, "announcement_id")
	if !ok {
		return
	}

	if err := h.announcementService.DeleteAnnouncement(announcementID, userID); err != nil {
		respondError(c, "Failed to delete announcement", err)
		return
	}

	utils.SendSuccess(c, "Announcement deleted successfully", nil)
}
