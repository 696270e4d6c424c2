package handlers

import (
	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/services"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type LostFoundHandler struct {
	lostFoundService *services.LostFoundService
}

func NewLostFoundHandler(lostFoundService *services.LostFoundService) *LostFoundHandler {
	return &LostFoundHandler{lostFoundService: lostFoundService}
}

func (h *LostFoundHandler) ReportItem(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.ReportLostFoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Kind, title and description are required")
		return
	}

	item, err := h.lostFoundService.ReportItem(userID, req)
	if err != nil {
		respondError(c, "Failed to report item", err)
		return
	}

	utils.SendSuccess(c, "Item reported successfully", item)
}

func (h *LostFoundHandler) ListItems(c *gin.Context) {
	var filter services.LostFoundFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendValidationError(c, "Invalid filter parameters")
		return
	}

	items, pagination, err := h.lostFoundService.ListItems(filter)
	if err != nil {
		respondError(c, "Failed to fetch items", err)
		return
	}

	utils.SendPaginated(c, "Items retrieved successfully", items, pagination)
}

func (h *LostFoundHandler) ResolveItem(c *gin.Context) {
	userID := c.GetUint("user_id")
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	var req struct {
		Status models.LostFoundStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Status is required")
		return
	}

	item, err := h.lostFoundService.ResolveItem(itemID, userID, req.Status)
	if err != nil {
		respondError(c, "Failed to resolve item", err)
		return
	}

	utils.SendSuccess(c, "Item resolved successfully", item)
}

func (h *LostFoundHandler) DeleteItem(c *gin.Context) {
	userID := c.GetUint("user_id")
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	if err := h.lostFoundService.DeleteItem(itemID, userID); err != nil {
		respondError(c, "Failed to delete item", err)
		return
	}

	utils.SendSuccess(c, "Item deleted successfully", nil)
}
