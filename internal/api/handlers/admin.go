package handlers

import (
	"strconv"

	"github.com/campus-connect/campus-backend/internal/services"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboard()
	if err != nil {
		utils.SendInternalError(c, "Failed to compute dashboard", err)
		return
	}

	utils.SendSuccess(c, "Dashboard retrieved successfully", stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	role := c.Query("role")

	users, pagination, err := h.adminService.ListUsers(role, page, limit)
	if err != nil {
		respondError(c, "Failed to fetch users", err)
		return
	}

	utils.SendPaginated(c, "Users retrieved successfully", users, pagination)
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	user, err := h.adminService.SetUserBanned(userID, true)
	if err != nil {
		respondError(c, "Failed to ban user", err)
		return
	}

	utils.SendSuccess(c, "User banned successfully", user)
}

func (h *AdminHandler) UnbanUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	user, err := h.adminService.SetUserBanned(userID, false)
	if err != nil {
		respondError(c, "Failed to unban user", err)
		return
	}

	utils.SendSuccess(c, "User unbanned successfully", user)
}

func (h *AdminHandler) ApproveSeller(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	user, err := h.adminService.ApproveSeller(userID)
	if err != nil {
		respondError(c, "Failed to approve seller", err)
		return
	}

	utils.SendSuccess(c, "Seller approved successfully", user)
}
