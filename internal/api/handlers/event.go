package handlers

import (
	"strconv"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/services"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Title, location and start time are required")
		return
	}

	event, err := h.eventService.CreateEvent(userID, req)
	if err != nil {
		respondError(c, "Failed to create event", err)
		return
	}

	utils.SendSuccess(c, "Event created successfully", event)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	upcomingOnly := c.DefaultQuery("upcoming", "true") == "true"

	events, pagination, err := h.eventService.ListEvents(upcomingOnly, page, limit)
	if err != nil {
		respondError(c, "Failed to fetch events", err)
		return
	}

	utils.SendPaginated(c, "Events retrieved successfully", events, pagination)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "event_id")
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(eventID)
	if err != nil {
		respondError(c, "Failed to fetch event", err)
		return
	}

	utils.SendSuccess(c, "Event retrieved successfully", event)
}

func (h *EventHandler) RSVP(c *gin.Context) {
	userID := c.GetUint("user_id")
	eventID, ok := parseIDParam(c, "event_id")
	if !ok {
		return
	}

	var req services.RSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "RSVP status is required")
		return
	}

	rsvp, err := h.eventService.RSVP(eventID, userID, req.Status)
	if err != nil {
		respondError(c, "Failed to RSVP", err)
		return
	}

	utils.SendSuccess(c, "RSVP recorded successfully", rsvp)
}

func (h *EventHandler) CancelRSVP(c *gin.Context) {
	userID := c.GetUint("user_id")
	eventID, ok := parseIDParam(c, "event_id")
	if !ok {
		return
	}

	if err := h.eventService.CancelRSVP(eventID, userID); err != nil {
		respondError(c, "Failed to cancel RSVP", err)
		return
	}

	utils.SendSuccess(c, "RSVP cancelled successfully", nil)
}

func (h *EventHandler) CancelEvent(c *gin.Context) {
	userID := c.GetUint("user_id")
	eventID, ok := parseIDParam(c, "event_id")
	if !ok {
		return
	}

	if err := h.eventService.CancelEvent(eventID, userID); err != nil {
		respondError(c, "Failed to cancel event", err)
		return
	}

	utils.SendSuccess(c, "Event cancelled successfully", nil)
}
