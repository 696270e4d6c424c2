package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/campus-connect/campus-backend/pkg/logger"
	"gorm.io/gorm"
)

type EventService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewEventService(db *gorm.DB, notifications *NotificationService) *EventService {
	return &EventService{db: db, notifications: notifications}
}

type RSVPRequest struct {
	Status models.RSVPStatus `json:"status" binding:"required"`
}

func (s *EventService) CreateEvent(organizerID uint, req models.CreateEventRequest) (*models.Event, error) {
	if req.StartsAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: event cannot start in the past", ErrValidation)
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, fmt.Errorf("%w: event cannot end before it starts", ErrValidation)
	}

	var organizer models.User
	if err := s.db.First(&organizer, organizerID).Error; err != nil {
		return nil, fmt.Errorf("%w: organizer not found", ErrNotFound)
	}

	event := models.Event{
		OrganizerID:   organizerID,
		Title:         utils.SanitizeString(req.Title),
		Description:   utils.SanitizeString(req.Description),
		Location:      utils.SanitizeString(req.Location),
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		Capacity:      req.Capacity,
		Status:        models.EventActive,
		OrganizerName: organizer.Name,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, errors.New("failed to create event")
	}

	return &event, nil
}

func (s *EventService) GetEvent(eventID uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.Preload("RSVPs").First(&event, eventID).Error; err != nil {
		return nil, fmt.Errorf("%w: event not found", ErrNotFound)
	}
	return &event, nil
}

// ListEvents returns active events, soonest first.
func (s *EventService) ListEvents(upcomingOnly bool, page, limit int) ([]models.Event, *utils.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	query := s.db.Model(&models.Event{}).Where("status = ?", models.EventActive)
	if upcomingOnly {
		query = query.Where("starts_at > ?", time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.New("failed to count events")
	}

	var events []models.Event
	if err := query.
		Order("starts_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, nil, errors.New("failed to fetch events")
	}

	return events, utils.NewPagination(page, limit, total), nil
}

// RSVP upserts the user's attendance status. Going beyond capacity fails.
func (s *EventService) RSVP(eventID, userID uint, status models.RSVPStatus) (*models.RSVP, error) {
	switch status {
	case models.RSVPGoing, models.RSVPInterested, models.RSVPNotGoing:
	default:
		return nil, fmt.Errorf("%w: unknown RSVP status %q", ErrValidation, status)
	}

	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		return nil, fmt.Errorf("%w: event not found", ErrNotFound)
	}

	if event.Status != models.EventActive {
		return nil, fmt.Errorf("%w: event is cancelled", ErrConflict)
	}

	var rsvp models.RSVP
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if status == models.RSVPGoing && event.Capacity > 0 {
			var going int64
			if err := tx.Model(&models.RSVP{}).
				Where("event_id = ? AND status = ? AND user_id <> ?", eventID, models.RSVPGoing, userID).
				Count(&going).Error; err != nil {
				return err
			}
			if going >= int64(event.Capacity) {
				return fmt.Errorf("%w: event is at capacity", ErrConflict)
			}
		}

		if err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).First(&rsvp).Error; err == nil {
			rsvp.Status = status
			return tx.Save(&rsvp).Error
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		rsvp = models.RSVP{
			EventID: eventID,
			UserID:  userID,
			Status:  status,
		}
		return tx.Create(&rsvp).Error
	})
	if err != nil {
		return nil, err
	}

	return &rsvp, nil
}

func (s *EventService) CancelRSVP(eventID, userID uint) error {
	result := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.RSVP{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: RSVP not found", ErrNotFound)
	}
	return nil
}

// CancelEvent is a soft cancel by the organizer or an admin. Attendees marked
// going get notified.
func (s *EventService) CancelEvent(eventID, requesterID uint) error {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		return fmt.Errorf("%w: event not found", ErrNotFound)
	}

	if event.OrganizerID != requesterID {
		var requester models.User
		if err := s.db.First(&requester, requesterID).Error; err != nil || requester.Role != models.RoleAdmin {
			return fmt.Errorf("%w: only the organizer or an admin can cancel an event", ErrForbidden)
		}
	}

	if event.Status == models.EventCancelled {
		return fmt.Errorf("%w: event is already cancelled", ErrConflict)
	}

	if err := s.db.Model(&event).Update("status", models.EventCancelled).Error; err != nil {
		return errors.New("failed to cancel event")
	}

	if s.notifications != nil {
		var rsvps []models.RSVP
		if err := s.db.Where("event_id = ? AND status = ?", eventID, models.RSVPGoing).Find(&rsvps).Error; err == nil {
			for _, rsvp := range rsvps {
				if err := s.notifications.NotifyEventCancelled(rsvp.UserID, event.Title); err != nil {
					logger.Warn("Failed to notify attendee: ", err)
				}
			}
		}
	}

	return nil
}
