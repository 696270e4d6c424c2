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

type ModerationService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewModerationService(db *gorm.DB, notifications *NotificationService) *ModerationService {
	return &ModerationService{db: db, notifications: notifications}
}

const (
	FlagActionReviewing = "reviewing"
	FlagActionApproved  = "approved"
	FlagActionRemoved   = "removed"
)

// FlagContent records a report against a piece of content, status pending.
func (s *ModerationService) FlagContent(reporterID uint, req models.FlagContentRequest) (*models.FlaggedContent, error) {
	switch req.ContentType {
	case models.FlaggedListing, models.FlaggedEvent, models.FlaggedAnnouncement, models.FlaggedLostFound:
	default:
		return nil, fmt.Errorf("%w: unknown content type %q", ErrValidation, req.ContentType)
	}

	if !s.contentExists(req.ContentType, req.ContentID) {
		return nil, fmt.Errorf("%w: flagged content not found", ErrNotFound)
	}

	flag := models.FlaggedContent{
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		ReporterID:  reporterID,
		Reason:      utils.SanitizeString(req.Reason),
		Details:     utils.SanitizeString(req.Details),
		Status:      models.FlagPending,
	}

	if err := s.db.Create(&flag).Error; err != nil {
		return nil, errors.New("failed to create flag")
	}

	return &flag, nil
}

// ResolveFlag advances a flag through its workflow. The status never
// regresses: pending -> under_review -> resolved/dismissed. The "removed"
// action additionally soft-deletes the flagged content through the owning
// store's own delete semantics.
func (s *ModerationService) ResolveFlag(flagID, adminID uint, action string) (*models.FlaggedContent, error) {
	var admin models.User
	if err := s.db.First(&admin, adminID).Error; err != nil {
		return nil, fmt.Errorf("%w: admin not found", ErrNotFound)
	}
	if admin.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}

	var flag models.FlaggedContent
	if err := s.db.First(&flag, flagID).Error; err != nil {
		return nil, fmt.Errorf("%w: flag not found", ErrNotFound)
	}

	var newStatus models.FlagStatus
	switch action {
	case FlagActionReviewing:
		newStatus = models.FlagUnderReview
	case FlagActionApproved:
		newStatus = models.FlagResolved
	case FlagActionRemoved:
		newStatus = models.FlagDismissed
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	}

	if flag.Status == models.FlagResolved || flag.Status == models.FlagDismissed {
		return nil, fmt.Errorf("%w: flag is already closed", ErrConflict)
	}
	if newStatus == models.FlagUnderReview && flag.Status != models.FlagPending {
		return nil, fmt.Errorf("%w: flag is already under review", ErrConflict)
	}

	if action == FlagActionRemoved {
		if err := s.removeContent(flag.ContentType, flag.ContentID); err != nil {
			return nil, err
		}
	}

	flag.Status = newStatus
	if newStatus == models.FlagResolved || newStatus == models.FlagDismissed {
		now := time.Now()
		flag.ResolvedBy = &adminID
		flag.ResolvedAt = &now
	}

	if err := s.db.Save(&flag).Error; err != nil {
		return nil, errors.New("failed to update flag")
	}

	if newStatus == models.FlagResolved || newStatus == models.FlagDismissed {
		if s.notifications != nil {
			if err := s.notifications.NotifyFlagResolved(flag.ReporterID, flag.ContentType); err != nil {
				logger.Warn("Failed to notify reporter: ", err)
			}
		}
	}

	return &flag, nil
}

func (s *ModerationService) ListFlags(status string, page, limit int) ([]models.FlaggedContent, *utils.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	query := s.db.Model(&models.FlaggedContent{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.New("failed to count flags")
	}

	var flags []models.FlaggedContent
	if err := query.
		Preload("Reporter").
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&flags).Error; err != nil {
		return nil, nil, errors.New("failed to fetch flags")
	}

	return flags, utils.NewPagination(page, limit, total), nil
}

func (s *ModerationService) contentExists(contentType models.FlaggedContentType, contentID uint) bool {
	var count int64
	switch contentType {
	case models.FlaggedListing:
		s.db.Model(&models.Listing{}).Where("id = ?", contentID).Count(&count)
	case models.FlaggedEvent:
		s.db.Model(&models.Event{}).Where("id = ?", contentID).Count(&count)
	case models.FlaggedAnnouncement:
		s.db.Model(&models.Announcement{}).Where("id = ?", contentID).Count(&count)
	case models.FlaggedLostFound:
		s.db.Model(&models.LostFoundItem{}).Where("id = ?", contentID).Count(&count)
	}
	return count > 0
}

// removeContent dispatches to each store's own soft-delete so their
// invariants hold (listings flip to removed, never row-deleted).
func (s *ModerationService) removeContent(contentType models.FlaggedContentType, contentID uint) error {
	switch contentType {
	case models.FlaggedListing:
		return s.db.Model(&models.Listing{}).
			Where("id = ? AND status <> ?", contentID, models.ListingSold).
			Update("status", models.ListingRemoved).Error
	case models.FlaggedEvent:
		return s.db.Model(&models.Event{}).
			Where("id = ?", contentID).
			Update("status", models.EventCancelled).Error
	case models.FlaggedAnnouncement:
		return s.db.Model(&models.Announcement{}).
			Where("id = ?", contentID).
			Update("is_active", false).Error
	case models.FlaggedLostFound:
		return s.db.Model(&models.LostFoundItem{}).
			Where("id = ?", contentID).
			Update("status", models.ItemClosed).Error
	}
	return fmt.Errorf("%w: unknown content type %q", ErrValidation, contentType)
}
