package services

import (
	"errors"
	"fmt"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/utils"
	"gorm.io/gorm"
)

type AnnouncementService struct {
	db *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

// CreateAnnouncement is admin-only; the role check happens in routing but is
// repeated here so the service cannot be misused from other call sites.
func (s *AnnouncementService) CreateAnnouncement(authorID uint, req models.CreateAnnouncementRequest) (*models.Announcement, error) {
	var author models.User
	if err := s.db.First(&author, authorID).Error; err != nil {
		return nil, fmt.Errorf("%w: author not found", ErrNotFound)
	}
	if author.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	announcement := models.Announcement{
		AuthorID: authorID,
		Title:    utils.SanitizeString(req.Title),
		Body:     utils.SanitizeString(req.Body),
		Priority: priority,
		IsPinned: req.IsPinned,
		IsActive: true,
	}

	if err := s.db.Create(&announcement).Error; err != nil {
		return nil, errors.New("failed to create announcement")
	}

	return &announcement, nil
}

// ListAnnouncements returns active announcements, pinned first then newest.
func (s *AnnouncementService) ListAnnouncements(page, limit int) ([]models.Announcement, *utils.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	query := s.db.Model(&models.Announcement{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.New("failed to count announcements")
	}

	var announcements []models.Announcement
	if err := query.
		Order("is_pinned DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&announcements).Error; err != nil {
		return nil, nil, errors.New("failed to fetch announcements")
	}

	return announcements, utils.NewPagination(page, limit, total), nil
}

// DeleteAnnouncement deactivates rather than deletes.
func (s *AnnouncementService) DeleteAnnouncement(announcementID, requesterID uint) error {
	var requester models.User
	if err := s.db.First(&requester, requesterID).Error; err != nil {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if requester.Role != models.RoleAdmin {
		return fmt.Errorf("%w: admin access required", ErrForbidden)
	}

	result := s.db.Model(&models.Announcement{}).
		Where("id = ? AND is_active = ?", announcementID, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: announcement not found", ErrNotFound)
	}
	return nil
}
