package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/utils"
	"gorm.io/gorm"
)

type LostFoundService struct {
	db *gorm.DB
}

func NewLostFoundService(db *gorm.DB) *LostFoundService {
	return &LostFoundService{db: db}
}

type LostFoundFilter struct {
	Kind   string `form:"kind"`
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (s *LostFoundService) ReportItem(reporterID uint, req models.ReportLostFoundRequest) (*models.LostFoundItem, error) {
	if req.Kind != models.ItemLost && req.Kind != models.ItemFound {
		return nil, fmt.Errorf("%w: kind must be lost or found", ErrValidation)
	}

	item := models.LostFoundItem{
		ReporterID:  reporterID,
		Kind:        req.Kind,
		Title:       utils.SanitizeString(req.Title),
		Description: utils.SanitizeString(req.Description),
		Location:    utils.SanitizeString(req.Location),
		OccurredOn:  req.OccurredOn,
		Status:      models.ItemOpen,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, errors.New("failed to create lost and found item")
	}

	return &item, nil
}

func (s *LostFoundService) ListItems(filter LostFoundFilter) ([]models.LostFoundItem, *utils.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > MaxPageSize {
		filter.Limit = DefaultPageSize
	}

	query := s.db.Model(&models.LostFoundItem{}).Where("status = ?", models.ItemOpen)
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.New("failed to count items")
	}

	var items []models.LostFoundItem
	if err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&items).Error; err != nil {
		return nil, nil, errors.New("failed to fetch items")
	}

	return items, utils.NewPagination(filter.Page, filter.Limit, total), nil
}

// ResolveItem lets the reporter close their own report as claimed or returned.
func (s *LostFoundService) ResolveItem(itemID, requesterID uint, status models.LostFoundStatus) (*models.LostFoundItem, error) {
	if status != models.ItemClaimed && status != models.ItemReturned {
		return nil, fmt.Errorf("%w: status must be claimed or returned", ErrValidation)
	}

	var item models.LostFoundItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		return nil, fmt.Errorf("%w: item not found", ErrNotFound)
	}

	if item.ReporterID != requesterID {
		return nil, fmt.Errorf("%w: only the reporter can resolve this item", ErrForbidden)
	}

	if item.Status != models.ItemOpen {
		return nil, fmt.Errorf("%w: item is already resolved", ErrConflict)
	}

	item.Status = status
	if err := s.db.Save(&item).Error; err != nil {
		return nil, errors.New("failed to update item")
	}

	return &item, nil
}

func (s *LostFoundService) DeleteItem(itemID, requesterID uint) error {
	var item models.LostFoundItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		return fmt.Errorf("%w: item not found", ErrNotFound)
	}

	if item.ReporterID != requesterID {
		return fmt.Errorf("%w: only the reporter can delete this item", ErrForbidden)
	}

	return s.db.Model(&item).Update("status", models.ItemClosed).Error
}
