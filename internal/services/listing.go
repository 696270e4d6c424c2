package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/utils"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	QueryTimeout    = 30 * time.Second
)

type ListingService struct {
	db        *gorm.DB
	s3Service *S3Service
	ttlDays   int
}

func NewListingService(db *gorm.DB, s3Service *S3Service, ttlDays int) *ListingService {
	if db == nil {
		panic("database connection cannot be nil")
	}
	if ttlDays <= 0 {
		ttlDays = 30
	}
	return &ListingService{
		db:        db,
		s3Service: s3Service,
		ttlDays:   ttlDays,
	}
}

type ListingFilter struct {
	Category string  `form:"category"`
	Status   string  `form:"status"`
	MinPrice float64 `form:"min_price"`
	MaxPrice float64 `form:"max_price"`
	Search   string  `form:"search"`
	Page     int     `form:"page"`
	Limit    int     `form:"limit"`
}

type ListingPage struct {
	Listings   []models.Listing  `json:"listings"`
	Pagination *utils.Pagination `json:"-"`
}

// ValidateAndNormalize validates and normalizes filter parameters
func (f *ListingFilter) ValidateAndNormalize() error {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	if f.MinPrice < 0 || f.MaxPrice < 0 {
		return fmt.Errorf("%w: prices cannot be negative", ErrValidation)
	}

	if f.MinPrice > 0 && f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return fmt.Errorf("%w: min_price cannot be greater than max_price", ErrValidation)
	}

	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)

	if len(f.Search) > 255 {
		return fmt.Errorf("%w: search term too long", ErrValidation)
	}

	return nil
}

func (s *ListingService) CreateListing(sellerID uint, req models.CreateListingRequest) (*models.Listing, error) {
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	var seller models.User
	if err := s.db.First(&seller, sellerID).Error; err != nil {
		return nil, fmt.Errorf("%w: seller not found", ErrNotFound)
	}

	listing := models.Listing{
		SellerID:    sellerID,
		Title:       utils.SanitizeString(req.Title),
		Description: utils.SanitizeString(req.Description),
		Category:    utils.SanitizeString(req.Category),
		Condition:   utils.SanitizeString(req.Condition),
		Price:       req.Price,
		Location:    utils.SanitizeString(req.Location),
		Status:      models.ListingActive,
		ExpiresAt:   time.Now().AddDate(0, 0, s.ttlDays),
		// Snapshot of the seller's public profile at creation time
		SellerName:   seller.Name,
		SellerEmail:  seller.Email,
		SellerRating: seller.Rating,
	}

	if err := s.db.Create(&listing).Error; err != nil {
		return nil, errors.New("failed to create listing")
	}

	return &listing, nil
}

// GetListing is a side-effecting read: every call bumps the view counter.
// The increment is a single SQL statement so concurrent reads cannot lose
// updates; the counter itself is uncapped and undebounced.
func (s *ListingService) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var listing models.Listing
	if err := s.db.WithContext(ctx).Preload("Images").First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing not found", ErrNotFound)
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		return nil, err
	}
	listing.ViewCount++

	return &listing, nil
}

func (s *ListingService) GetListings(ctx context.Context, filter ListingFilter) (*ListingPage, error) {
	if err := filter.ValidateAndNormalize(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var listings []models.Listing
	var total int64

	// Public browse shows active listings only
	query := s.db.WithContext(ctx).Model(&models.Listing{}).Where("status = ?", models.ListingActive)
	query = s.applyFilters(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, errors.New("failed to count listings")
	}

	if total == 0 {
		return &ListingPage{
			Listings:   []models.Listing{},
			Pagination: utils.NewPagination(filter.Page, filter.Limit, 0),
		}, nil
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Preload("Images").
		Offset(offset).
		Limit(filter.Limit).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, errors.New("failed to fetch listings")
	}

	return &ListingPage{
		Listings:   listings,
		Pagination: utils.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// MyListings returns the seller's own listings in every status.
func (s *ListingService) MyListings(sellerID uint, page, limit int) (*ListingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	var listings []models.Listing
	var total int64

	query := s.db.Model(&models.Listing{}).Where("seller_id = ?", sellerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.New("failed to count listings")
	}

	if err := query.
		Preload("Images").
		Offset((page - 1) * limit).
		Limit(limit).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, errors.New("failed to fetch listings")
	}

	return &ListingPage{
		Listings:   listings,
		Pagination: utils.NewPagination(page, limit, total),
	}, nil
}

func (s *ListingService) UpdateListing(listingID, requesterID uint, req models.UpdateListingRequest) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.First(&listing, listingID).Error; err != nil {
		return nil, fmt.Errorf("%w: listing not found", ErrNotFound)
	}

	if listing.SellerID != requesterID {
		return nil, fmt.Errorf("%w: only the seller can modify a listing", ErrForbidden)
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = utils.SanitizeString(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = utils.SanitizeString(*req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		updates["price"] = *req.Price
	}
	if req.Condition != nil {
		updates["condition"] = utils.SanitizeString(*req.Condition)
	}
	if req.Location != nil {
		updates["location"] = utils.SanitizeString(*req.Location)
	}
	if req.Status != nil && *req.Status != listing.Status {
		// Status transitions are one-way: only active listings move, and
		// "sold" is reserved for the mark-sold path so a transaction row
		// always exists for a sale.
		if listing.Status != models.ListingActive {
			return nil, fmt.Errorf("%w: listing is no longer active", ErrConflict)
		}
		if *req.Status != models.ListingRemoved {
			return nil, fmt.Errorf("%w: invalid status transition", ErrValidation)
		}
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return &listing, nil
	}

	if err := s.db.Model(&listing).Updates(updates).Error; err != nil {
		return nil, errors.New("failed to update listing")
	}

	return &listing, nil
}

// RemoveListing soft-deletes by flipping status to removed.
func (s *ListingService) RemoveListing(listingID, requesterID uint) error {
	var listing models.Listing
	if err := s.db.First(&listing, listingID).Error; err != nil {
		return fmt.Errorf("%w: listing not found", ErrNotFound)
	}

	if listing.SellerID != requesterID {
		return fmt.Errorf("%w: only the seller can remove a listing", ErrForbidden)
	}

	if listing.Status == models.ListingSold {
		return fmt.Errorf("%w: sold listings cannot be removed", ErrConflict)
	}

	return s.db.Model(&listing).Update("status", models.ListingRemoved).Error
}

func (s *ListingService) GetCategories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	if err := s.db.WithContext(ctx).Model(&models.Listing{}).
		Distinct("category").
		Where("category <> ''").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, errors.New("failed to fetch categories")
	}
	return categories, nil
}

func (s *ListingService) AddImages(listingID, requesterID uint, files []*multipart.FileHeader) ([]models.ListingImage, error) {
	var listing models.Listing
	if err := s.db.First(&listing, listingID).Error; err != nil {
		return nil, fmt.Errorf("%w: listing not found", ErrNotFound)
	}

	if listing.SellerID != requesterID {
		return nil, fmt.Errorf("%w: only the seller can add images", ErrForbidden)
	}

	if s.s3Service == nil {
		return nil, errors.New("image storage is not configured")
	}

	uploadResults, err := s.s3Service.UploadMultipleImages(files)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var images []models.ListingImage
	for _, result := range uploadResults {
		images = append(images, models.ListingImage{
			ListingID:   listingID,
			FileName:    result.FileName,
			S3Key:       result.Key,
			S3URL:       result.URL,
			ContentType: result.ContentType,
			Size:        result.Size,
		})
	}

	if err := s.db.Create(&images).Error; err != nil {
		var keys []string
		for _, result := range uploadResults {
			keys = append(keys, result.Key)
		}
		s.s3Service.DeleteMultipleImages(keys)
		return nil, errors.New("failed to store image records")
	}

	return images, nil
}

func (s *ListingService) DeleteImage(listingID, requesterID uint, imageID string) error {
	var listing models.Listing
	if err := s.db.First(&listing, listingID).Error; err != nil {
		return fmt.Errorf("%w: listing not found", ErrNotFound)
	}

	if listing.SellerID != requesterID {
		return fmt.Errorf("%w: only the seller can delete images", ErrForbidden)
	}

	var image models.ListingImage
	if err := s.db.Where("id = ? AND listing_id = ?", imageID, listingID).First(&image).Error; err != nil {
		return fmt.Errorf("%w: image not found", ErrNotFound)
	}

	if s.s3Service != nil {
		if err := s.s3Service.DeleteImage(image.S3Key); err != nil {
			return fmt.Errorf("failed to delete image from storage: %v", err)
		}
	}

	return s.db.Delete(&image).Error
}

// applyFilters applies search filters to the query
func (s *ListingService) applyFilters(query *gorm.DB, filter ListingFilter) *gorm.DB {
	if filter.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}

	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}

	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}

	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ?",
			searchTerm, searchTerm,
		)
	}

	return query
}
