package services

import (
	"errors"
	"fmt"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/campus-connect/campus-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdminService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewAdminService(db *gorm.DB, notifications *NotificationService) *AdminService {
	return &AdminService{db: db, notifications: notifications}
}

type DashboardStats struct {
	TotalUsers          int64 `json:"total_users"`
	PendingSellers      int64 `json:"pending_sellers"`
	BannedUsers         int64 `json:"banned_users"`
	ActiveListings      int64 `json:"active_listings"`
	SoldListings        int64 `json:"sold_listings"`
	PendingTransactions int64 `json:"pending_transactions"`
	PendingFlags        int64 `json:"pending_flags"`
	OpenLostFoundItems  int64 `json:"open_lost_found_items"`
	UpcomingEvents      int64 `json:"upcoming_events"`
}

func (s *AdminService) GetDashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.PendingSellers, s.db.Model(&models.User{}).Where("role = ? AND is_approved = ?", models.RoleSeller, false)},
		{&stats.BannedUsers, s.db.Model(&models.User{}).Where("is_banned = ?", true)},
		{&stats.ActiveListings, s.db.Model(&models.Listing{}).Where("status = ?", models.ListingActive)},
		{&stats.SoldListings, s.db.Model(&models.Listing{}).Where("status = ?", models.ListingSold)},
		{&stats.PendingTransactions, s.db.Model(&models.Transaction{}).Where("status = ?", models.TransactionPending)},
		{&stats.PendingFlags, s.db.Model(&models.FlaggedContent{}).Where("status = ?", models.FlagPending)},
		{&stats.OpenLostFoundItems, s.db.Model(&models.LostFoundItem{}).Where("status = ?", models.ItemOpen)},
		{&stats.UpcomingEvents, s.db.Model(&models.Event{}).Where("status = ?", models.EventActive)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, errors.New("failed to compute dashboard stats")
		}
	}

	return stats, nil
}

func (s *AdminService) ListUsers(role string, page, limit int) ([]models.User, *utils.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	query := s.db.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.New("failed to count users")
	}

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, nil, errors.New("failed to fetch users")
	}

	return users, utils.NewPagination(page, limit, total), nil
}

func (s *AdminService) SetUserBanned(userID uint, banned bool) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	if user.Role == models.RoleAdmin {
		return nil, fmt.Errorf("%w: admin accounts cannot be banned", ErrForbidden)
	}

	user.IsBanned = banned
	if err := s.db.Save(&user).Error; err != nil {
		return nil, errors.New("failed to update user")
	}

	if banned {
		// Banned users lose their sessions immediately
		s.db.Model(&models.RefreshToken{}).Where("user_id = ?", userID).Update("is_revoked", true)
	}

	return &user, nil
}

// ApproveSeller clears the pending-approval gate on a seller account.
func (s *AdminService) ApproveSeller(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	if user.Role != models.RoleSeller {
		return nil, fmt.Errorf("%w: user is not a seller", ErrValidation)
	}

	if user.IsApproved {
		return nil, fmt.Errorf("%w: seller is already approved", ErrConflict)
	}

	user.IsApproved = true
	if err := s.db.Save(&user).Error; err != nil {
		return nil, errors.New("failed to update user")
	}

	if s.notifications != nil {
		if err := s.notifications.NotifySellerApproved(userID); err != nil {
			logger.Warn("Failed to notify approved seller: ", err)
		}
	}

	return &user, nil
}
