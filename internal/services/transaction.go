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

type TransactionService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewTransactionService(db *gorm.DB, notifications *NotificationService) *TransactionService {
	return &TransactionService{db: db, notifications: notifications}
}

type MarkSoldRequest struct {
	BuyerID uint `json:"buyer_id" binding:"required"`
}

// CreateTransaction marks an active, seller-owned listing as sold and records
// the sale as a pending transaction. Listing flip and transaction insert are
// one database transaction, so a listing cannot end up sold without a sale
// record.
func (s *TransactionService) CreateTransaction(listingID, sellerID, buyerID uint) (*models.Transaction, error) {
	if sellerID == buyerID {
		return nil, fmt.Errorf("%w: seller cannot buy their own listing", ErrValidation)
	}

	var listing models.Listing
	if err := s.db.First(&listing, listingID).Error; err != nil {
		return nil, fmt.Errorf("%w: listing not found", ErrNotFound)
	}

	if listing.SellerID != sellerID {
		return nil, fmt.Errorf("%w: only the seller can mark a listing sold", ErrForbidden)
	}

	if listing.Status != models.ListingActive {
		return nil, fmt.Errorf("%w: listing already sold or removed", ErrConflict)
	}

	var buyer models.User
	if err := s.db.First(&buyer, buyerID).Error; err != nil {
		return nil, fmt.Errorf("%w: buyer not found", ErrNotFound)
	}

	transaction := models.Transaction{
		ListingID:  listingID,
		SellerID:   sellerID,
		BuyerID:    buyerID,
		Price:      listing.Price,
		Status:     models.TransactionPending,
		SellerName: listing.SellerName,
		BuyerName:  buyer.Name,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Guarded update: the status predicate makes concurrent mark-sold
		// calls race safely, only one of them flips the row.
		result := tx.Model(&models.Listing{}).
			Where("id = ? AND status = ?", listingID, models.ListingActive).
			Update("status", models.ListingSold)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: listing already sold or removed", ErrConflict)
		}

		return tx.Create(&transaction).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		if err := s.notifications.NotifyListingSold(buyerID, listing.Title); err != nil {
			logger.Warn("Failed to notify buyer: ", err)
		}
	}

	return &transaction, nil
}

// RateTransaction records one party's rating of the other, updates the
// counterparty's aggregate rating as a running weighted mean, and completes
// the transaction once both ratings are in. Each rating field can be set at
// most once.
func (s *TransactionService) RateTransaction(transactionID, raterID uint, req models.RateTransactionRequest) (*models.Transaction, error) {
	if !utils.IsValidRating(req.Rating) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	var transaction models.Transaction
	if err := s.db.First(&transaction, transactionID).Error; err != nil {
		return nil, fmt.Errorf("%w: transaction not found", ErrNotFound)
	}

	if raterID != transaction.BuyerID && raterID != transaction.SellerID {
		return nil, fmt.Errorf("%w: only the buyer or seller can rate this transaction", ErrForbidden)
	}

	if transaction.Status == models.TransactionCancelled {
		return nil, fmt.Errorf("%w: transaction was cancelled", ErrConflict)
	}

	// The buyer fills buyer_rating (rating the seller) and vice versa.
	var ratedUserID uint
	if raterID == transaction.BuyerID {
		if transaction.BuyerRating != 0 {
			return nil, fmt.Errorf("%w: you have already rated this transaction", ErrConflict)
		}
		transaction.BuyerRating = req.Rating
		transaction.BuyerReview = utils.SanitizeString(req.Review)
		ratedUserID = transaction.SellerID
	} else {
		if transaction.SellerRating != 0 {
			return nil, fmt.Errorf("%w: you have already rated this transaction", ErrConflict)
		}
		transaction.SellerRating = req.Rating
		transaction.SellerReview = utils.SanitizeString(req.Review)
		ratedUserID = transaction.BuyerID
	}

	if transaction.BuyerRating != 0 && transaction.SellerRating != 0 {
		now := time.Now()
		transaction.Status = models.TransactionCompleted
		transaction.CompletedAt = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&transaction).Error; err != nil {
			return errors.New("failed to save rating")
		}

		var ratedUser models.User
		if err := tx.First(&ratedUser, ratedUserID).Error; err != nil {
			return fmt.Errorf("%w: rated user not found", ErrNotFound)
		}

		ratedUser.AddRating(req.Rating)
		return tx.Save(&ratedUser).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		if err := s.notifications.NotifyRatingReceived(ratedUserID, req.Rating); err != nil {
			logger.Warn("Failed to notify rated user: ", err)
		}
	}

	return &transaction, nil
}

func (s *TransactionService) GetTransaction(transactionID, requesterID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Listing").First(&transaction, transactionID).Error; err != nil {
		return nil, fmt.Errorf("%w: transaction not found", ErrNotFound)
	}

	if requesterID != transaction.BuyerID && requesterID != transaction.SellerID {
		return nil, fmt.Errorf("%w: not a party to this transaction", ErrForbidden)
	}

	return &transaction, nil
}

// ListTransactions returns every transaction where the user is buyer or seller.
func (s *TransactionService) ListTransactions(userID uint, page, limit int) ([]models.Transaction, *utils.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	var transactions []models.Transaction
	var total int64

	query := s.db.Model(&models.Transaction{}).
		Where("buyer_id = ? OR seller_id = ?", userID, userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.New("failed to count transactions")
	}

	if err := query.
		Preload("Listing").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, nil, errors.New("failed to fetch transactions")
	}

	return transactions, utils.NewPagination(page, limit, total), nil
}
