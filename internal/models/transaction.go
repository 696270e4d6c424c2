package models

import (
	"time"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionCancelled TransactionStatus = "cancelled"
)

type Transaction struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	ListingID uint              `json:"listing_id" gorm:"not null;index"`
	SellerID  uint              `json:"seller_id" gorm:"not null;index"`
	BuyerID   uint              `json:"buyer_id" gorm:"not null;index"`
	Price     float64           `json:"price" gorm:"not null"`
	Status    TransactionStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`

	// Each side rates the other exactly once. Zero means unset.
	SellerRating int    `json:"seller_rating" gorm:"default:0;check:seller_rating >= 0 AND seller_rating <= 5"`
	BuyerRating  int    `json:"buyer_rating" gorm:"default:0;check:buyer_rating >= 0 AND buyer_rating <= 5"`
	SellerReview string `json:"seller_review" gorm:"type:text"`
	BuyerReview  string `json:"buyer_review" gorm:"type:text"`

	// Party snapshots for listing views without joins.
	SellerName string `json:"seller_name"`
	BuyerName  string `json:"buyer_name"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Listing Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type RateTransactionRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review"`
}
