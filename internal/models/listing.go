package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingStatus string

const (
	ListingActive  ListingStatus = "active"
	ListingSold    ListingStatus = "sold"
	ListingRemoved ListingStatus = "removed"
)

type Listing struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	SellerID    uint          `json:"seller_id" gorm:"not null;index"`
	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description" gorm:"type:text;not null"`
	Category    string        `json:"category" gorm:"not null;index"`
	Condition   string        `json:"condition"`
	Price       float64       `json:"price" gorm:"not null;check:price >= 0"`
	Location    string        `json:"location"`
	Status      ListingStatus `json:"status" gorm:"type:varchar(20);default:'active';index"`
	ViewCount   int64         `json:"view_count" gorm:"default:0"`
	ExpiresAt   time.Time     `json:"expires_at"`

	// Seller snapshot, copied at creation time. Can go stale relative to the
	// live user record; not kept in sync on purpose.
	SellerName   string  `json:"seller_name"`
	SellerEmail  string  `json:"seller_email"`
	SellerRating float64 `json:"seller_rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Images []ListingImage `json:"images" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}

type ListingImage struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ListingID   uint      `json:"listing_id" gorm:"not null;index"`
	FileName    string    `json:"file_name" gorm:"not null"`
	S3Key       string    `json:"s3_key" gorm:"not null;unique"`
	S3URL       string    `json:"s3_url" gorm:"not null"`
	ContentType string    `json:"content_type" gorm:"not null"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *ListingImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Request structs for API
type CreateListingRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Description string  `json:"description" binding:"required,min=1,max=2000"`
	Category    string  `json:"category" binding:"required,min=1,max=100"`
	Condition   string  `json:"condition"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Location    string  `json:"location"`
}

type UpdateListingRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Price       *float64       `json:"price,omitempty"`
	Condition   *string        `json:"condition,omitempty"`
	Location    *string        `json:"location,omitempty"`
	Status      *ListingStatus `json:"status,omitempty"`
}
