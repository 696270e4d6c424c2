package handlers

import (
	"strconv"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/services"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listingService     *services.ListingService
	transactionService *services.TransactionService
}

func NewListingHandler(listingService *services.ListingService, transactionService *services.TransactionService) *ListingHandler {
	return &ListingHandler{
		listingService:     listingService,
		transactionService: transactionService,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		utils.SendValidationError(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Title, description, category and price are required")
		return
	}

	listing, err := h.listingService.CreateListing(userID, req)
	if err != nil {
		respondError(c, "Failed to create listing", err)
		return
	}

	utils.SendSuccess(c, "Listing created successfully", listing)
}

func (h *ListingHandler) GetListings(c *gin.Context) {
	var filter services.ListingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendValidationError(c, "Invalid filter parameters")
		return
	}

	page, err := h.listingService.GetListings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to fetch listings", err)
		return
	}

	utils.SendPaginated(c, "Listings retrieved successfully", page.Listings, page.Pagination)
}

func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, ok := parseIDParam(c, "listing_id")
	if !ok {
		return
	}

	listing, err := h.listingService.GetListing(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, "Failed to fetch listing", err)
		return
	}

	utils.SendSuccess(c, "Listing retrieved successfully", listing)
}

func (h *ListingHandler) MyListings(c *gin.Context) {
	userID := c.GetUint("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.listingService.MyListings(userID, page, limit)
	if err != nil {
		respondError(c, "Failed to fetch listings", err)
		return
	}

	utils.SendPaginated(c, "Listings retrieved successfully", result.Listings, result.Pagination)
}

func (h *ListingHandler) UpdateListing(c *gin.Context) {
	userID := c.GetUint("user_id")
	listingID, ok := parseIDParam(c, "listing_id")
	if !ok {
		return
	}

	var req models.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	listing, err := h.listingService.UpdateListing(listingID, userID, req)
	if err != nil {
		respondError(c, "Failed to update listing", err)
		return
	}

	utils.SendSuccess(c, "Listing updated successfully", listing)
}

func (h *ListingHandler) RemoveListing(c *gin.Context) {
	userID := c.GetUint("user_id")
	listingID, ok := parseIDParam(c, "listing_id")
	if !ok {
		return
	}

	if err := h.listingService.RemoveListing(listingID, userID); err != nil {
		respondError(c, "Failed to remove listing", err)
		return
	}

	utils.SendSuccess(c, "Listing removed successfully", nil)
}

// MarkSold flips the listing to sold and opens a pending transaction with the
// given buyer.
func (h *ListingHandler) MarkSold(c *gin.Context) {
	userID := c.GetUint("user_id")
	listingID, ok := parseIDParam(c, "listing_id")
	if !ok {
		return
	}

	var req services.MarkSoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Buyer ID is required")
		return
	}

	transaction, err := h.transactionService.CreateTransaction(listingID, userID, req.BuyerID)
	if err != nil {
		respondError(c, "Failed to mark listing as sold", err)
		return
	}

	utils.SendSuccess(c, "Listing marked as sold", transaction)
}

func (h *ListingHandler) GetCategories(c *gin.Context) {
	categories, err := h.listingService.GetCategories(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch categories", err)
		return
	}

	utils.SendSuccess(c, "Categories retrieved successfully", categories)
}

func (h *ListingHandler) UploadImages(c *gin.Context) {
	userID := c.GetUint("user_id")
	listingID, ok := parseIDParam(c, "listing_id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.SendValidationError(c, "Invalid multipart form")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.SendValidationError(c, "No images provided")
		return
	}

	images, err := h.listingService.AddImages(listingID, userID, files)
	if err != nil {
		respondError(c, "Failed to upload images", err)
		return
	}

	utils.SendSuccess(c, "Images uploaded successfully", images)
}

func (h *ListingHandler) DeleteImage(c *gin.Context) {
	userID := c.GetUint("user_id")
	listingID, ok := parseIDParam(c, "listing_id")
	if !ok {
		return
	}
	imageID := c.Param("image_id")

	if err := h.listingService.DeleteImage(listingID, userID, imageID); err != nil {
		respondError(c, "Failed to delete image", err)
		return
	}

	utils.SendSuccess(c, "Image deleted successfully", nil)
}
