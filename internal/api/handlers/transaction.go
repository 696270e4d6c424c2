package handlers

import (
	"strconv"

	"github.com/campus-connect/campus-backend/internal/models"
	"github.com/campus-connect/campus-backend/internal/services"
	"github.com/campus-connect/campus-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
}

func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID := c.GetUint("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	transactions, pagination, err := h.transactionService.ListTransactions(userID, page, limit)
	if err != nil {
		respondError(c, "Failed to fetch transactions", err)
		return
	}

	utils.SendPaginated(c, "Transactions retrieved successfully", transactions, pagination)
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID := c.GetUint("user_id")
	transactionID, ok := parseIDParam(c, "transaction_id")
	if !ok {
		return
	}

	transaction, err := h.transactionService.GetTransaction(transactionID, userID)
	if err != nil {
		respondError(c, "Failed to fetch transaction", err)
		return
	}

	utils.SendSuccess(c, "Transaction retrieved successfully", transaction)
}

func (h *TransactionHandler) RateTransaction(c *gin.Context) {
	userID := c.GetUint("user_id")
	transactionID, ok := parseIDParam(c, "transaction_id")
	if !ok {
		return
	}

	var req models.RateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Rating between 1 and 5 is required")
		return
	}

	transaction, err := h.transactionService.RateTransaction(transactionID, userID, req)
	if err != nil {
		respondError(c, "Failed to rate transaction", err)
		return
	}

	utils.SendSuccess(c, "Transaction rated successfully", transaction)
}
