package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/finbook/finbook_backend/internal/core/domain"
	portssvc "github.com/finbook/finbook_backend/internal/core/ports/services"
	"github.com/finbook/finbook_backend/internal/dto"
	"github.com/finbook/finbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.postTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/types", h.listTransactionTypes)
		transactions.GET("/:id", h.getTransaction)
	}
}

// postTransaction godoc
// @Summary Post a transaction
// @Description Records a transfer or interest transaction and applies its balance effects atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.PostTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "A referenced account was not found"
// @Failure 500 {object} map[string]string "Failed to post transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.PostTransaction(c.Request.Context(), actorID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to post transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves one transaction visible to the logged-in user
// @Tags transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	transactionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), actorID, transactionID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions visible to the logged-in user, newest first, with optional type, date and account filters, paginated
// @Tags transactions
// @Produce  json
// @Param   type query int false "Transaction type filter (0=Transfer, 1=Interest)"
// @Param   date query string false "Exact transaction date (YYYY-MM-DD)"
// @Param   account query int false "Account involved in the transaction"
// @Param   size query int false "Page size" default(5)
// @Param   page query int false "Page number, zero-based" default(0)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid filter or pagination parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), actorID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listTransactionTypes godoc
// @Summary List transaction types
// @Description Lists the valid transaction types and their display names
// @Tags transactions
// @Produce  json
// @Success 200 {object} dto.ListTransactionTypesResponse
// @Security BearerAuth
// @Router /transactions/types [get]
func (h *transactionHandler) listTransactionTypes(c *gin.Context) {
	resp := dto.ListTransactionTypesResponse{}
	for _, t := range domain.TransactionTypes() {
		resp.Types = append(resp.Types, dto.TransactionTypeEntry{ID: t, Name: t.Name()})
	}
	c.JSON(http.StatusOK, resp)
}
