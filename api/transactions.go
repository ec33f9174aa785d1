package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ardiansyah/finku-backend/models"
	"github.com/gin-gonic/gin"
)

// Расход строго выше порога считается крупным и требует уведомления
const largeExpenseThreshold = 500000

func validateTransactionInput(req *models.CreateTransaction) (time.Time, string) {
	if req.Amount <= 0 {
		return time.Time{}, "amount must be positive"
	}
	if req.Type != "income" && req.Type != "expense" {
		return time.Time{}, "type must be 'income' or 'expense'"
	}
	if req.CategoryID == 0 {
		return time.Time{}, "category_id is required"
	}
	date, err := parseDateParam(req.Date)
	if err != nil || date.IsZero() {
		return time.Time{}, "date is required in YYYY-MM-DD format"
	}
	return date, ""
}

// GetTransactions godoc
// @Summary List the user's transactions with all categories
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} models.GetTransactionsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	startDate, err := parseDateParam(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid startDate"})
		return
	}
	endDate, err := parseDateParam(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid endDate"})
		return
	}

	transactions, err := h.storage.GetTransactions(userID, startDate, endDate)
	if err != nil {
		log.Printf("failed to get transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	categories, err := h.storage.GetCategories()
	if err != nil {
		log.Printf("failed to get categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, models.GetTransactionsResponse{
		Transactions: transactions,
		Categories:   categories,
	})
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body models.CreateTransaction true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	var req models.CreateTransaction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	date, msg := validateTransactionInput(&req)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Amount:      req.Amount,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Date:        date,
	}
	if err := h.storage.CreateTransaction(transaction); err != nil {
		if isForeignKeyViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "category does not exist"})
			return
		}
		log.Printf("failed to create transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	if transaction.Type == "expense" && transaction.Amount > largeExpenseThreshold {
		h.notifyLargeExpense(*transaction)
	}

	c.JSON(http.StatusCreated, transaction)
}

// notifyLargeExpense ставит письмо в очередь; ошибки не влияют на ответ
func (h *Handler) notifyLargeExpense(t models.Transaction) {
	user, err := h.storage.GetUserByID(t.UserID)
	if err != nil || user == nil {
		log.Printf("failed to load user %d for expense alert: %v", t.UserID, err)
		return
	}
	h.mailer.SendLargeExpenseAlert(user.Email, user.Username, t)
}

// UpdateTransaction godoc
// @Summary Update a transaction owned by the user
// @Tags transactions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Transaction ID"
// @Param input body models.CreateTransaction true "Transaction"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/{id} [put]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid transaction id"})
		return
	}

	var req models.CreateTransaction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	date, msg := validateTransactionInput(&req)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	transaction := &models.Transaction{
		ID:          id,
		UserID:      userID,
		Amount:      req.Amount,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Date:        date,
	}
	updated, err := h.storage.UpdateTransaction(transaction)
	if err != nil {
		log.Printf("failed to update transaction %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	// Чужая и несуществующая транзакции неразличимы для клиента
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"message": "Transaction not found or not authorized"})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction godoc
// @Summary Delete a transaction owned by the user
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid transaction id"})
		return
	}

	deleted, err := h.storage.DeleteTransaction(id, userID)
	if err != nil {
		log.Printf("failed to delete transaction %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Transaction not found or not authorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// GetMonthlySummary godoc
// @Summary Per-month income and expense totals
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} models.MonthlySummary
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/transactions/summary/monthly [get]
func (h *Handler) GetMonthlySummary(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	startDate, err := parseDateParam(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid startDate"})
		return
	}
	endDate, err := parseDateParam(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid endDate"})
		return
	}

	summary, err := h.storage.GetMonthlySummary(userID, startDate, endDate)
	if err != nil {
		log.Printf("failed to get monthly summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetTotalsSummary godoc
// @Summary Overall income and expense totals
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} models.TotalsSummary
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/transactions/summary/totals [get]
func (h *Handler) GetTotalsSummary(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	startDate, err := parseDateParam(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid startDate"})
		return
	}
	endDate, err := parseDateParam(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid endDate"})
		return
	}

	totals, err := h.storage.GetTotalsSummary(userID, startDate, endDate)
	if err != nil {
		log.Printf("failed to get totals summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, totals)
}
