package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/ardiansyah/finku-backend/models"
	"github.com/gin-gonic/gin"
)

// GetBudgets godoc
// @Summary List the user's budgets
// @Tags budgets
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Budget
// @Failure 500 {object} models.ErrorResponse
// @Router /api/transactions/budgets [get]
func (h *Handler) GetBudgets(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	budgets, err := h.storage.GetBudgets(userID)
	if err != nil {
		log.Printf("failed to get budgets: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// CreateBudget godoc
// @Summary Create a monthly budget for a category
// @Tags budgets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body models.CreateBudget true "Budget"
// @Success 201 {object} models.Budget
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/transactions/budgets [post]
func (h *Handler) CreateBudget(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	var req models.CreateBudget
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "amount must be positive"})
		return
	}
	if req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "month must be between 1 and 12"})
		return
	}
	if req.Year == 0 || req.CategoryID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "category_id and year are required"})
		return
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Month:      req.Month,
		Year:       req.Year,
	}
	if err := h.storage.CreateBudget(budget); err != nil {
		// Дубликат (user, category, month, year) отлавливается ограничением в базе
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "Budget already exists for this category and month"})
			return
		}
		if isForeignKeyViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "category does not exist"})
			return
		}
		log.Printf("failed to create budget: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusCreated, budget)
}

// UpdateBudget godoc
// @Summary Update a budget's amount
// @Tags budgets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Budget ID"
// @Param input body models.UpdateBudget true "New amount"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/budgets/{id} [put]
func (h *Handler) UpdateBudget(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid budget id"})
		return
	}

	var req models.UpdateBudget
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "amount must be positive"})
		return
	}

	updated, err := h.storage.UpdateBudget(id, userID, req.Amount)
	if err != nil {
		log.Printf("failed to update budget %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"message": "Budget not found or not authorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget updated"})
}

// DeleteBudget godoc
// @Summary Delete a budget owned by the user
// @Tags budgets
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Budget ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/budgets/{id} [delete]
func (h *Handler) DeleteBudget(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid budget id"})
		return
	}

	deleted, err := h.storage.DeleteBudget(id, userID)
	if err != nil {
		log.Printf("failed to delete budget %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Budget not found or not authorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

func budgetScopeParams(c *gin.Context) (categoryID, month, year int, ok bool) {
	var err error
	categoryID, err = strconv.Atoi(c.Query("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid categoryId"})
		return 0, 0, 0, false
	}
	month, err = strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid month"})
		return 0, 0, 0, false
	}
	year, err = strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid year"})
		return 0, 0, 0, false
	}
	return categoryID, month, year, true
}

// GetBudgetSpending godoc
// @Summary Expense total for a budget's category and month
// @Tags budgets
// @Produce json
// @Security ApiKeyAuth
// @Param categoryId query int true "Category ID"
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} models.BudgetSpending
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/transactions/budgets/spending [get]
func (h *Handler) GetBudgetSpending(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	categoryID, month, year, ok := budgetScopeParams(c)
	if !ok {
		return
	}

	spent, err := h.storage.GetBudgetSpending(userID, categoryID, month, year)
	if err != nil {
		log.Printf("failed to get budget spending: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, models.BudgetSpending{TotalSpent: spent})
}

// GetBudgetDetails godoc
// @Summary Expense transactions behind a budget
// @Tags budgets
// @Produce json
// @Security ApiKeyAuth
// @Param categoryId query int true "Category ID"
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {array} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/transactions/budgets/details [get]
func (h *Handler) GetBudgetDetails(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	categoryID, month, year, ok := budgetScopeParams(c)
	if !ok {
		return
	}

	transactions, err := h.storage.GetBudgetTransactions(userID, categoryID, month, year)
	if err != nil {
		log.Printf("failed to get budget details: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}
