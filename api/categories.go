package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/ardiansyah/finku-backend/models"
	"github.com/gin-gonic/gin"
)

// GetCategories godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Category
// @Failure 500 {object} models.ErrorResponse
// @Router /api/transactions/categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.storage.GetCategories()
	if err != nil {
		log.Printf("failed to get categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body models.CreateCategory true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} models.ErrorResponse
// @Router /api/transactions/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req models.CreateCategory
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}
	if req.Type != "income" && req.Type != "expense" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "type must be 'income' or 'expense'"})
		return
	}

	category, err := h.storage.CreateCategory(req.Name, req.Type)
	if err != nil {
		log.Printf("failed to create category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Category ID"
// @Param input body models.CreateCategory true "Category"
// @Success 200 {object} models.Category
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/categories/{id} [put]
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid category id"})
		return
	}

	var req models.CreateCategory
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}
	if req.Type != "income" && req.Type != "expense" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "type must be 'income' or 'expense'"})
		return
	}

	updated, err := h.storage.UpdateCategory(id, req.Name, req.Type)
	if err != nil {
		log.Printf("failed to update category %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, models.Category{ID: id, Name: req.Name, Type: req.Type})
}

// DeleteCategory godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/transactions/categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid category id"})
		return
	}

	deleted, err := h.storage.DeleteCategory(id)
	if err != nil {
		// Категорию с транзакциями или бюджетами удерживает внешний ключ
		if isForeignKeyViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "category is used in transactions"})
			return
		}
		log.Printf("failed to delete category %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
