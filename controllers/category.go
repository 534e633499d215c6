// controllers/category.go
package controllers

import (
	"net/http"

	"turnopro-backend/config"
	"turnopro-backend/models"
	"turnopro-backend/utils"

	"github.com/gin-gonic/gin"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory creates a new service category for the tenant
func CreateCategory(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category := models.ServiceCategory{Name: input.Name}
	if err := engine.CreateCategory(tenantUUID, &category); err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategories retrieves all categories for the tenant, in display order
func GetCategories(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var categories []models.ServiceCategory
	if err := config.DB.Where("tenant_id = ?", tenantUUID).
		Order("display_order asc").
		Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// UpdateCategory renames a category
func UpdateCategory(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	categoryUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category, err := engine.UpdateCategory(tenantUUID, categoryUUID, input.Name)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category; its services keep existing uncategorized
func DeleteCategory(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	categoryUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := engine.DeleteCategory(tenantUUID, categoryUUID); err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// ReorderCategories rewrites the tenant's category ordering
func ReorderCategories(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := engine.ReorderCategories(tenantUUID, input.IDs); err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Categories reordered"})
}
