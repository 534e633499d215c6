// controllers/service.go
package controllers

import (
	"net/http"

	"turnopro-backend/config"
	"turnopro-backend/models"
	"turnopro-backend/services/scheduling"
	"turnopro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name            string       `json:"name" binding:"required"`
	Description     string       `json:"description"`
	Price           float64      `json:"price" binding:"min=0"`
	DurationMinutes int          `json:"durationMinutes" binding:"required"`
	CategoryID      *uuid.UUID   `json:"categoryId"`
	Images          models.JSONB `json:"images"`
	Variations      models.JSONB `json:"variations"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name            *string       `json:"name"`
	Description     *string       `json:"description"`
	Price           *float64      `json:"price"`
	DurationMinutes *int          `json:"durationMinutes"`
	CategoryID      *uuid.UUID    `json:"categoryId"`
	ClearCategory   bool          `json:"clearCategory"`
	IsActive        *bool         `json:"isActive"`
	Images          *models.JSONB `json:"images"`
	Variations      *models.JSONB `json:"variations"`
}

// ReorderInput carries the complete id list in the desired order.
type ReorderInput struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

// CreateService creates a new service for the tenant
func CreateService(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		CategoryID:      input.CategoryID,
		Images:          input.Images,
		Variations:      input.Variations,
	}

	if err := engine.CreateService(tenantUUID, &service); err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves all services for the tenant, in display order
func GetServices(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := config.DB.Where("tenant_id = ?", tenantUUID).
		Order("display_order asc").
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	serviceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var service models.Service
	if err := config.DB.Where("tenant_id = ? AND id = ?", tenantUUID, serviceUUID).
		First(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	serviceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := engine.UpdateService(tenantUUID, serviceUUID, scheduling.ServiceChanges{
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		CategoryID:      input.CategoryID,
		ClearCategory:   input.ClearCategory,
		IsActive:        input.IsActive,
		Images:          input.Images,
		Variations:      input.Variations,
	})
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService deletes a service; one with booking history is deactivated instead
func DeleteService(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	serviceUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	softDeleted, err := engine.DeleteService(tenantUUID, serviceUUID)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	if softDeleted {
		c.JSON(http.StatusOK, gin.H{"message": "Service has bookings and was deactivated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// ReorderServices rewrites the tenant's service ordering
func ReorderServices(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := engine.ReorderServices(tenantUUID, input.IDs); err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Services reordered"})
}
