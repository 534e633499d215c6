// controllers/customer.go
package controllers

import (
	"net/http"

	"turnopro-backend/config"
	"turnopro-backend/models"
	"turnopro-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetCustomers retrieves all customers for the tenant
func GetCustomers(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var customers []models.Customer
	if err := config.DB.Where("tenant_id = ?", tenantUUID).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer with their booking history
func GetCustomer(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	customerUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("Bookings").
		Where("tenant_id = ? AND id = ?", tenantUUID, customerUUID).
		First(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, customer)
}
