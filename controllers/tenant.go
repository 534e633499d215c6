// controllers/tenant.go
package controllers

import (
	"net/http"

	"turnopro-backend/config"
	"turnopro-backend/models"
	"turnopro-backend/utils"

	"github.com/gin-gonic/gin"
)

// Platform-admin tenant moderation. Tenants are never hard-deleted; a
// suspended tenant's public page and dashboard both go dark until reactivated.

func SuspendTenant(c *gin.Context) {
	setTenantStatus(c, models.TenantSuspended)
}

func ReactivateTenant(c *gin.Context) {
	setTenantStatus(c, models.TenantActive)
}

func setTenantStatus(c *gin.Context, status string) {
	tenantUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Model(&models.Tenant{}).
		Where("id = ?", tenantUUID).
		Update("status", status)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update tenant")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Tenant not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tenant status updated", "status": status})
}
