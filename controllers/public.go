// controllers/public.go
package controllers

import (
	"net/http"
	"time"

	"turnopro-backend/config"
	"turnopro-backend/models"
	"turnopro-backend/services/scheduling"
	"turnopro-backend/utils"

	"github.com/gin-gonic/gin"
)

// Public reservation page: no auth, the tenant is resolved from the URL slug
// and must be active. The tenant identity never comes from request input.

func resolveTenantSlug(c *gin.Context) (*models.Tenant, bool) {
	slug := c.Param("slug")
	var tenant models.Tenant
	if err := config.DB.Where("slug = ? AND status = ?", slug, models.TenantActive).
		First(&tenant).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		return nil, false
	}
	return &tenant, true
}

// GetPublicServices lists the bookable services of a business
func GetPublicServices(c *gin.Context) {
	tenant, ok := resolveTenantSlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := config.DB.Where("tenant_id = ? AND is_active = true", tenant.ID).
		Order("display_order asc").
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetPublicAvailability renders the free/busy timeline for a calendar day
func GetPublicAvailability(c *gin.Context) {
	tenant, ok := resolveTenantSlug(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	segments, err := cachedDaySegments(tenant.ID, date)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	// Customers only see which intervals are taken, not by whom.
	public := make([]gin.H, 0, len(segments))
	for _, s := range segments {
		public = append(public, gin.H{
			"kind":  s.Kind,
			"start": utils.MinutesToClock(s.StartMin),
			"end":   utils.MinutesToClock(s.EndMin),
		})
	}

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "segments": public})
}

// CreatePublicBooking creates a booking from the public reservation flow
func CreatePublicBooking(c *gin.Context) {
	tenant, ok := resolveTenantSlug(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	booking, err := engine.CreateBooking(tenant.ID, scheduling.CreateBookingInput{
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		ServiceID:     input.ServiceID,
		EmployeeID:    input.EmployeeID,
		Date:          date,
		StartTime:     input.StartTime,
		Notes:         input.Notes,
	})
	if err != nil {
		respondCoreError(c, err)
		return
	}

	invalidateAgendaCache(tenant.ID, date)

	c.JSON(http.StatusCreated, gin.H{
		"id":        booking.ID,
		"date":      input.Date,
		"startTime": booking.StartTime,
		"endTime":   booking.EndTime,
		"status":    booking.Status,
	})
}
