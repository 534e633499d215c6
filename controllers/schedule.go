// controllers/schedule.go
package controllers

import (
	"net/http"

	"turnopro-backend/config"
	"turnopro-backend/models"
	"turnopro-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpsertScheduleInput struct {
	DayOfWeek int    `json:"dayOfWeek" binding:"min=0,max=6"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	IsActive  *bool  `json:"isActive"`
}

// GetSchedules retrieves the tenant's weekly opening hours
func GetSchedules(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var schedules []models.Schedule
	if err := config.DB.Where("tenant_id = ?", tenantUUID).
		Order("day_of_week asc").
		Find(&schedules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules")
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// UpsertSchedule writes the opening hours for one weekday
func UpsertSchedule(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input UpsertScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	schedule, err := engine.UpsertSchedule(tenantUUID, input.DayOfWeek, input.StartTime, input.EndTime, isActive)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}
