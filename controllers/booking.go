// controllers/booking.go
package controllers

import (
	"net/http"
	"time"

	"turnopro-backend/models"
	"turnopro-backend/services/scheduling"
	"turnopro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateBookingInput struct {
	CustomerName  string     `json:"customerName" binding:"required"`
	CustomerPhone string     `json:"customerPhone" binding:"required"`
	ServiceID     uuid.UUID  `json:"serviceId" binding:"required"`
	EmployeeID    *uuid.UUID `json:"employeeId"`
	Date          string     `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime     string     `json:"startTime" binding:"required"`
	Notes         string     `json:"notes"`
}

type TransitionBookingInput struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// CreateBooking creates a booking from the dashboard's self-service flow
func CreateBooking(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
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

	booking, err := engine.CreateBooking(tenantUUID, scheduling.CreateBookingInput{
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

	invalidateAgendaCache(tenantUUID, date)

	c.JSON(http.StatusCreated, booking)
}

// GetBookings lists the tenant's bookings for one date
func GetBookings(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	bookings, err := engine.BookingsForDay(tenantUUID, date)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// TransitionBooking moves a booking through its lifecycle
func TransitionBooking(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	bookingUUID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input TransitionBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := engine.TransitionBooking(tenantUUID, bookingUUID, input.Status)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	invalidateAgendaCache(tenantUUID, booking.Date)

	c.JSON(http.StatusOK, booking)
}
