package controllers

import (
	"errors"
	"net/http"

	"turnopro-backend/services/scheduling"
	"turnopro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// engine is the scheduling core shared by all controllers, set once at startup.
var engine *scheduling.Engine

func Setup(e *scheduling.Engine) {
	engine = e
}

// tenantFromContext reads the tenant identity placed by the auth middleware.
// Writes the error response itself when the context is unusable.
func tenantFromContext(c *gin.Context) (uuid.UUID, bool) {
	tenantID, exists := c.Get("tenantId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tenant ID not found in context")
		return uuid.Nil, false
	}
	s, ok := tenantID.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tenant ID format")
		return uuid.Nil, false
	}
	tenantUUID, err := uuid.Parse(s)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tenant ID format")
		return uuid.Nil, false
	}
	return tenantUUID, true
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// respondCoreError maps the scheduling error taxonomy onto HTTP statuses.
func respondCoreError(c *gin.Context, err error) {
	var ve *scheduling.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.RespondWithError(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, scheduling.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, scheduling.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusConflict, "Transition not allowed from current status")
	case errors.Is(err, scheduling.ErrSlotConflict):
		utils.RespondWithError(c, http.StatusConflict, "Requested time is no longer available")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
