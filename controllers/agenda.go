// controllers/agenda.go
package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"turnopro-backend/services/scheduling"
	"turnopro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Availability responses are cached briefly; keeping the TTL short bounds the
// staleness of the now marker and of freshly created bookings on other nodes.
const agendaCacheTTL = 30 * time.Second

// GetAgenda renders the tenant's day timeline of free and busy segments
func GetAgenda(c *gin.Context) {
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

	segments, err := engine.DaySegments(tenantUUID, date)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "segments": segments})
}

func agendaCacheKey(tenantID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("agenda:%s:%s", tenantID, date.Format("2006-01-02"))
}

// cachedDaySegments serves the public availability read path through Redis
// when it is configured, recomputing on miss.
func cachedDaySegments(tenantID uuid.UUID, date time.Time) ([]scheduling.Segment, error) {
	cache := utils.GetCacheClient()
	if cache == nil {
		return engine.DaySegments(tenantID, date)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := agendaCacheKey(tenantID, date)
	if raw, err := cache.Get(ctx, key).Result(); err == nil {
		var segments []scheduling.Segment
		if json.Unmarshal([]byte(raw), &segments) == nil {
			return segments, nil
		}
	}

	segments, err := engine.DaySegments(tenantID, date)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(segments); err == nil {
		cache.Set(ctx, key, raw, agendaCacheTTL)
	}
	return segments, nil
}

// invalidateAgendaCache drops the cached timeline after a booking write.
func invalidateAgendaCache(tenantID uuid.UUID, date time.Time) {
	cache := utils.GetCacheClient()
	if cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cache.Del(ctx, agendaCacheKey(tenantID, date))
}
