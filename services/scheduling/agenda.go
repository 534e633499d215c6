package scheduling

import (
	"time"

	"turnopro-backend/models"
	"turnopro-backend/utils"

	"github.com/google/uuid"
)

// DaySegments renders the tenant's timeline for one calendar day: the
// weekday's opening hours segmented by that day's blocking bookings. A day
// without an active schedule row is closed and yields an empty timeline.
func (e *Engine) DaySegments(tenantID uuid.UUID, date time.Time) ([]Segment, error) {
	weekday := int(date.Weekday())

	var sched models.Schedule
	err := mapFindErr(e.db.
		Where("tenant_id = ? AND day_of_week = ? AND is_active = true", tenantID, weekday).
		First(&sched).Error)
	if err == ErrNotFound {
		return []Segment{}, nil
	}
	if err != nil {
		return nil, wrapStorage("load schedule", err)
	}

	dayStart, err := utils.ClockToMinutes(sched.StartTime)
	if err != nil {
		return nil, wrapStorage("load schedule", err)
	}
	dayEnd, err := utils.ClockToMinutes(sched.EndTime)
	if err != nil {
		return nil, wrapStorage("load schedule", err)
	}

	var bookings []models.Booking
	if err := e.db.Preload("Customer").Preload("Service").
		Where("tenant_id = ? AND date = ? AND status IN ?",
			tenantID, utils.BeginningOfDay(date), blockingStatuses).
		Find(&bookings).Error; err != nil {
		return nil, wrapStorage("load bookings", err)
	}

	now := e.now()
	isToday := utils.SameDay(now, date)
	return SegmentDay(bookings, dayStart, dayEnd, isToday, utils.MinutesSinceMidnight(now)), nil
}
