// services/notification/reminders.go
package notification

import (
	"fmt"
	"time"

	"turnopro-backend/models"
	"turnopro-backend/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReminderScheduler sends a day-before reminder to every customer with a
// confirmed booking. Runs daily at 09:00 server time.
type ReminderScheduler struct {
	db     *gorm.DB
	sender *TwilioSender
	logger *zap.Logger
}

func NewReminderScheduler(db *gorm.DB, sender *TwilioSender, logger *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{db: db, sender: sender, logger: logger}
}

func (r *ReminderScheduler) Start() {
	c := cron.New()
	c.AddFunc("0 9 * * *", r.SendUpcomingReminders)
	c.Start()
	r.logger.Info("reminder scheduler started")
}

// SendUpcomingReminders processes tomorrow's confirmed bookings.
func (r *ReminderScheduler) SendUpcomingReminders() {
	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))

	var bookings []models.Booking
	if err := r.db.Preload("Customer").Preload("Service").
		Where("date = ? AND status = ?", tomorrow, models.BookingConfirmed).
		Find(&bookings).Error; err != nil {
		r.logger.Error("failed to load bookings for reminders", zap.Error(err))
		return
	}

	for _, b := range bookings {
		message := fmt.Sprintf(
			"Reminder: your %s appointment is tomorrow at %s. Reply to reschedule.",
			b.Service.Name, b.StartTime,
		)
		// Failures are already logged per attempt; keep going.
		r.sender.send(b.TenantID, b.ID, b.CustomerID, KindReminder, b.Customer.Phone, message)
	}

	r.logger.Info("reminder run completed", zap.Int("bookings", len(bookings)))
}
