// services/notification/dispatcher.go
package notification

import (
	"fmt"
	"strings"
	"time"

	"turnopro-backend/config"
	"turnopro-backend/models"
	"turnopro-backend/services/scheduling"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	KindConfirmation = "confirmation"
	KindReminder     = "reminder"
)

// TwilioSender delivers customer messages over WhatsApp or SMS and records
// every attempt in the notification log. It implements scheduling.Notifier.
type TwilioSender struct {
	db     *gorm.DB
	logger *zap.Logger
	client *twilio.RestClient
}

func NewTwilioSender(db *gorm.DB, logger *zap.Logger) *TwilioSender {
	return &TwilioSender{
		db:     db,
		logger: logger,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: config.AppConfig.TwilioAccountSID,
			Password: config.AppConfig.TwilioAuthToken,
		}),
	}
}

// BookingConfirmed sends the confirmation message for a freshly confirmed
// booking. Errors are reported to the caller for logging only; the booking
// state is already committed.
func (s *TwilioSender) BookingConfirmed(evt scheduling.Event) error {
	message := fmt.Sprintf(
		"Your booking for %s on %s at %s is confirmed. See you then!",
		evt.ServiceName, evt.Date.Format("Mon, 02 Jan"), evt.StartTime,
	)
	return s.send(evt.TenantID, evt.BookingID, evt.CustomerID, KindConfirmation, evt.CustomerContact, message)
}

// send picks the channel the way the salon stack always has: WhatsApp for
// E.164 numbers, plain SMS otherwise.
func (s *TwilioSender) send(tenantID, bookingID, customerID uuid.UUID, kind, phone, message string) error {
	channel := "sms"
	to := phone
	if strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + config.AppConfig.TwilioWhatsAppNumber)
	} else {
		params.SetFrom(config.AppConfig.TwilioPhoneNumber)
	}

	resp, sendErr := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""
	if sendErr != nil {
		s.logger.Warn("message send failed",
			zap.String("phone", phone),
			zap.String("kind", kind),
			zap.Error(sendErr),
		)
		status = "failed"
		errorMsg = sendErr.Error()
	} else if resp.Sid != nil {
		s.logger.Info("message sent",
			zap.String("phone", phone),
			zap.String("kind", kind),
			zap.String("sid", *resp.Sid),
		)
	}

	logRow := models.NotificationLog{
		TenantID:     tenantID,
		BookingID:    bookingID,
		CustomerID:   customerID,
		Kind:         kind,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&logRow).Error; err != nil {
		s.logger.Warn("failed to write notification log",
			zap.String("bookingId", bookingID.String()),
			zap.Error(err),
		)
	}
	return sendErr
}
