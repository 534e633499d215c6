package scheduling

import (
	"turnopro-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// transitions is the booking state machine. Completed, cancelled and no-show
// are terminal; every booking starts pending.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingNoShow, models.BookingCancelled},
}

// CanTransition reports whether the state machine permits from -> to.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionBooking moves a booking to the target status under the ownership
// guard. Cancelling an already-cancelled booking is a success no-op. A
// successful move to confirmed fires the customer notification after commit,
// best effort; delivery failure never rolls the transition back.
func (e *Engine) TransitionBooking(tenantID, bookingID uuid.UUID, target models.BookingStatus) (*models.Booking, error) {
	if !target.Valid() || target == models.BookingPending {
		return nil, validationErr("status", "unknown or unreachable target status")
	}

	var booking models.Booking
	noop := false
	err := e.db.Transaction(func(tx *gorm.DB) error {
		err := mapFindErr(tx.Preload("Service").Preload("Customer").
			Where("id = ? AND tenant_id = ?", bookingID, tenantID).
			First(&booking).Error)
		if err != nil {
			return err
		}
		if booking.Status == models.BookingCancelled && target == models.BookingCancelled {
			noop = true
			return nil
		}
		if !CanTransition(booking.Status, target) {
			return ErrInvalidTransition
		}
		booking.Status = target
		return tx.Model(&booking).Update("status", target).Error
	})
	if err != nil {
		return nil, wrapStorage("transition booking", err)
	}

	if !noop && target == models.BookingConfirmed {
		go e.dispatchConfirmation(booking)
	}
	return &booking, nil
}

func (e *Engine) dispatchConfirmation(b models.Booking) {
	if e.notifier == nil {
		return
	}
	evt := Event{
		BookingID:       b.ID,
		TenantID:        b.TenantID,
		CustomerID:      b.CustomerID,
		CustomerContact: b.Customer.Phone,
		NewStatus:       string(b.Status),
		ServiceName:     b.Service.Name,
		Date:            b.Date,
		StartTime:       b.StartTime,
	}
	if err := e.notifier.BookingConfirmed(evt); err != nil {
		e.logger.Warn("confirmation dispatch failed",
			zap.String("bookingId", b.ID.String()),
			zap.Error(err),
		)
	}
}
