package scheduling

import (
	"time"

	"turnopro-backend/models"
	"turnopro-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBookingInput is the request shape shared by the public reservation
// page and the dashboard's self-service flow.
type CreateBookingInput struct {
	CustomerName  string
	CustomerPhone string
	ServiceID     uuid.UUID
	EmployeeID    *uuid.UUID
	Date          time.Time
	StartTime     string
	Notes         string
}

// blockingStatuses are the statuses that occupy a slot.
var blockingStatuses = []models.BookingStatus{
	models.BookingPending, models.BookingConfirmed, models.BookingCompleted,
}

// CreateBooking creates a pending booking. Inside one transaction it loads
// the service under the ownership guard, checks the employee reference,
// rejects any overlap with a blocking booking on the same resource, and
// finds or creates the customer by phone. Callers retrying after a timeout
// must deduplicate themselves; this call is not idempotent.
func (e *Engine) CreateBooking(tenantID uuid.UUID, in CreateBookingInput) (*models.Booking, error) {
	if in.CustomerName == "" {
		return nil, validationErr("customerName", "must not be empty")
	}
	if !utils.ValidatePhone(in.CustomerPhone) {
		return nil, validationErr("customerPhone", "not a valid phone number")
	}
	if !utils.ValidateClock(in.StartTime) {
		return nil, validationErr("startTime", "expected HH:MM")
	}
	if in.Date.IsZero() {
		return nil, validationErr("date", "must be set")
	}
	startMin, _ := utils.ClockToMinutes(in.StartTime)
	day := utils.BeginningOfDay(in.Date)

	var booking models.Booking
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := findOwned(tx, &svc, tenantID, in.ServiceID); err != nil {
			return err
		}
		if !svc.IsActive {
			return validationErr("serviceId", "service is not bookable")
		}

		endMin := startMin + svc.DurationMinutes
		if endMin > endOfDayMin {
			return validationErr("startTime", "booking would run past end of day")
		}
		startClock := utils.MinutesToClock(startMin)
		endClock := utils.MinutesToClock(endMin)

		if in.EmployeeID != nil {
			var employee models.User
			err := mapFindErr(tx.
				Where("id = ? AND tenant_id = ? AND role = ? AND is_active = true",
					*in.EmployeeID, tenantID, models.RoleEmployee).
				First(&employee).Error)
			if err != nil {
				return err
			}
		}

		// Overlap check on the resource dimension: the employee when one is
		// assigned, otherwise the tenant's whole calendar. Zero-padded HH:MM
		// strings compare correctly as text.
		overlapQ := tx.Model(&models.Booking{}).
			Where("tenant_id = ? AND date = ? AND status IN ?", tenantID, day, blockingStatuses).
			Where("start_time < ? AND end_time > ?", endClock, startClock)
		if in.EmployeeID != nil {
			overlapQ = overlapQ.Where("employee_id = ?", *in.EmployeeID)
		}
		var overlapping int64
		if err := overlapQ.Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrSlotConflict
		}

		customer, err := findOrCreateCustomer(tx, tenantID, in.CustomerPhone, in.CustomerName)
		if err != nil {
			return err
		}

		booking = models.Booking{
			TenantID:   tenantID,
			CustomerID: customer.ID,
			ServiceID:  svc.ID,
			EmployeeID: in.EmployeeID,
			Date:       day,
			StartTime:  startClock,
			EndTime:    endClock,
			Status:     models.BookingPending,
			Notes:      in.Notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Update("total_bookings", gorm.Expr("total_bookings + ?", 1)).Error
	})
	if err != nil {
		return nil, wrapStorage("create booking", err)
	}
	return &booking, nil
}

// findOrCreateCustomer resolves the customer for a phone number within the
// tenant, creating the row on first contact.
func findOrCreateCustomer(tx *gorm.DB, tenantID uuid.UUID, phone, name string) (*models.Customer, error) {
	var customer models.Customer
	err := mapFindErr(tx.Where("tenant_id = ? AND phone = ?", tenantID, phone).First(&customer).Error)
	if err == nil {
		return &customer, nil
	}
	if err != ErrNotFound {
		return nil, err
	}
	customer = models.Customer{
		TenantID: tenantID,
		Phone:    phone,
		Name:     name,
	}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// BookingsForDay lists a tenant's bookings on one date, earliest first.
func (e *Engine) BookingsForDay(tenantID uuid.UUID, date time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := e.db.Preload("Customer").Preload("Service").
		Where("tenant_id = ? AND date = ?", tenantID, utils.BeginningOfDay(date)).
		Order("start_time asc").
		Find(&bookings).Error
	if err != nil {
		return nil, wrapStorage("list bookings", err)
	}
	return bookings, nil
}
