package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
)

// Blocking reports whether a booking in this status occupies its slot.
// Cancelled and no-show bookings free the slot for rebooking.
func (s BookingStatus) Blocking() bool {
	return s != BookingCancelled && s != BookingNoShow
}

// Terminal reports whether no further transition is permitted.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled || s == BookingNoShow
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

type Booking struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null"`
	ServiceID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index"`

	Date      time.Time     `gorm:"type:date;index;not null"`
	StartTime string        `gorm:"type:varchar(5);not null"` // HH:MM, start < end
	EndTime   string        `gorm:"type:varchar(5);not null"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes     string

	Customer Customer `gorm:"foreignKey:CustomerID"`
	Service  Service  `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
