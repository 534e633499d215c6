package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_phone,priority:1"`

	Name          string `gorm:"not null"`
	Phone         string `gorm:"not null;uniqueIndex:idx_tenant_phone,priority:2"`
	Email         string
	Notes         string
	TotalBookings int `gorm:"default:0"`

	Bookings []Booking `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
