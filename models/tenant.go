package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TenantActive    = "active"
	TenantInactive  = "inactive"
	TenantSuspended = "suspended"
)

type Tenant struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Name     string    `gorm:"not null"`
	Slug     string    `gorm:"uniqueIndex;not null"`
	Status   string    `gorm:"type:varchar(20);default:'active'"`
	Timezone string    `gorm:"default:'UTC'"`
	Address  string

	Users      []User            `gorm:"foreignKey:TenantID"`
	Categories []ServiceCategory `gorm:"foreignKey:TenantID"`
	Services   []Service         `gorm:"foreignKey:TenantID"`
	Customers  []Customer        `gorm:"foreignKey:TenantID"`
	Schedules  []Schedule        `gorm:"foreignKey:TenantID"`
	Bookings   []Booking         `gorm:"foreignKey:TenantID"`

	gorm.Model
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
