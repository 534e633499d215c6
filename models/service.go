package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	Name            string     `gorm:"not null"`
	Description     string
	Price           float64    `gorm:"type:decimal(10,2);not null"`
	DurationMinutes int        `gorm:"not null"` // 5-480
	CategoryID      *uuid.UUID `gorm:"type:uuid;index"` // weak reference, nulled when the category goes away
	IsActive        bool       `gorm:"default:true"`
	DisplayOrder    int        `gorm:"not null;default:0"`
	Images          JSONB      `gorm:"type:jsonb;default:'[]'"` // ordered list of URLs
	Variations      JSONB      `gorm:"type:jsonb;default:'[]'"` // price/duration modifiers, opaque here

	Bookings []Booking `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Custom JSONB type for loosely structured columns
type JSONB []interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
