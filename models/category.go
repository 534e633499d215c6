package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceCategory struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name         string    `gorm:"not null"`
	DisplayOrder int       `gorm:"not null;default:0"`

	Services []Service `gorm:"foreignKey:CategoryID"`

	gorm.Model
}

func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
