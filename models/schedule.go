package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schedule holds one tenant's opening hours for one weekday.
// Writes go through an upsert keyed on (tenant_id, day_of_week).
type Schedule struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_weekday,priority:1"`
	DayOfWeek int       `gorm:"not null;uniqueIndex:idx_tenant_weekday,priority:2"` // 0 = Sunday
	StartTime string    `gorm:"type:varchar(5);not null"`                           // HH:MM
	EndTime   string    `gorm:"type:varchar(5);not null"`                           // HH:MM
	IsActive  bool      `gorm:"default:true"`

	gorm.Model
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
