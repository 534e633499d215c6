package scheduling

import (
	"turnopro-backend/models"
	"turnopro-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minServiceDuration = 5
	maxServiceDuration = 480
)

// ServiceChanges carries the optional fields of a service update. Nil means
// leave the field alone.
type ServiceChanges struct {
	Name            *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	CategoryID      *uuid.UUID
	ClearCategory   bool
	IsActive        *bool
	Images          *models.JSONB
	Variations      *models.JSONB
}

func validateServiceFields(price *float64, duration *int) error {
	if price != nil && *price < 0 {
		return validationErr("price", "must not be negative")
	}
	if duration != nil && (*duration < minServiceDuration || *duration > maxServiceDuration) {
		return validationErr("durationMinutes", "must be between 5 and 480")
	}
	return nil
}

// CreateService appends a new service at the end of the tenant's ordering.
func (e *Engine) CreateService(tenantID uuid.UUID, svc *models.Service) error {
	if svc.Name == "" {
		return validationErr("name", "must not be empty")
	}
	if err := validateServiceFields(&svc.Price, &svc.DurationMinutes); err != nil {
		return err
	}
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		row := tx.Model(&models.Service{}).
			Where("tenant_id = ?", tenantID).
			Select("COALESCE(MAX(display_order), 0)").Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}
		svc.TenantID = tenantID
		svc.DisplayOrder = maxOrder + 1
		svc.IsActive = true
		return tx.Create(svc).Error
	})
	return wrapStorage("create service", err)
}

// UpdateService applies the supplied changes under the ownership guard.
func (e *Engine) UpdateService(tenantID, serviceID uuid.UUID, ch ServiceChanges) (*models.Service, error) {
	if err := validateServiceFields(ch.Price, ch.DurationMinutes); err != nil {
		return nil, err
	}
	var svc models.Service
	err := e.mutate("update service", tenantID, serviceID, &svc, func(tx *gorm.DB) error {
		if ch.Name != nil {
			svc.Name = *ch.Name
		}
		if ch.Description != nil {
			svc.Description = *ch.Description
		}
		if ch.Price != nil {
			svc.Price = *ch.Price
		}
		if ch.DurationMinutes != nil {
			svc.DurationMinutes = *ch.DurationMinutes
		}
		if ch.ClearCategory {
			svc.CategoryID = nil
		} else if ch.CategoryID != nil {
			var cat models.ServiceCategory
			if err := findOwned(tx, &cat, tenantID, *ch.CategoryID); err != nil {
				return err
			}
			svc.CategoryID = ch.CategoryID
		}
		if ch.IsActive != nil {
			svc.IsActive = *ch.IsActive
		}
		if ch.Images != nil {
			svc.Images = *ch.Images
		}
		if ch.Variations != nil {
			svc.Variations = *ch.Variations
		}
		return tx.Save(&svc).Error
	})
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// DeleteService removes a service. A service referenced by at least one
// booking of any status is deactivated instead of removed; the dependent
// count and the branch happen in the same transaction as the delete.
func (e *Engine) DeleteService(tenantID, serviceID uuid.UUID) (softDeleted bool, err error) {
	var svc models.Service
	err = e.mutate("delete service", tenantID, serviceID, &svc, func(tx *gorm.DB) error {
		var dependents int64
		if err := tx.Model(&models.Booking{}).
			Where("service_id = ? AND tenant_id = ?", serviceID, tenantID).
			Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			softDeleted = true
			return tx.Model(&svc).Update("is_active", false).Error
		}
		return tx.Unscoped().Delete(&svc).Error
	})
	return softDeleted, err
}

// CreateCategory appends a category at the end of the tenant's ordering.
func (e *Engine) CreateCategory(tenantID uuid.UUID, cat *models.ServiceCategory) error {
	if cat.Name == "" {
		return validationErr("name", "must not be empty")
	}
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		row := tx.Model(&models.ServiceCategory{}).
			Where("tenant_id = ?", tenantID).
			Select("COALESCE(MAX(display_order), 0)").Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}
		cat.TenantID = tenantID
		cat.DisplayOrder = maxOrder + 1
		return tx.Create(cat).Error
	})
	return wrapStorage("create category", err)
}

// UpdateCategory renames a category under the ownership guard.
func (e *Engine) UpdateCategory(tenantID, categoryID uuid.UUID, name string) (*models.ServiceCategory, error) {
	if name == "" {
		return nil, validationErr("name", "must not be empty")
	}
	var cat models.ServiceCategory
	err := e.mutate("update category", tenantID, categoryID, &cat, func(tx *gorm.DB) error {
		cat.Name = name
		return tx.Save(&cat).Error
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category and nulls the reference on its services
// in the same transaction. Services themselves are left in place.
func (e *Engine) DeleteCategory(tenantID, categoryID uuid.UUID) error {
	var cat models.ServiceCategory
	return e.mutate("delete category", tenantID, categoryID, &cat, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Service{}).
			Where("category_id = ? AND tenant_id = ?", categoryID, tenantID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&cat).Error
	})
}

// UpsertSchedule writes the tenant's opening hours for one weekday. One row
// per weekday per tenant; a second write replaces the first.
func (e *Engine) UpsertSchedule(tenantID uuid.UUID, dayOfWeek int, startTime, endTime string, isActive bool) (*models.Schedule, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, validationErr("dayOfWeek", "must be between 0 and 6")
	}
	if !utils.ValidateClock(startTime) {
		return nil, validationErr("startTime", "expected HH:MM")
	}
	if !utils.ValidateClock(endTime) {
		return nil, validationErr("endTime", "expected HH:MM")
	}
	startMin, _ := utils.ClockToMinutes(startTime)
	endMin, _ := utils.ClockToMinutes(endTime)
	if startMin >= endMin {
		return nil, validationErr("endTime", "must be after startTime")
	}

	var sched models.Schedule
	err := e.db.Transaction(func(tx *gorm.DB) error {
		err := mapFindErr(tx.Where("tenant_id = ? AND day_of_week = ?", tenantID, dayOfWeek).First(&sched).Error)
		if err == ErrNotFound {
			sched = models.Schedule{
				TenantID:  tenantID,
				DayOfWeek: dayOfWeek,
				StartTime: startTime,
				EndTime:   endTime,
				IsActive:  isActive,
			}
			return tx.Create(&sched).Error
		}
		if err != nil {
			return err
		}
		sched.StartTime = startTime
		sched.EndTime = endTime
		sched.IsActive = isActive
		return tx.Save(&sched).Error
	})
	if err != nil {
		return nil, wrapStorage("upsert schedule", err)
	}
	return &sched, nil
}
