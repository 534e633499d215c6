package scheduling

import (
	"fmt"

	"turnopro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReorderServices rewrites the display order of the tenant's services to
// match the supplied id list, positions 1..N.
func (e *Engine) ReorderServices(tenantID uuid.UUID, ids []uuid.UUID) error {
	return e.reorder("reorder services", &models.Service{}, tenantID, ids)
}

// ReorderCategories does the same for service categories.
func (e *Engine) ReorderCategories(tenantID uuid.UUID, ids []uuid.UUID) error {
	return e.reorder("reorder categories", &models.ServiceCategory{}, tenantID, ids)
}

// reorder assigns display_order = index+1 for each id, every update filtered
// by (id, tenant_id). One transaction covers all rows: an id that is unknown
// or owned by another tenant rolls back the whole call with ErrNotFound, so
// no order value changes. A list shorter than the tenant's full collection
// leaves the omitted rows untouched; callers own list completeness.
func (e *Engine) reorder(op string, model interface{}, tenantID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return validationErr("ids", "must not be empty")
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return validationErr("ids", fmt.Sprintf("duplicate id %s", id))
		}
		seen[id] = struct{}{}
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(model).
				Where("id = ? AND tenant_id = ?", id, tenantID).
				Update("display_order", i+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: id %s", ErrNotFound, id)
			}
		}
		return nil
	})
	return wrapStorage(op, err)
}
