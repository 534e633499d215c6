package scheduling

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Event is the payload handed to the notification collaborator after a
// booking reaches confirmed. Delivery and formatting are its problem.
type Event struct {
	BookingID       uuid.UUID
	TenantID        uuid.UUID
	CustomerID      uuid.UUID
	CustomerContact string
	NewStatus       string
	ServiceName     string
	Date            time.Time
	StartTime       string
}

// Notifier dispatches booking events. Implementations must not block the
// caller on delivery; failures stay on their side.
type Notifier interface {
	BookingConfirmed(evt Event) error
}

// Engine is the tenant-isolated scheduling core. Every mutation runs inside
// a single database transaction that both verifies tenant ownership and
// applies the change.
type Engine struct {
	db       *gorm.DB
	logger   *zap.Logger
	notifier Notifier
	now      func() time.Time
}

func NewEngine(db *gorm.DB, logger *zap.Logger, notifier Notifier) *Engine {
	return &Engine{
		db:       db,
		logger:   logger,
		notifier: notifier,
		now:      time.Now,
	}
}

// findOwned loads dest filtered by both id and tenant id. An absent row and
// a row belonging to another tenant produce the same ErrNotFound.
func findOwned(tx *gorm.DB, dest interface{}, tenantID, id uuid.UUID) error {
	err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(dest).Error
	return mapFindErr(err)
}

func mapFindErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// mutate is the ownership-guarded verify-then-mutate primitive: one
// transaction loads the target row by (id, tenant_id) and applies the change.
// Nothing outside the transaction ever observes an intermediate state.
func (e *Engine) mutate(op string, tenantID, id uuid.UUID, dest interface{}, apply func(tx *gorm.DB) error) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := findOwned(tx, dest, tenantID, id); err != nil {
			return err
		}
		return apply(tx)
	})
	return wrapStorage(op, err)
}
