package scheduling

import (
	"os"
	"sync"
	"testing"
	"time"

	"turnopro-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// fakeNotifier captures dispatched events for inspection.
type fakeNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (f *fakeNotifier) BookingConfirmed(evt Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakeNotifier) last() Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[len(f.events)-1]
}

// testEngine connects to the database named by TEST_DATABASE_URL, skipping
// the test when none is reachable.
func testEngine(t *testing.T) (*Engine, *gorm.DB, *fakeNotifier) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Customer{},
		&models.Schedule{},
		&models.Booking{},
	)
	require.NoError(t, err)

	notifier := &fakeNotifier{}
	return NewEngine(db, zap.NewNop(), notifier), db, notifier
}

// newTestTenant creates a tenant and registers its rows for cleanup.
func newTestTenant(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	tenant := models.Tenant{
		Name:   "Test " + uuid.NewString()[:8],
		Slug:   "test-" + uuid.NewString()[:8],
		Status: models.TenantActive,
	}
	require.NoError(t, db.Create(&tenant).Error)
	t.Cleanup(func() {
		for _, m := range []interface{}{
			&models.Booking{}, &models.Customer{}, &models.Service{},
			&models.ServiceCategory{}, &models.Schedule{}, &models.User{},
		} {
			db.Unscoped().Where("tenant_id = ?", tenant.ID).Delete(m)
		}
		db.Unscoped().Delete(&models.Tenant{}, "id = ?", tenant.ID)
	})
	return tenant.ID
}

func newTestService(t *testing.T, e *Engine, tenantID uuid.UUID, name string, duration int) *models.Service {
	t.Helper()
	svc := models.Service{Name: name, Price: 25, DurationMinutes: duration}
	require.NoError(t, e.CreateService(tenantID, &svc))
	return &svc
}

func testDate() time.Time {
	return time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
}

func TestTenantIsolationOnUpdate(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)
	tenantB := newTestTenant(t, db)

	svc := newTestService(t, e, tenantA, "Haircut", 30)

	newName := "Hijacked"
	_, err := e.UpdateService(tenantB, svc.ID, ServiceChanges{Name: &newName})
	assert.ErrorIs(t, err, ErrNotFound)

	var reloaded models.Service
	require.NoError(t, db.First(&reloaded, "id = ?", svc.ID).Error)
	assert.Equal(t, "Haircut", reloaded.Name, "cross-tenant update must not touch the row")
}

func TestReorderAssignsDenseOrder(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)

	s1 := newTestService(t, e, tenantA, "S1", 30)
	s2 := newTestService(t, e, tenantA, "S2", 30)
	s3 := newTestService(t, e, tenantA, "S3", 30)

	require.NoError(t, e.ReorderServices(tenantA, []uuid.UUID{s3.ID, s1.ID, s2.ID}))

	orders := map[uuid.UUID]int{}
	var services []models.Service
	require.NoError(t, db.Where("tenant_id = ?", tenantA).Find(&services).Error)
	for _, s := range services {
		orders[s.ID] = s.DisplayOrder
	}
	assert.Equal(t, 1, orders[s3.ID])
	assert.Equal(t, 2, orders[s1.ID])
	assert.Equal(t, 3, orders[s2.ID])
}

func TestReorderRollsBackOnForeignID(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)
	tenantB := newTestTenant(t, db)

	s1 := newTestService(t, e, tenantA, "S1", 30)
	s2 := newTestService(t, e, tenantA, "S2", 30)
	foreign := newTestService(t, e, tenantB, "Foreign", 30)

	err := e.ReorderServices(tenantA, []uuid.UUID{s2.ID, foreign.ID, s1.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing may have moved, not even s2 which was updated first.
	var reloaded models.Service
	require.NoError(t, db.First(&reloaded, "id = ?", s2.ID).Error)
	assert.Equal(t, 2, reloaded.DisplayOrder)
	require.NoError(t, db.First(&reloaded, "id = ?", foreign.ID).Error)
	assert.Equal(t, 1, reloaded.DisplayOrder)
}

func TestReorderRejectsDuplicates(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)
	s1 := newTestService(t, e, tenantA, "S1", 30)

	err := e.ReorderServices(tenantA, []uuid.UUID{s1.ID, s1.ID})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestDeleteServiceBranchesOnBookings(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)

	unused := newTestService(t, e, tenantA, "Unused", 30)
	booked := newTestService(t, e, tenantA, "Booked", 30)

	_, err := e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Ana",
		CustomerPhone: "+5491144445555",
		ServiceID:     booked.ID,
		Date:          testDate(),
		StartTime:     "10:00",
	})
	require.NoError(t, err)

	soft, err := e.DeleteService(tenantA, unused.ID)
	require.NoError(t, err)
	assert.False(t, soft)
	var count int64
	db.Unscoped().Model(&models.Service{}).Where("id = ?", unused.ID).Count(&count)
	assert.EqualValues(t, 0, count, "service without bookings is physically gone")

	soft, err = e.DeleteService(tenantA, booked.ID)
	require.NoError(t, err)
	assert.True(t, soft)
	var reloaded models.Service
	require.NoError(t, db.First(&reloaded, "id = ?", booked.ID).Error)
	assert.False(t, reloaded.IsActive, "service with bookings is deactivated, not removed")
}

func TestDeleteCategoryNullsServiceReferences(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)

	cat := models.ServiceCategory{Name: "Hair"}
	require.NoError(t, e.CreateCategory(tenantA, &cat))
	svc := newTestService(t, e, tenantA, "Haircut", 30)
	_, err := e.UpdateService(tenantA, svc.ID, ServiceChanges{CategoryID: &cat.ID})
	require.NoError(t, err)

	require.NoError(t, e.DeleteCategory(tenantA, cat.ID))

	var reloaded models.Service
	require.NoError(t, db.First(&reloaded, "id = ?", svc.ID).Error)
	assert.Nil(t, reloaded.CategoryID)
}

func TestBookingLifecycle(t *testing.T) {
	e, db, notifier := testEngine(t)
	tenantA := newTestTenant(t, db)
	svc := newTestService(t, e, tenantA, "Haircut", 30)

	booking, err := e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Ana",
		CustomerPhone: "+5491144445555",
		ServiceID:     svc.ID,
		Date:          testDate(),
		StartTime:     "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, "10:30", booking.EndTime)

	// completing a pending booking is not a legal move
	_, err = e.TransitionBooking(tenantA, booking.ID, models.BookingCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	confirmed, err := e.TransitionBooking(tenantA, booking.ID, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)

	require.Eventually(t, func() bool { return notifier.count() == 1 },
		2*time.Second, 10*time.Millisecond, "confirmation must reach the notifier")
	evt := notifier.last()
	assert.Equal(t, booking.ID, evt.BookingID)
	assert.Equal(t, "Haircut", evt.ServiceName)
	assert.Equal(t, "+5491144445555", evt.CustomerContact)

	done, err := e.TransitionBooking(tenantA, booking.ID, models.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, done.Status)

	// terminal: no way out
	_, err = e.TransitionBooking(tenantA, booking.ID, models.BookingCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelIsIdempotent(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)
	svc := newTestService(t, e, tenantA, "Haircut", 30)

	booking, err := e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Ana",
		CustomerPhone: "+5491144445555",
		ServiceID:     svc.ID,
		Date:          testDate(),
		StartTime:     "10:00",
	})
	require.NoError(t, err)

	_, err = e.TransitionBooking(tenantA, booking.ID, models.BookingCancelled)
	require.NoError(t, err)

	again, err := e.TransitionBooking(tenantA, booking.ID, models.BookingCancelled)
	require.NoError(t, err, "cancelling twice is a no-op, not an error")
	assert.Equal(t, models.BookingCancelled, again.Status)
}

func TestTransitionCrossTenant(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)
	tenantB := newTestTenant(t, db)
	svc := newTestService(t, e, tenantA, "Haircut", 30)

	booking, err := e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Ana",
		CustomerPhone: "+5491144445555",
		ServiceID:     svc.ID,
		Date:          testDate(),
		StartTime:     "10:00",
	})
	require.NoError(t, err)

	_, err = e.TransitionBooking(tenantB, booking.ID, models.BookingConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingPending, reloaded.Status)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)
	svc := newTestService(t, e, tenantA, "Haircut", 30)

	_, err := e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Ana",
		CustomerPhone: "+5491144445555",
		ServiceID:     svc.ID,
		Date:          testDate(),
		StartTime:     "10:00",
	})
	require.NoError(t, err)

	_, err = e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Bruno",
		CustomerPhone: "+5491166667777",
		ServiceID:     svc.ID,
		Date:          testDate(),
		StartTime:     "10:15",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// back to back is fine
	_, err = e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Bruno",
		CustomerPhone: "+5491166667777",
		ServiceID:     svc.ID,
		Date:          testDate(),
		StartTime:     "10:30",
	})
	assert.NoError(t, err)
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)
	svc := newTestService(t, e, tenantA, "Haircut", 30)

	first, err := e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Ana",
		CustomerPhone: "+5491144445555",
		ServiceID:     svc.ID,
		Date:          testDate(),
		StartTime:     "10:00",
	})
	require.NoError(t, err)
	_, err = e.TransitionBooking(tenantA, first.ID, models.BookingCancelled)
	require.NoError(t, err)

	_, err = e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Bruno",
		CustomerPhone: "+5491166667777",
		ServiceID:     svc.ID,
		Date:          testDate(),
		StartTime:     "10:00",
	})
	assert.NoError(t, err)
}

func TestCreateBookingImplicitCustomer(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)
	svc := newTestService(t, e, tenantA, "Haircut", 30)

	_, err := e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Ana",
		CustomerPhone: "+5491144445555",
		ServiceID:     svc.ID,
		Date:          testDate(),
		StartTime:     "10:00",
	})
	require.NoError(t, err)

	_, err = e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Ana",
		CustomerPhone: "+5491144445555",
		ServiceID:     svc.ID,
		Date:          testDate(),
		StartTime:     "11:00",
	})
	require.NoError(t, err)

	var customers []models.Customer
	require.NoError(t, db.Where("tenant_id = ?", tenantA).Find(&customers).Error)
	require.Len(t, customers, 1, "same phone resolves to one customer")
	assert.Equal(t, 2, customers[0].TotalBookings)
}

func TestDaySegmentsEndToEnd(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)
	svc := newTestService(t, e, tenantA, "Haircut", 30)

	date := testDate()
	_, err := e.UpsertSchedule(tenantA, int(date.Weekday()), "09:00", "18:00", true)
	require.NoError(t, err)

	_, err = e.CreateBooking(tenantA, CreateBookingInput{
		CustomerName:  "Ana",
		CustomerPhone: "+5491144445555",
		ServiceID:     svc.ID,
		Date:          date,
		StartTime:     "10:00",
	})
	require.NoError(t, err)

	e.now = func() time.Time { return date.Add(10*time.Hour + 15*time.Minute) }

	segments, err := e.DaySegments(tenantA, date)
	require.NoError(t, err)

	require.Len(t, segments, 4)
	assert.Equal(t, SegmentFree, segments[0].Kind)
	assert.Equal(t, SegmentBusy, segments[1].Kind)
	assert.Equal(t, SegmentNow, segments[2].Kind)
	assert.Equal(t, SegmentFree, segments[3].Kind)

	// a weekday with no schedule row is simply closed
	closed, err := e.DaySegments(tenantA, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, closed)
}

func TestUpsertScheduleReplaces(t *testing.T) {
	e, db, _ := testEngine(t)
	tenantA := newTestTenant(t, db)

	_, err := e.UpsertSchedule(tenantA, 1, "09:00", "18:00", true)
	require.NoError(t, err)
	_, err = e.UpsertSchedule(tenantA, 1, "10:00", "19:00", true)
	require.NoError(t, err)

	var rows []models.Schedule
	require.NoError(t, db.Where("tenant_id = ? AND day_of_week = 1", tenantA).Find(&rows).Error)
	require.Len(t, rows, 1, "one row per weekday per tenant")
	assert.Equal(t, "10:00", rows[0].StartTime)
}
