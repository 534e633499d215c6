package scheduling

import (
	"testing"

	"turnopro-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.BookingStatus
		allowed  bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingPending, models.BookingNoShow, false},

		{models.BookingConfirmed, models.BookingCompleted, true},
		{models.BookingConfirmed, models.BookingNoShow, true},
		{models.BookingConfirmed, models.BookingCancelled, true},
		{models.BookingConfirmed, models.BookingPending, false},

		// terminal states permit nothing
		{models.BookingCompleted, models.BookingCancelled, false},
		{models.BookingCompleted, models.BookingConfirmed, false},
		{models.BookingCancelled, models.BookingConfirmed, false},
		{models.BookingCancelled, models.BookingPending, false},
		{models.BookingNoShow, models.BookingCompleted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.False(t, models.BookingPending.Terminal())
	assert.False(t, models.BookingConfirmed.Terminal())
	assert.True(t, models.BookingCompleted.Terminal())
	assert.True(t, models.BookingCancelled.Terminal())
	assert.True(t, models.BookingNoShow.Terminal())
}

func TestBlockingStatuses(t *testing.T) {
	assert.True(t, models.BookingPending.Blocking())
	assert.True(t, models.BookingConfirmed.Blocking())
	assert.True(t, models.BookingCompleted.Blocking())
	assert.False(t, models.BookingCancelled.Blocking())
	assert.False(t, models.BookingNoShow.Blocking())
}
