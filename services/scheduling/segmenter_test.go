package scheduling

import (
	"testing"

	"turnopro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bk(start, end string) models.Booking {
	return models.Booking{StartTime: start, EndTime: end, Status: models.BookingConfirmed}
}

// assertCoverage checks the gapless-coverage guarantee: ignoring markers, the
// segment intervals concatenate to exactly [dayStart, dayEnd).
func assertCoverage(t *testing.T, segments []Segment, dayStart, dayEnd int) {
	t.Helper()
	cursor := dayStart
	for _, s := range segments {
		if s.Kind == SegmentNow {
			assert.Equal(t, s.StartMin, s.EndMin, "now marker must be zero width")
			continue
		}
		assert.Equal(t, cursor, s.StartMin, "segment must start where the previous ended")
		assert.Greater(t, s.EndMin, s.StartMin, "segment must have positive duration")
		cursor = s.EndMin
	}
	assert.Equal(t, dayEnd, cursor, "segments must run to the end of the day")
}

func TestSegmentDayEmptySchedule(t *testing.T) {
	segments := SegmentDay(nil, 540, 1080, false, 0)
	require.Len(t, segments, 1)
	assert.Equal(t, SegmentFree, segments[0].Kind)
	assert.Equal(t, 540, segments[0].StartMin)
	assert.Equal(t, 1080, segments[0].EndMin)
}

func TestSegmentDaySingleBooking(t *testing.T) {
	// Mon 09:00-18:00 with one booking 10:00-10:30
	segments := SegmentDay([]models.Booking{bk("10:00", "10:30")}, 540, 1080, false, 0)

	require.Len(t, segments, 3)
	assert.Equal(t, Segment{Kind: SegmentFree, StartMin: 540, EndMin: 600}, segments[0])
	assert.Equal(t, SegmentBusy, segments[1].Kind)
	assert.Equal(t, 600, segments[1].StartMin)
	assert.Equal(t, 630, segments[1].EndMin)
	require.NotNil(t, segments[1].Booking)
	assert.Equal(t, Segment{Kind: SegmentFree, StartMin: 630, EndMin: 1080}, segments[2])
	assertCoverage(t, segments, 540, 1080)
}

func TestSegmentDayNowInsideBusySegment(t *testing.T) {
	// 10:15 falls inside the 10:00-10:30 booking: marker goes right after it
	segments := SegmentDay([]models.Booking{bk("10:00", "10:30")}, 540, 1080, true, 615)

	require.Len(t, segments, 4)
	assert.Equal(t, SegmentBusy, segments[1].Kind)
	assert.Equal(t, SegmentNow, segments[2].Kind)
	assert.Equal(t, 615, segments[2].StartMin)
	assertCoverage(t, segments, 540, 1080)
}

func TestSegmentDayNowAtSegmentBoundary(t *testing.T) {
	// 10:00 is the free/busy boundary: marker sits between the two
	segments := SegmentDay([]models.Booking{bk("10:00", "10:30")}, 540, 1080, true, 600)

	require.Len(t, segments, 4)
	assert.Equal(t, SegmentFree, segments[0].Kind)
	assert.Equal(t, SegmentNow, segments[1].Kind)
	assert.Equal(t, SegmentBusy, segments[2].Kind)
}

func TestSegmentDayNowAtDayEdges(t *testing.T) {
	bookings := []models.Booking{bk("10:00", "10:30")}

	atOpen := SegmentDay(bookings, 540, 1080, true, 540)
	assert.Equal(t, SegmentNow, atOpen[0].Kind)

	atClose := SegmentDay(bookings, 540, 1080, true, 1080)
	assert.Equal(t, SegmentNow, atClose[len(atClose)-1].Kind)

	beforeOpen := SegmentDay(bookings, 540, 1080, true, 400)
	for _, s := range beforeOpen {
		assert.NotEqual(t, SegmentNow, s.Kind)
	}

	afterClose := SegmentDay(bookings, 540, 1080, true, 1300)
	for _, s := range afterClose {
		assert.NotEqual(t, SegmentNow, s.Kind)
	}
}

func TestSegmentDayUnsortedInput(t *testing.T) {
	bookings := []models.Booking{
		bk("14:00", "15:00"),
		bk("09:30", "10:00"),
		bk("11:00", "12:00"),
	}
	segments := SegmentDay(bookings, 540, 1080, false, 0)

	var busyStarts []int
	for _, s := range segments {
		if s.Kind == SegmentBusy {
			busyStarts = append(busyStarts, s.StartMin)
		}
	}
	assert.Equal(t, []int{570, 660, 840}, busyStarts)
	assertCoverage(t, segments, 540, 1080)
}

func TestSegmentDayBookingsOutsideWindow(t *testing.T) {
	bookings := []models.Booking{
		bk("07:00", "08:00"), // before opening
		bk("19:00", "20:00"), // after closing
		bk("12:00", "13:00"),
	}
	segments := SegmentDay(bookings, 540, 1080, false, 0)

	busy := 0
	for _, s := range segments {
		if s.Kind == SegmentBusy {
			busy++
		}
	}
	assert.Equal(t, 1, busy)
	assertCoverage(t, segments, 540, 1080)
}

func TestSegmentDayBookingStraddlingBoundaries(t *testing.T) {
	bookings := []models.Booking{
		bk("08:00", "09:30"), // straddles opening
		bk("17:30", "19:00"), // straddles closing
	}
	segments := SegmentDay(bookings, 540, 1080, false, 0)

	require.Len(t, segments, 3)
	assert.Equal(t, SegmentBusy, segments[0].Kind)
	assert.Equal(t, 540, segments[0].StartMin)
	assert.Equal(t, 570, segments[0].EndMin)
	assert.Equal(t, SegmentBusy, segments[2].Kind)
	assert.Equal(t, 1080, segments[2].EndMin)
	assertCoverage(t, segments, 540, 1080)
}

func TestSegmentDayOverlappingBookingsAbsorbed(t *testing.T) {
	// Overlap prevention lives at write time; the segmenter flattens bad
	// input into consecutive busy runs instead of failing.
	bookings := []models.Booking{
		bk("10:00", "11:00"),
		bk("10:30", "11:30"),
		bk("10:40", "10:50"), // fully swallowed
	}
	segments := SegmentDay(bookings, 540, 1080, false, 0)

	assertCoverage(t, segments, 540, 1080)
	var busyEnds []int
	for _, s := range segments {
		if s.Kind == SegmentBusy {
			busyEnds = append(busyEnds, s.EndMin)
		}
	}
	assert.Equal(t, []int{660, 690}, busyEnds)
}

func TestSegmentDayEndOfDayCap(t *testing.T) {
	segments := SegmentDay(nil, 1380, 2000, false, 0)
	require.Len(t, segments, 1)
	assert.Equal(t, 1439, segments[0].EndMin, "day never wraps past 23:59")
}

func TestSegmentDayDegenerateWindow(t *testing.T) {
	assert.Empty(t, SegmentDay(nil, 600, 600, false, 0))
	assert.Empty(t, SegmentDay(nil, 700, 600, true, 650))
}

func TestSegmentDayMalformedTimesSkipped(t *testing.T) {
	bookings := []models.Booking{
		{StartTime: "banana", EndTime: "10:00"},
		{StartTime: "11:00", EndTime: "10:00"}, // inverted
		bk("12:00", "12:30"),
	}
	segments := SegmentDay(bookings, 540, 1080, false, 0)

	busy := 0
	for _, s := range segments {
		if s.Kind == SegmentBusy {
			busy++
		}
	}
	assert.Equal(t, 1, busy)
	assertCoverage(t, segments, 540, 1080)
}

func TestSegmentDayIsPure(t *testing.T) {
	bookings := []models.Booking{bk("10:00", "10:30"), bk("13:00", "14:00")}
	first := SegmentDay(bookings, 540, 1080, true, 615)
	second := SegmentDay(bookings, 540, 1080, true, 615)
	assert.Equal(t, first, second)
}

func TestSegmentDayBackToBackBookings(t *testing.T) {
	bookings := []models.Booking{
		bk("10:00", "10:30"),
		bk("10:30", "11:00"),
	}
	segments := SegmentDay(bookings, 540, 1080, false, 0)

	require.Len(t, segments, 4)
	assert.Equal(t, SegmentBusy, segments[1].Kind)
	assert.Equal(t, SegmentBusy, segments[2].Kind)
	assert.Equal(t, segments[1].EndMin, segments[2].StartMin, "no free gap between adjacent bookings")
	assertCoverage(t, segments, 540, 1080)
}

func TestSegmentDayFullDayBooked(t *testing.T) {
	segments := SegmentDay([]models.Booking{bk("09:00", "18:00")}, 540, 1080, false, 0)
	require.Len(t, segments, 1)
	assert.Equal(t, SegmentBusy, segments[0].Kind)
	assertCoverage(t, segments, 540, 1080)
}
