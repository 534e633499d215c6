package scheduling

import (
	"sort"

	"turnopro-backend/models"
	"turnopro-backend/utils"
)

// endOfDayMin caps a day boundary at 23:59; the timeline never wraps into
// the next day.
const endOfDayMin = 1439

type SegmentKind string

const (
	SegmentFree SegmentKind = "free"
	SegmentBusy SegmentKind = "busy"
	SegmentNow  SegmentKind = "now"
)

// Segment is one interval of a day timeline: free time, an occupied booking
// slot, or the zero-width now marker. Times are minutes since midnight.
type Segment struct {
	Kind     SegmentKind     `json:"kind"`
	StartMin int             `json:"startMin"`
	EndMin   int             `json:"endMin"`
	Booking  *models.Booking `json:"booking,omitempty"`
}

type busyInterval struct {
	booking  models.Booking
	startMin int
	endMin   int
}

// SegmentDay turns a day's bookings into a gapless, alternating sequence of
// free and busy segments covering [dayStart, dayEnd). Input bookings need
// not be sorted; a booking outside the window is skipped, one straddling a
// boundary is clipped. Overlapping input collapses into consecutive busy
// segments rather than an error; overlap prevention happens at write time.
// When isToday, a zero-width now marker lands at the segment boundary
// nearest nowMin, after the segment that contains it.
//
// Pure function: safe to recompute on every read from any goroutine.
func SegmentDay(bookings []models.Booking, dayStart, dayEnd int, isToday bool, nowMin int) []Segment {
	if dayStart < 0 {
		dayStart = 0
	}
	if dayEnd > endOfDayMin {
		dayEnd = endOfDayMin
	}
	if dayEnd <= dayStart {
		return []Segment{}
	}

	intervals := make([]busyInterval, 0, len(bookings))
	for _, b := range bookings {
		start, err := utils.ClockToMinutes(b.StartTime)
		if err != nil {
			continue
		}
		end, err := utils.ClockToMinutes(b.EndTime)
		if err != nil || end <= start {
			continue
		}
		intervals = append(intervals, busyInterval{booking: b, startMin: start, endMin: end})
	}
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].startMin < intervals[j].startMin
	})

	segments := make([]Segment, 0, 2*len(intervals)+1)
	cursor := dayStart
	for i := range intervals {
		iv := intervals[i]
		if iv.endMin <= dayStart || iv.startMin >= dayEnd {
			continue
		}
		if iv.startMin > cursor {
			segments = append(segments, Segment{Kind: SegmentFree, StartMin: cursor, EndMin: iv.startMin})
		}
		busyStart := iv.startMin
		if busyStart < cursor {
			busyStart = cursor
		}
		busyEnd := iv.endMin
		if busyEnd > dayEnd {
			busyEnd = dayEnd
		}
		if busyEnd > busyStart {
			segments = append(segments, Segment{
				Kind:     SegmentBusy,
				StartMin: busyStart,
				EndMin:   busyEnd,
				Booking:  &intervals[i].booking,
			})
		}
		if busyEnd > cursor {
			cursor = busyEnd
		}
	}
	if cursor < dayEnd {
		segments = append(segments, Segment{Kind: SegmentFree, StartMin: cursor, EndMin: dayEnd})
	}

	if isToday {
		segments = insertNowMarker(segments, nowMin, dayStart, dayEnd)
	}
	return segments
}

// insertNowMarker places the marker at the first boundary at or past nowMin.
// A now inside a segment lands immediately after that segment; the segment
// itself is never split. Outside [dayStart, dayEnd] the marker is dropped.
func insertNowMarker(segments []Segment, nowMin, dayStart, dayEnd int) []Segment {
	if nowMin < dayStart || nowMin > dayEnd {
		return segments
	}
	idx := len(segments)
	for i, s := range segments {
		if nowMin <= s.StartMin {
			idx = i
			break
		}
		if nowMin < s.EndMin {
			idx = i + 1
			break
		}
	}
	marker := Segment{Kind: SegmentNow, StartMin: nowMin, EndMin: nowMin}
	out := make([]Segment, 0, len(segments)+1)
	out = append(out, segments[:idx]...)
	out = append(out, marker)
	out = append(out, segments[idx:]...)
	return out
}
