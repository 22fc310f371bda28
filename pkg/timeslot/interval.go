package timeslot

import (
	"time"

	"salas/pkg/model"
)

// Interval is a half-open [StartMinute, EndMinute) range within a single day,
// scoped to one room.
type Interval struct {
	Room        string
	Day         time.Time
	StartMinute int
	EndMinute   int
}

// FromReservation builds the occupied interval of a stored reservation.
func FromReservation(r *model.Reservation) Interval {
	return Interval{
		Room:        r.Room,
		Day:         r.Day,
		StartMinute: r.StartMinute,
		EndMinute:   r.EndMinute,
	}
}

// Overlaps reports whether two half-open ranges intersect. A reservation
// ending exactly when another begins does not overlap: back-to-back bookings
// are allowed, hence strict < on both sides.
func (a Interval) Overlaps(b Interval) bool {
	return a.StartMinute < b.EndMinute && b.StartMinute < a.EndMinute
}

// SameSlot reports whether two intervals compete for the same room on the
// same day. Overlaps is only meaningful when this holds.
func (a Interval) SameSlot(b Interval) bool {
	return a.Room == b.Room && DayKey(a.Day) == DayKey(b.Day)
}
