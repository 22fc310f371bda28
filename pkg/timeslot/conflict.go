package timeslot

import "salas/pkg/model"

// FindConflicts scans existing reservations and returns every one whose
// interval overlaps the candidate on the same room and day. excludeID skips a
// single reservation, so an edit can be checked against everything but
// itself. There is no early exit: the caller gets the full conflicting set,
// not just the first hit. Linear scan is deliberate at room-scheduling
// volume.
func FindConflicts(candidate Interval, existing []*model.Reservation, excludeID string) []*model.Reservation {
	var conflicts []*model.Reservation
	for _, r := range existing {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		other := FromReservation(r)
		if !candidate.SameSlot(other) {
			continue
		}
		if candidate.Overlaps(other) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}
