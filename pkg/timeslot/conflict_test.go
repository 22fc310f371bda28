package timeslot

import (
	"testing"
	"time"

	"salas/pkg/model"
)

func reservation(id, room string, day time.Time, start, end int) *model.Reservation {
	return &model.Reservation{
		ID:          id,
		Day:         day,
		StartMinute: start,
		EndMinute:   end,
		Room:        room,
		Area:        "Engineering",
		Attendance:  4,
	}
}

func TestFindConflicts(t *testing.T) {
	day := NoonUTC(2024, time.March, 5)
	otherDay := NoonUTC(2024, time.March, 6)

	existing := []*model.Reservation{
		reservation("a", "Room 1", day, 9*60, 10*60),
		reservation("b", "Room 1", day, 10*60, 11*60),
		reservation("c", "Room 2", day, 9*60, 10*60),
		reservation("d", "Room 1", otherDay, 9*60, 10*60),
		reservation("e", "Room 1", day, 9*60+45, 12*60),
	}

	candidate := Interval{Room: "Room 1", Day: day, StartMinute: 9*60 + 30, EndMinute: 10*60 + 30}

	conflicts := FindConflicts(candidate, existing, "")
	if len(conflicts) != 3 {
		t.Fatalf("expected 3 conflicts, got %d", len(conflicts))
	}

	ids := map[string]bool{}
	for _, c := range conflicts {
		ids[c.ID] = true
	}
	for _, want := range []string{"a", "b", "e"} {
		if !ids[want] {
			t.Errorf("expected reservation %q in conflict set", want)
		}
	}
	if ids["c"] {
		t.Error("reservation in a different room must not conflict")
	}
	if ids["d"] {
		t.Error("reservation on a different day must not conflict")
	}
}

func TestFindConflicts_ExcludeID(t *testing.T) {
	day := NoonUTC(2024, time.March, 5)
	existing := []*model.Reservation{
		reservation("self", "Room 1", day, 9*60, 10*60),
	}

	candidate := Interval{Room: "Room 1", Day: day, StartMinute: 9 * 60, EndMinute: 10 * 60}

	if got := FindConflicts(candidate, existing, "self"); len(got) != 0 {
		t.Errorf("expected excluded reservation to be skipped, got %d conflicts", len(got))
	}
	if got := FindConflicts(candidate, existing, ""); len(got) != 1 {
		t.Errorf("expected 1 conflict without exclusion, got %d", len(got))
	}
}

func TestFindConflicts_Empty(t *testing.T) {
	candidate := Interval{Room: "Room 1", Day: NoonUTC(2024, time.March, 5), StartMinute: 540, EndMinute: 600}

	if got := FindConflicts(candidate, nil, ""); got != nil {
		t.Errorf("expected nil conflict set for no existing reservations, got %v", got)
	}
}
