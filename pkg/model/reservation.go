package model

import (
	"fmt"
	"time"
)

// Reservation is the persisted booking record. Day carries no meaningful
// time-of-day: it is pinned at reference noon and compared by calendar date
// only. StartMinute/EndMinute are minutes since local midnight in the
// reference timezone, StartMinute < EndMinute.
type Reservation struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Day         time.Time `json:"day" bson:"day"`
	StartMinute int       `json:"start_minute" bson:"start_minute"`
	EndMinute   int       `json:"end_minute" bson:"end_minute"`
	Room        string    `json:"room" bson:"room"`
	Area        string    `json:"area" bson:"area"`
	Attendance  int       `json:"attendance" bson:"attendance"`
	CreatedAt   time.Time `json:"created_at,omitempty" bson:"created_at"`
}

// ReservationInput is the raw create request before normalization. Day and
// the clocks may arrive in several formats; the clock tag accepts anything
// the normalizer can canonicalize.
type ReservationInput struct {
	Day        string `json:"day" validate:"required"`
	StartTime  string `json:"start_time" validate:"required,clock"`
	EndTime    string `json:"end_time" validate:"required,clock"`
	Room       string `json:"room" validate:"required,min=1,max=100"`
	Area       string `json:"area" validate:"omitempty,max=100"`
	Attendance int    `json:"attendance" validate:"omitempty,min=0,max=500"`
}

// ReservationView is the boundary serialization: day as ISO-8601 pinned to
// reference noon, clocks as HH:MM strings, attendance always >= 1.
type ReservationView struct {
	ID         string `json:"id"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Room       string `json:"room"`
	Area       string `json:"area"`
	Attendance int    `json:"attendance"`
}

// ConflictDetail describes one conflicting reservation in a rejection.
type ConflictDetail struct {
	ID        string `json:"id"`
	Room      string `json:"room"`
	Area      string `json:"area"`
	TimeRange string `json:"time_range"`
}

func clockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (r *Reservation) StartClock() string {
	return clockString(r.StartMinute)
}

func (r *Reservation) EndClock() string {
	return clockString(r.EndMinute)
}

// TimeRange renders the occupied range for humans, "09:00 - 10:30".
func (r *Reservation) TimeRange() string {
	return fmt.Sprintf("%s - %s", r.StartClock(), r.EndClock())
}

func (r *Reservation) View() ReservationView {
	attendance := r.Attendance
	if attendance < 1 {
		attendance = 1
	}
	return ReservationView{
		ID:         r.ID,
		Day:        r.Day.UTC().Format(time.RFC3339),
		StartTime:  r.StartClock(),
		EndTime:    r.EndClock(),
		Room:       r.Room,
		Area:       r.Area,
		Attendance: attendance,
	}
}

func (r *Reservation) Conflict() ConflictDetail {
	return ConflictDetail{
		ID:        r.ID,
		Room:      r.Room,
		Area:      r.Area,
		TimeRange: r.TimeRange(),
	}
}
