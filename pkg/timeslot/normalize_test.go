package timeslot

import (
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 8, 30, 0, 0, time.UTC)
}

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantDay      string
		wantFallback bool
	}{
		{
			name:    "iso date",
			raw:     "2024-03-05",
			wantDay: "2024-03-05",
		},
		{
			name:    "slash date day first",
			raw:     "5/3/2024",
			wantDay: "2024-03-05",
		},
		{
			name:    "slash date zero padded",
			raw:     "05/03/2024",
			wantDay: "2024-03-05",
		},
		{
			name:    "rfc3339 timestamp",
			raw:     "2024-03-05T17:00:00Z",
			wantDay: "2024-03-05",
		},
		{
			name:    "timestamp without zone",
			raw:     "2024-03-05T09:15:00",
			wantDay: "2024-03-05",
		},
		{
			name:    "surrounding whitespace",
			raw:     " 2024-03-05 ",
			wantDay: "2024-03-05",
		},
		{
			name:         "garbage falls back to today",
			raw:          "not a date",
			wantDay:      "2024-06-15",
			wantFallback: true,
		},
		{
			name:         "empty falls back to today",
			raw:          "",
			wantDay:      "2024-06-15",
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, fallback := NormalizeDay(tt.raw, fixedNow)

			if got := DayKey(day); got != tt.wantDay {
				t.Errorf("expected day key %s, got %s", tt.wantDay, got)
			}
			if fallback != tt.wantFallback {
				t.Errorf("expected fallback=%v, got %v", tt.wantFallback, fallback)
			}
			if day.UTC().Hour() != 12 {
				t.Errorf("expected day pinned to reference noon, got hour %d", day.UTC().Hour())
			}
		})
	}
}

// The day key must round-trip regardless of the offset applied later: noon
// pinning means shifting by the reference offset never crosses midnight.
func TestNormalizeDay_RoundTripStable(t *testing.T) {
	day, fallback := NormalizeDay("2024-03-05", fixedNow)
	if fallback {
		t.Fatal("unexpected fallback for a valid ISO date")
	}

	shifted := day.Add(time.Duration(ReferenceUTCOffset) * time.Hour)
	if got := DayKey(shifted); got != "2024-03-05" {
		t.Errorf("day key drifted after offset arithmetic: got %s", got)
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{
			name:   "clock passthrough",
			raw:    "9:30",
			want:   "9:30",
			wantOK: true,
		},
		{
			name:   "padded clock passthrough",
			raw:    "14:05",
			want:   "14:05",
			wantOK: true,
		},
		{
			name:   "utc timestamp shifted to reference",
			raw:    "2024-03-05T14:30:00Z",
			want:   "09:30",
			wantOK: true,
		},
		{
			name:   "early utc clock wraps to previous evening",
			raw:    "2024-03-05T02:00:00Z",
			want:   "21:00",
			wantOK: true,
		},
		{
			name:   "unrecognized shape returned unchanged",
			raw:    "half past nine",
			want:   "half past nine",
			wantOK: false,
		},
		{
			name:   "empty returned unchanged",
			raw:    "",
			want:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeClock(tt.raw, ReferenceUTCOffset)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if ok != tt.wantOK {
				t.Errorf("expected ok=%v, got %v", tt.wantOK, ok)
			}
		})
	}
}

func TestClockToMinutes(t *testing.T) {
	tests := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{clock: "0:00", want: 0},
		{clock: "9:30", want: 570},
		{clock: "23:59", want: 1439},
		{clock: "24:00", wantErr: true},
		{clock: "12:60", wantErr: true},
		{clock: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			got, err := ClockToMinutes(tt.clock)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.clock)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d minutes, got %d", tt.want, got)
			}
		})
	}
}

func TestMinutesToClock(t *testing.T) {
	if got := MinutesToClock(570); got != "09:30" {
		t.Errorf("expected 09:30, got %s", got)
	}
	if got := MinutesToClock(0); got != "00:00" {
		t.Errorf("expected 00:00, got %s", got)
	}
	if got := MinutesToClock(1439); got != "23:59" {
		t.Errorf("expected 23:59, got %s", got)
	}
}
