// Package timeslot holds the interval-conflict core: date/time normalization
// into a canonical day key and minutes-of-day, and overlap detection between
// reservations on the same room and day.
package timeslot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ReferenceUTCOffset is the fixed offset (hours) used to present clock values
// consistently. Colombia (GMT-5). It deliberately ignores DST and must not be
// assumed to generalize to other regions.
const ReferenceUTCOffset = -5

// MinutesPerDay bounds minute-of-day values: [0, MinutesPerDay).
const MinutesPerDay = 24 * 60

var (
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	slashDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	clockRe     = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	stampRe     = regexp.MustCompile(`T(\d{2}):(\d{2})`)
)

// Layouts tried for date strings that match neither ISO nor D/M/YYYY.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006",
}

// NoonUTC pins a calendar date to 12:00 UTC. Noon keeps the day component
// stable under offset arithmetic within +/-12 hours, so the day key never
// drifts across a UTC boundary.
func NoonUTC(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// DayKey returns the coarse comparison key for "same day".
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// NormalizeDay converts a raw date string into a day pinned at reference noon.
// ISO (YYYY-MM-DD) and D/M/YYYY forms are built from their numeric components
// directly, never routed through a timezone-sensitive parse. Anything else is
// parsed generically; when that fails the current date is substituted and the
// returned flag is true so callers can surface the fallback.
func NormalizeDay(raw string, now func() time.Time) (time.Time, bool) {
	if now == nil {
		now = time.Now
	}
	raw = strings.TrimSpace(raw)

	if m := isoDateRe.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return NoonUTC(year, time.Month(month), day), false
	}

	if m := slashDateRe.FindStringSubmatch(raw); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return NoonUTC(year, time.Month(month), day), false
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return NoonUTC(t.Year(), t.Month(), t.Day()), false
		}
	}

	today := now().UTC()
	return NoonUTC(today.Year(), today.Month(), today.Day()), true
}

// NormalizeClock canonicalizes a raw time value into "HH:MM" in the reference
// timezone. A value already shaped H:MM is returned unchanged. A timestamp
// carrying a UTC clock has the clock read out and shifted by offsetHours,
// wrapping mod 24 so negative results land on the previous logical hour.
// Any other shape is returned unchanged with ok=false: a degraded value the
// caller must not treat as a confirmed clock.
func NormalizeClock(raw string, offsetHours int) (string, bool) {
	raw = strings.TrimSpace(raw)

	if clockRe.MatchString(raw) {
		return raw, true
	}

	if m := stampRe.FindStringSubmatch(raw); m != nil {
		hour, _ := strconv.Atoi(m[1])
		hour = ((hour+offsetHours)%24 + 24) % 24
		return fmt.Sprintf("%02d:%s", hour, m[2]), true
	}

	return raw, false
}

// ClockToMinutes converts an "H:MM" clock into minutes since midnight.
func ClockToMinutes(clock string) (int, error) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(clock))
	if m == nil {
		return 0, fmt.Errorf("not a clock value: %q", clock)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("clock out of range: %q", clock)
	}
	return hour*60 + minute, nil
}

// MinutesToClock formats minutes since midnight as "HH:MM".
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
