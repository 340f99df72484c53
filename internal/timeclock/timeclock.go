// Package timeclock compares and shifts wall-clock times of day.
//
// All arithmetic happens on integer seconds since midnight so that
// comparisons are numeric, never lexical, and window offsets
// (check-out close = open + 11h) can run past 24h without wrapping
// silently. Callers decide what an over-24h value means.
package timeclock

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// SecondsPerDay is the size of one calendar day in seconds.
	SecondsPerDay = 24 * 60 * 60
)

var (
	ErrInvalidTime = errors.New("invalid time of day, expected HH:MM:SS")
)

// time24Pattern matches strict 24-hour HH:MM:SS (zero-padded).
var time24Pattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)

// time12Pattern matches 12-hour "HH:MM:SS AM/PM" as accepted at the
// schedule-configuration boundary. The hour may be 1 or 2 digits.
var time12Pattern = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9]):([0-5][0-9])\s*(AM|PM|am|pm)$`)

// TimeOfDay is a wall-clock time measured in seconds since midnight.
// Values produced by Parse are in [0, SecondsPerDay); arithmetic results
// may exceed that range and are compared in the extended integer domain.
type TimeOfDay int

// Parse converts a strict 24-hour "HH:MM:SS" string to a TimeOfDay.
func Parse(s string) (TimeOfDay, error) {
	if !time24Pattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, _ := strconv.Atoi(s[0:2])
	m, _ := strconv.Atoi(s[3:5])
	sec, _ := strconv.Atoi(s[6:8])
	return TimeOfDay(h*3600 + m*60 + sec), nil
}

// MustParse is Parse for trusted literals; it panics on malformed input.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromClock builds a TimeOfDay from numeric clock components.
func FromClock(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// Clock splits t into wall-clock components. Extended values reduce to
// their same-day form first.
func (t TimeOfDay) Clock() (hour, minute, second int) {
	s := int(t) % SecondsPerDay
	if s < 0 {
		s += SecondsPerDay
	}
	return s / 3600, (s / 60) % 60, s % 60
}

// Compare returns -1, 0 or +1 ordering a against b numerically.
func Compare(a, b TimeOfDay) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AddHours shifts t by n hours. The result is not reduced modulo 24h:
// 17:00 + 11h yields 28:00 (104400s), which still orders correctly
// against same-day and next-day-extended values.
func AddHours(t TimeOfDay, n int) TimeOfDay {
	return t + TimeOfDay(n*3600)
}

// AddMinutes shifts t by n minutes without wrapping.
func AddMinutes(t TimeOfDay, n int) TimeOfDay {
	return t + TimeOfDay(n*60)
}

// NextDay lifts a same-day value into the next-day extended range, for
// comparing an after-midnight scan against the previous day's window.
func (t TimeOfDay) NextDay() TimeOfDay {
	return t + SecondsPerDay
}

// String renders t as zero-padded HH:MM:SS. Extended values (>= 24h)
// render their wall-clock form, e.g. 28:00:00 → "04:00:00".
func (t TimeOfDay) String() string {
	s := int(t) % SecondsPerDay
	if s < 0 {
		s += SecondsPerDay
	}
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

// Normalize12Hour converts a 12-hour "HH:MM:SS AM/PM" string to
// zero-padded 24-hour form. Rules: 12:MM:SS AM → 00:MM:SS,
// 12:MM:SS PM → 12:MM:SS, other PM hours +12, AM hours unchanged.
// Input already in 24-hour form is returned as-is, so the conversion
// is idempotent at the configuration boundary.
func Normalize12Hour(s string) (string, error) {
	s = strings.TrimSpace(s)
	if time24Pattern.MatchString(s) {
		return s, nil
	}

	m := time12Pattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, _ := strconv.Atoi(m[1])
	pm := strings.EqualFold(m[4], "PM")

	switch {
	case hour == 12 && !pm:
		hour = 0
	case hour == 12 && pm:
		hour = 12
	case pm:
		hour += 12
	}

	return fmt.Sprintf("%02d:%s:%s", hour, m[2], m[3]), nil
}

// Format12Hour renders a TimeOfDay as "HH:MM:SS AM/PM" for human
// display. Round-tripping through Normalize12Hour preserves the
// original clock time.
func Format12Hour(t TimeOfDay) string {
	s := int(t) % SecondsPerDay
	if s < 0 {
		s += SecondsPerDay
	}
	hour := s / 3600
	suffix := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		hour -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%02d:%02d:%02d %s", hour, (s/60)%60, s%60, suffix)
}
