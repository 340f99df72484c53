// Package attendance holds the badge-scan decision engine: given a
// person's events so far today, their schedule row for the day and the
// wall-clock time of the incoming scan, it classifies the scan as a
// check-in or check-out, rejects it, or accepts it with a punctuality
// status. The engine is pure and synchronous; the caller owns loading
// today's events, per-person serialization of read-decide-append, and
// persisting the accepted record.
package attendance

import (
	"errors"
	"time"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/timeclock"
)

// RecordType classifies a scan as an arrival or a departure.
type RecordType string

const (
	RecordIn  RecordType = "IN"
	RecordOut RecordType = "OUT"
)

// Status is the punctuality classification relative to the schedule window.
type Status string

const (
	StatusEarly   Status = "EARLY"
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
)

// ── Decision rejections ──
//
// These are caller-visible outcomes, not system faults: the person must
// wait or an operator must intervene. Store failures and malformed data
// are surfaced as ordinary errors by the caller, never as one of these.

var (
	ErrNoScheduleToday        = errors.New("no schedule for today")
	ErrTooEarlyForCheckIn     = errors.New("too early: more than 1 hour before scheduled check-in")
	ErrDuplicateCheckIn       = errors.New("duplicate scan: checked in less than 5 minutes ago")
	ErrTooEarlyForCheckOut    = errors.New("too early for check-out")
	ErrCheckOutWindowClosed   = errors.New("check-out window closed")
	ErrCheckOutWithoutCheckIn = errors.New("cannot check out before checking in")
)

// Event is one already-accepted scan for the person today.
type Event struct {
	Type RecordType
	At   timeclock.TimeOfDay
}

// Schedule is the person's window row for the current day of week.
// Boundaries are times of day in the operational timezone.
type Schedule struct {
	CheckInFrom  timeclock.TimeOfDay
	CheckInTo    timeclock.TimeOfDay
	CheckOutFrom timeclock.TimeOfDay
	CheckOutTo   timeclock.TimeOfDay
}

// Decision is an accepted scan's classification.
type Decision struct {
	Type   RecordType
	Status Status
}

// Engine evaluates scans against schedule windows. The zero value is
// not usable; construct with NewEngine.
type Engine struct {
	// EarlyCheckInMargin is how long before checkInFrom a check-in is
	// still admitted (as EARLY) rather than rejected.
	EarlyCheckInMargin time.Duration
	// DuplicateWindow is the minimum gap after an accepted IN before
	// the next scan of any kind is admitted.
	DuplicateWindow time.Duration
	// CheckOutSpan is how long after checkOutFrom the check-out window
	// stays open, counted across midnight if needed.
	CheckOutSpan time.Duration
}

// NewEngine returns an Engine with the operational defaults:
// 1h early margin, 5m duplicate suppression, 11h check-out span.
func NewEngine() *Engine {
	return &Engine{
		EarlyCheckInMargin: time.Hour,
		DuplicateWindow:    5 * time.Minute,
		CheckOutSpan:       11 * time.Hour,
	}
}

// Decide classifies a scan at now given today's events in ascending
// order and today's schedule row (nil when the person has none).
//
// The first accepted scan of a day is always IN; every later scan is an
// OUT. Once an IN/OUT pair exists a further scan is still an OUT and
// appends a correction row (latest OUT wins at the reporting layer), so
// a day never regresses to an unchecked-in state and the stored
// sequence alternates IN, OUT, OUT* by construction.
func (e *Engine) Decide(events []Event, sched *Schedule, now timeclock.TimeOfDay) (Decision, error) {
	if sched == nil {
		return Decision{}, ErrNoScheduleToday
	}

	if len(events) == 0 {
		return e.decideCheckIn(sched, now)
	}
	return e.decideCheckOut(events, sched, now)
}

func (e *Engine) decideCheckIn(sched *Schedule, now timeclock.TimeOfDay) (Decision, error) {
	earliest := sched.CheckInFrom - seconds(e.EarlyCheckInMargin)
	if earliest < 0 {
		// Window opens within the margin of midnight; nothing is too early.
		earliest = 0
	}
	if timeclock.Compare(now, earliest) < 0 {
		return Decision{}, ErrTooEarlyForCheckIn
	}

	status := StatusPresent
	switch {
	case timeclock.Compare(now, sched.CheckInFrom) < 0:
		status = StatusEarly
	case timeclock.Compare(now, sched.CheckInTo) > 0:
		// Late arrivals are recorded, never turned away.
		status = StatusLate
	}
	return Decision{Type: RecordIn, Status: status}, nil
}

func (e *Engine) decideCheckOut(events []Event, sched *Schedule, now timeclock.TimeOfDay) (Decision, error) {
	hasIn := false
	for _, ev := range events {
		if ev.Type == RecordIn {
			hasIn = true
			break
		}
	}
	if !hasIn {
		return Decision{}, ErrCheckOutWithoutCheckIn
	}

	// Double-tap suppression: a scan hot on the heels of the accepted
	// IN is an echo of the check-in, not a departure.
	last := events[len(events)-1]
	if last.Type == RecordIn &&
		timeclock.Compare(now, last.At) >= 0 &&
		now-last.At < seconds(e.DuplicateWindow) {
		return Decision{}, ErrDuplicateCheckIn
	}

	// Scans earlier than the operational day start belong to the tail
	// of the previous day's window: lift them into the extended domain
	// so "05:00 after a 17:00 opening" reads as 29h, not as afternoon.
	dayStart := sched.CheckInFrom - seconds(e.EarlyCheckInMargin)
	if dayStart < 0 {
		dayStart = 0
	}
	effective := now
	if timeclock.Compare(now, dayStart) < 0 {
		effective = now.NextDay()
	}

	if timeclock.Compare(effective, sched.CheckOutFrom) < 0 {
		return Decision{}, ErrTooEarlyForCheckOut
	}
	closeAt := sched.CheckOutFrom + seconds(e.CheckOutSpan)
	if timeclock.Compare(effective, closeAt) > 0 {
		return Decision{}, ErrCheckOutWindowClosed
	}

	status := StatusPresent
	if timeclock.Compare(effective, sched.CheckOutTo) > 0 {
		status = StatusLate
	}
	return Decision{Type: RecordOut, Status: status}, nil
}

// IsRejection reports whether err is one of the engine's decision-level
// rejections, as opposed to a system fault.
func IsRejection(err error) bool {
	for _, r := range []error{
		ErrNoScheduleToday,
		ErrTooEarlyForCheckIn,
		ErrDuplicateCheckIn,
		ErrTooEarlyForCheckOut,
		ErrCheckOutWindowClosed,
		ErrCheckOutWithoutCheckIn,
	} {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}

func seconds(d time.Duration) timeclock.TimeOfDay {
	return timeclock.TimeOfDay(d / time.Second)
}
