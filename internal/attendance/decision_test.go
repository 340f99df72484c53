package attendance

import (
	"errors"
	"testing"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/timeclock"
)

func tod(s string) timeclock.TimeOfDay { return timeclock.MustParse(s) }

// officeHours is the schedule used throughout: check-in 09:00–10:00,
// check-out 17:00–18:00.
func officeHours() *Schedule {
	return &Schedule{
		CheckInFrom:  tod("09:00:00"),
		CheckInTo:    tod("10:00:00"),
		CheckOutFrom: tod("17:00:00"),
		CheckOutTo:   tod("18:00:00"),
	}
}

// ── No schedule ──

func TestDecide_NoSchedule(t *testing.T) {
	_, err := NewEngine().Decide(nil, nil, tod("09:30:00"))
	if !errors.Is(err, ErrNoScheduleToday) {
		t.Fatalf("want ErrNoScheduleToday, got %v", err)
	}
}

// ── Check-in ──

func TestDecide_FirstScanIsCheckIn(t *testing.T) {
	d, err := NewEngine().Decide(nil, officeHours(), tod("09:30:00"))
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if d.Type != RecordIn {
		t.Errorf("first scan of the day = %s, want IN", d.Type)
	}
	if d.Status != StatusPresent {
		t.Errorf("09:30 within 09:00-10:00 = %s, want PRESENT", d.Status)
	}
}

func TestDecide_CheckInEarlyWithinMargin(t *testing.T) {
	// 08:30 is before the window but inside the 1h margin: accepted EARLY.
	d, err := NewEngine().Decide(nil, officeHours(), tod("08:30:00"))
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if d.Type != RecordIn || d.Status != StatusEarly {
		t.Errorf("got (%s, %s), want (IN, EARLY)", d.Type, d.Status)
	}
}

func TestDecide_CheckInTooEarly(t *testing.T) {
	// 07:50 is more than 1h before 09:00.
	_, err := NewEngine().Decide(nil, officeHours(), tod("07:50:00"))
	if !errors.Is(err, ErrTooEarlyForCheckIn) {
		t.Fatalf("want ErrTooEarlyForCheckIn, got %v", err)
	}
}

func TestDecide_CheckInBoundaries(t *testing.T) {
	cases := []struct {
		now  string
		want Status
	}{
		{"08:00:00", StatusEarly},   // exactly margin edge: admitted
		{"09:00:00", StatusPresent}, // window open is inclusive
		{"10:00:00", StatusPresent}, // window close is inclusive
		{"10:00:01", StatusLate},
		{"10:30:00", StatusLate}, // late is never rejected
	}
	for _, tc := range cases {
		d, err := NewEngine().Decide(nil, officeHours(), tod(tc.now))
		if err != nil {
			t.Fatalf("%s: unexpected rejection: %v", tc.now, err)
		}
		if d.Status != tc.want {
			t.Errorf("%s: status = %s, want %s", tc.now, d.Status, tc.want)
		}
	}
}

func TestDecide_CheckInMarginClampedAtMidnight(t *testing.T) {
	sched := &Schedule{
		CheckInFrom:  tod("00:30:00"),
		CheckInTo:    tod("01:00:00"),
		CheckOutFrom: tod("08:00:00"),
		CheckOutTo:   tod("09:00:00"),
	}
	// 00:00 is less than 1h before 00:30 only because the margin clamps
	// at midnight; must be admitted EARLY, not rejected.
	d, err := NewEngine().Decide(nil, sched, tod("00:00:00"))
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if d.Status != StatusEarly {
		t.Errorf("status = %s, want EARLY", d.Status)
	}
}

// ── Check-out ──

func TestDecide_CheckOutWindow(t *testing.T) {
	checkedIn := []Event{{Type: RecordIn, At: tod("09:02:00")}}

	cases := []struct {
		now     string
		status  Status
		wantErr error
	}{
		{"16:30:00", "", ErrTooEarlyForCheckOut},
		{"17:00:00", StatusPresent, nil},
		{"17:30:00", StatusPresent, nil},
		{"18:00:00", StatusPresent, nil},
		{"19:00:00", StatusLate, nil},
		{"23:59:59", StatusLate, nil},
		{"03:00:00", StatusLate, nil}, // next-day spillover, still within 17:00+11h
		{"05:00:00", "", ErrCheckOutWindowClosed}, // 29h after day start > 28h close
	}
	for _, tc := range cases {
		d, err := NewEngine().Decide(checkedIn, officeHours(), tod(tc.now))
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("%s: got %v, want %v", tc.now, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected rejection: %v", tc.now, err)
		}
		if d.Type != RecordOut {
			t.Errorf("%s: type = %s, want OUT", tc.now, d.Type)
		}
		if d.Status != tc.status {
			t.Errorf("%s: status = %s, want %s", tc.now, d.Status, tc.status)
		}
	}
}

func TestDecide_CheckOutWithoutCheckIn(t *testing.T) {
	// Defensive: a day whose stored events carry no IN (legacy data)
	// must not admit a departure.
	events := []Event{{Type: RecordOut, At: tod("12:00:00")}}
	_, err := NewEngine().Decide(events, officeHours(), tod("17:30:00"))
	if !errors.Is(err, ErrCheckOutWithoutCheckIn) {
		t.Fatalf("want ErrCheckOutWithoutCheckIn, got %v", err)
	}
}

// ── Duplicate suppression ──

func TestDecide_DuplicateScanWithinFiveMinutes(t *testing.T) {
	events := []Event{{Type: RecordIn, At: tod("09:00:00")}}
	_, err := NewEngine().Decide(events, officeHours(), tod("09:03:00"))
	if !errors.Is(err, ErrDuplicateCheckIn) {
		t.Fatalf("want ErrDuplicateCheckIn, got %v", err)
	}
}

func TestDecide_ScanAfterDuplicateWindowIsCheckOutAttempt(t *testing.T) {
	// Six minutes after the IN the scan is no longer a duplicate, but it
	// is only admitted when the check-out window itself allows it.
	events := []Event{{Type: RecordIn, At: tod("09:00:00")}}
	_, err := NewEngine().Decide(events, officeHours(), tod("09:06:00"))
	if !errors.Is(err, ErrTooEarlyForCheckOut) {
		t.Fatalf("want ErrTooEarlyForCheckOut, got %v", err)
	}
}

func TestDecide_ExactFiveMinuteGapNotDuplicate(t *testing.T) {
	events := []Event{{Type: RecordIn, At: tod("09:00:00")}}
	_, err := NewEngine().Decide(events, officeHours(), tod("09:05:00"))
	if errors.Is(err, ErrDuplicateCheckIn) {
		t.Fatal("a 5-minute gap is the required minimum, not a duplicate")
	}
}

// ── Alternation / correction ──

func TestDecide_SecondOutIsCorrection(t *testing.T) {
	completed := []Event{
		{Type: RecordIn, At: tod("09:02:00")},
		{Type: RecordOut, At: tod("17:10:00")},
	}
	d, err := NewEngine().Decide(completed, officeHours(), tod("17:45:00"))
	if err != nil {
		t.Fatalf("correction OUT should be accepted: %v", err)
	}
	if d.Type != RecordOut || d.Status != StatusPresent {
		t.Errorf("got (%s, %s), want (OUT, PRESENT)", d.Type, d.Status)
	}
}

func TestDecide_SecondInNeverPermitted(t *testing.T) {
	// Any accepted sequence stays IN, OUT, OUT…: once events exist the
	// engine never yields another IN, whatever the clock says.
	histories := [][]Event{
		{{Type: RecordIn, At: tod("09:02:00")}},
		{
			{Type: RecordIn, At: tod("09:02:00")},
			{Type: RecordOut, At: tod("17:10:00")},
		},
	}
	for _, events := range histories {
		for _, now := range []string{"09:30:00", "17:30:00", "19:00:00"} {
			d, err := NewEngine().Decide(events, officeHours(), tod(now))
			if err != nil {
				continue
			}
			if d.Type == RecordIn {
				t.Errorf("events=%v now=%s: engine produced a second IN", events, now)
			}
		}
	}
}

// ── Rejection taxonomy ──

func TestIsRejection(t *testing.T) {
	for _, err := range []error{
		ErrNoScheduleToday,
		ErrTooEarlyForCheckIn,
		ErrDuplicateCheckIn,
		ErrTooEarlyForCheckOut,
		ErrCheckOutWindowClosed,
		ErrCheckOutWithoutCheckIn,
	} {
		if !IsRejection(err) {
			t.Errorf("IsRejection(%v) = false", err)
		}
	}
	if IsRejection(errors.New("connection refused")) {
		t.Error("system faults must not read as decision rejections")
	}
}
