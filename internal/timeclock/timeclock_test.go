package timeclock

import "testing"

// ── Parse ──

func TestParse_Valid(t *testing.T) {
	cases := map[string]TimeOfDay{
		"00:00:00": 0,
		"09:05:00": 9*3600 + 5*60,
		"17:00:00": 17 * 3600,
		"23:59:59": 23*3600 + 59*60 + 59,
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("Parse(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "9:05:00", "24:00:00", "12:60:00", "12:00:61", "12:00", "09:05:00 AM"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

// ── Compare ──

func TestCompare_TotalOrder(t *testing.T) {
	a := MustParse("08:30:00")
	b := MustParse("09:00:00")

	if Compare(a, b) != -1 {
		t.Errorf("Compare(%v, %v) = %d, want -1", a, b, Compare(a, b))
	}
	if Compare(b, a) != 1 {
		t.Errorf("Compare(%v, %v) = %d, want 1 (antisymmetry)", b, a, Compare(b, a))
	}
	for _, s := range []string{"00:00:00", "09:05:00", "23:59:59"} {
		v := MustParse(s)
		if Compare(v, v) != 0 {
			t.Errorf("Compare(%v, %v) != 0", v, v)
		}
	}
}

func TestCompare_NumericNotLexical(t *testing.T) {
	// "09:05:00" vs 9h05 built numerically must agree regardless of
	// how the source string was padded upstream.
	a := MustParse("09:05:00")
	b := FromClock(9, 5, 0)
	if Compare(a, b) != 0 {
		t.Errorf("Compare(%v, %v) = %d, want 0", a, b, Compare(a, b))
	}
}

// ── Arithmetic ──

func TestAddHours_ExtendsPastMidnight(t *testing.T) {
	open := MustParse("17:00:00")
	close := AddHours(open, 11)

	if close != TimeOfDay(28*3600) {
		t.Fatalf("17:00 + 11h = %d, want %d (no modulo)", close, 28*3600)
	}
	// An after-midnight scan lifted to the extended domain orders
	// correctly against the close boundary.
	if got := MustParse("05:00:00").NextDay(); got <= close {
		t.Errorf("05:00 next day (%d) should be past close (%d)", got, close)
	}
	if got := MustParse("03:00:00").NextDay(); got > close {
		t.Errorf("03:00 next day (%d) should be within close (%d)", got, close)
	}
}

func TestAddMinutes(t *testing.T) {
	if got := AddMinutes(MustParse("08:57:00"), 5); got != MustParse("09:02:00") {
		t.Errorf("08:57 + 5m = %v, want 09:02:00", got)
	}
}

func TestString_WrapsExtendedValues(t *testing.T) {
	if got := AddHours(MustParse("17:00:00"), 11).String(); got != "04:00:00" {
		t.Errorf("extended 28:00 renders %q, want 04:00:00", got)
	}
	if got := MustParse("09:05:07").String(); got != "09:05:07" {
		t.Errorf("String() = %q, want 09:05:07", got)
	}
}

// ── 12-hour normalization ──

func TestNormalize12Hour(t *testing.T) {
	cases := map[string]string{
		"12:30:00 AM": "00:30:00",
		"12:30:00 PM": "12:30:00",
		"09:15:00 AM": "09:15:00",
		"9:15:00 am":  "09:15:00",
		"05:45:30 PM": "17:45:30",
		"11:59:59 PM": "23:59:59",
		"1:00:00 AM":  "01:00:00",
	}
	for in, want := range cases {
		got, err := Normalize12Hour(in)
		if err != nil {
			t.Fatalf("Normalize12Hour(%q) unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("Normalize12Hour(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalize12Hour_IdempotentOn24Hour(t *testing.T) {
	for _, s := range []string{"00:30:00", "17:45:30", "23:59:59"} {
		got, err := Normalize12Hour(s)
		if err != nil {
			t.Fatalf("Normalize12Hour(%q) unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("Normalize12Hour(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestNormalize12Hour_Invalid(t *testing.T) {
	for _, s := range []string{"", "13:00:00 PM", "00:30:00 AM", "12:30 PM", "banana"} {
		if _, err := Normalize12Hour(s); err == nil {
			t.Errorf("Normalize12Hour(%q) should fail", s)
		}
	}
}

func TestFormat12Hour_RoundTrip(t *testing.T) {
	for _, s := range []string{"00:30:00", "09:15:00", "12:00:00", "12:30:00", "17:45:30", "23:59:59"} {
		display := Format12Hour(MustParse(s))
		back, err := Normalize12Hour(display)
		if err != nil {
			t.Fatalf("round-trip of %q via %q failed: %v", s, display, err)
		}
		if back != s {
			t.Errorf("round-trip of %q: display %q → %q", s, display, back)
		}
	}
}
