// file: internals/helpers/dbtime/tod_test.go
package dbtime

import "testing"

func TestParseAndFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"08:30", "08:30:00"},
		{"08:30:15", "08:30:15"},
		{" 23:59 ", "23:59:00"},
	}
	for _, tc := range cases {
		tod, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got := tod.Format("15:04:05"); got != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := Parse("25:00"); err == nil {
		t.Error("Parse(25:00) should fail")
	}
}

func TestScanAcceptsStringAndBytes(t *testing.T) {
	var tod Tod
	if err := tod.Scan("09:15:00"); err != nil {
		t.Fatalf("Scan(string): %v", err)
	}
	if tod.MinutesOfDay() != 9*60+15 {
		t.Errorf("MinutesOfDay = %d, want 555", tod.MinutesOfDay())
	}

	if err := tod.Scan([]byte("10:00")); err != nil {
		t.Fatalf("Scan([]byte): %v", err)
	}
	if tod.MinutesOfDay() != 600 {
		t.Errorf("MinutesOfDay = %d, want 600", tod.MinutesOfDay())
	}
}

func TestOverlapsTodHalfOpen(t *testing.T) {
	p := func(s string) Tod {
		tod, err := Parse(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		return tod
	}

	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"overlap tengah", "09:00", "11:00", "10:00", "12:00", true},
		{"b di dalam a", "08:00", "17:00", "10:00", "11:00", true},
		{"endpoint bersentuhan", "09:00", "10:00", "10:00", "11:00", false},
		{"terpisah", "08:00", "09:00", "10:00", "11:00", false},
	}
	for _, tc := range cases {
		got := OverlapsTod(p(tc.aStart), p(tc.aEnd), p(tc.bStart), p(tc.bEnd))
		if got != tc.want {
			t.Errorf("%s: OverlapsTod = %v, want %v", tc.name, got, tc.want)
		}
		// simetris
		rev := OverlapsTod(p(tc.bStart), p(tc.bEnd), p(tc.aStart), p(tc.aEnd))
		if rev != tc.want {
			t.Errorf("%s: OverlapsTod (reversed) = %v, want %v", tc.name, rev, tc.want)
		}
	}
}

func TestCovers(t *testing.T) {
	p := func(s string) Tod {
		tod, _ := Parse(s)
		return tod
	}
	if !Covers(p("08:00"), p("17:00"), p("09:00"), p("10:00")) {
		t.Error("08-17 should cover 09-10")
	}
	if Covers(p("09:00"), p("10:00"), p("08:00"), p("17:00")) {
		t.Error("09-10 should not cover 08-17")
	}
	if !Covers(p("09:00"), p("10:00"), p("09:00"), p("10:00")) {
		t.Error("interval should cover itself")
	}
}
