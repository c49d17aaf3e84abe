// file: internals/features/calendar/recurrence/recurrence_test.go
package recurrence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	helper "sacel_backend/internals/helpers"

	evmodel "sacel_backend/internals/features/calendar/events/model"
)

func mkEvent(start, end time.Time, tz string, rule *evmodel.RecurrenceRule) *evmodel.EventModel {
	ev := &evmodel.EventModel{
		EventID:       uuid.New(),
		EventTitle:    "Matematika Kelas 10",
		EventStart:    start,
		EventEnd:      end,
		EventTimezone: tz,
	}
	if rule != nil {
		jt := datatypes.NewJSONType(*rule)
		ev.EventRecurrence = &jt
	}
	return ev
}

func intPtr(n int) *int { return &n }

func TestExpandWeeklyMondayThreeWeeks(t *testing.T) {
	// Senin 2024-03-04 09:00 UTC, weekly {Senin}, tanpa batas — window 3 minggu
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	ev := mkEvent(start, start.Add(time.Hour), "UTC", &evmodel.RecurrenceRule{
		Freq:      evmodel.RecurrenceWeekly,
		Interval:  1,
		ByWeekday: []int{0},
	})

	occs, err := Expand(ev, nil, start, start.AddDate(0, 0, 20))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	want := []time.Time{
		time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC),
	}
	if len(occs) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(occs))
	}
	for i, w := range want {
		if !occs[i].Start.Equal(w) {
			t.Fatalf("occurrence %d = %v, want %v", i, occs[i].Start, w)
		}
		if !occs[i].End.Equal(w.Add(time.Hour)) {
			t.Fatalf("occurrence %d end = %v, want %v", i, occs[i].End, w.Add(time.Hour))
		}
	}
}

func TestExpandWeeklyCountProperty(t *testing.T) {
	// K minggu, interval N, |W| hari → K/N × |W| occurrence, urut naik
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC) // Senin
	cases := []struct {
		name     string
		interval int
		weekdays []int
		weeks    int
		want     int
	}{
		{"interval1_twoDays", 1, []int{0, 2}, 4, 8},
		{"interval2_twoDays", 2, []int{0, 2}, 4, 4},
		{"interval1_oneDay", 1, []int{4}, 6, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := mkEvent(start, start.Add(45*time.Minute), "UTC", &evmodel.RecurrenceRule{
				Freq:      evmodel.RecurrenceWeekly,
				Interval:  tc.interval,
				ByWeekday: tc.weekdays,
			})
			windowEnd := start.AddDate(0, 0, tc.weeks*7).Add(-time.Second)
			occs, err := Expand(ev, nil, start, windowEnd)
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}
			if len(occs) != tc.want {
				t.Fatalf("expected %d occurrences, got %d", tc.want, len(occs))
			}
			for i := 1; i < len(occs); i++ {
				if !occs[i-1].Start.Before(occs[i].Start) {
					t.Fatalf("occurrences not strictly ascending at %d", i)
				}
				if occs[i].Start.Before(start) || occs[i].Start.After(windowEnd) {
					t.Fatalf("occurrence %v outside window", occs[i].Start)
				}
			}
		})
	}
}

func TestExpandDailyWithCount(t *testing.T) {
	start := time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC)
	ev := mkEvent(start, start.Add(30*time.Minute), "UTC", &evmodel.RecurrenceRule{
		Freq:     evmodel.RecurrenceDaily,
		Interval: 3,
		Count:    intPtr(4),
	})

	occs, err := Expand(ev, nil, start, start.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(occs) != 4 {
		t.Fatalf("expected 4 occurrences (count), got %d", len(occs))
	}
	if !occs[3].Start.Equal(start.AddDate(0, 0, 9)) {
		t.Fatalf("last occurrence = %v, want %v", occs[3].Start, start.AddDate(0, 0, 9))
	}
}

func TestExpandMonthlyByWeekday(t *testing.T) {
	// Selasa kedua tiap bulan, diturunkan dari anchor (2024-03-12)
	start := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)
	ev := mkEvent(start, start.Add(2*time.Hour), "UTC", &evmodel.RecurrenceRule{
		Freq:     evmodel.RecurrenceMonthly,
		Interval: 1,
		Count:    intPtr(3),
	})

	occs, err := Expand(ev, nil, start, start.AddDate(0, 6, 0))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	want := []time.Time{
		time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 9, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 14, 10, 0, 0, 0, time.UTC),
	}
	if len(occs) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(occs))
	}
	for i, w := range want {
		if !occs[i].Start.Equal(w) {
			t.Fatalf("occurrence %d = %v, want %v", i, occs[i].Start, w)
		}
	}
}

func TestExpandHonorsEventTimezoneAcrossDST(t *testing.T) {
	// 09:00 waktu New York tiap Senin; DST mulai 2024-03-10,
	// jadi offset UTC bergeser dari 14:00Z ke 13:00Z.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, loc)
	ev := mkEvent(start, start.Add(time.Hour), "America/New_York", &evmodel.RecurrenceRule{
		Freq:      evmodel.RecurrenceWeekly,
		Interval:  1,
		ByWeekday: []int{0},
		Count:     intPtr(2),
	})

	occs, err := Expand(ev, nil, start.UTC(), start.AddDate(0, 0, 14).UTC())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occs))
	}
	if got := occs[0].Start.UTC().Hour(); got != 14 {
		t.Fatalf("pre-DST occurrence at %dh UTC, want 14", got)
	}
	if got := occs[1].Start.UTC().Hour(); got != 13 {
		t.Fatalf("post-DST occurrence at %dh UTC, want 13", got)
	}
}

func TestExpandNonRecurringWindowFilter(t *testing.T) {
	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	ev := mkEvent(start, start.Add(time.Hour), "UTC", nil)

	occs, err := Expand(ev, nil, start.AddDate(0, 0, -7), start.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}

	occs, err = Expand(ev, nil, start.AddDate(0, 0, 1), start.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(occs) != 0 {
		t.Fatalf("expected 0 occurrences outside window, got %d", len(occs))
	}
}

func TestExpandWithCancelExceptionRoundTrip(t *testing.T) {
	// buat rule → batalkan satu occurrence → ekspansi ulang melewatkan
	// tepat occurrence itu, sisanya utuh
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	ev := mkEvent(start, start.Add(time.Hour), "UTC", &evmodel.RecurrenceRule{
		Freq:      evmodel.RecurrenceWeekly,
		Interval:  1,
		ByWeekday: []int{0},
		Count:     intPtr(4),
	})
	cancelled := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	excs := []evmodel.EventExceptionModel{{
		EventExceptionEventID:       ev.EventID,
		EventExceptionOriginalStart: cancelled,
		EventExceptionCancelled:     true,
	}}

	occs, err := Expand(ev, excs, start, start.AddDate(0, 2, 0))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(occs) != 3 {
		t.Fatalf("expected 3 occurrences after cancel, got %d", len(occs))
	}
	for _, o := range occs {
		if o.Start.Equal(cancelled) {
			t.Fatalf("cancelled occurrence %v still present", cancelled)
		}
	}
}

func TestExpandWithMoveException(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	ev := mkEvent(start, start.Add(time.Hour), "UTC", &evmodel.RecurrenceRule{
		Freq:      evmodel.RecurrenceWeekly,
		Interval:  1,
		ByWeekday: []int{0},
		Count:     intPtr(2),
	})
	orig := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	moved := time.Date(2024, 3, 12, 14, 0, 0, 0, time.UTC)
	excs := []evmodel.EventExceptionModel{{
		EventExceptionEventID:       ev.EventID,
		EventExceptionOriginalStart: orig,
		EventExceptionNewStart:      &moved,
	}}

	occs, err := Expand(ev, excs, start, start.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occs))
	}
	last := occs[len(occs)-1]
	if !last.Start.Equal(moved) {
		t.Fatalf("moved occurrence = %v, want %v", last.Start, moved)
	}
	if !last.Overridden {
		t.Fatalf("moved occurrence should be flagged Overridden")
	}
}

func TestValidateRuleErrors(t *testing.T) {
	until := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		rule  evmodel.RecurrenceRule
		field string
	}{
		{"unknownFreq", evmodel.RecurrenceRule{Freq: "hourly", Interval: 1, Until: &until}, "freq"},
		{"zeroInterval", evmodel.RecurrenceRule{Freq: evmodel.RecurrenceDaily, Interval: 0, Until: &until}, "interval"},
		{"weeklyNoDays", evmodel.RecurrenceRule{Freq: evmodel.RecurrenceWeekly, Interval: 1, Until: &until}, "by_weekday"},
		{"badWeekday", evmodel.RecurrenceRule{Freq: evmodel.RecurrenceWeekly, Interval: 1, ByWeekday: []int{7}, Until: &until}, "by_weekday"},
		{"unbounded", evmodel.RecurrenceRule{Freq: evmodel.RecurrenceDaily, Interval: 1}, "until"},
		{"badCount", evmodel.RecurrenceRule{Freq: evmodel.RecurrenceDaily, Interval: 1, Count: intPtr(0)}, "count"},
		{"badWeekOfMonth", evmodel.RecurrenceRule{Freq: evmodel.RecurrenceMonthly, Interval: 1, WeekOfMonth: intPtr(6), Until: &until}, "week_of_month"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRule(&tc.rule)
			if err == nil {
				t.Fatalf("expected error for %+v", tc.rule)
			}
			se, ok := helper.AsServiceError(err)
			if !ok {
				t.Fatalf("expected *ServiceError, got %T", err)
			}
			if se.Kind != helper.ErrKindInvalidRecurrenceRule {
				t.Fatalf("kind = %q, want %q", se.Kind, helper.ErrKindInvalidRecurrenceRule)
			}
			if se.Field != tc.field {
				t.Fatalf("field = %q, want %q", se.Field, tc.field)
			}
		})
	}

	if err := ValidateRule(nil); err != nil {
		t.Fatalf("nil rule should be valid, got %v", err)
	}
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name           string
		as, ae, bs, be time.Time
		want           bool
	}{
		{"identical", base, base.Add(time.Hour), base, base.Add(time.Hour), true},
		{"contained", base, base.Add(2 * time.Hour), base.Add(30 * time.Minute), base.Add(time.Hour), true},
		{"touchingEndpoints", base, base.Add(time.Hour), base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"disjoint", base, base.Add(time.Hour), base.Add(3 * time.Hour), base.Add(4 * time.Hour), false},
		{"partial", base, base.Add(time.Hour), base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.as, tc.ae, tc.bs, tc.be); got != tc.want {
				t.Fatalf("Overlaps() = %v, want %v", got, tc.want)
			}
			// simetri
			if got := Overlaps(tc.bs, tc.be, tc.as, tc.ae); got != tc.want {
				t.Fatalf("Overlaps() not symmetric for %s", tc.name)
			}
		})
	}
}
