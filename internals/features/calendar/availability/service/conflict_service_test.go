// file: internals/features/calendar/availability/service/conflict_service_test.go
package service

import (
	"testing"
	"time"

	avmodel "sacel_backend/internals/features/calendar/availability/model"
	evmodel "sacel_backend/internals/features/calendar/events/model"
	"sacel_backend/internals/features/calendar/recurrence"
	"sacel_backend/internals/helpers/dbtime"
)

func mustTod(t *testing.T, s string) dbtime.Tod {
	t.Helper()
	tod, err := dbtime.Parse(s)
	if err != nil {
		t.Fatalf("parse tod %q: %v", s, err)
	}
	return tod
}

func slot(t *testing.T, dow int, start, end string, available bool) avmodel.AvailabilitySlotModel {
	t.Helper()
	return avmodel.AvailabilitySlotModel{
		AvailabilitySlotDayOfWeek:   dow,
		AvailabilitySlotStartTime:   mustTod(t, start),
		AvailabilitySlotEndTime:     mustTod(t, end),
		AvailabilitySlotIsAvailable: available,
	}
}

// 2024-03-04 adalah Senin (day_of_week=0).
func monday(hour, min int) time.Time {
	return time.Date(2024, 3, 4, hour, min, 0, 0, time.UTC)
}

func TestSlotWindowInRangeMatchesWeekday(t *testing.T) {
	s := mustTod(t, "09:00")
	e := mustTod(t, "11:00")

	ws, we, hit := slotWindowInRange(0, s, e, monday(8, 0), monday(12, 0))
	if !hit {
		t.Fatal("expected monday 09-11 slot to hit monday 08-12 range")
	}
	if ws.Hour() != 9 || we.Hour() != 11 {
		t.Errorf("projected window = %v..%v, want 09:00..11:00", ws, we)
	}

	// selasa: tidak kena
	tue := monday(8, 0).AddDate(0, 0, 1)
	if _, _, hit := slotWindowInRange(0, s, e, tue, tue.Add(4*time.Hour)); hit {
		t.Error("monday slot should not hit a tuesday-only range")
	}
}

func TestSlotWindowInRangeTouchingEndpointsNoHit(t *testing.T) {
	s := mustTod(t, "09:00")
	e := mustTod(t, "11:00")
	// range mulai tepat saat slot berakhir → half-open, bukan overlap
	if _, _, hit := slotWindowInRange(0, s, e, monday(11, 0), monday(13, 0)); hit {
		t.Error("range starting exactly at slot end should not overlap")
	}
}

func TestOngoingEventStillConflicts(t *testing.T) {
	// event 08-12 sudah berjalan saat interval 09-10 dimulai; window
	// ekspansi harus dimundurkan supaya occurrence-nya tetap terjaring
	ev := &evmodel.EventModel{
		EventTitle: "Rapat kurikulum",
		EventStart: monday(8, 0),
		EventEnd:   monday(12, 0),
	}
	start, end := monday(9, 0), monday(10, 0)

	occs, err := recurrence.Expand(ev, nil, start.Add(-expansionPad(ev, nil)), end)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	hits := 0
	for _, o := range occs {
		if recurrence.Overlaps(o.Start, o.End, start, end) {
			hits++
		}
	}
	if hits != 1 {
		t.Fatalf("ongoing event 08-12 should conflict with 09-10 range, hits = %d", hits)
	}
}

func TestExpansionPadUsesLongestOverride(t *testing.T) {
	ev := &evmodel.EventModel{
		EventStart: monday(9, 0),
		EventEnd:   monday(10, 0),
	}
	ns := monday(8, 0)
	ne := monday(14, 0) // override 6 jam, lebih panjang dari durasi dasar
	excs := []evmodel.EventExceptionModel{{
		EventExceptionOriginalStart: monday(9, 0),
		EventExceptionNewStart:      &ns,
		EventExceptionNewEnd:        &ne,
	}}
	if got := expansionPad(ev, excs); got != 6*time.Hour {
		t.Errorf("expansionPad = %v, want 6h", got)
	}
	if got := expansionPad(ev, nil); got != time.Hour {
		t.Errorf("expansionPad without overrides = %v, want 1h", got)
	}
}

func TestDecideAvailabilityNoSlotsMeansUnavailable(t *testing.T) {
	if DecideAvailability(nil, monday(9, 0), monday(10, 0)) {
		t.Error("user without any slot cannot be booked")
	}
}

func TestDecideAvailabilityRequiresCoveringSlot(t *testing.T) {
	slots := []avmodel.AvailabilitySlotModel{
		slot(t, 0, "09:00", "10:00", true),
	}
	if !DecideAvailability(slots, monday(9, 0), monday(9, 30)) {
		t.Error("slot 09-10 should cover 09:00-09:30")
	}
	// slot hanya menyentuh sebagian interval → tidak cukup
	if DecideAvailability(slots, monday(9, 30), monday(10, 30)) {
		t.Error("slot 09-10 does not cover 09:30-10:30")
	}
}

func TestDecideAvailabilityUnavailableWins(t *testing.T) {
	slots := []avmodel.AvailabilitySlotModel{
		slot(t, 0, "08:00", "17:00", true),
		slot(t, 0, "12:00", "13:00", false), // istirahat
	}
	if DecideAvailability(slots, monday(12, 15), monday(12, 45)) {
		t.Error("overlapping unavailable slot must win over available slot")
	}
	if !DecideAvailability(slots, monday(9, 0), monday(10, 0)) {
		t.Error("morning range only touches the available slot")
	}
}

func TestDecideAvailabilityOutsideDeclaredSlots(t *testing.T) {
	slots := []avmodel.AvailabilitySlotModel{
		slot(t, 0, "08:00", "12:00", true),
	}
	// minggu (dow=6): tidak ada slot yang menutupi → tidak bisa di-booking
	sun := monday(9, 0).AddDate(0, 0, 6)
	if DecideAvailability(slots, sun, sun.Add(time.Hour)) {
		t.Error("range on a day with no covering slot should be unavailable")
	}
}
