// file: internals/features/calendar/reminders/service/dispatcher_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	evmodel "sacel_backend/internals/features/calendar/events/model"
)

func mkDelivery(eventID, userID uuid.UUID, occStart time.Time, minutesBefore int) Delivery {
	return Delivery{
		EventID:         eventID,
		EventTitle:      "Rapat Guru",
		OccurrenceStart: occStart,
		UserID:          userID,
		Channel:         evmodel.ReminderChannelNotification,
		MinutesBefore:   minutesBefore,
	}
}

func TestComputeDueBasic(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	evID := uuid.New()
	uID := uuid.New()
	lookback := 24 * time.Hour

	cands := []Delivery{
		// due 08:30 → sudah lewat, harus masuk
		mkDelivery(evID, uID, now.Add(90*time.Minute), 60+60),
		// due 09:00 tepat → masuk (due <= now)
		mkDelivery(evID, uID, now.Add(60*time.Minute), 60),
		// due 09:30 → belum waktunya
		mkDelivery(evID, uID, now.Add(90*time.Minute), 60),
	}

	due := ComputeDue(cands, map[string]struct{}{}, now, lookback)
	if len(due) != 2 {
		t.Fatalf("got %d due deliveries, want 2", len(due))
	}
}

func TestComputeDueLookbackCutoff(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	evID := uuid.New()
	uID := uuid.New()

	// occurrence dua hari lalu, lookback 24 jam → basi, jangan kirim
	stale := mkDelivery(evID, uID, now.Add(-48*time.Hour), 60)
	due := ComputeDue([]Delivery{stale}, map[string]struct{}{}, now, 24*time.Hour)
	if len(due) != 0 {
		t.Fatalf("stale reminder beyond lookback should be dropped, got %d", len(due))
	}

	// masih dalam lookback → tetap dikirim walau terlambat
	late := mkDelivery(evID, uID, now.Add(-2*time.Hour), 60)
	due = ComputeDue([]Delivery{late}, map[string]struct{}{}, now, 24*time.Hour)
	if len(due) != 1 {
		t.Fatalf("late-but-within-lookback reminder should still fire, got %d", len(due))
	}
}

func TestComputeDueLedgerDedupe(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	evID := uuid.New()
	uID := uuid.New()
	d := mkDelivery(evID, uID, now.Add(30*time.Minute), 60)

	sent := map[string]struct{}{}

	// tick pertama: terkirim
	first := ComputeDue([]Delivery{d}, sent, now, 24*time.Hour)
	if len(first) != 1 {
		t.Fatalf("first tick should fire, got %d", len(first))
	}
	for _, x := range first {
		sent[DeliveryKey(x.EventID, x.OccurrenceStart, x.UserID, x.Channel)] = struct{}{}
	}

	// tick kedua (restart/instance lain): ledger mencegah kiriman ganda
	second := ComputeDue([]Delivery{d}, sent, now.Add(time.Minute), 24*time.Hour)
	if len(second) != 0 {
		t.Fatalf("second tick must be deduped by ledger, got %d", len(second))
	}
}

func TestComputeDuePerOccurrenceLifecycle(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	evID := uuid.New()
	uID := uuid.New()

	occ1 := mkDelivery(evID, uID, now.Add(30*time.Minute), 60)
	occ2 := mkDelivery(evID, uID, now.Add(30*time.Minute).AddDate(0, 0, 7), 60)

	sent := map[string]struct{}{
		DeliveryKey(occ1.EventID, occ1.OccurrenceStart, occ1.UserID, occ1.Channel): {},
	}

	// occurrence minggu depan belum due; yang sudah terkirim tidak diulang
	due := ComputeDue([]Delivery{occ1, occ2}, sent, now, 24*time.Hour)
	if len(due) != 0 {
		t.Fatalf("got %d, want 0 (occ1 sent, occ2 not due yet)", len(due))
	}

	// maju seminggu: occurrence kedua punya lifecycle sendiri
	nextWeek := now.AddDate(0, 0, 7)
	due = ComputeDue([]Delivery{occ1, occ2}, sent, nextWeek, 24*time.Hour)
	if len(due) != 1 {
		t.Fatalf("got %d, want 1 (only occ2)", len(due))
	}
	if !due[0].OccurrenceStart.Equal(occ2.OccurrenceStart) {
		t.Errorf("wrong occurrence fired: %v", due[0].OccurrenceStart)
	}
}

func TestComputeDueSortedByOccurrence(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	evID := uuid.New()
	uID := uuid.New()

	a := mkDelivery(evID, uID, now.Add(45*time.Minute), 60)
	b := mkDelivery(evID, uID, now.Add(15*time.Minute), 60)

	due := ComputeDue([]Delivery{a, b}, map[string]struct{}{}, now, 24*time.Hour)
	if len(due) != 2 {
		t.Fatalf("got %d due, want 2", len(due))
	}
	if !due[0].OccurrenceStart.Before(due[1].OccurrenceStart) {
		t.Error("due deliveries should be sorted by occurrence start")
	}
}

func TestLongLeadMaterializedByFireInstant(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	horizon := 48 * time.Hour
	lookback := 24 * time.Hour
	windowStart := now.Add(-lookback)
	windowEnd := now.Add(horizon)

	// lead 4 hari pada occurrence 100 jam ke depan: start di luar horizon,
	// tapi fire instant (start - lead) sudah masuk window
	lead := 4 * 24 * 60 // menit
	occStart := now.Add(100 * time.Hour)
	if !dueInWindow(occStart, lead, windowStart, windowEnd) {
		t.Fatal("reminder with lead > horizon must materialize once its fire instant enters the window")
	}

	// window ekspansi ikut melebar sejauh lead terpanjang
	rems := []evmodel.EventReminderModel{
		{EventReminderMinutesBefore: 60},
		{EventReminderMinutesBefore: lead},
	}
	expandEnd := windowEnd.Add(time.Duration(maxLeadMinutes(rems)) * time.Minute)
	if occStart.After(expandEnd) {
		t.Fatalf("expansion window %v must reach occurrence at %v", expandEnd, occStart)
	}

	// dan begitu due lewat, ComputeDue mengirimkannya
	evID := uuid.New()
	uID := uuid.New()
	cand := mkDelivery(evID, uID, occStart, lead)
	atDue := occStart.Add(-time.Duration(lead) * time.Minute).Add(time.Minute)
	due := ComputeDue([]Delivery{cand}, map[string]struct{}{}, atDue, lookback)
	if len(due) != 1 {
		t.Fatalf("long-lead reminder should fire at its due instant, got %d", len(due))
	}
}

func TestDueInWindowRejectsOutside(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	windowStart := now.Add(-24 * time.Hour)
	windowEnd := now.Add(48 * time.Hour)

	// fire instant lebih jauh dari horizon → belum dimaterialisasi
	if dueInWindow(now.Add(72*time.Hour), 60, windowStart, windowEnd) {
		t.Error("fire instant beyond horizon should not materialize yet")
	}
	// fire instant lebih tua dari lookback → sudah basi
	if dueInWindow(now.Add(-30*time.Hour), 60, windowStart, windowEnd) {
		t.Error("fire instant older than lookback should not materialize")
	}
}

func TestUpcomingIncludesDueButUnsent(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	evID := uuid.New()
	uID := uuid.New()
	until := 24 * time.Hour
	lookback := 24 * time.Hour

	// due 5 menit lalu, belum terkirim → tepat yang sebentar lagi dikirim
	dueNow := mkDelivery(evID, uID, now.Add(55*time.Minute), 60)
	// due 2 jam ke depan → pratinjau biasa
	future := mkDelivery(evID, uID, now.Add(3*time.Hour), 60)
	// di luar rentang until
	farAway := mkDelivery(evID, uID, now.Add(30*time.Hour), 60)

	got := UpcomingFor([]Delivery{farAway, future, dueNow}, map[string]struct{}{}, uID, now, until, lookback)
	if len(got) != 2 {
		t.Fatalf("got %d upcoming, want 2 (due-but-unsent + future)", len(got))
	}
	if !got[0].OccurrenceStart.Equal(dueNow.OccurrenceStart) {
		t.Errorf("due-but-unsent entry should sort first, got %v", got[0].OccurrenceStart)
	}

	// begitu masuk ledger, hilang dari pratinjau
	sent := map[string]struct{}{
		DeliveryKey(dueNow.EventID, dueNow.OccurrenceStart, dueNow.UserID, dueNow.Channel): {},
	}
	got = UpcomingFor([]Delivery{dueNow, future}, sent, uID, now, until, lookback)
	if len(got) != 1 || !got[0].OccurrenceStart.Equal(future.OccurrenceStart) {
		t.Fatalf("sent delivery must disappear from the preview, got %d", len(got))
	}
}

func TestRecipientsTargetedReminder(t *testing.T) {
	target := uuid.New()
	ev := &evmodel.EventModel{EventCreatorID: uuid.New()}
	rem := &evmodel.EventReminderModel{EventReminderUserID: &target}

	s := &DispatcherService{}
	got := s.recipients(ev, rem, []uuid.UUID{uuid.New(), uuid.New()})
	if len(got) != 1 || got[0] != target {
		t.Fatalf("targeted reminder should reach only its user, got %v", got)
	}
}

func TestRecipientsBroadcastReminder(t *testing.T) {
	creator := uuid.New()
	att1 := uuid.New()
	ev := &evmodel.EventModel{EventCreatorID: creator}
	rem := &evmodel.EventReminderModel{} // user nil = broadcast

	s := &DispatcherService{}
	// creator juga ada di daftar attendee (baris organizer) — tidak dobel
	got := s.recipients(ev, rem, []uuid.UUID{creator, att1})
	if len(got) != 2 {
		t.Fatalf("got %d recipients, want 2 (creator deduped)", len(got))
	}
	if got[0] != creator {
		t.Error("creator should be first recipient")
	}
}
