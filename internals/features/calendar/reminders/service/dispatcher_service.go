// file: internals/features/calendar/reminders/service/dispatcher_service.go
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	evmodel "sacel_backend/internals/features/calendar/events/model"
	"sacel_backend/internals/features/calendar/recurrence"
)

/* =========================================================
   Dispatcher pengingat.
   Ledger reminder_deliveries + handoff ke sink ditulis dalam SATU
   transaksi: kalau proses mati di tengah tick, baris ledger ikut
   rollback dan occurrence itu diproses ulang di tick berikutnya.
   Duplikat mungkin (at-least-once ke sink), kehilangan tidak.
========================================================= */

// Clock: dipisah supaya tick bisa diuji dengan waktu beku.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

func SystemClock() Clock { return realClock{} }

// Delivery: satu kiriman pengingat konkret.
type Delivery struct {
	EventID         uuid.UUID               `json:"event_id"`
	EventTitle      string                  `json:"event_title"`
	OccurrenceStart time.Time               `json:"occurrence_start"`
	UserID          uuid.UUID               `json:"user_id"`
	Channel         evmodel.ReminderChannel `json:"channel"`
	MinutesBefore   int                     `json:"minutes_before"`
}

// DeliverySink: tujuan akhir pengiriman (push, email, dst).
// Error dari sink membatalkan baris ledger-nya.
type DeliverySink interface {
	Deliver(ctx context.Context, d Delivery) error
}

// DeliveryKey: identitas exactly-once — selaras uq_reminder_delivery.
func DeliveryKey(eventID uuid.UUID, occStart time.Time, userID uuid.UUID, channel evmodel.ReminderChannel) string {
	return fmt.Sprintf("%s|%d|%s|%s", eventID, occStart.UTC().Unix(), userID, channel)
}

/* =========================================================
   Pure: hitung kandidat yang due
========================================================= */

// ComputeDue: saring kandidat yang jatuh tempo pada `now`.
// due = occurrence start - minutes_before. Kandidat due bila due <= now,
// belum lewat lookback (instance mati lama tidak membanjiri user dengan
// pengingat basi), dan belum ada di ledger.
func ComputeDue(cands []Delivery, sent map[string]struct{}, now time.Time, lookback time.Duration) []Delivery {
	out := []Delivery{}
	for _, c := range cands {
		due := c.OccurrenceStart.Add(-time.Duration(c.MinutesBefore) * time.Minute)
		if due.After(now) {
			continue
		}
		if now.Sub(due) > lookback {
			continue
		}
		if _, ok := sent[DeliveryKey(c.EventID, c.OccurrenceStart, c.UserID, c.Channel)]; ok {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurrenceStart.Equal(out[j].OccurrenceStart) {
			return out[i].OccurrenceStart.Before(out[j].OccurrenceStart)
		}
		return out[i].UserID.String() < out[j].UserID.String()
	})
	return out
}

// maxLeadMinutes: lead terbesar dari kumpulan reminder satu event.
func maxLeadMinutes(rems []evmodel.EventReminderModel) int {
	max := 0
	for _, r := range rems {
		if r.EventReminderMinutesBefore > max {
			max = r.EventReminderMinutesBefore
		}
	}
	return max
}

// dueInWindow: kandidat dimaterialisasi berdasar fire instant-nya
// (start - lead), bukan start occurrence — lead yang lebih panjang dari
// horizon tetap terjaring begitu fire instant-nya masuk window.
func dueInWindow(occStart time.Time, minutesBefore int, windowStart, windowEnd time.Time) bool {
	due := occStart.Add(-time.Duration(minutesBefore) * time.Minute)
	return !due.Before(windowStart) && !due.After(windowEnd)
}

/* =========================================================
   Service
========================================================= */

type DispatcherService struct {
	db    *gorm.DB
	sink  DeliverySink
	clock Clock
	log   zerolog.Logger

	horizon  time.Duration // seberapa jauh occurrence di depan ikut discan
	lookback time.Duration // pengingat terlewat lebih lama dari ini di-drop
}

func NewDispatcherService(db *gorm.DB, sink DeliverySink, clock Clock, log zerolog.Logger, horizon, lookback time.Duration) *DispatcherService {
	return &DispatcherService{
		db:       db,
		sink:     sink,
		clock:    clock,
		log:      log,
		horizon:  horizon,
		lookback: lookback,
	}
}

// Tick: satu putaran dispatcher. Aman dipanggil berulang; ledger yang
// membuat idempoten, bukan timer-nya.
func (s *DispatcherService) Tick(ctx context.Context) (int, error) {
	now := s.clock.Now().UTC()

	cands, err := s.collectCandidates(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(cands) == 0 {
		return 0, nil
	}

	sent, err := s.loadSentKeys(ctx, cands)
	if err != nil {
		return 0, err
	}

	due := ComputeDue(cands, sent, now, s.lookback)
	delivered := 0
	for _, d := range due {
		if err := s.deliverOnce(ctx, d); err != nil {
			// satu kegagalan tidak menghentikan sisa batch
			s.log.Error().Err(err).
				Str("event_id", d.EventID.String()).
				Str("user_id", d.UserID.String()).
				Time("occurrence_start", d.OccurrenceStart).
				Msg("pengiriman reminder gagal, dicoba lagi tick berikutnya")
			continue
		}
		delivered++
	}
	if delivered > 0 {
		s.log.Info().Int("delivered", delivered).Int("due", len(due)).Msg("tick dispatcher selesai")
	}
	return delivered, nil
}

// deliverOnce: insert ledger + handoff sink dalam satu transaksi.
// ON CONFLICT DO NOTHING menutup balapan dua instance pada baris sama.
func (s *DispatcherService) deliverOnce(ctx context.Context, d Delivery) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := evmodel.ReminderDeliveryModel{
			ReminderDeliveryEventID:         d.EventID,
			ReminderDeliveryOccurrenceStart: d.OccurrenceStart.UTC(),
			ReminderDeliveryUserID:          d.UserID,
			ReminderDeliveryChannel:         d.Channel,
			ReminderDeliverySentAt:          s.clock.Now().UTC(),
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// instance lain sudah mengirim
			return nil
		}
		return s.sink.Deliver(ctx, d)
	})
}

// UpcomingFor: saring kandidat pratinjau milik satu user. Yang sudah due
// tapi belum ada di ledger tetap tampil — justru itu yang sebentar lagi
// dikirim; yang basi melewati lookback dan yang sudah terkirim disembunyikan.
func UpcomingFor(cands []Delivery, sent map[string]struct{}, userID uuid.UUID, now time.Time, until, lookback time.Duration) []Delivery {
	out := []Delivery{}
	for _, c := range cands {
		if c.UserID != userID {
			continue
		}
		due := c.OccurrenceStart.Add(-time.Duration(c.MinutesBefore) * time.Minute)
		if due.After(now.Add(until)) {
			continue
		}
		if now.Sub(due) > lookback {
			continue
		}
		if _, ok := sent[DeliveryKey(c.EventID, c.OccurrenceStart, c.UserID, c.Channel)]; ok {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurrenceStart.Before(out[j].OccurrenceStart)
	})
	return out
}

// Upcoming: pratinjau kiriman untuk satu user dalam rentang `until` ke
// depan, tanpa menyentuh sink.
func (s *DispatcherService) Upcoming(ctx context.Context, userID uuid.UUID, until time.Duration) ([]Delivery, error) {
	if until > s.horizon {
		until = s.horizon
	}
	now := s.clock.Now().UTC()

	cands, err := s.collectCandidates(ctx, now)
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return []Delivery{}, nil
	}
	sent, err := s.loadSentKeys(ctx, cands)
	if err != nil {
		return nil, err
	}
	return UpcomingFor(cands, sent, userID, now, until, s.lookback), nil
}

/* =========================================================
   scan kandidat
========================================================= */

// collectCandidates: semua (occurrence × reminder × penerima) yang fire
// instant-nya jatuh dalam [now-lookback, now+horizon]. Window ekspansi
// diperlebar sebesar lead terpanjang event supaya reminder berlead panjang
// (lead > horizon) tidak luput dimaterialisasi.
func (s *DispatcherService) collectCandidates(ctx context.Context, now time.Time) ([]Delivery, error) {
	db := s.db.WithContext(ctx)
	windowStart := now.Add(-s.lookback)
	windowEnd := now.Add(s.horizon)

	var reminders []evmodel.EventReminderModel
	if err := db.Where("event_reminder_is_active = TRUE").Find(&reminders).Error; err != nil {
		return nil, err
	}
	if len(reminders) == 0 {
		return []Delivery{}, nil
	}

	eventIDs := []uuid.UUID{}
	seen := map[uuid.UUID]struct{}{}
	remindersByEvent := map[uuid.UUID][]evmodel.EventReminderModel{}
	for _, r := range reminders {
		remindersByEvent[r.EventReminderEventID] = append(remindersByEvent[r.EventReminderEventID], r)
		if _, ok := seen[r.EventReminderEventID]; !ok {
			seen[r.EventReminderEventID] = struct{}{}
			eventIDs = append(eventIDs, r.EventReminderEventID)
		}
	}

	var events []evmodel.EventModel
	if err := db.Where("event_id IN ?", eventIDs).Find(&events).Error; err != nil {
		return nil, err
	}

	var excs []evmodel.EventExceptionModel
	if err := db.Where("event_exception_event_id IN ?", eventIDs).Find(&excs).Error; err != nil {
		return nil, err
	}
	excByEvent := map[uuid.UUID][]evmodel.EventExceptionModel{}
	for _, e := range excs {
		excByEvent[e.EventExceptionEventID] = append(excByEvent[e.EventExceptionEventID], e)
	}

	var attendees []evmodel.EventAttendeeModel
	if err := db.Where("event_attendee_event_id IN ? AND event_attendee_status <> ?",
		eventIDs, evmodel.AttendeeStatusDeclined).Find(&attendees).Error; err != nil {
		return nil, err
	}
	attendeesByEvent := map[uuid.UUID][]uuid.UUID{}
	for _, a := range attendees {
		attendeesByEvent[a.EventAttendeeEventID] = append(attendeesByEvent[a.EventAttendeeEventID], a.EventAttendeeUserID)
	}

	out := []Delivery{}
	for i := range events {
		ev := &events[i]
		rems := remindersByEvent[ev.EventID]
		expandEnd := windowEnd.Add(time.Duration(maxLeadMinutes(rems)) * time.Minute)
		occs, err := recurrence.Expand(ev, excByEvent[ev.EventID], windowStart, expandEnd)
		if err != nil {
			s.log.Warn().Err(err).Str("event_id", ev.EventID.String()).Msg("ekspansi event gagal, dilewati")
			continue
		}
		for _, occ := range occs {
			for _, rem := range rems {
				if !dueInWindow(occ.Start, rem.EventReminderMinutesBefore, windowStart, windowEnd) {
					continue
				}
				recipients := s.recipients(ev, &rem, attendeesByEvent[ev.EventID])
				for _, uid := range recipients {
					out = append(out, Delivery{
						EventID:         ev.EventID,
						EventTitle:      ev.EventTitle,
						OccurrenceStart: occ.Start,
						UserID:          uid,
						Channel:         rem.EventReminderChannel,
						MinutesBefore:   rem.EventReminderMinutesBefore,
					})
				}
			}
		}
	}
	return out, nil
}

// recipients: reminder ber-user = user itu saja; tanpa user = creator +
// semua attendee yang belum declined.
func (s *DispatcherService) recipients(ev *evmodel.EventModel, rem *evmodel.EventReminderModel, attendeeIDs []uuid.UUID) []uuid.UUID {
	if rem.EventReminderUserID != nil {
		return []uuid.UUID{*rem.EventReminderUserID}
	}
	out := []uuid.UUID{ev.EventCreatorID}
	seen := map[uuid.UUID]struct{}{ev.EventCreatorID: {}}
	for _, id := range attendeeIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func (s *DispatcherService) loadSentKeys(ctx context.Context, cands []Delivery) (map[string]struct{}, error) {
	eventIDs := []uuid.UUID{}
	seen := map[uuid.UUID]struct{}{}
	for _, c := range cands {
		if _, ok := seen[c.EventID]; !ok {
			seen[c.EventID] = struct{}{}
			eventIDs = append(eventIDs, c.EventID)
		}
	}

	var rows []evmodel.ReminderDeliveryModel
	if err := s.db.WithContext(ctx).
		Where("reminder_delivery_event_id IN ?", eventIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	sent := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		sent[DeliveryKey(r.ReminderDeliveryEventID, r.ReminderDeliveryOccurrenceStart, r.ReminderDeliveryUserID, r.ReminderDeliveryChannel)] = struct{}{}
	}
	return sent, nil
}
