// file: internals/features/calendar/availability/service/conflict_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	avmodel "sacel_backend/internals/features/calendar/availability/model"
	evmodel "sacel_backend/internals/features/calendar/events/model"
	"sacel_backend/internals/features/calendar/recurrence"
	schmodel "sacel_backend/internals/features/calendar/schedules/model"
	helper "sacel_backend/internals/helpers"
	"sacel_backend/internals/helpers/dbtime"
)

/* =========================================================
   Conflict check: urutan sumber tetap —
   holiday → schedule → exam → event.
   Semuanya advisory: caller tetap boleh menyimpan event.
========================================================= */

const (
	ConflictSourceHoliday  = "holiday"
	ConflictSourceSchedule = "schedule"
	ConflictSourceExam     = "exam"
	ConflictSourceEvent    = "event"
)

type Conflict struct {
	ConflictSource string    `json:"conflict_source"`
	ConflictRefID  uuid.UUID `json:"conflict_ref_id"`
	ConflictLabel  string    `json:"conflict_label"`
	ConflictStart  time.Time `json:"conflict_start"`
	ConflictEnd    time.Time `json:"conflict_end"`
}

type AvailabilityResult struct {
	Available bool       `json:"available"`
	Conflicts []Conflict `json:"conflicts"`
}

type ConflictService struct {
	db *gorm.DB
}

func NewConflictService(db *gorm.DB) *ConflictService {
	return &ConflictService{db: db}
}

/* =========================================================
   Pure helpers (tanpa DB) — dipakai juga oleh unit test
========================================================= */

// slotWindowInRange: proyeksikan slot mingguan (hari + jam) ke window konkret
// di dalam [start,end). Mengembalikan window pertama yang overlap.
func slotWindowInRange(dayOfWeek int, slotStart, slotEnd dbtime.Tod, start, end time.Time) (time.Time, time.Time, bool) {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		if recurrence.WeekdayIndex(day) != dayOfWeek {
			continue
		}
		ws := day.Add(time.Duration(slotStart.MinutesOfDay()) * time.Minute)
		we := day.Add(time.Duration(slotEnd.MinutesOfDay()) * time.Minute)
		if recurrence.Overlaps(ws, we, start, end) {
			return ws, we, true
		}
	}
	return time.Time{}, time.Time{}, false
}

// DecideAvailability: keputusan dari availability slot user. Available hanya
// bila ada slot available yang menutupi seluruh interval. Slot unavailable yang
// menyentuh interval selalu menang (fail-safe default), dan tanpa slot yang
// menutupi sama sekali user tidak bisa di-booking.
func DecideAvailability(slots []avmodel.AvailabilitySlotModel, start, end time.Time) bool {
	covered := false
	for i := range slots {
		s := &slots[i]
		ws, we, hit := slotWindowInRange(s.AvailabilitySlotDayOfWeek,
			s.AvailabilitySlotStartTime, s.AvailabilitySlotEndTime, start, end)
		if !hit {
			continue
		}
		if !s.AvailabilitySlotIsAvailable {
			return false
		}
		if !ws.After(start) && !we.Before(end) {
			covered = true
		}
	}
	return covered
}

/* =========================================================
   FindConflicts
========================================================= */

func (s *ConflictService) FindConflicts(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeEventID *uuid.UUID) ([]Conflict, error) {
	if !start.Before(end) {
		return nil, helper.NewServiceError(helper.ErrKindInvalidInterval, "end", "waktu selesai harus setelah waktu mulai")
	}

	out := []Conflict{}

	hc, err := s.holidayConflicts(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out = append(out, hc...)

	sc, err := s.scheduleConflicts(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	out = append(out, sc...)

	xc, err := s.examConflicts(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	out = append(out, xc...)

	ec, err := s.eventConflicts(ctx, userID, start, end, excludeEventID)
	if err != nil {
		return nil, err
	}
	out = append(out, ec...)

	return out, nil
}

// CheckAvailability: gabungan keputusan slot + daftar konflik.
// Available=false bila slot bilang tidak, ATAU ada konflik apa pun.
func (s *ConflictService) CheckAvailability(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeEventID *uuid.UUID) (*AvailabilityResult, error) {
	conflicts, err := s.FindConflicts(ctx, userID, start, end, excludeEventID)
	if err != nil {
		return nil, err
	}

	var slots []avmodel.AvailabilitySlotModel
	if err := s.db.WithContext(ctx).
		Where("availability_slot_user_id = ?", userID).
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return &AvailabilityResult{
		Available: DecideAvailability(slots, start, end) && len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

/* =========================================================
   per-source
========================================================= */

func (s *ConflictService) holidayConflicts(ctx context.Context, start, end time.Time) ([]Conflict, error) {
	var holidays []schmodel.HolidayModel
	if err := s.db.WithContext(ctx).
		Where("holiday_is_active = TRUE").
		Find(&holidays).Error; err != nil {
		return nil, err
	}

	out := []Conflict{}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		for i := range holidays {
			h := &holidays[i]
			if !h.CoversDate(day) {
				continue
			}
			out = append(out, Conflict{
				ConflictSource: ConflictSourceHoliday,
				ConflictRefID:  h.HolidayID,
				ConflictLabel:  h.HolidayName,
				ConflictStart:  day,
				ConflictEnd:    day.AddDate(0, 0, 1),
			})
		}
	}
	return out, nil
}

func (s *ConflictService) scheduleConflicts(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]Conflict, error) {
	var schedules []schmodel.ScheduleModel
	if err := s.db.WithContext(ctx).
		Where("schedule_teacher_id = ? AND schedule_is_active = TRUE", userID).
		Find(&schedules).Error; err != nil {
		return nil, err
	}

	out := []Conflict{}
	for i := range schedules {
		sch := &schedules[i]
		ws, we, hit := slotWindowInRange(sch.ScheduleDayOfWeek,
			sch.ScheduleStartTime, sch.ScheduleEndTime, start, end)
		if !hit {
			continue
		}
		// di luar term tidak dihitung
		if sch.ScheduleTermStart != nil && ws.Before(*sch.ScheduleTermStart) {
			continue
		}
		if sch.ScheduleTermEnd != nil && ws.After(*sch.ScheduleTermEnd) {
			continue
		}
		out = append(out, Conflict{
			ConflictSource: ConflictSourceSchedule,
			ConflictRefID:  sch.ScheduleID,
			ConflictLabel:  sch.ScheduleSubject + " (" + sch.ScheduleName + ")",
			ConflictStart:  ws,
			ConflictEnd:    we,
		})
	}
	return out, nil
}

func (s *ConflictService) examConflicts(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]Conflict, error) {
	var exams []schmodel.ExamScheduleModel
	if err := s.db.WithContext(ctx).
		Where("exam_schedule_teacher_id = ? AND exam_schedule_date >= ? AND exam_schedule_date <= ?",
			userID,
			start.AddDate(0, 0, -1), // tanggal date-only, longgarkan satu hari
			end).
		Find(&exams).Error; err != nil {
		return nil, err
	}

	out := []Conflict{}
	for i := range exams {
		ex := &exams[i]
		d := ex.ExamScheduleDate
		xs := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, start.Location()).
			Add(time.Duration(ex.ExamScheduleStartTime.MinutesOfDay()) * time.Minute)
		xe := xs.Add(time.Duration(ex.ExamScheduleDurationMinutes) * time.Minute)
		if !recurrence.Overlaps(xs, xe, start, end) {
			continue
		}
		out = append(out, Conflict{
			ConflictSource: ConflictSourceExam,
			ConflictRefID:  ex.ExamScheduleID,
			ConflictLabel:  ex.ExamScheduleSubject + " (" + string(ex.ExamScheduleType) + ")",
			ConflictStart:  xs,
			ConflictEnd:    xe,
		})
	}
	return out, nil
}

// expansionPad: pelebaran window ekspansi ke belakang. Ekspansi hanya
// mengeluarkan occurrence yang MULAI di dalam window, jadi event yang sudah
// berjalan saat interval dimulai perlu window yang dimundurkan sepanjang
// durasinya; override exception bisa lebih panjang dari durasi dasar.
func expansionPad(ev *evmodel.EventModel, excs []evmodel.EventExceptionModel) time.Duration {
	pad := ev.Duration()
	for i := range excs {
		e := &excs[i]
		if e.EventExceptionNewStart != nil && e.EventExceptionNewEnd != nil {
			if d := e.EventExceptionNewEnd.Sub(*e.EventExceptionNewStart); d > pad {
				pad = d
			}
		}
	}
	return pad
}

// eventConflicts: event milik user atau yang dia terima/diundang (declined
// tidak menghalangi). Event berulang dicek per occurrence hasil ekspansi.
func (s *ConflictService) eventConflicts(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeEventID *uuid.UUID) ([]Conflict, error) {
	db := s.db.WithContext(ctx)

	var ids []uuid.UUID
	if err := db.Model(&evmodel.EventModel{}).
		Where("event_creator_id = ?", userID).
		Pluck("event_id", &ids).Error; err != nil {
		return nil, err
	}
	var attending []uuid.UUID
	if err := db.Model(&evmodel.EventAttendeeModel{}).
		Where("event_attendee_user_id = ? AND event_attendee_status <> ?",
			userID, evmodel.AttendeeStatusDeclined).
		Pluck("event_attendee_event_id", &attending).Error; err != nil {
		return nil, err
	}
	seen := map[uuid.UUID]struct{}{}
	all := []uuid.UUID{}
	for _, id := range append(ids, attending...) {
		if excludeEventID != nil && id == *excludeEventID {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			all = append(all, id)
		}
	}
	if len(all) == 0 {
		return []Conflict{}, nil
	}

	var events []evmodel.EventModel
	if err := db.Where("event_id IN ?", all).Find(&events).Error; err != nil {
		return nil, err
	}
	var excs []evmodel.EventExceptionModel
	if err := db.Where("event_exception_event_id IN ?", all).Find(&excs).Error; err != nil {
		return nil, err
	}
	excByEvent := map[uuid.UUID][]evmodel.EventExceptionModel{}
	for _, e := range excs {
		excByEvent[e.EventExceptionEventID] = append(excByEvent[e.EventExceptionEventID], e)
	}

	out := []Conflict{}
	for i := range events {
		ev := &events[i]
		excs := excByEvent[ev.EventID]
		occs, err := recurrence.Expand(ev, excs, start.Add(-expansionPad(ev, excs)), end)
		if err != nil {
			return nil, err
		}
		for _, o := range occs {
			if !recurrence.Overlaps(o.Start, o.End, start, end) {
				continue
			}
			out = append(out, Conflict{
				ConflictSource: ConflictSourceEvent,
				ConflictRefID:  ev.EventID,
				ConflictLabel:  ev.EventTitle,
				ConflictStart:  o.Start,
				ConflictEnd:    o.End,
			})
		}
	}
	return out, nil
}
