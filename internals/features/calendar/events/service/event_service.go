// file: internals/features/calendar/events/service/event_service.go
package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sacel_backend/internals/constants"
	avservice "sacel_backend/internals/features/calendar/availability/service"
	"sacel_backend/internals/features/calendar/events/dto"
	"sacel_backend/internals/features/calendar/events/model"
	"sacel_backend/internals/features/calendar/recurrence"
	helper "sacel_backend/internals/helpers"
)

type EventService struct {
	db        *gorm.DB
	conflicts *avservice.ConflictService
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db, conflicts: avservice.NewConflictService(db)}
}

/* =========================================================
   CREATE
   Satu transaksi: event + attendee (creator=organizer, undangan=invited)
   + reminder (default: notification 60 menit bila tidak dikirim).
========================================================= */

func (s *EventService) Create(ctx context.Context, creatorID uuid.UUID, req *dto.CreateEventRequest) (*model.EventModel, []avservice.Conflict, error) {
	if err := validateInterval(req.EventStart, req.EventEnd); err != nil {
		return nil, nil, err
	}
	if err := recurrence.ValidateRule(req.EventRecurrence); err != nil {
		return nil, nil, err
	}
	if _, err := time.LoadLocation(req.EventTimezone); err != nil {
		return nil, nil, helper.NewServiceError(helper.ErrKindValidation, "event_timezone", "zona waktu tidak dikenal")
	}

	ev := req.ToModel(creatorID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ev).Error; err != nil {
			return err
		}

		// creator selalu jadi attendee organizer yang sudah accepted
		now := time.Now().UTC()
		attendees := []model.EventAttendeeModel{{
			EventAttendeeEventID:     ev.EventID,
			EventAttendeeUserID:      creatorID,
			EventAttendeeStatus:      model.AttendeeStatusAccepted,
			EventAttendeeRole:        model.AttendeeRoleOrganizer,
			EventAttendeeInvitedAt:   now,
			EventAttendeeRespondedAt: &now,
		}}
		for _, uid := range req.AttendeeUserIDs {
			if uid == creatorID {
				continue
			}
			attendees = append(attendees, model.EventAttendeeModel{
				EventAttendeeEventID:   ev.EventID,
				EventAttendeeUserID:    uid,
				EventAttendeeStatus:    model.AttendeeStatusInvited,
				EventAttendeeRole:      model.AttendeeRoleAttendee,
				EventAttendeeInvitedAt: now,
			})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&attendees).Error; err != nil {
			return err
		}

		reminders := make([]model.EventReminderModel, 0, len(req.Reminders))
		for _, rr := range req.Reminders {
			reminders = append(reminders, model.EventReminderModel{
				EventReminderEventID:       ev.EventID,
				EventReminderUserID:        rr.EventReminderUserID,
				EventReminderChannel:       model.ReminderChannel(rr.EventReminderChannel),
				EventReminderMinutesBefore: rr.EventReminderMinutesBefore,
				EventReminderIsActive:      true,
			})
		}
		if len(reminders) == 0 {
			reminders = append(reminders, model.EventReminderModel{
				EventReminderEventID:       ev.EventID,
				EventReminderChannel:       model.ReminderChannelNotification,
				EventReminderMinutesBefore: constants.DefaultReminderMinutesBefore,
				EventReminderIsActive:      true,
			})
		}
		return tx.Create(&reminders).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return ev, s.checkRequested(ctx, req.CheckConflicts, creatorID, ev.EventStart, ev.EventEnd, ev.EventID), nil
}

/* =========================================================
   GET
========================================================= */

func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*model.EventModel, error) {
	var ev model.EventModel
	if err := s.db.WithContext(ctx).First(&ev, "event_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewServiceError(helper.ErrKindNotFound, "event_id", "event tidak ditemukan")
		}
		return nil, err
	}
	return &ev, nil
}

/* =========================================================
   UPDATE
   Optimistic lock: UPDATE ... WHERE event_revision = expected; 0 baris
   berarti ada penulis lain yang menang → StaleWrite, klien reload dulu.
========================================================= */

func (s *EventService) Update(ctx context.Context, actorID, eventID uuid.UUID, req *dto.UpdateEventRequest) (*model.EventModel, []avservice.Conflict, error) {
	ev, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	if ev.EventCreatorID != actorID {
		if ok, err := s.hasEditShare(ctx, ev, actorID); err != nil {
			return nil, nil, err
		} else if !ok {
			return nil, nil, helper.NewServiceError(helper.ErrKindNotInvited, "", "bukan pemilik event ini")
		}
	}

	if req.Scope == constants.EventScopeSingleOccurrence && ev.IsRecurring() {
		return s.updateSingleOccurrence(ctx, ev, req)
	}
	// single_occurrence pada event non-berulang = update biasa
	return s.updateAllOccurrences(ctx, ev, req)
}

// updateSingleOccurrence: event berulang di-edit satu kemunculan saja —
// rule tidak disentuh, yang ditulis adalah exception override.
func (s *EventService) updateSingleOccurrence(ctx context.Context, ev *model.EventModel, req *dto.UpdateEventRequest) (*model.EventModel, []avservice.Conflict, error) {
	if req.OccurrenceStart == nil {
		return nil, nil, helper.NewServiceError(helper.ErrKindValidation, "occurrence_start", "occurrence_start wajib untuk scope single_occurrence")
	}

	orig := req.OccurrenceStart.UTC()
	newStart := orig
	newEnd := orig.Add(ev.Duration())
	if v, ok := req.EventStart.Get(); ok && v != nil {
		newStart = v.UTC()
	}
	if v, ok := req.EventEnd.Get(); ok && v != nil {
		newEnd = v.UTC()
	} else if v, ok := req.EventStart.Get(); ok && v != nil {
		newEnd = v.UTC().Add(ev.Duration())
	}
	if err := validateInterval(newStart, newEnd); err != nil {
		return nil, nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpRevision(tx, ev, req.ExpectedRevision); err != nil {
			return err
		}
		exc := model.EventExceptionModel{
			EventExceptionEventID:       ev.EventID,
			EventExceptionOriginalStart: orig,
			EventExceptionNewStart:      &newStart,
			EventExceptionNewEnd:        &newEnd,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "event_exception_event_id"},
				{Name: "event_exception_original_start"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"event_exception_cancelled",
				"event_exception_new_start",
				"event_exception_new_end",
			}),
		}).Create(&exc).Error
	})
	if err != nil {
		return nil, nil, err
	}

	updated, err := s.GetByID(ctx, ev.EventID)
	if err != nil {
		return nil, nil, err
	}
	return updated, s.checkRequested(ctx, req.CheckConflicts, ev.EventCreatorID, newStart, newEnd, ev.EventID), nil
}

// updateAllOccurrences: patch field-field event. Geser event_start pada event
// berulang = geser anchor seri; exception lama di-drop karena key-nya
// (original start) sudah tidak ada di ekspansi baru.
func (s *EventService) updateAllOccurrences(ctx context.Context, ev *model.EventModel, req *dto.UpdateEventRequest) (*model.EventModel, []avservice.Conflict, error) {
	patch := map[string]any{}
	anchorMoved := false

	if v, ok := req.EventCalendarID.Get(); ok {
		patch["event_calendar_id"] = v
	}
	if v, ok := req.EventTitle.Get(); ok {
		if v == nil || *v == "" {
			return nil, nil, helper.NewServiceError(helper.ErrKindValidation, "event_title", "judul tidak boleh kosong")
		}
		patch["event_title"] = *v
	}
	if v, ok := req.EventDesc.Get(); ok {
		patch["event_desc"] = v
	}
	if v, ok := req.EventLocation.Get(); ok {
		patch["event_location"] = v
	}

	newStart, newEnd := ev.EventStart, ev.EventEnd
	if v, ok := req.EventStart.Get(); ok {
		if v == nil {
			return nil, nil, helper.NewServiceError(helper.ErrKindValidation, "event_start", "event_start tidak boleh null")
		}
		newStart = v.UTC()
		patch["event_start"] = newStart
		anchorMoved = true
	}
	if v, ok := req.EventEnd.Get(); ok {
		if v == nil {
			return nil, nil, helper.NewServiceError(helper.ErrKindValidation, "event_end", "event_end tidak boleh null")
		}
		newEnd = v.UTC()
		patch["event_end"] = newEnd
	} else if anchorMoved {
		// durasi dipertahankan kalau hanya start yang digeser
		newEnd = newStart.Add(ev.Duration())
		patch["event_end"] = newEnd
	}
	if err := validateInterval(newStart, newEnd); err != nil {
		return nil, nil, err
	}

	if v, ok := req.EventTimezone.Get(); ok {
		if v == nil {
			return nil, nil, helper.NewServiceError(helper.ErrKindValidation, "event_timezone", "event_timezone tidak boleh null")
		}
		if _, err := time.LoadLocation(*v); err != nil {
			return nil, nil, helper.NewServiceError(helper.ErrKindValidation, "event_timezone", "zona waktu tidak dikenal")
		}
		patch["event_timezone"] = *v
	}
	if v, ok := req.EventAllDay.Get(); ok && v != nil {
		patch["event_all_day"] = *v
	}
	if v, ok := req.EventType.Get(); ok {
		if v == nil || !constants.IsValidEventType(*v) {
			return nil, nil, helper.NewServiceError(helper.ErrKindValidation, "event_type", "tipe event tidak dikenal")
		}
		patch["event_type"] = *v
	}
	if v, ok := req.EventPriority.Get(); ok {
		if v == nil || !constants.IsValidEventPriority(*v) {
			return nil, nil, helper.NewServiceError(helper.ErrKindValidation, "event_priority", "prioritas tidak dikenal")
		}
		patch["event_priority"] = *v
	}

	ruleChanged := false
	if v, ok := req.EventRecurrence.Get(); ok {
		if err := recurrence.ValidateRule(v); err != nil {
			return nil, nil, err
		}
		ruleChanged = true
		if v == nil {
			patch["event_recurrence"] = nil
		} else {
			patch["event_recurrence"] = datatypes.NewJSONType(*v)
		}
	}
	if v, ok := req.EventMetadata.Get(); ok {
		if v == nil {
			patch["event_metadata"] = nil
		} else {
			patch["event_metadata"] = datatypes.JSONMap(*v)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpRevision(tx, ev, req.ExpectedRevision, patch); err != nil {
			return err
		}
		if anchorMoved || ruleChanged {
			// exception di-key oleh original start; setelah anchor/rule
			// berubah key itu tidak pernah match lagi
			return tx.Where("event_exception_event_id = ?", ev.EventID).
				Delete(&model.EventExceptionModel{}).Error
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	updated, err := s.GetByID(ctx, ev.EventID)
	if err != nil {
		return nil, nil, err
	}
	return updated, s.checkRequested(ctx, req.CheckConflicts, ev.EventCreatorID, newStart, newEnd, ev.EventID), nil
}

/* =========================================================
   DELETE
========================================================= */

func (s *EventService) Delete(ctx context.Context, actorID, eventID uuid.UUID, req *dto.DeleteEventRequest) error {
	ev, err := s.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if ev.EventCreatorID != actorID {
		if ok, err := s.hasEditShare(ctx, ev, actorID); err != nil {
			return err
		} else if !ok {
			return helper.NewServiceError(helper.ErrKindNotInvited, "", "bukan pemilik event ini")
		}
	}

	if req != nil && req.Scope == constants.EventScopeSingleOccurrence {
		if !ev.IsRecurring() {
			return helper.NewServiceError(helper.ErrKindValidation, "scope", "single_occurrence hanya untuk event berulang")
		}
		if req.OccurrenceStart == nil {
			return helper.NewServiceError(helper.ErrKindValidation, "occurrence_start", "occurrence_start wajib untuk scope single_occurrence")
		}
		exc := model.EventExceptionModel{
			EventExceptionEventID:       ev.EventID,
			EventExceptionOriginalStart: req.OccurrenceStart.UTC(),
			EventExceptionCancelled:     true,
		}
		return s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "event_exception_event_id"},
				{Name: "event_exception_original_start"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"event_exception_cancelled",
				"event_exception_new_start",
				"event_exception_new_end",
			}),
		}).Create(&exc).Error
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_reminder_event_id = ?", ev.EventID).
			Delete(&model.EventReminderModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_attendee_event_id = ?", ev.EventID).
			Delete(&model.EventAttendeeModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.EventModel{}, "event_id = ?", ev.EventID).Error
	})
}

/* =========================================================
   RANGE VIEW
   Gabungan event milik sendiri + diundang + dari calendar yang di-share,
   diekspansi per occurrence lalu diurutkan naik by start.
========================================================= */

func (s *EventService) ListOccurrences(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]dto.OccurrenceResponse, error) {
	if err := validateInterval(from, to); err != nil {
		return nil, err
	}

	ids, err := s.visibleEventIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []dto.OccurrenceResponse{}, nil
	}

	var events []model.EventModel
	if err := s.db.WithContext(ctx).
		Where("event_id IN ?", ids).
		Find(&events).Error; err != nil {
		return nil, err
	}

	var excs []model.EventExceptionModel
	if err := s.db.WithContext(ctx).
		Where("event_exception_event_id IN ?", ids).
		Find(&excs).Error; err != nil {
		return nil, err
	}
	excByEvent := map[uuid.UUID][]model.EventExceptionModel{}
	for _, e := range excs {
		excByEvent[e.EventExceptionEventID] = append(excByEvent[e.EventExceptionEventID], e)
	}

	out := []dto.OccurrenceResponse{}
	for i := range events {
		ev := &events[i]
		occs, err := recurrence.Expand(ev, excByEvent[ev.EventID], from, to)
		if err != nil {
			return nil, err
		}
		for _, o := range occs {
			out = append(out, dto.OccurrenceResponse{
				EventID:         ev.EventID,
				EventTitle:      ev.EventTitle,
				EventType:       string(ev.EventType),
				OccurrenceStart: o.Start,
				OccurrenceEnd:   o.End,
				Overridden:      o.Overridden,
				Recurring:       ev.IsRecurring(),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurrenceStart.Equal(out[j].OccurrenceStart) {
			return out[i].OccurrenceStart.Before(out[j].OccurrenceStart)
		}
		return out[i].EventID.String() < out[j].EventID.String()
	})
	return out, nil
}

// visibleEventIDs: event yang dibuat user, yang mengundang user (belum
// declined), atau yang berada di calendar yang di-share ke user.
func (s *EventService) visibleEventIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	db := s.db.WithContext(ctx)
	seen := map[uuid.UUID]struct{}{}
	var ids []uuid.UUID

	add := func(batch []uuid.UUID) {
		for _, id := range batch {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	var own []uuid.UUID
	if err := db.Model(&model.EventModel{}).
		Where("event_creator_id = ?", userID).
		Pluck("event_id", &own).Error; err != nil {
		return nil, err
	}
	add(own)

	var invited []uuid.UUID
	if err := db.Model(&model.EventAttendeeModel{}).
		Where("event_attendee_user_id = ? AND event_attendee_status <> ?", userID, model.AttendeeStatusDeclined).
		Pluck("event_attendee_event_id", &invited).Error; err != nil {
		return nil, err
	}
	add(invited)

	var shared []uuid.UUID
	if err := db.Model(&model.EventModel{}).
		Joins("JOIN calendar_shares ON calendar_share_calendar_id = event_calendar_id").
		Where("calendar_share_user_id = ?", userID).
		Pluck("event_id", &shared).Error; err != nil {
		return nil, err
	}
	add(shared)

	return ids, nil
}

/* =========================================================
   internal
========================================================= */

// checkRequested: jalankan conflict detector kalau caller memintanya.
// Hasilnya advisory — dikembalikan berdampingan dengan event. Tulisannya
// sendiri sudah commit, jadi kegagalan check tidak boleh membuat request
// terlihat gagal: cukup dicatat, dan nil menandakan check tidak selesai.
func (s *EventService) checkRequested(ctx context.Context, requested bool, ownerID uuid.UUID, start, end time.Time, selfID uuid.UUID) []avservice.Conflict {
	if !requested {
		return nil
	}
	conflicts, err := s.conflicts.FindConflicts(ctx, ownerID, start, end, &selfID)
	if err != nil {
		log.Printf("[EVENTS] ⚠️ conflict check gagal untuk event %s: %v", selfID, err)
		return nil
	}
	return conflicts
}

// hasEditShare: event menempel ke calendar yang di-share dengan permission edit?
func (s *EventService) hasEditShare(ctx context.Context, ev *model.EventModel, userID uuid.UUID) (bool, error) {
	if ev.EventCalendarID == nil {
		return false, nil
	}
	var n int64
	err := s.db.WithContext(ctx).Model(&model.CalendarShareModel{}).
		Where("calendar_share_calendar_id = ? AND calendar_share_user_id = ? AND calendar_share_permission = ?",
			*ev.EventCalendarID, userID, model.CalendarPermissionEdit).
		Count(&n).Error
	return n > 0, err
}

// bumpRevision: guard optimistic lock + apply patch dalam satu UPDATE.
func bumpRevision(tx *gorm.DB, ev *model.EventModel, expected int, extra ...map[string]any) error {
	patch := map[string]any{"event_revision": gorm.Expr("event_revision + 1")}
	if len(extra) > 0 {
		for k, v := range extra[0] {
			patch[k] = v
		}
	}
	res := tx.Model(&model.EventModel{}).
		Where("event_id = ? AND event_revision = ?", ev.EventID, expected).
		Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.NewServiceError(helper.ErrKindStaleWrite, "expected_revision",
			"event sudah berubah sejak terakhir dibaca, muat ulang dulu")
	}
	return nil
}

func validateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return helper.NewServiceError(helper.ErrKindInvalidInterval, "event_end",
			"waktu selesai harus setelah waktu mulai")
	}
	return nil
}
