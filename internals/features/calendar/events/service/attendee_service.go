// file: internals/features/calendar/events/service/attendee_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sacel_backend/internals/features/calendar/events/dto"
	"sacel_backend/internals/features/calendar/events/model"
	helper "sacel_backend/internals/helpers"
)

type AttendeeService struct {
	db *gorm.DB
}

func NewAttendeeService(db *gorm.DB) *AttendeeService {
	return &AttendeeService{db: db}
}

/* =========================================================
   State machine respon undangan
   invited → accepted | declined | tentative
   tentative → accepted | declined (belum final)
   accepted & declined terminal; mengulang respon yang sama bukan error,
   hanya me-refresh responded_at. Tidak ada jalan kembali ke invited.
========================================================= */

func CanTransition(from, to model.AttendeeStatus) bool {
	switch to {
	case model.AttendeeStatusAccepted, model.AttendeeStatusDeclined, model.AttendeeStatusTentative:
	default:
		return false
	}
	switch from {
	case model.AttendeeStatusInvited:
		return true
	case model.AttendeeStatusTentative:
		return true
	case model.AttendeeStatusAccepted, model.AttendeeStatusDeclined:
		return to == from
	default:
		return false
	}
}

/* =========================================================
   INVITE
   Hanya creator / organizer. Mengundang user yang sudah punya baris
   attendee = Conflict.
========================================================= */

func (s *AttendeeService) Invite(ctx context.Context, actorID, eventID uuid.UUID, req *dto.InviteAttendeesRequest) ([]model.EventAttendeeModel, error) {
	var ev model.EventModel
	if err := s.db.WithContext(ctx).First(&ev, "event_id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewServiceError(helper.ErrKindNotFound, "event_id", "event tidak ditemukan")
		}
		return nil, err
	}
	if ev.EventCreatorID != actorID {
		isOrganizer, err := s.hasRole(ctx, eventID, actorID, model.AttendeeRoleOrganizer)
		if err != nil {
			return nil, err
		}
		if !isOrganizer {
			return nil, helper.NewServiceError(helper.ErrKindNotInvited, "", "hanya organizer yang boleh mengundang")
		}
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&model.EventAttendeeModel{}).
		Where("event_attendee_event_id = ? AND event_attendee_user_id IN ?", eventID, req.AttendeeUserIDs).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, helper.NewServiceError(helper.ErrKindConflict, "attendee_user_ids", "sebagian user sudah diundang ke event ini")
	}

	now := time.Now().UTC()
	rows := make([]model.EventAttendeeModel, 0, len(req.AttendeeUserIDs))
	for _, uid := range req.AttendeeUserIDs {
		rows = append(rows, model.EventAttendeeModel{
			EventAttendeeEventID:   eventID,
			EventAttendeeUserID:    uid,
			EventAttendeeStatus:    model.AttendeeStatusInvited,
			EventAttendeeRole:      model.AttendeeRole(req.AttendeeRole),
			EventAttendeeInvitedAt: now,
		})
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error; err != nil {
		return nil, err
	}
	return s.List(ctx, eventID)
}

/* =========================================================
   RESPOND
   User yang tidak punya baris attendee = tidak diundang → NotInvited,
   bukan auto-invite.
========================================================= */

func (s *AttendeeService) Respond(ctx context.Context, userID, eventID uuid.UUID, req *dto.RespondRequest) (*model.EventAttendeeModel, error) {
	var att model.EventAttendeeModel
	err := s.db.WithContext(ctx).
		First(&att, "event_attendee_event_id = ? AND event_attendee_user_id = ?", eventID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewServiceError(helper.ErrKindNotInvited, "", "kamu tidak diundang ke event ini")
		}
		return nil, err
	}

	target := model.AttendeeStatus(req.AttendeeStatus)
	if !CanTransition(att.EventAttendeeStatus, target) {
		return nil, helper.NewServiceError(helper.ErrKindValidation, "attendee_status", "transisi status tidak valid")
	}

	now := time.Now().UTC()
	att.EventAttendeeStatus = target
	att.EventAttendeeRespondedAt = &now
	if req.AttendeeNotes != nil {
		att.EventAttendeeNotes = req.AttendeeNotes
	}

	if err := s.db.WithContext(ctx).Model(&model.EventAttendeeModel{}).
		Where("event_attendee_id = ?", att.EventAttendeeID).
		Updates(map[string]any{
			"event_attendee_status":       att.EventAttendeeStatus,
			"event_attendee_responded_at": att.EventAttendeeRespondedAt,
			"event_attendee_notes":        att.EventAttendeeNotes,
		}).Error; err != nil {
		return nil, err
	}
	return &att, nil
}

func (s *AttendeeService) List(ctx context.Context, eventID uuid.UUID) ([]model.EventAttendeeModel, error) {
	var rows []model.EventAttendeeModel
	err := s.db.WithContext(ctx).
		Where("event_attendee_event_id = ?", eventID).
		Order("event_attendee_invited_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *AttendeeService) hasRole(ctx context.Context, eventID, userID uuid.UUID, role model.AttendeeRole) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.EventAttendeeModel{}).
		Where("event_attendee_event_id = ? AND event_attendee_user_id = ? AND event_attendee_role = ?",
			eventID, userID, role).
		Count(&n).Error
	return n > 0, err
}
