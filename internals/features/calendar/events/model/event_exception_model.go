// file: internals/features/calendar/events/model/event_exception_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// EventExceptionModel: override satu occurrence dari event berulang tanpa
// menyentuh rule-nya. Cancelled=true berarti occurrence dibatalkan; selain
// itu start/end pengganti dipakai. Unik per (event, original start).
type EventExceptionModel struct {
	EventExceptionID      uuid.UUID `gorm:"column:event_exception_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_exception_id"`
	EventExceptionEventID uuid.UUID `gorm:"column:event_exception_event_id;type:uuid;not null;uniqueIndex:uq_event_exception" json:"event_exception_event_id"`

	// start occurrence asli hasil ekspansi rule (UTC)
	EventExceptionOriginalStart time.Time `gorm:"column:event_exception_original_start;type:timestamptz;not null;uniqueIndex:uq_event_exception" json:"event_exception_original_start"`

	EventExceptionCancelled bool       `gorm:"column:event_exception_cancelled;not null;default:false" json:"event_exception_cancelled"`
	EventExceptionNewStart  *time.Time `gorm:"column:event_exception_new_start;type:timestamptz" json:"event_exception_new_start,omitempty"`
	EventExceptionNewEnd    *time.Time `gorm:"column:event_exception_new_end;type:timestamptz" json:"event_exception_new_end,omitempty"`

	EventExceptionCreatedAt time.Time `gorm:"column:event_exception_created_at;type:timestamptz;not null;default:now();autoCreateTime" json:"event_exception_created_at"`
}

func (EventExceptionModel) TableName() string { return "event_exceptions" }
