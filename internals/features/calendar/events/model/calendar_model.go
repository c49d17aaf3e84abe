// file: internals/features/calendar/events/model/calendar_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// calendar_permission_enum ('read','comment','edit')
type CalendarPermission string

const (
	CalendarPermissionRead    CalendarPermission = "read"
	CalendarPermissionComment CalendarPermission = "comment"
	CalendarPermissionEdit    CalendarPermission = "edit"
)

// CalendarModel: koleksi event milik satu user. Ownership tidak pernah
// pindah; share hanya referensi.
type CalendarModel struct {
	CalendarID      uuid.UUID `gorm:"column:calendar_id;type:uuid;default:gen_random_uuid();primaryKey" json:"calendar_id"`
	CalendarOwnerID uuid.UUID `gorm:"column:calendar_owner_id;type:uuid;not null;index" json:"calendar_owner_id"`

	CalendarName  string  `gorm:"column:calendar_name;type:varchar(100);not null" json:"calendar_name"`
	CalendarDesc  *string `gorm:"column:calendar_desc;type:text" json:"calendar_desc,omitempty"`
	CalendarColor string  `gorm:"column:calendar_color;type:varchar(7);not null;default:'#3B82F6'" json:"calendar_color"`

	CalendarIsPrimary bool `gorm:"column:calendar_is_primary;not null;default:false" json:"calendar_is_primary"`
	CalendarIsVisible bool `gorm:"column:calendar_is_visible;not null;default:true" json:"calendar_is_visible"`

	CalendarTimezone string `gorm:"column:calendar_timezone;type:varchar(50);not null;default:'UTC'" json:"calendar_timezone"`

	CalendarCreatedAt time.Time      `gorm:"column:calendar_created_at;type:timestamptz;not null;default:now();autoCreateTime" json:"calendar_created_at"`
	CalendarUpdatedAt time.Time      `gorm:"column:calendar_updated_at;type:timestamptz;not null;default:now();autoUpdateTime" json:"calendar_updated_at"`
	CalendarDeletedAt gorm.DeletedAt `gorm:"column:calendar_deleted_at;index" json:"calendar_deleted_at,omitempty"`
}

func (CalendarModel) TableName() string { return "calendars" }

// Unik per (calendar, user) — UNIQUE constraint uq_calendar_share.
type CalendarShareModel struct {
	CalendarShareID         uuid.UUID `gorm:"column:calendar_share_id;type:uuid;default:gen_random_uuid();primaryKey" json:"calendar_share_id"`
	CalendarShareCalendarID uuid.UUID `gorm:"column:calendar_share_calendar_id;type:uuid;not null;uniqueIndex:uq_calendar_share" json:"calendar_share_calendar_id"`
	CalendarShareUserID     uuid.UUID `gorm:"column:calendar_share_user_id;type:uuid;not null;uniqueIndex:uq_calendar_share;index" json:"calendar_share_user_id"`

	CalendarSharePermission CalendarPermission `gorm:"column:calendar_share_permission;type:calendar_permission_enum;not null;default:'read'" json:"calendar_share_permission"`

	CalendarShareSharedAt time.Time `gorm:"column:calendar_share_shared_at;type:timestamptz;not null;default:now()" json:"calendar_share_shared_at"`
}

func (CalendarShareModel) TableName() string { return "calendar_shares" }
