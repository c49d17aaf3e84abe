// file: internals/constants/calendar.go
package constants

// =========================
// Event enums (selaras dengan CHECK constraint di DB)
// =========================

const (
	EventTypeClass      = "class"
	EventTypeMeeting    = "meeting"
	EventTypeExam       = "exam"
	EventTypeAssignment = "assignment"
	EventTypePersonal   = "personal"
	EventTypeHoliday    = "holiday"
)

var AllEventTypes = []string{
	EventTypeClass,
	EventTypeMeeting,
	EventTypeExam,
	EventTypeAssignment,
	EventTypePersonal,
	EventTypeHoliday,
}

func IsValidEventType(t string) bool {
	for _, v := range AllEventTypes {
		if v == t {
			return true
		}
	}
	return false
}

const (
	EventPriorityNormal = "normal"
	EventPriorityHigh   = "high"
	EventPriorityUrgent = "urgent"
)

var AllEventPriorities = []string{
	EventPriorityNormal,
	EventPriorityHigh,
	EventPriorityUrgent,
}

func IsValidEventPriority(p string) bool {
	for _, v := range AllEventPriorities {
		if v == p {
			return true
		}
	}
	return false
}

// =========================
// Attendee statuses
// =========================

const (
	AttendeeStatusInvited    = "invited"
	AttendeeStatusAccepted   = "accepted"
	AttendeeStatusDeclined   = "declined"
	AttendeeStatusTentative  = "tentative"
	AttendeeStatusNoResponse = "no_response" // default tampilan, bukan target transisi
)

const (
	AttendeeRoleOrganizer = "organizer"
	AttendeeRoleAttendee  = "attendee"
	AttendeeRoleOptional  = "optional"
)

// =========================
// Reminder channels
// =========================

const (
	ReminderChannelNotification = "notification"
	ReminderChannelEmail        = "email"
	ReminderChannelSMS          = "sms"
)

var AllReminderChannels = []string{
	ReminderChannelNotification,
	ReminderChannelEmail,
	ReminderChannelSMS,
}

func IsValidReminderChannel(ch string) bool {
	for _, v := range AllReminderChannels {
		if v == ch {
			return true
		}
	}
	return false
}

// Default reminder: notifikasi 60 menit sebelum mulai
const DefaultReminderMinutesBefore = 60

// =========================
// Edit/delete scope untuk event berulang
// =========================

const (
	EventScopeSingleOccurrence = "single_occurrence"
	EventScopeAllOccurrences   = "all_occurrences"
)

// =========================
// Calendar share permissions
// =========================

const (
	CalendarPermissionRead    = "read"
	CalendarPermissionComment = "comment"
	CalendarPermissionEdit    = "edit"
)

var AllCalendarPermissions = []string{
	CalendarPermissionRead,
	CalendarPermissionComment,
	CalendarPermissionEdit,
}

// =========================
// Analytics timeframes
// =========================

const (
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
	TimeframeYear  = "year"
)
