// file: internals/features/calendar/analytics/service/analytics_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sacel_backend/internals/constants"
	evmodel "sacel_backend/internals/features/calendar/events/model"
	"sacel_backend/internals/features/calendar/recurrence"
	schmodel "sacel_backend/internals/features/calendar/schedules/model"
	helper "sacel_backend/internals/helpers"
)

/* =========================================================
   Analytics: rollup read-only per timeframe (week/month/year).
   Semua angka dihitung dari occurrence hasil ekspansi, bukan dari
   baris event mentah — event mingguan menyumbang 4-5x dalam sebulan.
========================================================= */

const (
	ScopePersonal = "personal"
	ScopeSystem   = "system"
)

type Summary struct {
	Scope          string    `json:"scope"`
	TimeframeStart time.Time `json:"timeframe_start"`
	TimeframeEnd   time.Time `json:"timeframe_end"`

	TotalOccurrences int            `json:"total_occurrences"`
	TotalMinutes     int            `json:"total_minutes"`
	ByType           map[string]int `json:"by_type"`
	ByPriority       map[string]int `json:"by_priority"`

	// 0=Senin .. 6=Minggu
	ByWeekday  [7]int `json:"by_weekday"`
	BusiestDay int    `json:"busiest_day"`

	Responses ResponseStats `json:"responses"`

	ScheduleUtilization ScheduleStats `json:"schedule_utilization"`
}

type ResponseStats struct {
	Invited   int `json:"invited"`
	Accepted  int `json:"accepted"`
	Declined  int `json:"declined"`
	Tentative int `json:"tentative"`
	Pending   int `json:"pending"`

	// accepted / (semua yang sudah merespon), 0 bila belum ada respon
	AcceptanceRate float64 `json:"acceptance_rate"`
}

type ScheduleStats struct {
	ActiveSchedules  int    `json:"active_schedules"`
	WeeklyMinutes    int    `json:"weekly_minutes"`
	MinutesByWeekday [7]int `json:"minutes_by_weekday"`
}

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

/* =========================================================
   Pure helpers
========================================================= */

// TimeframeBounds: [start,end) dari sebuah tanggal acuan.
// Minggu dimulai Senin.
func TimeframeBounds(timeframe string, ref time.Time) (time.Time, time.Time, error) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	switch timeframe {
	case constants.TimeframeWeek:
		start := day.AddDate(0, 0, -recurrence.WeekdayIndex(day))
		return start, start.AddDate(0, 0, 7), nil
	case constants.TimeframeMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(0, 1, 0), nil
	case constants.TimeframeYear:
		start := time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, helper.NewServiceError(helper.ErrKindValidation, "timeframe",
			"timeframe harus week, month, atau year")
	}
}

// ComputeResponseRates: agregasi status respon attendee (tanpa organizer).
func ComputeResponseRates(statuses []evmodel.AttendeeStatus) ResponseStats {
	st := ResponseStats{}
	for _, s := range statuses {
		st.Invited++
		switch s {
		case evmodel.AttendeeStatusAccepted:
			st.Accepted++
		case evmodel.AttendeeStatusDeclined:
			st.Declined++
		case evmodel.AttendeeStatusTentative:
			st.Tentative++
		default:
			st.Pending++
		}
	}
	responded := st.Accepted + st.Declined + st.Tentative
	if responded > 0 {
		st.AcceptanceRate = float64(st.Accepted) / float64(responded)
	}
	return st
}

// ComputeScheduleStats: menit mengajar per minggu dari schedule aktif.
func ComputeScheduleStats(schedules []schmodel.ScheduleModel) ScheduleStats {
	st := ScheduleStats{}
	for i := range schedules {
		sch := &schedules[i]
		if !sch.ScheduleIsActive {
			continue
		}
		minutes := sch.ScheduleEndTime.MinutesOfDay() - sch.ScheduleStartTime.MinutesOfDay()
		if minutes <= 0 {
			continue
		}
		st.ActiveSchedules++
		st.WeeklyMinutes += minutes
		if sch.ScheduleDayOfWeek >= 0 && sch.ScheduleDayOfWeek < 7 {
			st.MinutesByWeekday[sch.ScheduleDayOfWeek] += minutes
		}
	}
	return st
}

/* =========================================================
   Rollup
========================================================= */

func (s *AnalyticsService) Summarize(ctx context.Context, userID uuid.UUID, scope, timeframe string, ref time.Time) (*Summary, error) {
	if scope == "" {
		scope = ScopePersonal
	}
	if scope != ScopePersonal && scope != ScopeSystem {
		return nil, helper.NewServiceError(helper.ErrKindValidation, "scope",
			"scope harus personal atau system")
	}
	start, end, err := TimeframeBounds(timeframe, ref)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	sum := &Summary{
		Scope:          scope,
		TimeframeStart: start,
		TimeframeEnd:   end,
		ByType:         map[string]int{},
		ByPriority:     map[string]int{},
	}

	var events []evmodel.EventModel
	if scope == ScopeSystem {
		if err := db.Find(&events).Error; err != nil {
			return nil, err
		}
	} else {
		// event yang dibuat atau dihadiri (declined tidak dihitung beban)
		var ids []uuid.UUID
		if err := db.Model(&evmodel.EventModel{}).
			Where("event_creator_id = ?", userID).
			Pluck("event_id", &ids).Error; err != nil {
			return nil, err
		}
		var attending []uuid.UUID
		if err := db.Model(&evmodel.EventAttendeeModel{}).
			Where("event_attendee_user_id = ? AND event_attendee_status = ?",
				userID, evmodel.AttendeeStatusAccepted).
			Pluck("event_attendee_event_id", &attending).Error; err != nil {
			return nil, err
		}
		seen := map[uuid.UUID]struct{}{}
		all := []uuid.UUID{}
		for _, id := range append(ids, attending...) {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				all = append(all, id)
			}
		}
		if len(all) > 0 {
			if err := db.Where("event_id IN ?", all).Find(&events).Error; err != nil {
				return nil, err
			}
		}
	}

	if len(events) > 0 {
		eventIDs := make([]uuid.UUID, 0, len(events))
		for i := range events {
			eventIDs = append(eventIDs, events[i].EventID)
		}
		var excs []evmodel.EventExceptionModel
		if err := db.Where("event_exception_event_id IN ?", eventIDs).Find(&excs).Error; err != nil {
			return nil, err
		}
		excByEvent := map[uuid.UUID][]evmodel.EventExceptionModel{}
		for _, e := range excs {
			excByEvent[e.EventExceptionEventID] = append(excByEvent[e.EventExceptionEventID], e)
		}

		for i := range events {
			ev := &events[i]
			occs, err := recurrence.Expand(ev, excByEvent[ev.EventID], start, end)
			if err != nil {
				return nil, err
			}
			for _, o := range occs {
				sum.TotalOccurrences++
				sum.TotalMinutes += int(o.End.Sub(o.Start) / time.Minute)
				sum.ByType[string(ev.EventType)]++
				sum.ByPriority[string(ev.EventPriority)]++
				sum.ByWeekday[recurrence.WeekdayIndex(o.Start)]++
			}
		}
		for d := 1; d < 7; d++ {
			if sum.ByWeekday[d] > sum.ByWeekday[sum.BusiestDay] {
				sum.BusiestDay = d
			}
		}
	}

	// respon undangan (organizer sendiri tidak dihitung)
	var statuses []evmodel.AttendeeStatus
	respQ := db.Model(&evmodel.EventAttendeeModel{}).
		Joins("JOIN events ON event_id = event_attendee_event_id").
		Where("event_attendee_user_id <> event_creator_id AND event_start >= ? AND event_start < ?", start, end)
	if scope == ScopePersonal {
		respQ = respQ.Where("event_creator_id = ?", userID)
	}
	if err := respQ.Pluck("event_attendee_status", &statuses).Error; err != nil {
		return nil, err
	}
	sum.Responses = ComputeResponseRates(statuses)

	// beban mengajar mingguan
	var schedules []schmodel.ScheduleModel
	schQ := db.Where("schedule_is_active = TRUE")
	if scope == ScopePersonal {
		schQ = schQ.Where("schedule_teacher_id = ?", userID)
	}
	if err := schQ.Find(&schedules).Error; err != nil {
		return nil, err
	}
	sum.ScheduleUtilization = ComputeScheduleStats(schedules)

	return sum, nil
}
