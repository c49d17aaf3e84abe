// file: internals/features/calendar/analytics/service/analytics_service_test.go
package service

import (
	"testing"
	"time"

	evmodel "sacel_backend/internals/features/calendar/events/model"
	schmodel "sacel_backend/internals/features/calendar/schedules/model"
	helper "sacel_backend/internals/helpers"
	"sacel_backend/internals/helpers/dbtime"
)

func TestTimeframeBoundsWeekStartsMonday(t *testing.T) {
	// 2024-03-06 adalah Rabu; minggu berjalan = Senin 03-04 .. Senin 03-11
	ref := time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC)
	start, end, err := TimeframeBounds("week", ref)
	if err != nil {
		t.Fatalf("TimeframeBounds: %v", err)
	}
	if start.Day() != 4 || start.Weekday() != time.Monday {
		t.Errorf("week start = %v, want Monday 2024-03-04", start)
	}
	if end.Sub(start) != 7*24*time.Hour {
		t.Errorf("week span = %v, want 168h", end.Sub(start))
	}
}

func TestTimeframeBoundsMonthAndYear(t *testing.T) {
	ref := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	start, end, err := TimeframeBounds("month", ref)
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	if start.Day() != 1 || start.Month() != time.February {
		t.Errorf("month start = %v", start)
	}
	if end.Month() != time.March {
		t.Errorf("month end = %v", end)
	}

	start, end, err = TimeframeBounds("year", ref)
	if err != nil {
		t.Fatalf("year: %v", err)
	}
	if start.Month() != time.January || start.Day() != 1 {
		t.Errorf("year start = %v", start)
	}
	if end.Year() != 2025 {
		t.Errorf("year end = %v", end)
	}
}

func TestTimeframeBoundsRejectsUnknown(t *testing.T) {
	_, _, err := TimeframeBounds("quarter", time.Now())
	if err == nil {
		t.Fatal("expected error for unknown timeframe")
	}
	se, ok := helper.AsServiceError(err)
	if !ok || se.Kind != helper.ErrKindValidation {
		t.Errorf("got %v, want VALIDATION_ERROR", err)
	}
}

func TestComputeResponseRates(t *testing.T) {
	statuses := []evmodel.AttendeeStatus{
		evmodel.AttendeeStatusAccepted,
		evmodel.AttendeeStatusAccepted,
		evmodel.AttendeeStatusDeclined,
		evmodel.AttendeeStatusTentative,
		evmodel.AttendeeStatusInvited, // belum merespon
	}
	st := ComputeResponseRates(statuses)

	if st.Invited != 5 || st.Accepted != 2 || st.Declined != 1 || st.Tentative != 1 || st.Pending != 1 {
		t.Fatalf("unexpected counts: %+v", st)
	}
	// 2 accepted dari 4 yang merespon
	if st.AcceptanceRate != 0.5 {
		t.Errorf("acceptance rate = %v, want 0.5", st.AcceptanceRate)
	}
}

func TestComputeResponseRatesNoResponses(t *testing.T) {
	st := ComputeResponseRates([]evmodel.AttendeeStatus{evmodel.AttendeeStatusInvited})
	if st.AcceptanceRate != 0 {
		t.Errorf("acceptance rate with no responses = %v, want 0", st.AcceptanceRate)
	}
}

func TestComputeScheduleStats(t *testing.T) {
	mk := func(dow int, start, end string, active bool) schmodel.ScheduleModel {
		s, _ := dbtime.Parse(start)
		e, _ := dbtime.Parse(end)
		return schmodel.ScheduleModel{
			ScheduleDayOfWeek: dow,
			ScheduleStartTime: s,
			ScheduleEndTime:   e,
			ScheduleIsActive:  active,
		}
	}
	schedules := []schmodel.ScheduleModel{
		mk(0, "08:00", "10:00", true),  // senin 120m
		mk(0, "13:00", "14:00", true),  // senin 60m
		mk(2, "09:00", "11:30", true),  // rabu 150m
		mk(4, "09:00", "10:00", false), // nonaktif, diabaikan
	}

	st := ComputeScheduleStats(schedules)
	if st.ActiveSchedules != 3 {
		t.Errorf("active = %d, want 3", st.ActiveSchedules)
	}
	if st.WeeklyMinutes != 330 {
		t.Errorf("weekly minutes = %d, want 330", st.WeeklyMinutes)
	}
	if st.MinutesByWeekday[0] != 180 || st.MinutesByWeekday[2] != 150 {
		t.Errorf("per-day minutes = %v", st.MinutesByWeekday)
	}
	if st.MinutesByWeekday[4] != 0 {
		t.Error("inactive schedule must not count")
	}
}
