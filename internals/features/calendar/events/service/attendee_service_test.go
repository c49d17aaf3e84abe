// file: internals/features/calendar/events/service/attendee_service_test.go
package service

import (
	"testing"

	"sacel_backend/internals/features/calendar/events/model"
)

func TestCanTransitionFromInvited(t *testing.T) {
	for _, to := range []model.AttendeeStatus{
		model.AttendeeStatusAccepted,
		model.AttendeeStatusDeclined,
		model.AttendeeStatusTentative,
	} {
		if !CanTransition(model.AttendeeStatusInvited, to) {
			t.Errorf("invited -> %s should be allowed", to)
		}
	}
}

func TestCanTransitionTentativeIsNotFinal(t *testing.T) {
	for _, to := range []model.AttendeeStatus{
		model.AttendeeStatusAccepted,
		model.AttendeeStatusDeclined,
	} {
		if !CanTransition(model.AttendeeStatusTentative, to) {
			t.Errorf("tentative -> %s should be allowed", to)
		}
	}
}

func TestCanTransitionAcceptedAndDeclinedAreTerminal(t *testing.T) {
	if CanTransition(model.AttendeeStatusAccepted, model.AttendeeStatusDeclined) {
		t.Error("accepted -> declined should be rejected")
	}
	if CanTransition(model.AttendeeStatusAccepted, model.AttendeeStatusTentative) {
		t.Error("accepted -> tentative should be rejected")
	}
	if CanTransition(model.AttendeeStatusDeclined, model.AttendeeStatusAccepted) {
		t.Error("declined -> accepted should be rejected")
	}
	if CanTransition(model.AttendeeStatusDeclined, model.AttendeeStatusTentative) {
		t.Error("declined -> tentative should be rejected")
	}
}

func TestCanTransitionSameResponseIsIdempotent(t *testing.T) {
	for _, st := range []model.AttendeeStatus{
		model.AttendeeStatusAccepted,
		model.AttendeeStatusDeclined,
		model.AttendeeStatusTentative,
	} {
		if !CanTransition(st, st) {
			t.Errorf("%s -> %s (re-apply) should be allowed", st, st)
		}
	}
}

func TestCanTransitionNeverBackToInvited(t *testing.T) {
	for _, from := range []model.AttendeeStatus{
		model.AttendeeStatusInvited,
		model.AttendeeStatusAccepted,
		model.AttendeeStatusDeclined,
		model.AttendeeStatusTentative,
	} {
		if CanTransition(from, model.AttendeeStatusInvited) {
			t.Errorf("%s -> invited should be rejected", from)
		}
	}
}

func TestCanTransitionRejectsUnknownStatus(t *testing.T) {
	if CanTransition(model.AttendeeStatus("ghost"), model.AttendeeStatusAccepted) {
		t.Error("unknown from-status should be rejected")
	}
	if CanTransition(model.AttendeeStatusInvited, model.AttendeeStatus("maybe")) {
		t.Error("unknown to-status should be rejected")
	}
}
