// file: internals/features/calendar/events/service/event_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	avservice "sacel_backend/internals/features/calendar/availability/service"
)

func TestConflictCheckFailureDoesNotFailWrite(t *testing.T) {
	svc := &EventService{conflicts: avservice.NewConflictService(nil)}
	at := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	// interval terbalik membuat detector error sebelum menyentuh DB;
	// event sudah commit, jadi hasilnya nil advisory, bukan error request
	if got := svc.checkRequested(context.Background(), true, uuid.New(), at, at, uuid.New()); got != nil {
		t.Fatalf("failed conflict check should yield nil advisory list, got %v", got)
	}
}

func TestConflictCheckSkippedWhenNotRequested(t *testing.T) {
	svc := &EventService{conflicts: avservice.NewConflictService(nil)}
	at := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	if got := svc.checkRequested(context.Background(), false, uuid.New(), at, at.Add(time.Hour), uuid.New()); got != nil {
		t.Fatalf("unrequested check should return nil, got %v", got)
	}
}
