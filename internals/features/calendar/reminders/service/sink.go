// file: internals/features/calendar/reminders/service/sink.go
package service

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSink: sink default — menulis kiriman ke log terstruktur. Integrasi
// push/email tinggal mengganti sink tanpa menyentuh dispatcher.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Deliver(_ context.Context, d Delivery) error {
	s.log.Info().
		Str("event_id", d.EventID.String()).
		Str("event_title", d.EventTitle).
		Str("user_id", d.UserID.String()).
		Str("channel", string(d.Channel)).
		Time("occurrence_start", d.OccurrenceStart).
		Int("minutes_before", d.MinutesBefore).
		Msg("reminder terkirim")
	return nil
}
