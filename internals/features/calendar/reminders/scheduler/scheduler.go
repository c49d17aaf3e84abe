// file: internals/features/calendar/reminders/scheduler/scheduler.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"sacel_backend/internals/features/calendar/reminders/service"
)

// Scheduler: membungkus cron supaya dispatcher jalan periodik.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// Start: daftarkan tick dispatcher dengan interval dari config, lalu
// jalankan di background. Tick pakai timeout sendiri supaya satu putaran
// macet tidak menahan putaran berikutnya selamanya.
func Start(disp *service.DispatcherService, tick time.Duration, log zerolog.Logger) (*Scheduler, error) {
	c := cron.New()
	spec := fmt.Sprintf("@every %s", tick)
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), tick)
		defer cancel()
		if _, err := disp.Tick(ctx); err != nil {
			log.Error().Err(err).Msg("tick dispatcher error")
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Info().Str("interval", tick.String()).Msg("reminder dispatcher aktif")
	return &Scheduler{cron: c, log: log}, nil
}

// Stop: berhenti menerima tick baru, tunggu tick berjalan selesai.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("reminder dispatcher berhenti")
}
