package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"lodge/config"
	"lodge/infras/otel"
	bookingService "lodge/internal/domains/booking/service"
	"lodge/shared/constant"
)

// Sweeper periodically settles ongoing bookings whose end time has passed.
type Sweeper struct {
	service bookingService.Booking
	cfg     *config.Config
	otel    otel.Otel
}

func NewSweeper(service bookingService.Booking, cfg *config.Config, otel otel.Otel) *Sweeper {
	return &Sweeper{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

// Run blocks until the context is cancelled, sweeping at the configured
// interval.
func (s *Sweeper) Run(ctx context.Context) {
	interval := time.Duration(s.cfg.Sweep.IntervalMinutes) * time.Minute

	log.Info().Dur("interval", interval).Msg("Starting booking sweeper")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stopping booking sweeper")

			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".SweepExpired")
	defer scope.End()

	swept, err := s.service.SweepExpired(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sweep expired bookings")

		return
	}

	if len(swept) > 0 {
		log.Info().Int("settled", len(swept)).Msg("Expired bookings settled")
	}
}
