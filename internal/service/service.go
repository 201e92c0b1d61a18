package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"signalboard/internal/alerting"
	"signalboard/internal/market"
	"signalboard/internal/poller"
	"signalboard/internal/scheduler"
	"signalboard/internal/signal"
)

// Service orchestrates the refresh loop and exposes the read surface the
// presentation layer consumes: the snapshot, per-symbol signals, and a
// manual refresh for the banner retry action.
type Service struct {
	scheduler *scheduler.Scheduler
	poller    *poller.Poller
	engine    *signal.Engine
	notifier  alerting.Notifier
	logger    zerolog.Logger

	inFlight atomic.Bool

	// last published signal per symbol, used only for flip notifications;
	// the engine itself stays memoryless.
	mu   sync.Mutex
	prev map[string]signal.Signal
}

// New constructs the board service. notifier may be nil.
func New(sched *scheduler.Scheduler, p *poller.Poller, engine *signal.Engine, notifier alerting.Notifier, logger zerolog.Logger) *Service {
	return &Service{
		scheduler: sched,
		poller:    p,
		engine:    engine,
		notifier:  notifier,
		logger:    logger.With().Str("component", "service").Logger(),
		prev:      make(map[string]signal.Signal),
	}
}

// Run begins the polling loop. The first cycle fires immediately.
func (s *Service) Run(ctx context.Context) error {
	if s.scheduler == nil {
		return fmt.Errorf("scheduler not configured")
	}
	return s.scheduler.Run(ctx, s.Tick)
}

// Tick runs one refresh cycle. Ticks that arrive while a cycle is still in
// flight are skipped rather than overlapped.
func (s *Service) Tick(ctx context.Context) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debug().Msg("previous cycle still in flight, skipping tick")
		return nil
	}
	defer s.inFlight.Store(false)

	snap := s.poller.Refresh(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if snap.Advisory != "" {
		s.logger.Warn().Str("advisory", snap.Advisory).Msg("cycle completed in degraded mode")
	}

	s.publishSignals(ctx, snap)
	return nil
}

// RefreshNow re-invokes acquisition immediately, outside the timer cadence.
func (s *Service) RefreshNow(ctx context.Context) *market.Snapshot {
	if err := s.Tick(ctx); err != nil {
		s.logger.Error().Err(err).Msg("manual refresh failed")
	}
	return s.poller.Snapshot()
}

// Snapshot returns the latest complete refresh result.
func (s *Service) Snapshot() *market.Snapshot {
	return s.poller.Snapshot()
}

// SignalFor derives the signal for one symbol from the current snapshot.
func (s *Service) SignalFor(symbol string) signal.Signal {
	return s.engine.SignalFor(s.poller.Snapshot(), symbol)
}

// publishSignals evaluates every tracked symbol and pushes a notification for
// each one whose signal changed since the previous cycle.
func (s *Service) publishSignals(ctx context.Context, snap *market.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, target := range market.Targets {
		current := s.engine.SignalFor(snap, target.Symbol)
		previous, seen := s.prev[target.Symbol]
		s.prev[target.Symbol] = current

		if s.notifier == nil || !seen || previous == current {
			continue
		}

		note := alerting.Notification{
			Symbol:   target.Symbol,
			Previous: previous,
			Current:  current,
			At:       snap.UpdatedAt,
		}
		if rec, ok := snap.Asset(target.Symbol); ok {
			note.Price = rec.CurrentPrice
			note.Change24h = rec.Change24h
		}
		if rate, ok := snap.Funding[target.Symbol]; ok {
			r := rate
			note.FundingRate = &r
		}

		s.logger.Info().
			Str("symbol", target.Symbol).
			Str("from", string(previous)).
			Str("to", string(current)).
			Msg("signal changed")

		if err := s.notifier.Notify(ctx, note); err != nil {
			s.logger.Error().Err(err).Str("symbol", target.Symbol).Msg("failed to dispatch signal alert")
		}
	}
}
