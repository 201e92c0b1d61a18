package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"signalboard/internal/alerting"
	"signalboard/internal/config"
	"signalboard/internal/fetcher"
	"signalboard/internal/funding"
	"signalboard/internal/poller"
	"signalboard/internal/scheduler"
	"signalboard/internal/service"
	sig "signalboard/internal/signal"
)

// refreshInterval is the fixed board cadence. Consumers depend on it, so it
// is not a configuration knob.
const refreshInterval = 5 * time.Second

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newPoller() *poller.Poller {
	cg := fetcher.NewCoinGecko(fetcher.Options{
		BaseURL:   a.Config.Market.BaseURL,
		Timeout:   a.Config.Market.RequestTimeout,
		UserAgent: a.Config.Market.UserAgent,
		RateLimit: a.Config.Market.RateLimitRPS,
	}, a.Logger)

	rates := funding.NewSimulated(a.Logger)

	return poller.New(cg, rates, poller.DefaultOptions(), a.Logger)
}

func (a *App) newNotifier() alerting.Notifier {
	if a.Config.Alerting.Enabled && a.Config.Alerting.Telegram.Enabled {
		cfg := a.Config.Alerting.Telegram
		return alerting.NewTelegramNotifier(cfg.BotToken, cfg.ChatID, cfg.APIBase, 10*time.Second, a.Logger)
	}
	return nil
}

func (a *App) newService() *service.Service {
	sched := scheduler.New(scheduler.Options{Interval: refreshInterval}, a.Logger)
	return service.New(sched, a.newPoller(), sig.NewEngine(), a.newNotifier(), a.Logger)
}

// Run executes the long-running polling service.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := a.newService()

	a.Logger.Info().Dur("interval", refreshInterval).Msg("starting signal board")
	err := svc.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("service terminated with error")
		return err
	}

	a.Logger.Info().Msg("signal board stopped")
	return nil
}

// ExportOptions hold parameters for exporting the current snapshot.
type ExportOptions struct {
	PNGPath string
	CSVPath string
}
