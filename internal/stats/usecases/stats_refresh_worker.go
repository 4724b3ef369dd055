package usecases

import (
	"context"
	"log/slog"
	"time"

	"foodops-server/internal/infra/async"

	"github.com/robfig/cron/v3"
)

const _defaultRefreshSchedule = "0 * * * *"

// NewStatsRefreshWorker builds the scheduled cache refresh. The ticker sets
// how often the schedule is checked; the cron expression sets when a refresh
// actually fires.
func NewStatsRefreshWorker(ticker *time.Ticker, schedule string, statsService StatsService) *StatsRefreshWorker {
	if schedule == "" {
		schedule = _defaultRefreshSchedule
	}
	return &StatsRefreshWorker{
		ticker:       ticker,
		schedule:     schedule,
		statsService: statsService,
		cronParser:   cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
}

var _ async.Worker = &StatsRefreshWorker{}

type StatsRefreshWorker struct {
	ticker       *time.Ticker
	schedule     string
	statsService StatsService
	cronParser   cron.Parser
	nextRun      time.Time
}

func (w *StatsRefreshWorker) Run(ctx context.Context, done func()) {
	slog.Info("stats refresh worker started", slog.String("schedule", w.schedule))
	defer done()

	sched, err := w.cronParser.Parse(w.schedule)
	if err != nil {
		slog.Error("parsing refresh schedule",
			slog.String("schedule", w.schedule),
			slog.String("error", err.Error()))
		return
	}
	w.nextRun = sched.Next(time.Now())

	for {
		select {
		case <-ctx.Done():
			slog.Info("stats refresh worker cancelled")
			return
		case now := <-w.ticker.C:
			if now.Before(w.nextRun) {
				continue
			}
			w.nextRun = sched.Next(now)
			if err := w.statsService.RefreshStats(ctx); err != nil {
				slog.Error("refreshing stats tables", slog.String("error", err.Error()))
			}
		}
	}
}

func (w *StatsRefreshWorker) Shutdown() {
	slog.Warn("stats refresh worker shutdown is not yet implemented")
}
