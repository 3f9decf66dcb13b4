// Package scheduler runs the newsroom's periodic jobs: opening the daily
// edition and refreshing the inventory gauges.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"newsroom/internal/metrics"
	"newsroom/internal/model"
)

const (
	EditionSchedule = "@daily"
	GaugeSchedule   = "@every 1m"
	jobTimeout      = 30 * time.Second
)

// EditionEnsurer opens the paper of a day if it does not exist yet.
type EditionEnsurer interface {
	EnsureEdition(ctx context.Context, day time.Time, name, publisher string) (*model.Paper, bool, error)
}

// Counter reports the number of stored rows of one kind.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Config names the edition the daily job opens.
type Config struct {
	EditionName      string
	EditionPublisher string
}

// Scheduler wraps a cron runner.
type Scheduler struct {
	cron     *cron.Cron
	logger   *slog.Logger
	cfg      Config
	editions EditionEnsurer
	articles Counter
	users    Counter
	now      func() time.Time
}

// New builds a scheduler in UTC. Call Start to begin running jobs.
func New(logger *slog.Logger, cfg Config, editions EditionEnsurer, articles, users Counter) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		logger:   logger,
		cfg:      cfg,
		editions: editions,
		articles: articles,
		users:    users,
		now:      time.Now,
	}
	if _, err := s.cron.AddFunc(EditionSchedule, s.runEdition); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(GaugeSchedule, s.runGauges); err != nil {
		return nil, err
	}
	return s, nil
}

// Start runs both jobs once and then hands them to cron.
func (s *Scheduler) Start() {
	s.runEdition()
	s.runGauges()
	s.cron.Start()
	s.logger.Info("scheduler started",
		slog.String("edition_schedule", EditionSchedule),
		slog.String("gauge_schedule", GaugeSchedule))
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) runEdition() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	paper, created, err := s.editions.EnsureEdition(ctx, s.now(), s.cfg.EditionName, s.cfg.EditionPublisher)
	if err != nil {
		s.logger.Error("daily edition failed", slog.Any("error", err))
		return
	}
	if created {
		metrics.EditionsCreated.Inc()
		s.logger.Info("daily edition opened",
			slog.Uint64("paper_id", uint64(paper.ID)),
			slog.String("date", paper.Date.Format(time.DateOnly)))
	}
}

func (s *Scheduler) runGauges() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if n, err := s.articles.Count(ctx); err != nil {
		s.logger.Warn("count articles", slog.Any("error", err))
	} else {
		metrics.ArticlesTotal.Set(float64(n))
	}
	if n, err := s.users.Count(ctx); err != nil {
		s.logger.Warn("count users", slog.Any("error", err))
	} else {
		metrics.UsersTotal.Set(float64(n))
	}
}
