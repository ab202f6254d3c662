package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/geotree/internal/config"
	"github.com/mamadbah2/geotree/internal/domain/models"
	"github.com/mamadbah2/geotree/internal/service/reporting"
	"github.com/mamadbah2/geotree/pkg/clients/webhook"
)

const reportTimeout = 2 * time.Minute

// ReportGenerator produces the daily report.
type ReportGenerator interface {
	GenerateDailyReport(ctx context.Context, day time.Time) (models.DailyReport, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reports  ReportGenerator
	notifier webhook.Client
	schedule string
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance. notifier may be nil, in which
// case reports are only stored.
func NewScheduler(cfg config.ReportingConfig, reports ReportGenerator, notifier webhook.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc := cfg.Location()

	return &Scheduler{
		// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
		cron:     cron.New(cron.WithLocation(loc)),
		reports:  reports,
		notifier: notifier,
		schedule: cfg.CronSchedule,
		location: loc,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.schedule, s.runDailyReport); err != nil {
		return fmt.Errorf("schedule daily report %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	if err := s.SendDailyReport(ctx); err != nil {
		s.logger.Error("daily report failed", zap.Error(err))
	}
}

// SendDailyReport generates today's report and posts it to the webhook when one is configured.
func (s *Scheduler) SendDailyReport(ctx context.Context) error {
	s.logger.Info("generating daily report")

	report, err := s.reports.GenerateDailyReport(ctx, s.now().In(s.location))
	if err != nil {
		return fmt.Errorf("generate daily report: %w", err)
	}

	if s.notifier == nil {
		return nil
	}

	msg := webhook.ReportMessage{
		Text:   reporting.FormatReport(report),
		Date:   report.Date.Format("2006-01-02"),
		Report: report,
	}
	if err := s.notifier.PostReport(ctx, msg); err != nil {
		return fmt.Errorf("send daily report: %w", err)
	}

	s.logger.Info("daily report sent successfully")
	return nil
}
