package storage

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"sfd/internal/aggregation"
	"sfd/internal/providers"
	"sfd/internal/services"
	"sfd/internal/storage/interfaces"
	"sfd/internal/structures"
)

// Scheduler runs the background jobs: a safety persist whenever the
// store is dirty (mutations already write through, this catches a persist
// that failed and was retried away) and a periodic sentiment gauge
// refresh for the metrics endpoint.
type Scheduler struct {
	config     *structures.Config
	logger     providers.Logger
	service    services.FeedbackServiceInterface
	aggregator *aggregation.Aggregator
	metrics    providers.MetricsProviderInterface
	cron       *gron.Cron
	opsMu      sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Persistence.SaveInterval
	statsInterval := s.config.Feedback.StatsInterval

	s.cron.AddFunc(gron.Every(interval*time.Second), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if !s.service.Dirty() {
			return
		}
		start := time.Now()
		if err := s.service.PersistNow(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(statsInterval*time.Second), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		result := s.aggregator.Aggregate(s.service.List(), aggregation.Params{}, time.Now())
		s.metrics.SetSentimentCounts(result.Sentiment.Positive, result.Sentiment.Neutral, result.Sentiment.Negative)
		s.logger.Debugf(providers.TypeApp, "Sentiment gauges refreshed over %d records", result.Total)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.service.Restore()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting feedback to file...")
	start := time.Now()
	if err := s.service.PersistNow(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.FeedbackServiceInterface, aggregator *aggregation.Aggregator, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:     config,
		logger:     logger,
		service:    service,
		aggregator: aggregator,
		metrics:    metrics,
	}
}
