package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/downtime-prediction/internal/logging"
	"github.com/i474232898/downtime-prediction/internal/risk"
	"github.com/i474232898/downtime-prediction/internal/telemetry"
)

// Scheduler periodically evaluates downtime risk for configured regions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *risk.Service
	sampler   *telemetry.Sampler
	regions   []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(regions []string, interval time.Duration, service *risk.Service, sampler *telemetry.Sampler) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		sampler:   sampler,
		regions:   regions,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.regions) == 0 {
		logging.Info("scheduler: no regions configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 5
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		logging.Info("scheduler: running downtime evaluation job")

		var wg sync.WaitGroup
		for _, region := range s.regions {
			region := region
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				in := s.sampler.Sample(region)
				snap := s.service.EvaluateAndStore(ctx, region, in)
				logging.Debug("scheduler: evaluated region",
					zap.String("region", region),
					zap.Float64("probability", snap.Result.DowntimeProbability),
					zap.String("source", string(snap.Result.Source)))
			}()
		}
		wg.Wait()
		logging.Info("scheduler: completed downtime evaluation job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
