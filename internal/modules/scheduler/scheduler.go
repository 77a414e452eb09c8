// Package scheduler runs the QAOA grid-search tuner on a cron schedule
// against the last portfolio submitted for optimization, so a tuned
// parameter set is kept warm without a caller having to ask for one.
package scheduler

import (
	"math/rand"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/aristath/qoptimizer/internal/modules/history"
	"github.com/aristath/qoptimizer/internal/modules/qaoa"
)

// Scheduler periodically re-tunes QAOA parameters for the most recently
// observed portfolio.
type Scheduler struct {
	cron    *cron.Cron
	history *history.Store
	log     zerolog.Logger

	mu        sync.Mutex
	portfolio *qaoa.PortfolioData
	layers    int
	gridSize  int
	samples   int
}

// New builds a Scheduler. store may be nil to disable history recording.
func New(store *history.Store, layers, gridSize, samples int, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		history:  store,
		log:      log.With().Str("component", "scheduler").Logger(),
		layers:   layers,
		gridSize: gridSize,
		samples:  samples,
	}
}

// Observe records the most recent portfolio submitted for optimization,
// which is what the next scheduled tune will run against.
func (s *Scheduler) Observe(portfolio *qaoa.PortfolioData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portfolio = portfolio
}

// Start registers the periodic re-tune job at the given cron spec and
// starts the scheduler's own goroutine.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.runTune)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("spec", spec).Msg("scheduler started")
	return nil
}

// Stop halts the cron scheduler, waiting for any in-flight job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runTune() {
	s.mu.Lock()
	portfolio := s.portfolio
	s.mu.Unlock()

	if portfolio == nil {
		s.log.Debug().Msg("no portfolio observed yet, skipping scheduled tune")
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	submittedAt := time.Now()
	best, err := qaoa.OptimizeParameters(portfolio, s.layers, s.gridSize, s.samples, rng, nil)
	finishedAt := time.Now()
	if err != nil {
		s.log.Error().Err(err).Msg("scheduled tune failed")
		return
	}

	if s.history != nil {
		if _, recErr := s.history.RecordTune("scheduled", portfolio, s.layers, s.samples, best, submittedAt, finishedAt, nil); recErr != nil {
			s.log.Error().Err(recErr).Msg("failed to record scheduled tune")
		}
	}
	s.log.Info().Dur("duration", finishedAt.Sub(submittedAt)).Msg("scheduled tune completed")
}
