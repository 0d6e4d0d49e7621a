// Package scheduler drives the escalation scan and log retention jobs using gocron v2.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/nxtrohith/Micro-Task-sub000/internal/application/escalation/usecases"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/biztime"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/goroutine"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

// ErrCycleInProgress is returned by RunEscalationNow while another cycle is running.
var ErrCycleInProgress = errors.New("escalation cycle already in progress")

// EscalationProcessor runs one scan cycle evaluated at now.
type EscalationProcessor interface {
	Execute(ctx context.Context, now time.Time) (*usecases.ProcessEscalationsResult, error)
}

// LogPurger deletes escalation log entries that have expired by now.
type LogPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SchedulerManager owns the gocron scheduler and the jobs registered on it.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface
	clock     func() time.Time

	escalation   EscalationProcessor
	cycleTimeout time.Duration
	// cycleMu keeps scheduled and manual cycles from overlapping.
	cycleMu sync.Mutex

	// Track whether the scheduler has been started
	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
// It initializes gocron with the business timezone for cron expressions.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
		clock:     time.Now,
	}, nil
}

// ========================================
// Escalation Jobs (fixed interval, start immediately)
// ========================================

// RegisterEscalationJobs schedules the scan cycle. A tick that fires while the previous
// cycle is still running is skipped.
func (m *SchedulerManager) RegisterEscalationJobs(
	processor EscalationProcessor,
	interval time.Duration,
	cycleTimeout time.Duration,
) error {
	m.escalation = processor
	m.cycleTimeout = cycleTimeout

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			goroutine.Run(m.logger, "escalation-scan", func() {
				if _, err := m.runEscalationCycle(context.Background()); errors.Is(err, ErrCycleInProgress) {
					m.logger.Warnw("escalation tick skipped, previous cycle still running")
				}
			})
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("escalation", "scan"),
		gocron.WithName("escalation-scan"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered escalation jobs", "interval", interval, "cycle_timeout", cycleTimeout)
	return nil
}

// RunEscalationNow runs one cycle outside the schedule.
func (m *SchedulerManager) RunEscalationNow(ctx context.Context) (*usecases.ProcessEscalationsResult, error) {
	if m.escalation == nil {
		return nil, errors.New("escalation jobs are not registered")
	}
	return m.runEscalationCycle(ctx)
}

func (m *SchedulerManager) runEscalationCycle(parent context.Context) (*usecases.ProcessEscalationsResult, error) {
	if !m.cycleMu.TryLock() {
		return nil, ErrCycleInProgress
	}
	defer m.cycleMu.Unlock()

	ctx, cancel := context.WithTimeout(parent, m.cycleTimeout)
	defer cancel()

	startTime := biztime.NowUTC()
	result, err := m.escalation.Execute(ctx, m.clock())
	if err != nil {
		m.logger.Errorw("escalation cycle failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return nil, err
	}

	if result.Candidates > 0 {
		m.logger.Infow("escalation cycle processed",
			"candidates", result.Candidates,
			"sent", result.Sent,
			"failed", result.Failed,
			"duration", time.Since(startTime),
		)
	}
	return result, nil
}

// ========================================
// Retention Jobs (daily)
// ========================================

// RegisterLogRetentionJobs deletes expired escalation log entries daily at 04:00 business time.
func (m *SchedulerManager) RegisterLogRetentionJobs(purger LogPurger) error {
	_, err := m.scheduler.NewJob(
		gocron.CronJob("0 4 * * *", false),
		gocron.NewTask(func() {
			goroutine.Run(m.logger, "escalation-log-retention", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
				defer cancel()
				m.purgeExpiredLogs(ctx, purger)
			})
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("escalation", "retention"),
		gocron.WithName("escalation-log-retention"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered log retention jobs", "schedule", "daily 04:00")
	return nil
}

func (m *SchedulerManager) purgeExpiredLogs(ctx context.Context, purger LogPurger) {
	deleted, err := purger.DeleteExpired(ctx, m.clock())
	if err != nil {
		// Don't log error if context was cancelled (graceful shutdown)
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("failed to delete expired escalation logs", "error", err)
		return
	}
	if deleted > 0 {
		m.logger.Infow("expired escalation logs deleted", "count", deleted)
	}
}

// ========================================
// Lifecycle
// ========================================

// Start begins executing registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop cancels future ticks and waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
