package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

const (
	defaultCallTimeout = 30 * time.Second
	defaultConcurrency = 4
	leaseMargin        = 15 * time.Second
	recordTimeout      = 10 * time.Second
)

const (
	OutcomeSent     = "sent"
	OutcomeFailed   = "failed"
	OutcomeSkipped  = "skipped"
	OutcomeLostRace = "lost_race"
	OutcomeError    = "error"
)

type ProcessEscalationsConfig struct {
	CallTimeout  time.Duration
	Concurrency  int
	BatchLimit   int
	LogRetention time.Duration
}

type ProcessEscalationsResult struct {
	Candidates int `json:"candidates"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
	LostRaces  int `json:"lost_races"`
	Errors     int `json:"errors"`
}

func (r *ProcessEscalationsResult) record(outcome string) {
	switch outcome {
	case OutcomeSent:
		r.Sent++
	case OutcomeFailed:
		r.Failed++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeLostRace:
		r.LostRaces++
	default:
		r.Errors++
	}
}

// ProcessEscalationsUseCase runs one scan cycle: find overdue issues, call about each one at
// most once, and record the escalation. It holds no timer; the scheduler decides when to run it.
type ProcessEscalationsUseCase struct {
	issueRepo issue.Repository
	logRepo   escalation.LogRepository
	notifier  escalation.Notifier
	callLock  escalation.CallLock
	tx        Transactor
	policy    escalation.Policy
	retry     escalation.FixedIntervalRetry
	cfg       ProcessEscalationsConfig
	metrics   Metrics
	logger    logger.Interface
}

func NewProcessEscalationsUseCase(
	issueRepo issue.Repository,
	logRepo escalation.LogRepository,
	notifier escalation.Notifier,
	callLock escalation.CallLock,
	tx Transactor,
	policy escalation.Policy,
	retry escalation.FixedIntervalRetry,
	cfg ProcessEscalationsConfig,
	logger logger.Interface,
) *ProcessEscalationsUseCase {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.LogRetention <= 0 {
		cfg.LogRetention = escalation.DefaultLogRetention
	}
	if tx == nil {
		tx = noTransaction{}
	}
	return &ProcessEscalationsUseCase{
		issueRepo: issueRepo,
		logRepo:   logRepo,
		notifier:  notifier,
		callLock:  callLock,
		tx:        tx,
		policy:    policy,
		retry:     retry,
		cfg:       cfg,
		metrics:   noopMetrics{},
		logger:    logger,
	}
}

// SetMetrics replaces the default no-op metrics sink.
func (uc *ProcessEscalationsUseCase) SetMetrics(m Metrics) {
	if m != nil {
		uc.metrics = m
	}
}

// Execute runs a single cycle evaluated at now. Individual call failures are counted, not
// returned; an error means the candidate query itself failed.
func (uc *ProcessEscalationsUseCase) Execute(ctx context.Context, now time.Time) (*ProcessEscalationsResult, error) {
	start := time.Now()
	now = now.UTC()

	candidates, err := uc.issueRepo.FindEscalationCandidates(ctx, uc.policy.CandidateFilter(now, uc.cfg.BatchLimit))
	if err != nil {
		uc.metrics.RecordCycle(time.Since(start), err)
		return nil, fmt.Errorf("find escalation candidates: %w", err)
	}

	result := &ProcessEscalationsResult{Candidates: len(candidates)}
	if len(candidates) == 0 {
		uc.metrics.RecordCycle(time.Since(start), nil)
		return result, nil
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(uc.cfg.Concurrency)

	for _, candidate := range candidates {
		sid := candidate.SID()
		g.Go(func() error {
			outcome := uc.processCandidate(ctx, sid, now)
			uc.metrics.RecordCall(outcome)

			mu.Lock()
			result.record(outcome)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	uc.metrics.RecordCycle(time.Since(start), nil)
	uc.logger.Infow("escalation cycle completed",
		"candidates", result.Candidates,
		"sent", result.Sent,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"lost_races", result.LostRaces,
		"errors", result.Errors,
	)
	return result, nil
}

func (uc *ProcessEscalationsUseCase) processCandidate(ctx context.Context, sid string, now time.Time) string {
	acquired, err := uc.callLock.TryAcquire(ctx, sid, uc.cfg.CallTimeout+leaseMargin)
	if err != nil {
		uc.logger.Warnw("failed to acquire call lease", "issue_id", sid, "error", err)
		return OutcomeSkipped
	}
	if !acquired {
		uc.logger.Debugw("call lease held elsewhere, skipping", "issue_id", sid)
		return OutcomeSkipped
	}
	defer func() {
		if err := uc.callLock.Release(context.WithoutCancel(ctx), sid); err != nil {
			uc.logger.Warnw("failed to release call lease", "issue_id", sid, "error", err)
		}
	}()

	// The candidate list may be stale by now; re-read under the lease.
	current, err := uc.issueRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to reload escalation candidate", "issue_id", sid, "error", err)
		return OutcomeError
	}
	if !uc.policy.IsEligible(current, now) {
		return OutcomeSkipped
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.cfg.CallTimeout)
	callResult, err := uc.notifier.Trigger(callCtx, current)
	cancel()
	if err != nil {
		callResult = escalation.Failed(err.Error())
	}
	if !callResult.IsSent() {
		uc.logger.Warnw("escalation call failed",
			"issue_id", sid,
			"reason", callResult.Reason,
			"retry_policy", uc.retry.Name(),
			"next_attempt", uc.retry.NextAttempt(now),
		)
		return OutcomeFailed
	}

	return uc.recordEscalation(ctx, current, callResult, now)
}

// recordEscalation writes the escalation state and its log entry in one transaction. The
// provider has already accepted the call, so the writes run detached from the cycle deadline.
// A failed log append does not undo the state write.
func (uc *ProcessEscalationsUseCase) recordEscalation(ctx context.Context, current *issue.Issue, callResult escalation.CallResult, now time.Time) string {
	sid := current.SID()
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	entry, entryErr := escalation.NewLogEntry(sid, callResult.CallSID, current.Status(), now, uc.cfg.LogRetention)

	var updated, appendFailed bool
	err := uc.tx.RunInTransaction(writeCtx, func(txCtx context.Context) error {
		ok, err := uc.issueRepo.MarkEscalated(txCtx, sid, now)
		if err != nil {
			return err
		}
		updated = ok
		if !ok || entryErr != nil {
			return nil
		}
		if err := uc.logRepo.Append(txCtx, entry); err != nil {
			appendFailed = true
			return err
		}
		return nil
	})
	if err == nil && updated && entryErr != nil {
		uc.logger.Warnw("failed to build escalation log entry",
			"issue_id", sid, "call_sid", callResult.CallSID, "error", entryErr)
	}
	if appendFailed {
		uc.logger.Warnw("failed to append escalation log entry",
			"issue_id", sid, "call_sid", callResult.CallSID, "error", err)
		// the rolled back state write is retried on its own
		_, err = uc.issueRepo.MarkEscalated(writeCtx, sid, now)
	}
	if err != nil {
		uc.logger.Errorw("call placed but escalation state not recorded",
			"issue_id", sid, "call_sid", callResult.CallSID, "error", err)
		return OutcomeError
	}
	if !updated {
		uc.logger.Warnw("escalation already recorded by another writer",
			"issue_id", sid, "call_sid", callResult.CallSID)
		return OutcomeLostRace
	}

	uc.logger.Infow("escalation call sent",
		"issue_id", sid,
		"call_sid", callResult.CallSID,
		"provider_sent_at", callResult.SentAt,
	)
	return OutcomeSent
}
