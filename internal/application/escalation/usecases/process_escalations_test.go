package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
)

var issueCreatedAt = time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)

func reportedIssue(sid string) issue.Snapshot {
	return issue.Snapshot{
		ID:        1,
		SID:       sid,
		Title:     "Garbage pile near school",
		Severity:  vo.SeverityHigh,
		Status:    vo.StatusReported,
		CreatedAt: issueCreatedAt,
		UpdatedAt: issueCreatedAt,
	}
}

type processFixture struct {
	issues   *memoryIssueStore
	logs     *memoryLogStore
	notifier *mockNotifier
	lock     *testCallLock
	metrics  *recordingMetrics
	uc       *ProcessEscalationsUseCase
}

func newProcessFixture(snapshots ...issue.Snapshot) *processFixture {
	f := &processFixture{
		issues:   newMemoryIssueStore(snapshots...),
		logs:     &memoryLogStore{},
		notifier: &mockNotifier{},
		lock:     newTestCallLock(),
		metrics:  &recordingMetrics{},
	}
	f.uc = NewProcessEscalationsUseCase(
		f.issues,
		f.logs,
		f.notifier,
		f.lock,
		nil,
		escalation.NewPolicy(escalation.DefaultDwellTime),
		escalation.NewFixedIntervalRetry(time.Minute),
		ProcessEscalationsConfig{CallTimeout: time.Second, Concurrency: 2},
		&mockLogger{},
	)
	f.uc.SetMetrics(f.metrics)
	return f
}

func TestProcessEscalations_SendsAndRecords(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"))
	f.notifier.TriggerFunc = func(ctx context.Context, i *issue.Issue) (escalation.CallResult, error) {
		return escalation.Sent("CA_X", time.Now()), nil
	}
	now := issueCreatedAt.Add(5*time.Minute + time.Second)

	result, err := f.uc.Execute(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, &ProcessEscalationsResult{Candidates: 1, Sent: 1}, result)
	snap := f.issues.snapshot("iss_a")
	assert.True(t, snap.EscalationActive)
	require.NotNil(t, snap.LastReminderSent)
	assert.Equal(t, now, *snap.LastReminderSent)

	entries, _ := f.logs.ListByIssue(context.Background(), "iss_a")
	require.Len(t, entries, 1)
	assert.Equal(t, "CA_X", entries[0].CallSID())
	assert.Equal(t, now, entries[0].SentAt())
	assert.Equal(t, vo.StatusReported, entries[0].IssueStatus())
	assert.Equal(t, 1, f.metrics.outcomes[OutcomeSent])
	assert.Equal(t, 1, f.metrics.cycles)
}

func TestProcessEscalations_EligibilityBoundary(t *testing.T) {
	t.Run("exactly dwell time", func(t *testing.T) {
		f := newProcessFixture(reportedIssue("iss_a"))
		result, err := f.uc.Execute(context.Background(), issueCreatedAt.Add(5*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Sent)
		assert.Equal(t, 1, f.notifier.Calls())
	})

	t.Run("one second short", func(t *testing.T) {
		f := newProcessFixture(reportedIssue("iss_a"))
		result, err := f.uc.Execute(context.Background(), issueCreatedAt.Add(5*time.Minute-time.Second))
		require.NoError(t, err)
		assert.Equal(t, 0, result.Candidates)
		assert.Equal(t, 0, f.notifier.Calls())
	})
}

func TestProcessEscalations_Idempotent(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"))
	start := issueCreatedAt.Add(6 * time.Minute)

	for k := 0; k < 5; k++ {
		_, err := f.uc.Execute(context.Background(), start.Add(time.Duration(k)*time.Minute))
		require.NoError(t, err)
	}

	assert.Equal(t, 1, f.notifier.Calls())
	assert.Equal(t, 1, f.logs.count())
}

func TestProcessEscalations_FailureLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		trigger func(ctx context.Context, i *issue.Issue) (escalation.CallResult, error)
	}{
		{
			name: "failed result",
			trigger: func(ctx context.Context, i *issue.Issue) (escalation.CallResult, error) {
				return escalation.Failed("line busy"), nil
			},
		},
		{
			name: "transport error",
			trigger: func(ctx context.Context, i *issue.Issue) (escalation.CallResult, error) {
				return escalation.CallResult{}, errors.New("connection refused")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProcessFixture(reportedIssue("iss_a"))
			f.notifier.TriggerFunc = tt.trigger
			now := issueCreatedAt.Add(10 * time.Minute)

			result, err := f.uc.Execute(context.Background(), now)
			require.NoError(t, err)
			assert.Equal(t, 1, result.Failed)

			snap := f.issues.snapshot("iss_a")
			assert.False(t, snap.EscalationActive)
			assert.Nil(t, snap.LastReminderSent)
			assert.Equal(t, 0, f.logs.count())

			// next cycle retries
			f.notifier.TriggerFunc = nil
			result, err = f.uc.Execute(context.Background(), now.Add(time.Minute))
			require.NoError(t, err)
			assert.Equal(t, 1, result.Sent)
			assert.Equal(t, 2, f.notifier.Calls())
		})
	}
}

func TestProcessEscalations_OneFailureDoesNotAbortBatch(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"), reportedIssue("iss_b"), reportedIssue("iss_c"))
	f.notifier.TriggerFunc = func(ctx context.Context, i *issue.Issue) (escalation.CallResult, error) {
		if i.SID() == "iss_b" {
			return escalation.Failed("no answer"), nil
		}
		return escalation.Sent("CA_"+i.SID(), time.Now()), nil
	}

	result, err := f.uc.Execute(context.Background(), issueCreatedAt.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Candidates)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Nil(t, f.issues.snapshot("iss_b").LastReminderSent)
	assert.NotNil(t, f.issues.snapshot("iss_c").LastReminderSent)
}

func TestProcessEscalations_StoreUnavailable(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"))
	f.issues.FindErr = errors.New("connection reset")

	result, err := f.uc.Execute(context.Background(), issueCreatedAt.Add(time.Hour))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "find escalation candidates")
	assert.Equal(t, 0, f.notifier.Calls())

	f.issues.FindErr = nil
	result, err = f.uc.Execute(context.Background(), issueCreatedAt.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
}

func TestProcessEscalations_LogAppendFailureKeepsState(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"))
	f.logs.AppendErr = errors.New("disk full")

	result, err := f.uc.Execute(context.Background(), issueCreatedAt.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Sent)
	assert.NotNil(t, f.issues.snapshot("iss_a").LastReminderSent)
}

func TestProcessEscalations_SkipsWhenLeaseHeld(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"))
	acquired, err := f.lock.TryAcquire(context.Background(), "iss_a", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	result, err := f.uc.Execute(context.Background(), issueCreatedAt.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, f.notifier.Calls())
}

func TestProcessEscalations_RevalidatesUnderLease(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"))
	now := issueCreatedAt.Add(time.Hour)

	// status changes after the candidate query but before the call
	f.uc.issueRepo = &staleCandidateStore{
		memoryIssueStore: f.issues,
		beforeReturn: func() {
			_, _ = f.issues.UpdateStatus(context.Background(), "iss_a", vo.StatusReported, vo.StatusResolved, now)
		},
	}

	result, err := f.uc.Execute(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, f.notifier.Calls())
}

func TestProcessEscalations_LostRaceWritesNoLog(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"))
	now := issueCreatedAt.Add(time.Hour)
	f.notifier.TriggerFunc = func(ctx context.Context, i *issue.Issue) (escalation.CallResult, error) {
		// another writer records the escalation while the call is in flight
		_, _ = f.issues.MarkEscalated(ctx, i.SID(), now)
		return escalation.Sent("CA_late", now), nil
	}

	result, err := f.uc.Execute(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, result.LostRaces)
	assert.Equal(t, 0, f.logs.count())
}

func TestProcessEscalations_AtMostOneUnderConcurrentCycles(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"))
	f.notifier.TriggerFunc = func(ctx context.Context, i *issue.Issue) (escalation.CallResult, error) {
		time.Sleep(20 * time.Millisecond)
		return escalation.Sent("CA_once", time.Now()), nil
	}
	now := issueCreatedAt.Add(time.Hour)

	var wg sync.WaitGroup
	for k := 0; k < 2; k++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), now)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, f.notifier.Calls())
	assert.Equal(t, 1, f.logs.count())
}

func TestProcessEscalations_CallTimeout(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"))
	f.uc.cfg.CallTimeout = 10 * time.Millisecond
	f.notifier.TriggerFunc = func(ctx context.Context, i *issue.Issue) (escalation.CallResult, error) {
		<-ctx.Done()
		return escalation.CallResult{}, ctx.Err()
	}

	result, err := f.uc.Execute(context.Background(), issueCreatedAt.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Nil(t, f.issues.snapshot("iss_a").LastReminderSent)
}

func TestEscalationScenario(t *testing.T) {
	ctx := context.Background()
	f := newProcessFixture(reportedIssue("iss_t"))
	calls := []string{"X", "Y"}
	f.notifier.TriggerFunc = func(ctx context.Context, i *issue.Issue) (escalation.CallResult, error) {
		sid := calls[0]
		calls = calls[1:]
		return escalation.Sent(sid, time.Now()), nil
	}
	markViewed := NewMarkViewedUseCase(f.issues, &mockAuthorizer{}, &mockLogger{})
	reset := NewResetEscalationUseCase(f.issues, &mockAuthorizer{}, &mockLogger{})
	T := issueCreatedAt

	// T+5m01s: first call
	_, err := f.uc.Execute(ctx, T.Add(5*time.Minute+time.Second))
	require.NoError(t, err)
	snap := f.issues.snapshot("iss_t")
	assert.True(t, snap.EscalationActive)
	require.NotNil(t, snap.LastReminderSent)
	assert.Equal(t, T.Add(5*time.Minute+time.Second), *snap.LastReminderSent)
	entries, _ := f.logs.ListByIssue(ctx, "iss_t")
	require.Len(t, entries, 1)
	assert.Equal(t, "X", entries[0].CallSID())

	// T+6m: no further call
	_, err = f.uc.Execute(ctx, T.Add(6*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, f.notifier.Calls())

	// viewed, T+7m: still no call
	_, err = markViewed.Execute(ctx, MarkViewedCommand{Caller: adminCaller, IssueSID: "iss_t"})
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, T.Add(7*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, f.notifier.Calls())

	// reset, T+8m: second call
	dto, err := reset.Execute(ctx, ResetEscalationCommand{Caller: adminCaller, IssueSID: "iss_t"})
	require.NoError(t, err)
	assert.True(t, dto.ViewedByAdmin)
	assert.False(t, dto.EscalationActive)

	result, err := f.uc.Execute(ctx, T.Add(8*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 2, f.notifier.Calls())

	entries, _ = f.logs.ListByIssue(ctx, "iss_t")
	require.Len(t, entries, 2)
	assert.Equal(t, "Y", entries[1].CallSID())
}

type staleCandidateStore struct {
	*memoryIssueStore
	beforeReturn func()
}

func (s *staleCandidateStore) FindEscalationCandidates(ctx context.Context, f issue.EscalationCandidateFilter) ([]*issue.Issue, error) {
	candidates, err := s.memoryIssueStore.FindEscalationCandidates(ctx, f)
	s.beforeReturn()
	return candidates, err
}
