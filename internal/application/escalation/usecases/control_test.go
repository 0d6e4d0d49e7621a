package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
	apperrors "github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
)

func TestMarkViewedUseCase_Execute(t *testing.T) {
	store := newMemoryIssueStore(reportedIssue("iss_a"))
	uc := NewMarkViewedUseCase(store, &mockAuthorizer{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), MarkViewedCommand{Caller: adminCaller, IssueSID: "iss_a"})
	require.NoError(t, err)
	assert.True(t, result.ViewedByAdmin)
	assert.Equal(t, "iss_a", result.SID)

	// second call is a no-op
	result, err = uc.Execute(context.Background(), MarkViewedCommand{Caller: adminCaller, IssueSID: "iss_a"})
	require.NoError(t, err)
	assert.True(t, result.ViewedByAdmin)
	assert.False(t, result.EscalationActive)
}

func TestMarkViewedUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name       string
		caller     authorization.Caller
		authorizer *mockAuthorizer
		sid        string
		check      func(error) bool
	}{
		{
			name:       "not found",
			caller:     adminCaller,
			authorizer: &mockAuthorizer{},
			sid:        "iss_missing",
			check:      apperrors.IsNotFoundError,
		},
		{
			name:       "non admin",
			caller:     userCaller,
			authorizer: &mockAuthorizer{},
			sid:        "iss_a",
			check:      apperrors.IsForbiddenError,
		},
		{
			name:       "anonymous",
			caller:     authorization.Caller{},
			authorizer: &mockAuthorizer{},
			sid:        "iss_a",
			check: func(err error) bool {
				appErr := apperrors.GetAppError(err)
				return appErr != nil && appErr.Type == apperrors.ErrorTypeUnauthorized
			},
		},
		{
			name:   "authorizer failure",
			caller: adminCaller,
			authorizer: &mockAuthorizer{IsAdminFunc: func(ctx context.Context, c authorization.Caller) (bool, error) {
				return false, errors.New("policy store down")
			}},
			sid: "iss_a",
			check: func(err error) bool {
				appErr := apperrors.GetAppError(err)
				return appErr != nil && appErr.Type == apperrors.ErrorTypeInternal
			},
		},
		{
			name:       "missing sid",
			caller:     adminCaller,
			authorizer: &mockAuthorizer{},
			sid:        "",
			check:      apperrors.IsValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryIssueStore(reportedIssue("iss_a"))
			uc := NewMarkViewedUseCase(store, tt.authorizer, &mockLogger{})

			result, err := uc.Execute(context.Background(), MarkViewedCommand{Caller: tt.caller, IssueSID: tt.sid})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			assert.False(t, store.snapshot("iss_a").ViewedByAdmin)
		})
	}
}

func TestResetEscalationUseCase_Execute(t *testing.T) {
	sent := issueCreatedAt.Add(6 * time.Minute)
	snap := reportedIssue("iss_a")
	snap.ViewedByAdmin = true
	snap.EscalationActive = true
	snap.LastReminderSent = &sent
	store := newMemoryIssueStore(snap)
	uc := NewResetEscalationUseCase(store, &mockAuthorizer{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), ResetEscalationCommand{Caller: adminCaller, IssueSID: "iss_a"})
	require.NoError(t, err)

	assert.False(t, result.EscalationActive)
	assert.Nil(t, result.LastReminderSent)
	assert.True(t, result.ViewedByAdmin)

	_, err = uc.Execute(context.Background(), ResetEscalationCommand{Caller: adminCaller, IssueSID: "iss_missing"})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), ResetEscalationCommand{Caller: userCaller, IssueSID: "iss_a"})
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestResetEscalation_RearmsScheduler(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"))
	reset := NewResetEscalationUseCase(f.issues, &mockAuthorizer{}, &mockLogger{})
	now := issueCreatedAt.Add(10 * time.Minute)

	_, err := f.uc.Execute(context.Background(), now)
	require.NoError(t, err)
	_, err = reset.Execute(context.Background(), ResetEscalationCommand{Caller: adminCaller, IssueSID: "iss_a"})
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), now.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 2, f.notifier.Calls())
	assert.Equal(t, 2, f.logs.count())
}

func TestMarkViewed_StopsEscalatedIssue(t *testing.T) {
	f := newProcessFixture(reportedIssue("iss_a"))
	markViewed := NewMarkViewedUseCase(f.issues, &mockAuthorizer{}, &mockLogger{})
	now := issueCreatedAt.Add(10 * time.Minute)

	_, err := f.uc.Execute(context.Background(), now)
	require.NoError(t, err)
	_, err = markViewed.Execute(context.Background(), MarkViewedCommand{Caller: adminCaller, IssueSID: "iss_a"})
	require.NoError(t, err)

	for k := 1; k <= 10; k++ {
		_, err = f.uc.Execute(context.Background(), now.Add(time.Duration(k)*time.Minute))
		require.NoError(t, err)
	}

	assert.Equal(t, 1, f.notifier.Calls())
}

func TestGetEscalationHistoryUseCase_Execute(t *testing.T) {
	store := newMemoryIssueStore(reportedIssue("iss_a"), reportedIssue("iss_b"))
	logs := &memoryLogStore{}
	for k, call := range []string{"CA1", "CA2"} {
		e, err := escalation.NewLogEntry("iss_a", call, vo.StatusReported, issueCreatedAt.Add(time.Duration(k)*time.Hour), 0)
		require.NoError(t, err)
		require.NoError(t, logs.Append(context.Background(), e))
	}
	uc := NewGetEscalationHistoryUseCase(store, logs, &mockAuthorizer{}, &mockLogger{})

	history, err := uc.Execute(context.Background(), GetEscalationHistoryQuery{Caller: adminCaller, IssueSID: "iss_a"})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "CA2", history[0].CallSID)

	history, err = uc.Execute(context.Background(), GetEscalationHistoryQuery{Caller: adminCaller, IssueSID: "iss_b"})
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = uc.Execute(context.Background(), GetEscalationHistoryQuery{Caller: adminCaller, IssueSID: "iss_missing"})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), GetEscalationHistoryQuery{Caller: userCaller, IssueSID: "iss_a"})
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestGetDashboardSummaryUseCase_Execute(t *testing.T) {
	now := issueCreatedAt.Add(48 * time.Hour)

	critical := reportedIssue("iss_crit")
	critical.Severity = vo.SeverityCritical
	viewed := reportedIssue("iss_viewed")
	viewed.ViewedByAdmin = true
	low := reportedIssue("iss_low")
	low.Severity = vo.SeverityLow
	resolved := reportedIssue("iss_done")
	resolved.Status = vo.StatusResolved
	store := newMemoryIssueStore(reportedIssue("iss_high"), critical, viewed, low, resolved)

	logs := &memoryLogStore{}
	appendEntry := func(sid, call string, at time.Time) {
		e, err := escalation.NewLogEntry(sid, call, vo.StatusReported, at, 0)
		require.NoError(t, err)
		require.NoError(t, logs.Append(context.Background(), e))
	}
	appendEntry("iss_high", "CA_old", now.Add(-25*time.Hour))
	appendEntry("iss_high", "CA1", now.Add(-23*time.Hour))
	appendEntry("iss_crit", "CA2", now.Add(-2*time.Hour))
	appendEntry("iss_high", "CA3", now.Add(-time.Hour))
	appendEntry("iss_low", "CA4", now)

	uc := NewGetDashboardSummaryUseCase(store, logs, &mockAuthorizer{}, &mockLogger{})
	summary, err := uc.Execute(context.Background(), GetDashboardSummaryQuery{Caller: adminCaller, Now: now})
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.HighUrgencyUnviewed)
	assert.Equal(t, 4, summary.RecentCallCount)
	require.Len(t, summary.RecentCalls, 4)
	assert.Equal(t, "CA4", summary.RecentCalls[0].CallSID)
	require.Len(t, summary.CallsPerIssue, 3)
	assert.Equal(t, "iss_high", summary.CallsPerIssue[0].IssueSID)
	assert.Equal(t, 2, summary.CallsPerIssue[0].Calls)
	assert.Equal(t, "iss_crit", summary.CallsPerIssue[1].IssueSID)
	assert.Equal(t, now.Add(-24*time.Hour), summary.WindowStart)

	_, err = uc.Execute(context.Background(), GetDashboardSummaryQuery{Caller: userCaller, Now: now})
	assert.True(t, apperrors.IsForbiddenError(err))
}
