package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/persistence/models"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/query"
)

var baseTime = time.Date(2025, 5, 20, 6, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(&models.IssueModel{}, &models.EscalationLogModel{}))
	return gdb
}

func createIssue(t *testing.T, repo *IssueRepository, sid string, severity vo.Severity, createdAt time.Time) *issue.Issue {
	t.Helper()
	i, err := issue.NewIssue(sid, "Issue "+sid, "details", "roads", severity,
		issue.Location{Address: "Ward 4", Latitude: 19.07, Longitude: 72.87},
		[]string{"https://img.example/" + sid + ".jpg"}, "user-1", createdAt)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), i))
	return i
}

func TestIssueRepository_CreateAndGet(t *testing.T) {
	repo := NewIssueRepository(setupTestDB(t))
	ctx := context.Background()

	created := createIssue(t, repo, "iss_one", vo.SeverityHigh, baseTime)
	assert.NotZero(t, created.ID())

	found, err := repo.GetBySID(ctx, "iss_one")
	require.NoError(t, err)
	assert.Equal(t, "Issue iss_one", found.Title())
	assert.Equal(t, vo.SeverityHigh, found.Severity())
	assert.Equal(t, vo.StatusReported, found.Status())
	assert.Equal(t, baseTime, found.CreatedAt())
	assert.Equal(t, []string{"https://img.example/iss_one.jpg"}, found.ImageURLs())
	assert.Equal(t, "Ward 4", found.Location().Address)
	assert.Nil(t, found.LastReminderSent())

	_, err = repo.GetBySID(ctx, "iss_missing")
	assert.ErrorIs(t, err, issue.ErrIssueNotFound)
}

func TestIssueRepository_FindEscalationCandidates(t *testing.T) {
	repo := NewIssueRepository(setupTestDB(t))
	ctx := context.Background()
	now := baseTime.Add(time.Hour)
	policy := escalation.NewPolicy(escalation.DefaultDwellTime)

	createIssue(t, repo, "iss_exact", vo.SeverityLow, now.Add(-5*time.Minute))
	createIssue(t, repo, "iss_young", vo.SeverityLow, now.Add(-5*time.Minute+time.Second))
	createIssue(t, repo, "iss_old", vo.SeverityLow, now.Add(-time.Hour))
	createIssue(t, repo, "iss_reminded", vo.SeverityLow, now.Add(-time.Hour))
	createIssue(t, repo, "iss_resolved", vo.SeverityLow, now.Add(-time.Hour))

	ok, err := repo.MarkEscalated(ctx, "iss_reminded", now.Add(-30*time.Minute))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.UpdateStatus(ctx, "iss_resolved", vo.StatusReported, vo.StatusResolved, now)
	require.NoError(t, err)
	require.True(t, ok)

	candidates, err := repo.FindEscalationCandidates(ctx, policy.CandidateFilter(now, 0))
	require.NoError(t, err)

	sids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		sids = append(sids, c.SID())
		assert.True(t, policy.IsEligible(c, now), c.SID())
	}
	assert.Equal(t, []string{"iss_old", "iss_exact"}, sids)

	limited, err := repo.FindEscalationCandidates(ctx, policy.CandidateFilter(now, 1))
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "iss_old", limited[0].SID())
}

func TestIssueRepository_MarkEscalated_Conditional(t *testing.T) {
	repo := NewIssueRepository(setupTestDB(t))
	ctx := context.Background()
	createIssue(t, repo, "iss_a", vo.SeverityMedium, baseTime)
	sentAt := baseTime.Add(5*time.Minute + time.Second)

	ok, err := repo.MarkEscalated(ctx, "iss_a", sentAt)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkEscalated(ctx, "iss_a", sentAt.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, ok, "second write must not match")

	found, err := repo.GetBySID(ctx, "iss_a")
	require.NoError(t, err)
	assert.True(t, found.EscalationActive())
	require.NotNil(t, found.LastReminderSent())
	assert.Equal(t, sentAt, *found.LastReminderSent())

	ok, err = repo.MarkEscalated(ctx, "iss_missing", sentAt)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIssueRepository_MarkEscalated_RequiresReported(t *testing.T) {
	repo := NewIssueRepository(setupTestDB(t))
	ctx := context.Background()
	createIssue(t, repo, "iss_a", vo.SeverityMedium, baseTime)

	ok, err := repo.UpdateStatus(ctx, "iss_a", vo.StatusReported, vo.StatusApproved, baseTime.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.MarkEscalated(ctx, "iss_a", baseTime.Add(6*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.GetBySID(ctx, "iss_a")
	require.NoError(t, err)
	assert.False(t, found.EscalationActive())
	assert.Nil(t, found.LastReminderSent())
}

func TestIssueRepository_MarkEscalated_Concurrent(t *testing.T) {
	repo := NewIssueRepository(setupTestDB(t))
	createIssue(t, repo, "iss_a", vo.SeverityMedium, baseTime)

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for k := 0; k < 8; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			ok, err := repo.MarkEscalated(context.Background(), "iss_a", baseTime.Add(time.Duration(k)*time.Second))
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}(k)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestIssueRepository_MarkViewedAndReset(t *testing.T) {
	repo := NewIssueRepository(setupTestDB(t))
	ctx := context.Background()
	createIssue(t, repo, "iss_a", vo.SeverityHigh, baseTime)

	_, err := repo.MarkEscalated(ctx, "iss_a", baseTime.Add(6*time.Minute))
	require.NoError(t, err)

	require.NoError(t, repo.MarkViewed(ctx, "iss_a"))
	require.NoError(t, repo.MarkViewed(ctx, "iss_a"))
	assert.ErrorIs(t, repo.MarkViewed(ctx, "iss_missing"), issue.ErrIssueNotFound)

	require.NoError(t, repo.ResetEscalation(ctx, "iss_a"))
	assert.ErrorIs(t, repo.ResetEscalation(ctx, "iss_missing"), issue.ErrIssueNotFound)

	found, err := repo.GetBySID(ctx, "iss_a")
	require.NoError(t, err)
	assert.True(t, found.ViewedByAdmin())
	assert.False(t, found.EscalationActive())
	assert.Nil(t, found.LastReminderSent())

	// re-armed
	ok, err := repo.MarkEscalated(ctx, "iss_a", baseTime.Add(8*time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIssueRepository_UpdateStatus(t *testing.T) {
	repo := NewIssueRepository(setupTestDB(t))
	ctx := context.Background()
	createIssue(t, repo, "iss_a", vo.SeverityHigh, baseTime)

	ok, err := repo.UpdateStatus(ctx, "iss_a", vo.StatusApproved, vo.StatusResolved, baseTime)
	require.NoError(t, err)
	assert.False(t, ok, "from status does not match")

	ok, err = repo.UpdateStatus(ctx, "iss_a", vo.StatusReported, vo.StatusInProgress, baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := repo.GetBySID(ctx, "iss_a")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress, found.Status())
}

func TestIssueRepository_ListAndCount(t *testing.T) {
	repo := NewIssueRepository(setupTestDB(t))
	ctx := context.Background()

	for k := 0; k < 5; k++ {
		createIssue(t, repo, fmt.Sprintf("iss_%d", k), vo.SeverityLow, baseTime.Add(time.Duration(k)*time.Minute))
	}
	createIssue(t, repo, "iss_high", vo.SeverityHigh, baseTime)
	createIssue(t, repo, "iss_crit", vo.SeverityCritical, baseTime)
	createIssue(t, repo, "iss_crit_seen", vo.SeverityCritical, baseTime)
	require.NoError(t, repo.MarkViewed(ctx, "iss_crit_seen"))

	issues, total, err := repo.List(ctx, issue.ListFilter{PageFilter: query.NewPageFilter(1, 2)})
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
	require.Len(t, issues, 2)
	assert.Equal(t, "iss_4", issues[0].SID())

	low := vo.SeverityLow
	_, total, err = repo.List(ctx, issue.ListFilter{Severity: &low, PageFilter: query.NewPageFilter(1, 10)})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	count, err := repo.CountHighUrgencyUnviewed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
