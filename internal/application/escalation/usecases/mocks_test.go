package usecases

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)          {}
func (m *mockLogger) Info(msg string, args ...any)           {}
func (m *mockLogger) Warn(msg string, args ...any)           {}
func (m *mockLogger) Error(msg string, args ...any)          {}
func (m *mockLogger) With(args ...any) logger.Interface      { return m }
func (m *mockLogger) Named(name string) logger.Interface     { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}

// memoryIssueStore applies the same conditional updates as the SQL repository.
type memoryIssueStore struct {
	mu     sync.Mutex
	issues map[string]issue.Snapshot

	FindErr error
}

func newMemoryIssueStore(snapshots ...issue.Snapshot) *memoryIssueStore {
	s := &memoryIssueStore{issues: make(map[string]issue.Snapshot)}
	for _, snap := range snapshots {
		s.issues[snap.SID] = snap
	}
	return s
}

func (s *memoryIssueStore) snapshot(sid string) issue.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issues[sid]
}

func (s *memoryIssueStore) Create(ctx context.Context, i *issue.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues[i.SID()] = issue.Snapshot{
		SID:        i.SID(),
		Title:      i.Title(),
		Severity:   i.Severity(),
		Status:     i.Status(),
		ReporterID: i.ReporterID(),
		CreatedAt:  i.CreatedAt(),
		UpdatedAt:  i.UpdatedAt(),
	}
	return nil
}

func (s *memoryIssueStore) GetBySID(ctx context.Context, sid string) (*issue.Issue, error) {
	s.mu.Lock()
	snap, ok := s.issues[sid]
	s.mu.Unlock()
	if !ok {
		return nil, issue.ErrIssueNotFound
	}
	return issue.ReconstructIssue(snap)
}

func (s *memoryIssueStore) List(ctx context.Context, filter issue.ListFilter) ([]*issue.Issue, int64, error) {
	return nil, 0, nil
}

func (s *memoryIssueStore) UpdateStatus(ctx context.Context, sid string, from, to vo.IssueStatus, updatedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.issues[sid]
	if !ok || snap.Status != from {
		return false, nil
	}
	snap.Status = to
	snap.UpdatedAt = updatedAt
	s.issues[sid] = snap
	return true, nil
}

func (s *memoryIssueStore) FindEscalationCandidates(ctx context.Context, f issue.EscalationCandidateFilter) ([]*issue.Issue, error) {
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	s.mu.Lock()
	var matched []issue.Snapshot
	for _, snap := range s.issues {
		if snap.Status != f.Status || snap.CreatedAt.After(f.CreatedAtOrBefore) {
			continue
		}
		if f.WithoutReminder && snap.LastReminderSent != nil {
			continue
		}
		matched = append(matched, snap)
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].SID < matched[j].SID })
	result := make([]*issue.Issue, 0, len(matched))
	for _, snap := range matched {
		i, err := issue.ReconstructIssue(snap)
		if err != nil {
			return nil, err
		}
		result = append(result, i)
	}
	return result, nil
}

func (s *memoryIssueStore) MarkEscalated(ctx context.Context, sid string, sentAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.issues[sid]
	if !ok || snap.Status != vo.StatusReported || snap.LastReminderSent != nil {
		return false, nil
	}
	at := sentAt
	snap.EscalationActive = true
	snap.LastReminderSent = &at
	s.issues[sid] = snap
	return true, nil
}

func (s *memoryIssueStore) MarkViewed(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.issues[sid]
	if !ok {
		return issue.ErrIssueNotFound
	}
	snap.ViewedByAdmin = true
	s.issues[sid] = snap
	return nil
}

func (s *memoryIssueStore) ResetEscalation(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.issues[sid]
	if !ok {
		return issue.ErrIssueNotFound
	}
	snap.EscalationActive = false
	snap.LastReminderSent = nil
	s.issues[sid] = snap
	return nil
}

func (s *memoryIssueStore) CountHighUrgencyUnviewed(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, snap := range s.issues {
		if snap.Status == vo.StatusReported && !snap.ViewedByAdmin && snap.Severity.IsHighUrgency() {
			n++
		}
	}
	return n, nil
}

type memoryLogStore struct {
	mu      sync.Mutex
	entries []*escalation.LogEntry

	AppendErr error
}

func (s *memoryLogStore) Append(ctx context.Context, e *escalation.LogEntry) error {
	if s.AppendErr != nil {
		return s.AppendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.SetID(uint(len(s.entries) + 1))
	s.entries = append(s.entries, e)
	return nil
}

func (s *memoryLogStore) ListByIssue(ctx context.Context, sid string) ([]*escalation.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*escalation.LogEntry
	for _, e := range s.entries {
		if e.IssueSID() == sid {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memoryLogStore) ListSentBetween(ctx context.Context, from, to time.Time) ([]*escalation.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*escalation.LogEntry
	for _, e := range s.entries {
		if !e.SentAt().Before(from) && e.SentAt().Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memoryLogStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (s *memoryLogStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

type mockNotifier struct {
	TriggerFunc func(ctx context.Context, i *issue.Issue) (escalation.CallResult, error)
	calls       atomic.Int32
}

func (m *mockNotifier) Trigger(ctx context.Context, i *issue.Issue) (escalation.CallResult, error) {
	m.calls.Add(1)
	if m.TriggerFunc != nil {
		return m.TriggerFunc(ctx, i)
	}
	return escalation.Sent("CA_default", time.Now()), nil
}

func (m *mockNotifier) Calls() int {
	return int(m.calls.Load())
}

type testCallLock struct {
	mu   sync.Mutex
	held map[string]bool
}

func newTestCallLock() *testCallLock {
	return &testCallLock{held: make(map[string]bool)}
}

func (l *testCallLock) TryAcquire(ctx context.Context, sid string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[sid] {
		return false, nil
	}
	l.held[sid] = true
	return true, nil
}

func (l *testCallLock) Release(ctx context.Context, sid string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, sid)
	return nil
}

type mockAuthorizer struct {
	IsAdminFunc func(ctx context.Context, caller authorization.Caller) (bool, error)
}

func (m *mockAuthorizer) IsAdmin(ctx context.Context, caller authorization.Caller) (bool, error) {
	if m.IsAdminFunc != nil {
		return m.IsAdminFunc(ctx, caller)
	}
	return caller.Role.IsAdmin(), nil
}

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
	cycles   int
}

func (m *recordingMetrics) RecordCall(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}

func (m *recordingMetrics) RecordCycle(time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycles++
}

var (
	adminCaller = authorization.Caller{UserID: "admin-1", Role: authorization.RoleAdmin}
	userCaller  = authorization.Caller{UserID: "user-1", Role: authorization.RoleUser}
)
