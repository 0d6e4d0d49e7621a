package escalation

import (
	"fmt"
	"time"

	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
)

// DefaultLogRetention is how long call log entries are kept.
const DefaultLogRetention = 90 * 24 * time.Hour

// LogEntry is the immutable record of one successful call.
type LogEntry struct {
	id          uint
	issueSID    string
	callSID     string
	sentAt      time.Time
	issueStatus vo.IssueStatus
	createdAt   time.Time
	expiresAt   time.Time
}

func NewLogEntry(issueSID, callSID string, issueStatus vo.IssueStatus, sentAt time.Time, retention time.Duration) (*LogEntry, error) {
	if issueSID == "" {
		return nil, fmt.Errorf("issue SID is required")
	}
	if callSID == "" {
		return nil, fmt.Errorf("call SID is required")
	}
	if sentAt.IsZero() {
		return nil, fmt.Errorf("sent time is required")
	}
	if retention <= 0 {
		retention = DefaultLogRetention
	}

	sentAt = sentAt.UTC()
	return &LogEntry{
		issueSID:    issueSID,
		callSID:     callSID,
		sentAt:      sentAt,
		issueStatus: issueStatus,
		createdAt:   sentAt,
		expiresAt:   sentAt.Add(retention),
	}, nil
}

// ReconstructLogEntry rebuilds a LogEntry from persistence.
func ReconstructLogEntry(id uint, issueSID, callSID string, issueStatus vo.IssueStatus, sentAt, createdAt, expiresAt time.Time) *LogEntry {
	return &LogEntry{
		id:          id,
		issueSID:    issueSID,
		callSID:     callSID,
		sentAt:      sentAt,
		issueStatus: issueStatus,
		createdAt:   createdAt,
		expiresAt:   expiresAt,
	}
}

func (e *LogEntry) ID() uint                    { return e.id }
func (e *LogEntry) IssueSID() string            { return e.issueSID }
func (e *LogEntry) CallSID() string             { return e.callSID }
func (e *LogEntry) SentAt() time.Time           { return e.sentAt }
func (e *LogEntry) IssueStatus() vo.IssueStatus { return e.issueStatus }
func (e *LogEntry) CreatedAt() time.Time        { return e.createdAt }
func (e *LogEntry) ExpiresAt() time.Time        { return e.expiresAt }

func (e *LogEntry) SetID(id uint) {
	e.id = id
}
