package escalation

import (
	"context"
	"time"
)

// LogRepository is the append-only call log.
type LogRepository interface {
	Append(ctx context.Context, entry *LogEntry) error
	ListByIssue(ctx context.Context, issueSID string) ([]*LogEntry, error)
	// ListSentBetween returns entries with from <= sent_at < to.
	ListSentBetween(ctx context.Context, from, to time.Time) ([]*LogEntry, error)
	// DeleteExpired removes entries whose expires_at is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
