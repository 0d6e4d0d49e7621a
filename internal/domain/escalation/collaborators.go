package escalation

import (
	"context"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
)

// AdminAuthorizer decides whether a caller may use the escalation controls.
type AdminAuthorizer interface {
	IsAdmin(ctx context.Context, caller authorization.Caller) (bool, error)
}

// CallLock is a per-issue lease held for the duration of one call attempt. It is shared by
// every scheduler instance so two scans never call about the same issue at once.
type CallLock interface {
	TryAcquire(ctx context.Context, issueSID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, issueSID string) error
}
