package escalation

import (
	"context"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
)

// DemoCallSID is the call identifier returned when no telephony credentials are configured.
const DemoCallSID = "DEMO_CALL_SID"

type CallOutcome string

const (
	CallSent   CallOutcome = "sent"
	CallFailed CallOutcome = "failed"
)

// CallResult is the outcome of one call attempt. CallSID and SentAt are set for CallSent,
// Reason for CallFailed.
type CallResult struct {
	Outcome CallOutcome
	CallSID string
	SentAt  time.Time
	Reason  string
}

func Sent(callSID string, sentAt time.Time) CallResult {
	return CallResult{Outcome: CallSent, CallSID: callSID, SentAt: sentAt}
}

func Failed(reason string) CallResult {
	return CallResult{Outcome: CallFailed, Reason: reason}
}

func (r CallResult) IsSent() bool {
	return r.Outcome == CallSent
}

// Notifier places exactly one outbound call attempt per Trigger. A returned error is a
// transport failure and is handled like a Failed result.
type Notifier interface {
	Trigger(ctx context.Context, i *issue.Issue) (CallResult, error)
}
