package telephony

import (
	"context"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

// DemoNotifier stands in when no provider credentials are configured. Every trigger
// succeeds with escalation.DemoCallSID and nothing leaves the process.
type DemoNotifier struct {
	logger logger.Interface
}

func NewDemoNotifier(log logger.Interface) *DemoNotifier {
	return &DemoNotifier{logger: log}
}

func (n *DemoNotifier) Trigger(_ context.Context, i *issue.Issue) (escalation.CallResult, error) {
	n.logger.Infow("demo mode: simulated escalation call",
		"issue_id", i.SID(),
		"title", i.Title())
	return escalation.Sent(escalation.DemoCallSID, time.Now().UTC()), nil
}
