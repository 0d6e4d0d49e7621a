package telephony

import (
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	sharedConfig "github.com/nxtrohith/Micro-Task-sub000/internal/shared/config"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

// NewNotifier returns the live notifier when credentials are complete, otherwise the demo one.
func NewNotifier(config sharedConfig.TelephonyConfig, log logger.Interface) escalation.Notifier {
	if !config.HasCredentials() {
		log.Warnw("telephony credentials not configured, escalation calls run in demo mode")
		return NewDemoNotifier(log)
	}
	return NewTwilioNotifier(config, log)
}
