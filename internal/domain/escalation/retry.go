package escalation

import "time"

// FixedIntervalRetry retries a failed call on the next scan cycle. There is no backoff and
// no dedup window; the last_reminder_sent guard is the only thing that suppresses calls.
type FixedIntervalRetry struct {
	Interval time.Duration
}

func NewFixedIntervalRetry(interval time.Duration) FixedIntervalRetry {
	return FixedIntervalRetry{Interval: interval}
}

// Name identifies the policy in logs.
func (r FixedIntervalRetry) Name() string {
	return "fixed_interval"
}

// NextAttempt returns the earliest time a call that failed at failedAt is tried again.
func (r FixedIntervalRetry) NextAttempt(failedAt time.Time) time.Time {
	return failedAt.Add(r.Interval)
}
