package models

// EscalationLogModel is one row per successful escalation call. Rows are never updated;
// the retention job deletes them once expires_at has passed.
type EscalationLogModel struct {
	ID          uint   `gorm:"primaryKey"`
	IssueSID    string `gorm:"column:issue_sid;size:50;not null;index"`
	CallSID     string `gorm:"column:call_sid;size:100;not null"`
	SentAt      int64  `gorm:"not null;index"`
	IssueStatus string `gorm:"size:20;not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	ExpiresAt   int64  `gorm:"not null;index"`
}

func (EscalationLogModel) TableName() string {
	return "escalation_logs"
}
