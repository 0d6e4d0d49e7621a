package models

import "gorm.io/datatypes"

// IssueModel is the issues table. Timestamps are UTC unix milliseconds.
type IssueModel struct {
	ID               uint           `gorm:"primaryKey"`
	SID              string         `gorm:"column:sid;uniqueIndex;size:50;not null"`
	Title            string         `gorm:"size:200;not null"`
	Description      string         `gorm:"type:text"`
	Category         string         `gorm:"size:50;not null;default:general"`
	Severity         string         `gorm:"size:20;not null;index"`
	Status           string         `gorm:"size:20;not null;index:idx_issues_escalation,priority:1"`
	Address          string         `gorm:"size:500"`
	Latitude         float64        `gorm:"not null;default:0"`
	Longitude        float64        `gorm:"not null;default:0"`
	ImageURLs        datatypes.JSON `gorm:"column:image_urls"`
	ReporterID       string         `gorm:"size:64;not null;index"`
	ViewedByAdmin    bool           `gorm:"not null;default:false"`
	EscalationActive bool           `gorm:"not null;default:false"`
	LastReminderSent *int64         `gorm:"index:idx_issues_escalation,priority:2"`
	CreatedAt        int64          `gorm:"autoCreateTime:milli;not null;index:idx_issues_escalation,priority:3"`
	UpdatedAt        int64          `gorm:"autoUpdateTime:milli;not null"`
}

func (IssueModel) TableName() string {
	return "issues"
}
