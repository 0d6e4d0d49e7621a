// Package issue models a resident-reported civic issue. The escalation fields
// (viewedByAdmin, escalationActive, lastReminderSent) are only ever written through the
// conditional repository updates owned by the escalation core.
package issue

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
	maxImages            = 10
)

// Location is where the issue was reported.
type Location struct {
	Address   string
	Latitude  float64
	Longitude float64
}

type Issue struct {
	id               uint
	sid              string
	title            string
	description      string
	category         string
	severity         vo.Severity
	status           vo.IssueStatus
	location         Location
	imageURLs        []string
	reporterID       string
	viewedByAdmin    bool
	escalationActive bool
	lastReminderSent *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

// NewIssue creates a freshly reported issue. Escalation fields start at their defaults.
func NewIssue(
	sid string,
	title string,
	description string,
	category string,
	severity vo.Severity,
	location Location,
	imageURLs []string,
	reporterID string,
	now time.Time,
) (*Issue, error) {
	title = strings.TrimSpace(title)
	if sid == "" {
		return nil, fmt.Errorf("issue SID is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if !severity.IsValid() {
		return nil, fmt.Errorf("invalid severity")
	}
	if len(imageURLs) > maxImages {
		return nil, fmt.Errorf("at most %d images can be attached", maxImages)
	}
	if reporterID == "" {
		return nil, fmt.Errorf("reporter ID is required")
	}
	if category == "" {
		category = "general"
	}

	now = now.UTC()
	return &Issue{
		sid:         sid,
		title:       title,
		description: description,
		category:    category,
		severity:    severity,
		status:      vo.StatusReported,
		location:    location,
		imageURLs:   append([]string(nil), imageURLs...),
		reporterID:  reporterID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Snapshot carries every persisted field; it is used to rebuild an Issue from storage.
type Snapshot struct {
	ID               uint
	SID              string
	Title            string
	Description      string
	Category         string
	Severity         vo.Severity
	Status           vo.IssueStatus
	Location         Location
	ImageURLs        []string
	ReporterID       string
	ViewedByAdmin    bool
	EscalationActive bool
	LastReminderSent *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructIssue rebuilds an Issue from persistence.
func ReconstructIssue(s Snapshot) (*Issue, error) {
	if s.SID == "" {
		return nil, fmt.Errorf("issue SID is required")
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("invalid status %q for issue %s", s.Status, s.SID)
	}
	if !s.Severity.IsValid() {
		return nil, fmt.Errorf("invalid severity %q for issue %s", s.Severity, s.SID)
	}

	return &Issue{
		id:               s.ID,
		sid:              s.SID,
		title:            s.Title,
		description:      s.Description,
		category:         s.Category,
		severity:         s.Severity,
		status:           s.Status,
		location:         s.Location,
		imageURLs:        append([]string(nil), s.ImageURLs...),
		reporterID:       s.ReporterID,
		viewedByAdmin:    s.ViewedByAdmin,
		escalationActive: s.EscalationActive,
		lastReminderSent: s.LastReminderSent,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}, nil
}

func (i *Issue) ID() uint {
	return i.id
}

func (i *Issue) SID() string {
	return i.sid
}

func (i *Issue) Title() string {
	return i.title
}

func (i *Issue) Description() string {
	return i.description
}

func (i *Issue) Category() string {
	return i.category
}

func (i *Issue) Severity() vo.Severity {
	return i.severity
}

func (i *Issue) Status() vo.IssueStatus {
	return i.status
}

func (i *Issue) Location() Location {
	return i.location
}

func (i *Issue) ImageURLs() []string {
	return append([]string(nil), i.imageURLs...)
}

func (i *Issue) ReporterID() string {
	return i.reporterID
}

func (i *Issue) ViewedByAdmin() bool {
	return i.viewedByAdmin
}

func (i *Issue) EscalationActive() bool {
	return i.escalationActive
}

// LastReminderSent is the idempotency guard: while set, the issue is never called about again.
func (i *Issue) LastReminderSent() *time.Time {
	if i.lastReminderSent == nil {
		return nil
	}
	t := *i.lastReminderSent
	return &t
}

func (i *Issue) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Issue) UpdatedAt() time.Time {
	return i.updatedAt
}

// Age returns how long the issue has existed at now.
func (i *Issue) Age(now time.Time) time.Duration {
	return now.Sub(i.createdAt)
}

func (i *Issue) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("issue ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("issue ID cannot be zero")
	}
	i.id = id
	return nil
}

// ChangeStatus moves the issue along its workflow. Leaving reported implicitly removes
// the issue from escalation candidacy.
func (i *Issue) ChangeStatus(newStatus vo.IssueStatus, now time.Time) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if i.status == newStatus {
		return nil
	}
	if !i.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition from %s to %s", i.status, newStatus)
	}

	i.status = newStatus
	i.updatedAt = now.UTC()
	return nil
}
