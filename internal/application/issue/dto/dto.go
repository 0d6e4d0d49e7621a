package dto

import (
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
)

type LocationDTO struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type IssueDTO struct {
	SID              string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Category         string      `json:"category"`
	Severity         string      `json:"severity"`
	Status           string      `json:"status"`
	Location         LocationDTO `json:"location"`
	ImageURLs        []string    `json:"image_urls"`
	ReporterID       string      `json:"reporter_id"`
	ViewedByAdmin    bool        `json:"viewed_by_admin"`
	EscalationActive bool        `json:"escalation_active"`
	LastReminderSent *time.Time  `json:"last_reminder_sent"`
	NeedsAttention   bool        `json:"needs_attention"`
	DescriptionHTML  string      `json:"description_html,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// ToIssueDTO maps an issue for API output. now drives the derived needs_attention flag.
func ToIssueDTO(i *issue.Issue, now time.Time) *IssueDTO {
	if i == nil {
		return nil
	}

	loc := i.Location()
	imageURLs := i.ImageURLs()
	if imageURLs == nil {
		imageURLs = []string{}
	}

	return &IssueDTO{
		SID:         i.SID(),
		Title:       i.Title(),
		Description: i.Description(),
		Category:    i.Category(),
		Severity:    i.Severity().String(),
		Status:      i.Status().String(),
		Location: LocationDTO{
			Address:   loc.Address,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		},
		ImageURLs:        imageURLs,
		ReporterID:       i.ReporterID(),
		ViewedByAdmin:    i.ViewedByAdmin(),
		EscalationActive: i.EscalationActive(),
		LastReminderSent: i.LastReminderSent(),
		NeedsAttention:   escalation.NeedsAttention(i, now),
		CreatedAt:        i.CreatedAt(),
		UpdatedAt:        i.UpdatedAt(),
	}
}

func ToIssueDTOs(issues []*issue.Issue, now time.Time) []*IssueDTO {
	dtos := make([]*IssueDTO, 0, len(issues))
	for _, i := range issues {
		dtos = append(dtos, ToIssueDTO(i, now))
	}
	return dtos
}
