package dto

import (
	"sort"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
)

type LogEntryDTO struct {
	IssueSID    string    `json:"issue_id"`
	CallSID     string    `json:"call_sid"`
	SentAt      time.Time `json:"sent_at"`
	IssueStatus string    `json:"issue_status"`
}

type IssueCallCountDTO struct {
	IssueSID string `json:"issue_id"`
	Calls    int    `json:"calls"`
}

type DashboardSummaryDTO struct {
	HighUrgencyUnviewed int64               `json:"high_urgency_unviewed"`
	WindowStart         time.Time           `json:"window_start"`
	WindowEnd           time.Time           `json:"window_end"`
	RecentCallCount     int                 `json:"recent_call_count"`
	RecentCalls         []*LogEntryDTO      `json:"recent_calls"`
	CallsPerIssue       []IssueCallCountDTO `json:"calls_per_issue"`
}

func ToLogEntryDTO(e *escalation.LogEntry) *LogEntryDTO {
	if e == nil {
		return nil
	}
	return &LogEntryDTO{
		IssueSID:    e.IssueSID(),
		CallSID:     e.CallSID(),
		SentAt:      e.SentAt(),
		IssueStatus: e.IssueStatus().String(),
	}
}

// ToLogEntryDTOs maps entries newest first.
func ToLogEntryDTOs(entries []*escalation.LogEntry) []*LogEntryDTO {
	dtos := make([]*LogEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, ToLogEntryDTO(e))
	}
	sort.SliceStable(dtos, func(i, j int) bool {
		return dtos[i].SentAt.After(dtos[j].SentAt)
	})
	return dtos
}

// CountCallsPerIssue groups entries by issue, ordered by call count descending then issue SID.
func CountCallsPerIssue(entries []*escalation.LogEntry) []IssueCallCountDTO {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.IssueSID()]++
	}

	result := make([]IssueCallCountDTO, 0, len(counts))
	for sid, n := range counts {
		result = append(result, IssueCallCountDTO{IssueSID: sid, Calls: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Calls != result[j].Calls {
			return result[i].Calls > result[j].Calls
		}
		return result[i].IssueSID < result[j].IssueSID
	})
	return result
}
