package mappers

import (
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/persistence/models"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/biztime"
)

func EscalationLogToModel(e *escalation.LogEntry) *models.EscalationLogModel {
	return &models.EscalationLogModel{
		ID:          e.ID(),
		IssueSID:    e.IssueSID(),
		CallSID:     e.CallSID(),
		SentAt:      biztime.ToMillis(e.SentAt()),
		IssueStatus: e.IssueStatus().String(),
		CreatedAt:   biztime.ToMillis(e.CreatedAt()),
		ExpiresAt:   biztime.ToMillis(e.ExpiresAt()),
	}
}

func EscalationLogToDomain(model *models.EscalationLogModel) *escalation.LogEntry {
	return escalation.ReconstructLogEntry(
		model.ID,
		model.IssueSID,
		model.CallSID,
		vo.IssueStatus(model.IssueStatus),
		biztime.FromMillis(model.SentAt),
		biztime.FromMillis(model.CreatedAt),
		biztime.FromMillis(model.ExpiresAt),
	)
}

func EscalationLogsToDomain(list []models.EscalationLogModel) []*escalation.LogEntry {
	entries := make([]*escalation.LogEntry, 0, len(list))
	for i := range list {
		entries = append(entries, EscalationLogToDomain(&list[i]))
	}
	return entries
}
