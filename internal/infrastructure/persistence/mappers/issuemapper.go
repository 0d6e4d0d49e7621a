package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/persistence/models"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/biztime"
)

// IssueMapper converts between the Issue aggregate and IssueModel.
type IssueMapper interface {
	ToModel(i *issue.Issue) (*models.IssueModel, error)
	ToDomain(model *models.IssueModel) (*issue.Issue, error)
	ToDomainList(models []*models.IssueModel) ([]*issue.Issue, error)
}

type IssueMapperImpl struct{}

func NewIssueMapper() IssueMapper {
	return &IssueMapperImpl{}
}

func (m *IssueMapperImpl) ToModel(i *issue.Issue) (*models.IssueModel, error) {
	loc := i.Location()
	model := &models.IssueModel{
		ID:               i.ID(),
		SID:              i.SID(),
		Title:            i.Title(),
		Description:      i.Description(),
		Category:         i.Category(),
		Severity:         i.Severity().String(),
		Status:           i.Status().String(),
		Address:          loc.Address,
		Latitude:         loc.Latitude,
		Longitude:        loc.Longitude,
		ReporterID:       i.ReporterID(),
		ViewedByAdmin:    i.ViewedByAdmin(),
		EscalationActive: i.EscalationActive(),
		CreatedAt:        biztime.ToMillis(i.CreatedAt()),
		UpdatedAt:        biztime.ToMillis(i.UpdatedAt()),
	}

	urls := i.ImageURLs()
	if urls == nil {
		urls = []string{}
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image urls: %w", err)
	}
	model.ImageURLs = datatypes.JSON(raw)

	if sent := i.LastReminderSent(); sent != nil {
		ms := biztime.ToMillis(*sent)
		model.LastReminderSent = &ms
	}

	return model, nil
}

func (m *IssueMapperImpl) ToDomain(model *models.IssueModel) (*issue.Issue, error) {
	if model == nil {
		return nil, nil
	}

	var urls []string
	if len(model.ImageURLs) > 0 {
		if err := json.Unmarshal(model.ImageURLs, &urls); err != nil {
			return nil, fmt.Errorf("failed to decode image urls for issue %s: %w", model.SID, err)
		}
	}

	snapshot := issue.Snapshot{
		ID:          model.ID,
		SID:         model.SID,
		Title:       model.Title,
		Description: model.Description,
		Category:    model.Category,
		Severity:    vo.Severity(model.Severity),
		Status:      vo.IssueStatus(model.Status),
		Location: issue.Location{
			Address:   model.Address,
			Latitude:  model.Latitude,
			Longitude: model.Longitude,
		},
		ImageURLs:        urls,
		ReporterID:       model.ReporterID,
		ViewedByAdmin:    model.ViewedByAdmin,
		EscalationActive: model.EscalationActive,
		CreatedAt:        biztime.FromMillis(model.CreatedAt),
		UpdatedAt:        biztime.FromMillis(model.UpdatedAt),
	}
	if model.LastReminderSent != nil {
		sent := biztime.FromMillis(*model.LastReminderSent)
		snapshot.LastReminderSent = &sent
	}

	i, err := issue.ReconstructIssue(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct issue: %w", err)
	}
	return i, nil
}

func (m *IssueMapperImpl) ToDomainList(list []*models.IssueModel) ([]*issue.Issue, error) {
	issues := make([]*issue.Issue, 0, len(list))
	for _, model := range list {
		i, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	return issues, nil
}
