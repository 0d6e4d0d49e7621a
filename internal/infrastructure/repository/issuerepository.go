package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/persistence/mappers"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/persistence/models"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/biztime"
	db "github.com/nxtrohith/Micro-Task-sub000/internal/shared/db"
)

type IssueRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{
		db:     db,
		mapper: mappers.NewIssueMapper(),
	}
}

func (r *IssueRepository) Create(ctx context.Context, i *issue.Issue) error {
	model, err := r.mapper.ToModel(i)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}

	return i.SetID(model.ID)
}

func (r *IssueRepository) GetBySID(ctx context.Context, sid string) (*issue.Issue, error) {
	var model models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, issue.ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *IssueRepository) List(ctx context.Context, filter issue.ListFilter) ([]*issue.Issue, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.IssueModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", filter.Severity.String())
	}
	if filter.ReporterID != "" {
		query = query.Where("reporter_id = ?", filter.ReporterID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count issues: %w", err)
	}

	var list []*models.IssueModel
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}

	issues, err := r.mapper.ToDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

func (r *IssueRepository) UpdateStatus(ctx context.Context, sid string, from, to vo.IssueStatus, updatedAt time.Time) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.IssueModel{}).
		Where("sid = ? AND status = ?", sid, from.String()).
		Updates(map[string]any{
			"status":     to.String(),
			"updated_at": biztime.ToMillis(updatedAt),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update issue status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *IssueRepository) FindEscalationCandidates(ctx context.Context, filter issue.EscalationCandidateFilter) ([]*issue.Issue, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.IssueModel{}).
		Where("status = ?", filter.Status.String()).
		Where("created_at <= ?", biztime.ToMillis(filter.CreatedAtOrBefore))

	if filter.WithoutReminder {
		query = query.Where("last_reminder_sent IS NULL")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var list []*models.IssueModel
	if err := query.Order("created_at ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to find escalation candidates: %w", err)
	}

	return r.mapper.ToDomainList(list)
}

// MarkEscalated writes both escalation fields in one statement, guarded on the issue still
// being reported and last_reminder_sent still being NULL.
func (r *IssueRepository) MarkEscalated(ctx context.Context, sid string, sentAt time.Time) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.IssueModel{}).
		Where("sid = ? AND status = ? AND last_reminder_sent IS NULL", sid, vo.StatusReported.String()).
		Updates(map[string]any{
			"escalation_active":  true,
			"last_reminder_sent": biztime.ToMillis(sentAt),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark issue escalated: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *IssueRepository) MarkViewed(ctx context.Context, sid string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.IssueModel{}).
		Where("sid = ?", sid).
		Update("viewed_by_admin", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark issue viewed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.ensureExists(ctx, sid)
	}
	return nil
}

func (r *IssueRepository) ResetEscalation(ctx context.Context, sid string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.IssueModel{}).
		Where("sid = ?", sid).
		Updates(map[string]any{
			"escalation_active":  false,
			"last_reminder_sent": gorm.Expr("NULL"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to reset escalation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.ensureExists(ctx, sid)
	}
	return nil
}

func (r *IssueRepository) CountHighUrgencyUnviewed(ctx context.Context) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	severities := make([]string, 0, 2)
	for _, s := range vo.HighUrgencySeverities() {
		severities = append(severities, s.String())
	}

	var count int64
	if err := tx.Model(&models.IssueModel{}).
		Where("status = ?", vo.StatusReported.String()).
		Where("viewed_by_admin = ?", false).
		Where("severity IN ?", severities).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count high urgency issues: %w", err)
	}
	return count, nil
}

// ensureExists distinguishes an unknown SID from an update that matched but changed nothing.
func (r *IssueRepository) ensureExists(ctx context.Context, sid string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Model(&models.IssueModel{}).Where("sid = ?", sid).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check issue: %w", err)
	}
	if count == 0 {
		return issue.ErrIssueNotFound
	}
	return nil
}
