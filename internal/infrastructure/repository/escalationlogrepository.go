package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/persistence/mappers"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/persistence/models"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/biztime"
	db "github.com/nxtrohith/Micro-Task-sub000/internal/shared/db"
)

type EscalationLogRepository struct {
	db *gorm.DB
}

func NewEscalationLogRepository(db *gorm.DB) *EscalationLogRepository {
	return &EscalationLogRepository{db: db}
}

func (r *EscalationLogRepository) Append(ctx context.Context, entry *escalation.LogEntry) error {
	model := mappers.EscalationLogToModel(entry)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append escalation log: %w", err)
	}

	entry.SetID(model.ID)
	return nil
}

func (r *EscalationLogRepository) ListByIssue(ctx context.Context, issueSID string) ([]*escalation.LogEntry, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var list []models.EscalationLogModel
	if err := tx.Where("issue_sid = ?", issueSID).
		Order("sent_at ASC").
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list escalation logs: %w", err)
	}

	return mappers.EscalationLogsToDomain(list), nil
}

func (r *EscalationLogRepository) ListSentBetween(ctx context.Context, from, to time.Time) ([]*escalation.LogEntry, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var list []models.EscalationLogModel
	if err := tx.Where("sent_at >= ? AND sent_at < ?", biztime.ToMillis(from), biztime.ToMillis(to)).
		Order("sent_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list escalation logs: %w", err)
	}

	return mappers.EscalationLogsToDomain(list), nil
}

func (r *EscalationLogRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Where("expires_at <= ?", biztime.ToMillis(now)).Delete(&models.EscalationLogModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired escalation logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
