package migration

import (
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the gorm models owned by this service. casbin_rule is
// created by the casbin adapter itself.
func AutoMigrateModels() []any {
	return []any{
		&models.IssueModel{},
		&models.EscalationLogModel{},
	}
}
