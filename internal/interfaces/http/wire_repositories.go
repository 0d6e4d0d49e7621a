package http

import (
	"gorm.io/gorm"

	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	issueRepo         *repository.IssueRepository
	escalationLogRepo *repository.EscalationLogRepository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		issueRepo:         repository.NewIssueRepository(db),
		escalationLogRepo: repository.NewEscalationLogRepository(db),
	}
}
