package http

import (
	escalationHandlers "github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/handlers/escalation"
	issueHandlers "github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/handlers/issue"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/handlers/system"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	issueHandler      *issueHandlers.Handler
	escalationHandler *escalationHandlers.Handler
	systemHandler     *system.Handler
}
