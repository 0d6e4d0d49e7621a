// Package permission backs the admin authorizer with a casbin RBAC model persisted through
// the gorm adapter.
package permission

import (
	"context"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

const (
	ResourceEscalations = "escalations"
	ResourceIssues      = "issues"

	ActionRead     = "read"
	ActionWrite    = "write"
	ActionModerate = "moderate"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (r.sub == p.sub || g(r.sub, p.sub)) && r.obj == p.obj && r.act == p.act
`

// DefaultPolicies are seeded on startup; the admin role may use every escalation control.
var DefaultPolicies = [][]string{
	{authorization.RoleAdmin.String(), ResourceEscalations, ActionRead},
	{authorization.RoleAdmin.String(), ResourceEscalations, ActionWrite},
	{authorization.RoleAdmin.String(), ResourceIssues, ActionModerate},
}

var _ escalation.AdminAuthorizer = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// SeedDefaultPolicies adds any missing DefaultPolicies.
func (e *Enforcer) SeedDefaultPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, p := range DefaultPolicies {
		ok, err := e.enforcer.AddPolicy(p[0], p[1], p[2])
		if err != nil {
			return fmt.Errorf("failed to add policy: %w", err)
		}
		if ok {
			added++
		}
	}
	if added > 0 {
		e.logger.Infow("seeded casbin policies", "count", added)
	}
	return nil
}

func (e *Enforcer) Enforce(subject, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(subject, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "subject", subject, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// IsAdmin accepts a caller whose token role is granted the escalation write policy, or
// whose user ID has been given the admin role explicitly.
func (e *Enforcer) IsAdmin(_ context.Context, caller authorization.Caller) (bool, error) {
	if caller.IsAnonymous() {
		return false, nil
	}

	if caller.Role != "" {
		ok, err := e.Enforce(caller.Role.String(), ResourceEscalations, ActionWrite)
		if err != nil || ok {
			return ok, err
		}
	}
	return e.Enforce(caller.UserID, ResourceEscalations, ActionWrite)
}

// GrantAdmin gives a user the admin role regardless of the role claim in their token.
func (e *Enforcer) GrantAdmin(userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddRoleForUser(userID, authorization.RoleAdmin.String()); err != nil {
		e.logger.Errorw("failed to add role for user", "error", err, "user_id", userID)
		return fmt.Errorf("failed to add role for user: %w", err)
	}
	return nil
}

func (e *Enforcer) RevokeAdmin(userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.DeleteRoleForUser(userID, authorization.RoleAdmin.String()); err != nil {
		e.logger.Errorw("failed to delete role for user", "error", err, "user_id", userID)
		return fmt.Errorf("failed to delete role for user: %w", err)
	}
	return nil
}
