package usecases

import (
	"context"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
	apperrors "github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

// requireAdmin runs before any read or write of escalation state.
func requireAdmin(ctx context.Context, authorizer escalation.AdminAuthorizer, caller authorization.Caller, log logger.Interface) error {
	if caller.IsAnonymous() {
		return apperrors.NewUnauthorizedError("authentication required")
	}

	ok, err := authorizer.IsAdmin(ctx, caller)
	if err != nil {
		log.Errorw("failed to check admin role", "error", err, "user_id", caller.UserID)
		return apperrors.NewInternalError("failed to check permissions")
	}
	if !ok {
		log.Warnw("non-admin caller denied escalation access", "user_id", caller.UserID, "role", caller.Role)
		return apperrors.NewForbiddenError("admin role required")
	}
	return nil
}
