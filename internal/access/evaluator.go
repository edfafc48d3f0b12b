package access

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type evaluator struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewEvaluator(enforcer *casbin.Enforcer, logger *zap.Logger) Evaluator {
	return &evaluator{
		enforcer: enforcer,
		logger:   logger.Named("access_evaluator"),
	}
}

// Evaluate resolves the caller against the grid. Inactive accounts are
// denied before any grid lookup so a deactivated admin loses everything
// at once. Employees always receive a self-scoped grant.
func (e *evaluator) Evaluate(caller Identity, resource, action string) Decision {
	if !caller.IsActive {
		return deny("account is deactivated")
	}

	if !ValidRole(caller.Role) {
		return deny(fmt.Sprintf("unknown role %q", caller.Role))
	}

	e.mu.Lock()
	ok, err := e.enforcer.Enforce(string(caller.Role), resource, action)
	e.mu.Unlock()

	if err != nil {
		e.logger.Error("enforce failed",
			zap.String("role", string(caller.Role)),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return deny("authorization check failed")
	}

	if !ok {
		return deny(fmt.Sprintf("role %s may not %s %s", caller.Role, action, resource))
	}

	if caller.Role == RoleEmployee {
		return allowScoped(caller.ID)
	}

	return allow()
}
