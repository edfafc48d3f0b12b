package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mohammed4122002/workflow-pro-backend/internal/access"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/response"
)

const decisionKey = "access_decision"

// Authorize gates a route on the evaluator. A denial never reaches the
// handler; an allow (scoped or not) is stored so the handler can pass
// the decision down to its service for ownership checks.
func Authorize(evaluator access.Evaluator, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CallerIdentity(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
			c.Abort()
			return
		}

		decision := evaluator.Evaluate(identity, resource, action)
		if !decision.Allowed() {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", decision.Reason, nil)
			c.Abort()
			return
		}

		c.Set(decisionKey, decision)
		c.Next()
	}
}

// RouteDecision returns the decision stored by Authorize. Handlers on
// unauthorized routes get a zero Decision, which denies everything.
func RouteDecision(c *gin.Context) access.Decision {
	v, exists := c.Get(decisionKey)
	if !exists {
		return access.Decision{}
	}

	decision, _ := v.(access.Decision)
	return decision
}
