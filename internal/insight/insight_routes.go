package insight

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mohammed4122002/workflow-pro-backend/internal/access"
	"github.com/mohammed4122002/workflow-pro-backend/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	secret []byte,
	resolver middleware.IdentityResolver,
	evaluator access.Evaluator,
	logger *zap.Logger,
) {
	insights := r.Group("/ai")
	insights.Use(middleware.AuthMiddleware(secret, resolver))
	insights.Use(middleware.ContextLogger(logger))
	{
		insights.POST("/insights",
			middleware.RateLimitByUser(0.2, 2),
			middleware.Authorize(evaluator, access.ResourceInsight, access.ActionGenerate),
			handler.Generate,
		)

		insights.POST("/chat",
			middleware.RateLimitByUser(0.2, 2),
			middleware.Authorize(evaluator, access.ResourceInsight, access.ActionChat),
			handler.Chat,
		)
	}
}
