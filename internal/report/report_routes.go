package report

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
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
	rdb *redis.Client,
	logger *zap.Logger,
) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(secret, resolver))
	reports.Use(middleware.ContextLogger(logger))
	{
		reports.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceReport, access.ActionRead),
			handler.GetAll,
		)

		reports.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceReport, access.ActionRead),
			handler.GetById,
		)

		reports.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			middleware.Authorize(evaluator, access.ResourceReport, access.ActionCreate),
			handler.Generate,
		)
	}
}
