package leave

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
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(secret, resolver))
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceLeave, access.ActionRead),
			handler.GetAll,
		)

		leaves.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceLeave, access.ActionRead),
			handler.GetById,
		)

		leaves.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			middleware.Authorize(evaluator, access.ResourceLeave, access.ActionCreate),
			handler.Create,
		)

		leaves.POST("/:id/decide",
			middleware.RateLimitByUser(1, 3),
			middleware.Authorize(evaluator, access.ResourceLeave, access.ActionDecide),
			handler.Decide,
		)
	}
}
