package task

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
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware(secret, resolver))
	tasks.Use(middleware.ContextLogger(logger))
	{
		tasks.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceTask, access.ActionRead),
			handler.GetAll,
		)

		tasks.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceTask, access.ActionRead),
			handler.GetById,
		)

		tasks.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			middleware.Authorize(evaluator, access.ResourceTask, access.ActionCreate),
			handler.Create,
		)

		tasks.PATCH("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.Authorize(evaluator, access.ResourceTask, access.ActionUpdate),
			handler.Update,
		)

		tasks.GET("/:id/comments",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceTask, access.ActionRead),
			handler.GetComments,
		)

		tasks.POST("/:id/comments",
			middleware.RateLimitByUser(1, 3),
			middleware.Authorize(evaluator, access.ResourceTask, access.ActionComment),
			handler.AddComment,
		)
	}
}
