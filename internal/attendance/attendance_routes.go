package attendance

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
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware(secret, resolver))
	attendances.Use(middleware.ContextLogger(logger))
	{
		attendances.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceAttendance, access.ActionRead),
			handler.GetAll,
		)

		attendances.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceAttendance, access.ActionRead),
			handler.GetById,
		)

		attendances.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			middleware.Authorize(evaluator, access.ResourceAttendance, access.ActionCreate),
			handler.Create,
		)

		attendances.PATCH("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.Authorize(evaluator, access.ResourceAttendance, access.ActionUpdate),
			handler.Update,
		)
	}
}
