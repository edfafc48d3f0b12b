package financial

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
	records := r.Group("/financial-records")
	records.Use(middleware.AuthMiddleware(secret, resolver))
	records.Use(middleware.ContextLogger(logger))
	{
		records.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceFinancial, access.ActionRead),
			handler.GetAll,
		)

		records.GET("/summary",
			middleware.RateLimitByUser(1, 3),
			middleware.Authorize(evaluator, access.ResourceFinancial, access.ActionSummarize),
			handler.Summary,
		)

		records.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceFinancial, access.ActionRead),
			handler.GetById,
		)

		records.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			middleware.Authorize(evaluator, access.ResourceFinancial, access.ActionCreate),
			handler.Create,
		)

		records.PATCH("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(evaluator, access.ResourceFinancial, access.ActionUpdate),
			handler.Update,
		)
	}
}
