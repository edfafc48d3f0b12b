package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(secret, resolver))
	users.Use(middleware.ContextLogger(logger))
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceUser, access.ActionRead),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(evaluator, access.ResourceUser, access.ActionRead),
			handler.GetById,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(evaluator, access.ResourceUser, access.ActionCreate),
			handler.Create,
		)

		users.PATCH("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(evaluator, access.ResourceUser, access.ActionUpdate),
			handler.Update,
		)

		users.POST("/:id/activate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(evaluator, access.ResourceUser, access.ActionUpdate),
			handler.Activate,
		)

		users.POST("/:id/deactivate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Authorize(evaluator, access.ResourceUser, access.ActionUpdate),
			handler.Deactivate,
		)
	}
}
