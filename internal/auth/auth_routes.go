package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mohammed4122002/workflow-pro-backend/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	secret []byte,
	resolver middleware.IdentityResolver,
	logger *zap.Logger,
) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/logout", handler.Logout)

		auth.GET("/me",
			middleware.AuthMiddleware(secret, resolver),
			middleware.ContextLogger(logger),
			middleware.RateLimitByUser(2, 5),
			handler.Me,
		)

		auth.POST("/change-password",
			middleware.AuthMiddleware(secret, resolver),
			middleware.ContextLogger(logger),
			middleware.RateLimitByUser(0.5, 2),
			handler.ChangePassword,
		)
	}
}
