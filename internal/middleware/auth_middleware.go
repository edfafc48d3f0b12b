package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mohammed4122002/workflow-pro-backend/internal/access"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/contextutil"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/response"
)

const identityKey = "caller_identity"

// IdentityResolver loads the caller's current role and active flag from
// storage. Tokens only carry the subject; everything enforceable is read
// fresh so a deactivation or role change takes effect on the next request.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (access.Identity, error)
}

func AuthMiddleware(secret []byte, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return secret, nil
		})

		if err != nil || !token.Valid {
			code, msg := "INVALID_TOKEN", "Invalid or malformed token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code, msg = "TOKEN_EXPIRED", "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, code, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Subject not found in token", nil)
			c.Abort()
			return
		}

		identity, err := resolver.ResolveIdentity(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists", nil)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Set("user_id_validated", identity.ID)

		ctx := contextutil.WithUserID(c.Request.Context(), identity.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// CallerIdentity returns the identity placed by AuthMiddleware. The bool
// is false on routes that skipped authentication.
func CallerIdentity(c *gin.Context) (access.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return access.Identity{}, false
	}

	identity, ok := v.(access.Identity)
	return identity, ok
}
