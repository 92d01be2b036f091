package middleware

import (
	"errors"
	"net/http"
	"strings"

	"sclusiv/internal/pkg"
	"sclusiv/internal/service"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// AuthMiddleware validates the bearer token against the single active
// session copy, then re-resolves the account so a ban takes effect on
// the very next request.
func AuthMiddleware(sessions service.SessionRepo, users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		tokenStr := parts[1]
		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		originToken, err := sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil || originToken != tokenStr {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "session is no longer active"})
			c.Abort()
			return
		}

		if _, err := users.Current(c.Request.Context(), claims.UserID); err != nil {
			if errors.Is(err, service.ErrBanned) {
				_ = sessions.Delete(c.Request.Context(), claims.UserID)
				c.JSON(http.StatusForbidden, gin.H{"msg": "account banned"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"msg": "account not found"})
			}
			c.Abort()
			return
		}

		if err := sessions.Extend(c.Request.Context(), claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
