package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/requestdata"
	"github.com/telmahealth/mobile-gateway/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), authService: authService}
}

// AuthContext attaches the authenticated user to the request context when a
// valid bearer token is present, and lets the request through either way.
// The mutations themselves reject anonymous callers, in the payload rather
// than with a transport error.
func (am *AuthMiddleware) AuthContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}
		user, err := am.authService.UserFromToken(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("Ignoring invalid bearer token", "error", err)
			c.Next()
			return
		}
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
			TokenString: tokenString,
			User:        user,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
