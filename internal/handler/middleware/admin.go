package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"productlab/studyhub/internal/service"
	"productlab/studyhub/pkg/response"
)

const ContextKeyAdminSubject = "admin_subject"

// AdminAuth rejects the request unless the Authorization header carries the
// admin credential or a live admin session token. It runs before any handler
// touches the database.
func AdminAuth(auth service.AdminAuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		subject, err := auth.Authorize(c.Request.Context(), authHeader)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				response.Unauthorized(c, "invalid admin credentials")
			} else {
				logger.Error("admin authorization failed", zap.String("request_id", RequestIDFrom(c)), zap.Error(err))
				response.InternalError(c, "internal server error")
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyAdminSubject, subject)
		c.Next()
	}
}

// BearerToken returns the token of a "Bearer" Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
