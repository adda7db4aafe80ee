package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

const (
	authorizationHeader = "Authorization"
	authorizationType   = "Bearer"
	ContextSessionKey   = "session"
)

type SessionValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.Session, error)
}

func AuthMiddleware(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 || !strings.EqualFold(fields[0], authorizationType) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		session, err := validator.ValidateToken(c.Request.Context(), fields[1])
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrAuthFailed):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			case errors.Is(err, domain.ErrUnavailable):
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
			default:
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

func GetSession(c *gin.Context) (*domain.Session, bool) {
	v, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*domain.Session)
	return session, ok && session != nil
}

func GetAccountID(c *gin.Context) (string, bool) {
	session, ok := GetSession(c)
	if !ok {
		return "", false
	}
	return session.AccountID, true
}
