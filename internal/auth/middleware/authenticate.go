package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

// UserLookup resolves a verified subject to a user.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
}

// Authenticate requires a valid bearer token whose subject is a known user.
func Authenticate(verifier TokenVerifier, lookup UserLookup, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			unauthorized(c, "missing authorization token")
			return
		}

		subject, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}

		resolveUser(c, lookup, subject, log)
	}
}

// HeaderUser trusts the X-User-Id header. Use this ONLY for development/testing.
func HeaderUser(lookup UserLookup, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if subject == "" {
			unauthorized(c, "missing X-User-Id header")
			return
		}
		resolveUser(c, lookup, subject, log)
	}
}

func resolveUser(c *gin.Context, lookup UserLookup, subject string, log *zap.Logger) {
	u, err := lookup.GetByID(c.Request.Context(), subject)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			unauthorized(c, "user not found")
			return
		}
		log.Error("resolve user", zap.String("subject", subject), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	auth.SetUser(c, u)
	c.Next()
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
}
