package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	sessionsvc "wifiric-backend/internal/service/session"
)

const identityKey = "identity"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// authRequired rejects requests without a valid session token.
func authRequired(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		ident, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, sessionsvc.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate token"})
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// optionalAuth attaches an identity when a valid token is present but
// lets anonymous requests through.
func optionalAuth(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		ident, err := sessions.Validate(c.Request.Context(), token)
		if err == nil {
			c.Set(identityKey, ident)
		}
		c.Next()
	}
}

func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := identityFrom(c)
		if ident == nil || !ident.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) *sessionsvc.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, ok := v.(*sessionsvc.Identity)
	if !ok {
		return nil
	}
	return ident
}
