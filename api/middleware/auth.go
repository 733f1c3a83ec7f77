package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/gassafe/models"
)

// AuthMode selects how requests are authenticated.
type AuthMode int

const (
	// AuthNone performs no check at all.
	AuthNone AuthMode = iota
	// AuthRequireKey requires the configured API key on every request.
	AuthRequireKey
)

// AuthPolicy is evaluated on every request under /api.
type AuthPolicy struct {
	Mode AuthMode
	Key  string
}

// NoAuth returns a policy that lets every request through.
func NoAuth() AuthPolicy {
	return AuthPolicy{Mode: AuthNone}
}

// RequireKey returns a policy that accepts only key.
func RequireKey(key string) AuthPolicy {
	return AuthPolicy{Mode: AuthRequireKey, Key: key}
}

// PolicyFromKey maps an optional configured key to a policy: empty means
// authentication is disabled.
func PolicyFromKey(key string) AuthPolicy {
	if key == "" {
		return NoAuth()
	}
	return RequireKey(key)
}

// Allows reports whether provided satisfies the policy.
func (p AuthPolicy) Allows(provided string) bool {
	switch p.Mode {
	case AuthNone:
		return true
	case AuthRequireKey:
		return provided != "" && subtle.ConstantTimeCompare([]byte(provided), []byte(p.Key)) == 1
	default:
		return false
	}
}

// Auth returns API-key authentication middleware for policy.
//
// The key is read from, in order:
//
//	x-api-key: <key>
//	?api_key=<key>
func Auth(policy AuthPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy.Mode == AuthNone {
			c.Next()
			return
		}

		key := extractAPIKey(c)
		if !policy.Allows(key) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error:   "Invalid API key",
				Code:    models.ErrCodeUnauthorized,
			})
			return
		}

		c.Set("api_key", key)
		c.Next()
	}
}

// extractAPIKey tries the x-api-key header first, then the api_key query parameter.
func extractAPIKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	return c.Query("api_key")
}
