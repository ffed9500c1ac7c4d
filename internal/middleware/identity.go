// Package middleware resolves who is calling: a signed-in user from a bearer
// token, or an anonymous visitor identified by a session cookie.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emilythestrangee/wordcap/backend/internal/auth"
	"github.com/emilythestrangee/wordcap/backend/internal/thread"
)

const (
	UserIDKey      = "user_id"
	AnonymousIDKey = "anonymous_id"
)

type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// Identity reads an optional bearer token. A malformed or expired token is
// refused rather than silently downgraded to anonymous.
func Identity(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// AuthRequired stops requests that Identity did not resolve to a user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		c.Next()
	}
}

// AnonymousSession gives callers without a user an anonymous id kept in the
// session cookie. With create false an existing id is picked up but none is
// minted. Requires the sessions middleware.
func AnonymousSession(create bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); ok {
			c.Next()
			return
		}

		session := sessions.Default(c)
		id, _ := session.Get(AnonymousIDKey).(string)
		if id == "" && create {
			id = uuid.NewString()
			session.Set(AnonymousIDKey, id)
			if err := session.Save(); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
				return
			}
		}
		if id != "" {
			c.Set(AnonymousIDKey, id)
		}
		c.Next()
	}
}

func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}

// Participant returns the resolved caller. A user wins over an anonymous id.
func Participant(c *gin.Context) (thread.Participant, bool) {
	if id, ok := UserID(c); ok {
		return thread.User(id), true
	}
	if id := c.GetString(AnonymousIDKey); id != "" {
		return thread.Anonymous(id), true
	}
	return thread.Participant{}, false
}
