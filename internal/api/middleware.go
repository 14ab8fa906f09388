package api

import (
	"alcyxob/fitness-admin/internal/auth"
	"alcyxob/fitness-admin/internal/service"
	"alcyxob/fitness-admin/internal/session"
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Constants for context keys
const (
	ContextSessionKey = "session"
	ContextTokenKey   = "sessionToken"
)

// SessionCookie carries the token for browser navigation.
const SessionCookie = "session"

// tokenFromRequest reads "Authorization: Bearer <token>", then the session cookie.
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
		return ""
	}
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

// SessionMiddleware resolves the request's token into a session. The session
// is resolved before the handler chain continues; routes then apply a guard.
func SessionMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		ctx := c.Request.Context()

		sess := session.New(authService, func(ctx context.Context) error {
			return authService.Logout(ctx, token)
		})
		sess.Attach(ctx, session.TokenObserver{Verifier: authService, Token: token})

		c.Set(ContextSessionKey, sess)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// GuardMiddleware applies guard to route for every request it handles.
// Must run AFTER SessionMiddleware.
func GuardMiddleware(guard session.Guard, route session.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := sessionFromContext(c)
		if !ok {
			abortWithError(c, http.StatusInternalServerError, "Session not found in context")
			return
		}
		target := route
		if target.Path == "" {
			target.Path = c.FullPath()
		}

		decision, err := guard.Check(c.Request.Context(), sess, target)
		if err != nil {
			log.Printf("WARN: Guard check for %s aborted: %v", target.Path, err)
			abortWithError(c, http.StatusServiceUnavailable, "Session could not be resolved")
			return
		}
		if decision.Allow {
			c.Next()
			return
		}

		if wantsHTML(c) {
			c.Redirect(http.StatusFound, decision.Redirect)
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    redirectReason(guard, decision),
			"redirect": decision.Redirect,
		})
	}
}

func redirectReason(guard session.Guard, d session.Decision) string {
	if d.Redirect == guard.DashboardPath {
		return "Already signed in"
	}
	return "Admin privileges required"
}

// wantsHTML reports whether the caller is a browser navigating to a page.
func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

func sessionFromContext(c *gin.Context) (*session.Session, bool) {
	raw, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := raw.(*session.Session)
	return sess, ok
}

// Helper function to get the signed-in identity from context (used by handlers)
func identityFromContext(c *gin.Context) (*auth.Identity, error) {
	sess, ok := sessionFromContext(c)
	if !ok {
		return nil, errors.New("session not found in context")
	}
	snap := sess.Snapshot()
	if !snap.IsAuthenticated || snap.Identity == nil {
		return nil, errors.New("no signed-in identity")
	}
	return snap.Identity, nil
}

func tokenFromContext(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}
