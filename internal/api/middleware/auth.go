// internal/api/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"jobportal/internal/access"
	"jobportal/internal/logger"
	"jobportal/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	// TokenCookie is the httpOnly cookie set at login.
	TokenCookie  = "token"
	principalCtx = "principal" // Key to store the caller in context
)

// tokensFromRequest returns the cookie token and then the "Authorization: Bearer" token, when present.
func tokensFromRequest(c *gin.Context) []string {
	var candidates []string
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		candidates = append(candidates, cookie)
	}
	headerParts := strings.Fields(c.GetHeader(authorizationHeader))
	if len(headerParts) == 2 && strings.EqualFold(headerParts[0], "bearer") {
		candidates = append(candidates, headerParts[1])
	}
	return candidates
}

// resolvePrincipal returns the first candidate that parses. When none does it returns the
// error of the first one, so a stale cookie alone still reports why it was rejected.
func resolvePrincipal(tokens *access.TokenManager, candidates []string) (*access.Principal, error) {
	var firstErr error
	for _, candidate := range candidates {
		principal, err := tokens.Parse(candidate)
		if err == nil {
			return principal, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}

// Authenticate resolves the caller from the token and rejects requests without a valid one.
func Authenticate(tokens *access.TokenManager, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates := tokensFromRequest(c)
		if len(candidates) == 0 {
			abortUnauthorized(c, "Please log in to continue")
			return
		}

		principal, err := resolvePrincipal(tokens, candidates)
		if err != nil {
			logger.WithRequestID(c.Request.Context(), log).Debug("rejected token", zap.Error(err))
			if errors.Is(err, access.ErrTokenExpired) {
				abortUnauthorized(c, "Token has expired")
			} else {
				abortUnauthorized(c, "Invalid token")
			}
			return
		}

		c.Set(principalCtx, principal)
		c.Next()
	}
}

// OptionalAuthenticate attaches the caller when a valid token is present and never rejects.
func OptionalAuthenticate(tokens *access.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, err := resolvePrincipal(tokens, tokensFromRequest(c)); err == nil && principal != nil {
			c.Set(principalCtx, principal)
		}
		c.Next()
	}
}

// RequireRole rejects callers whose role is not one of roles. It must run after Authenticate.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFromContext(c)
		err := access.RequireRole(p, roles...)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, access.ErrUnauthenticated):
			abortUnauthorized(c, "Please log in to continue")
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "This route is only for " + roleList(roles),
			})
		}
	}
}

func roleList(roles []models.Role) string {
	labels := make([]string, 0, len(roles))
	for _, r := range roles {
		labels = append(labels, access.RoleLabel(r)+"s")
	}
	return strings.Join(labels, " and ")
}

// PrincipalFromContext returns the authenticated caller, or nil.
func PrincipalFromContext(c *gin.Context) *access.Principal {
	v, exists := c.Get(principalCtx)
	if !exists {
		return nil
	}
	p, _ := v.(*access.Principal)
	return p
}
