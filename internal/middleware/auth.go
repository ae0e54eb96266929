package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
)

const ContextPrincipal = "principal"

var errForbidden = httperr.ErrAuth("forbidden", "You are not allowed to perform this action.")

type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (identity.Principal, error)
}

// TokenFromRequest returns the session token from the cookie, falling back
// to an "Authorization: Bearer" header.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func AuthMiddleware(authn Authenticator, cookieName string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := authn.Authenticate(c.Request.Context(), TokenFromRequest(c, cookieName))
		if err != nil {
			log.Debug().
				Err(err).
				Str("path", c.FullPath()).
				Msg("authentication rejected")

			httperr.Respond(c, err, http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by AuthMiddleware.
func PrincipalFrom(c *gin.Context) (identity.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return identity.Principal{}, false
	}
	p, ok := v.(identity.Principal)
	return p, ok && p.Authenticated()
}

func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			httperr.Respond(c, identity.ErrUnauthenticated, http.StatusUnauthorized)
			c.Abort()
			return
		}

		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}

		httperr.Abort(c, http.StatusForbidden, errForbidden.Code, errForbidden.Message)
	}
}
