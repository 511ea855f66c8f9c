package echo

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"go.edulab.hu/coachdesk/domain"
	"go.edulab.hu/coachdesk/services"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// identityContextKey is the echo context key holding the verified identity.
const identityContextKey = "coachdesk.identity"

// RequireToken authenticates the request from the session cookie. The three
// rejection kinds (missing, invalid, expired) all answer 401; the kind is
// logged for diagnosis.
func (a *DashboardAPI) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var tokenValue string
		if cookie, err := c.Cookie(SessionCookieName); err == nil {
			tokenValue = cookie.Value
		}

		identity, err := a.tokens.Verify(tokenValue)
		if err != nil {
			if ae, ok := domain.IsAuthError(err); ok {
				log.Debug().Str("kind", string(ae.Kind)).Str("path", c.Path()).Msg("Rejected session token")
			}
			return c.JSON(http.StatusUnauthorized, errorBody("Unauthorized"))
		}

		c.Set(identityContextKey, identity)
		return next(c)
	}
}

// RequireAccount restricts a route to primary accounts. Guardian sessions can
// read student records but cannot manage the roster or batches.
func (a *DashboardAPI) RequireAccount(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := IdentityFromContext(c)
		if identity == nil || identity.Guardian {
			return c.JSON(http.StatusUnauthorized, errorBody("Unauthorized"))
		}
		return next(c)
	}
}

// IdentityFromContext returns the verified identity set by RequireToken, or
// nil on unauthenticated routes.
func IdentityFromContext(c echo.Context) *services.Identity {
	identity, _ := c.Get(identityContextKey).(*services.Identity)
	return identity
}

// setSessionCookie issues the session token as an httpOnly, same-site-strict
// cookie scoped to the whole site.
func setSessionCookie(c echo.Context, session *services.Session) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt) / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
