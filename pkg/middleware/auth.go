package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agriyield/entities"
	"agriyield/pkg/auth/repository"
	"agriyield/pkg/session"
)

// Context keys set by LoadSession.
const (
	ctxSession = "session"
	ctxUser    = "current_user"
)

// CurrentSession returns the request's session, never nil after LoadSession.
func CurrentSession(c echo.Context) *entities.Session {
	s, _ := c.Get(ctxSession).(*entities.Session)
	return s
}

// CurrentUser returns the resolved identity, nil when not logged in.
func CurrentUser(c echo.Context) *entities.User {
	u, _ := c.Get(ctxUser).(*entities.User)
	return u
}

// LoadSession resolves the session cookie into a session row plus, when
// the session carries an identity, the backing User row. A session whose
// user row was deleted counts as unauthenticated. Requests without any
// session get an anonymous one so CSRF tokens can be issued pre-login.
func LoadSession(sessions *session.Manager, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessions.Current(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session store unavailable")
			}
			if sess == nil {
				if sess, err = sessions.StartAnonymous(c); err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "session store unavailable")
				}
			}
			c.Set(ctxSession, sess)
			if sess.UserID != 0 {
				u, err := users.FindByID(sess.UserID)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "user lookup failed")
				}
				if u != nil {
					c.Set(ctxUser, u)
				}
			}
			return next(c)
		}
	}
}

// RequireLogin fails closed: no identity means a notice and a redirect
// to the login page. The wrapped handler is reached untouched otherwise.
func RequireLogin(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				sessions.SetFlash(CurrentSession(c), "Please login to continue.")
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// RequireRole short-circuits to the dashboard with a notice when the
// session role is outside the allow-set. Never a hard error, and never
// a hint whether the resource exists. It trusts the identity placed by
// RequireLogin; register it through Protect so that ordering holds.
func RequireRole(sessions *session.Manager, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil {
				sessions.SetFlash(CurrentSession(c), "Please login to continue.")
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			if !allowed[u.Role] {
				sessions.SetFlash(CurrentSession(c), "You are not authorized to access this page.")
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}

// Protect composes authentication before role membership. Routes take
// the pair as a unit, so a role check can never run ahead of auth.
func Protect(sessions *session.Manager, roles ...string) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{RequireLogin(sessions), RequireRole(sessions, roles...)}
}
