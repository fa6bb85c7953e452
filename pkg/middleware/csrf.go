package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agriyield/pkg/session"
)

// CSRFHeader is the alternative to the csrf_token form field.
const CSRFHeader = "X-CSRF-Token"

var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}

// CSRF guards every route. Safe methods lazily issue the session token;
// unsafe methods must present it back in the form body or CSRFHeader.
// Missing or mismatched tokens stop the request with 400 before any
// handler logic runs, authenticated or not.
func CSRF(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if safeMethods[c.Request().Method] {
				if sess != nil {
					if _, err := sessions.EnsureCSRF(sess); err != nil {
						return echo.NewHTTPError(http.StatusInternalServerError, "session store unavailable")
					}
				}
				return next(c)
			}

			submitted := c.FormValue("csrf_token")
			if submitted == "" {
				submitted = c.Request().Header.Get(CSRFHeader)
			}
			if sess == nil || sess.CSRFToken == "" || submitted == "" || submitted != sess.CSRFToken {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid CSRF token"})
			}
			return next(c)
		}
	}
}
