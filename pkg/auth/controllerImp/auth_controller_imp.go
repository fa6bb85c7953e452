package controllerImp

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agriyield/pkg/auth/controller"
	"agriyield/pkg/auth/repository"
	mw "agriyield/pkg/middleware"
	"agriyield/pkg/security"
	"agriyield/pkg/session"
)

type authCtrl struct {
	users    repository.UserRepository
	sessions *session.Manager
}

func New(users repository.UserRepository, sessions *session.Manager) controller.AuthController {
	return &authCtrl{users: users, sessions: sessions}
}

// LoginForm hands the frontend its CSRF token and any pending notice.
func (h *authCtrl) LoginForm(c echo.Context) error {
	sess := mw.CurrentSession(c)
	return c.JSON(http.StatusOK, map[string]string{
		"csrf_token": sess.CSRFToken,
		"notice":     h.sessions.PopFlash(sess),
	})
}

// Login authenticates username/email + password and starts a session.
func (h *authCtrl) Login(c echo.Context) error {
	login := strings.TrimSpace(c.FormValue("login"))
	password := c.FormValue("password")

	errs := map[string]string{}
	if login == "" {
		errs["login"] = "Username or email is required."
	}
	if password == "" {
		errs["password"] = "Password is required."
	}
	if len(errs) == 0 {
		u, err := h.users.FindByLogin(login)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "login unavailable"})
		}
		if u == nil || !security.VerifyPassword(password, u.PasswordHash) {
			errs["global"] = "Invalid credentials."
		} else {
			// replaces the anonymous session outright, token and all
			if old := mw.CurrentSession(c); old != nil {
				_ = h.sessions.Destroy(c, old)
			}
			sess, err := h.sessions.Start(c, u)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "login unavailable"})
			}
			_ = h.users.TouchUpdatedAt(u.ID)
			h.sessions.SetFlash(sess, fmt.Sprintf("Welcome, %s!", u.Username))
			return c.Redirect(http.StatusSeeOther, "/")
		}
	}
	return c.JSON(http.StatusUnauthorized, map[string]any{"errors": errs, "login": login})
}

// Register is disabled; accounts come from an admin.
func (h *authCtrl) Register(c echo.Context) error {
	h.sessions.SetFlash(mw.CurrentSession(c), "Public registration is disabled. Please contact Admin.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Logout destroys the current session. POST only.
func (h *authCtrl) Logout(c echo.Context) error {
	if sess := mw.CurrentSession(c); sess != nil {
		if err := h.sessions.Destroy(c, sess); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "logout failed"})
		}
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	u := mw.CurrentUser(c)
	if u == nil {
		return c.JSON(http.StatusOK, map[string]any{"user": nil})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user_id":  u.ID,
		"username": u.Username,
		"role":     u.Role,
	})
}
