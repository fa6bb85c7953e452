package controllerImp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"agriyield/entities"
	auditSvc "agriyield/pkg/audit/service"
	mw "agriyield/pkg/middleware"
	"agriyield/pkg/security"
	"agriyield/pkg/session"
	"agriyield/pkg/user/repository"
)

var validRoles = map[string]bool{
	entities.RoleFarmer:  true,
	entities.RoleOfficer: true,
	entities.RoleAdmin:   true,
}

// AdminUserCtrl is the admin-only account management surface.
type AdminUserCtrl struct {
	repo     repository.AdminUserRepository
	audit    auditSvc.AuditService
	sessions *session.Manager
}

func New(repo repository.AdminUserRepository, audit auditSvc.AuditService, sessions *session.Manager) *AdminUserCtrl {
	return &AdminUserCtrl{repo: repo, audit: audit, sessions: sessions}
}

func (h *AdminUserCtrl) List(c echo.Context) error {
	rows, err := h.repo.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to list users"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"users":  rows,
		"notice": h.sessions.PopFlash(mw.CurrentSession(c)),
	})
}

func (h *AdminUserCtrl) Add(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	role := c.FormValue("role")
	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")

	errs := map[string]string{}
	if username == "" {
		errs["username"] = "Username is required."
	}
	if email == "" {
		errs["email"] = "Email is required."
	}
	if !validRoles[role] {
		errs["role"] = "Invalid role selected."
	}
	if password == "" {
		errs["password"] = "Password is required."
	} else if len(password) < 6 {
		errs["password"] = "Password must be at least 6 characters."
	}
	if password != confirm {
		errs["confirm_password"] = "Passwords do not match."
	}
	if len(errs) == 0 {
		taken, err := h.repo.Taken(username, email, 0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to create user"})
		}
		if taken {
			errs["global"] = "Username or email already exists."
		}
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to create user"})
	}
	u := &entities.User{Username: username, Email: email, Role: role, PasswordHash: hash}
	if err := h.repo.Create(u); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to create user"})
	}
	actor := actingUserID(c)
	h.audit.Log(entities.AuditInsert, "users", actor, &u.ID, u.Username)
	h.sessions.SetFlash(mw.CurrentSession(c), "User created successfully.")
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (h *AdminUserCtrl) Edit(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}
	u, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit user"})
	}
	if u == nil {
		h.sessions.SetFlash(mw.CurrentSession(c), "User not found.")
		return c.Redirect(http.StatusSeeOther, "/admin/users")
	}

	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	role := c.FormValue("role")
	newPassword := c.FormValue("password")

	errs := map[string]string{}
	if username == "" {
		errs["username"] = "Username is required."
	}
	if email == "" {
		errs["email"] = "Email is required."
	}
	if !validRoles[role] {
		errs["role"] = "Invalid role selected."
	}
	if newPassword != "" && len(newPassword) < 6 {
		errs["password"] = "Password must be at least 6 characters."
	}
	if len(errs) == 0 {
		taken, err := h.repo.Taken(username, email, uint(id))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit user"})
		}
		if taken {
			errs["global"] = "Username or email already exists."
		}
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
	}

	u.Username = username
	u.Email = email
	u.Role = role
	if newPassword != "" {
		hash, err := security.HashPassword(newPassword)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit user"})
		}
		u.PasswordHash = hash
	}
	if err := h.repo.Update(u); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit user"})
	}
	h.audit.Log(entities.AuditUpdate, "users", actingUserID(c), &u.ID, u.Username)
	h.sessions.SetFlash(mw.CurrentSession(c), "User updated successfully.")
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (h *AdminUserCtrl) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}
	actor := mw.CurrentUser(c)
	if actor != nil && actor.ID == uint(id) {
		h.sessions.SetFlash(mw.CurrentSession(c), "You cannot delete your own account.")
		return c.Redirect(http.StatusSeeOther, "/admin/users")
	}
	u, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to delete user"})
	}
	if u == nil {
		h.sessions.SetFlash(mw.CurrentSession(c), "User not found.")
		return c.Redirect(http.StatusSeeOther, "/admin/users")
	}
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to delete user"})
	}
	uid := uint(id)
	h.audit.Log(entities.AuditDelete, "users", actingUserID(c), &uid, u.Username)
	h.sessions.SetFlash(mw.CurrentSession(c), "User deleted successfully.")
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

func actingUserID(c echo.Context) *uint {
	if u := mw.CurrentUser(c); u != nil {
		id := u.ID
		return &id
	}
	return nil
}
