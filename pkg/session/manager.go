package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agriyield/entities"
	"agriyield/pkg/security"
)

// Manager persists sessions server-side; the browser only carries an
// opaque uuid cookie. Nothing identity-bearing leaves the process.
type Manager struct {
	db     *gorm.DB
	cookie string
	ttl    time.Duration
}

func NewManager(db *gorm.DB, cookieName string, ttl time.Duration) *Manager {
	return &Manager{db: db, cookie: cookieName, ttl: ttl}
}

// Start creates a fresh session row for u and sets the cookie.
// Any previous session cookie is replaced, not reused.
func (m *Manager) Start(c echo.Context, u *entities.User) (*entities.Session, error) {
	sess := &entities.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.db.Create(sess).Error; err != nil {
		return nil, err
	}
	m.setCookie(c, sess.ID, sess.ExpiresAt)
	return sess, nil
}

// StartAnonymous creates a session with no identity attached, so CSRF
// tokens can be issued before login. Login replaces it outright.
func (m *Manager) StartAnonymous(c echo.Context) (*entities.Session, error) {
	sess := &entities.Session{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.db.Create(sess).Error; err != nil {
		return nil, err
	}
	m.setCookie(c, sess.ID, sess.ExpiresAt)
	return sess, nil
}

// Current resolves the request's session row. Missing cookie, unknown
// id or an expired row all come back as (nil, nil).
func (m *Manager) Current(c echo.Context) (*entities.Session, error) {
	ck, err := c.Cookie(m.cookie)
	if err != nil || ck.Value == "" {
		return nil, nil
	}
	var sess entities.Session
	if err := m.db.First(&sess, "id = ?", ck.Value).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = m.db.Delete(&entities.Session{}, "id = ?", sess.ID).Error
		return nil, nil
	}
	return &sess, nil
}

// Destroy removes the session row and expires the cookie.
func (m *Manager) Destroy(c echo.Context, sess *entities.Session) error {
	if err := m.db.Delete(&entities.Session{}, "id = ?", sess.ID).Error; err != nil {
		return err
	}
	m.setCookie(c, "", time.Unix(0, 0))
	return nil
}

// EnsureCSRF issues the session's CSRF token if absent. Idempotent.
func (m *Manager) EnsureCSRF(sess *entities.Session) (string, error) {
	if sess.CSRFToken != "" {
		return sess.CSRFToken, nil
	}
	sess.CSRFToken = security.NewToken()
	if err := m.db.Model(&entities.Session{}).Where("id = ?", sess.ID).
		Update("csrf_token", sess.CSRFToken).Error; err != nil {
		return "", err
	}
	return sess.CSRFToken, nil
}

// SetFlash stores a one-shot user-visible notice on the session.
func (m *Manager) SetFlash(sess *entities.Session, msg string) {
	if sess == nil {
		return
	}
	sess.Flash = msg
	_ = m.db.Model(&entities.Session{}).Where("id = ?", sess.ID).Update("flash", msg).Error
}

// PopFlash returns and clears the pending notice.
func (m *Manager) PopFlash(sess *entities.Session) string {
	if sess == nil || sess.Flash == "" {
		return ""
	}
	msg := sess.Flash
	sess.Flash = ""
	_ = m.db.Model(&entities.Session{}).Where("id = ?", sess.ID).Update("flash", "").Error
	return msg
}

func (m *Manager) setCookie(c echo.Context, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
