package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agriyield/database"
	"agriyield/entities"
	"agriyield/pkg/session"
)

type fakeUsers struct {
	byID map[uint]*entities.User
}

func (f *fakeUsers) FindByLogin(value string) (*entities.User, error) {
	for _, u := range f.byID {
		if u.Username == value || u.Email == value {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByID(id uint) (*entities.User, error) { return f.byID[id], nil }
func (f *fakeUsers) TouchUpdatedAt(id uint) error             { return nil }

func newEnv(t *testing.T) (*gorm.DB, *session.Manager, *fakeUsers) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	users := &fakeUsers{byID: map[uint]*entities.User{
		1: {ID: 1, Username: "farmer1", Email: "farmer1@example.com", Role: entities.RoleFarmer},
		2: {ID: 2, Username: "officer1", Email: "officer1@example.com", Role: entities.RoleOfficer},
	}}
	return db, session.NewManager(db, "agriyield_session", time.Hour), users
}

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

// run sends req through LoadSession plus the supplied middleware chain.
func run(t *testing.T, sessions *session.Manager, users *fakeUsers, req *http.Request, chain ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := okHandler
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	require.NoError(t, LoadSession(sessions, users)(h)(c))
	return rec
}

func loggedInRequest(t *testing.T, db *gorm.DB, sessions *session.Manager, users *fakeUsers, userID uint, method, target string, form url.Values) (*http.Request, *entities.Session) {
	t.Helper()
	u := users.byID[userID]
	require.NotNil(t, u)

	// Start needs a context only to set the cookie; a scratch one will do.
	scratch := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	sess, err := sessions.Start(scratch, u)
	require.NoError(t, err)

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	req.AddCookie(&http.Cookie{Name: "agriyield_session", Value: sess.ID})
	return req, sess
}

func TestLoadSessionCreatesAnonymousSession(t *testing.T) {
	db, sessions, users := newEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := run(t, sessions, users, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var n int64
	require.NoError(t, db.Model(&entities.Session{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	var sess entities.Session
	require.NoError(t, db.First(&sess).Error)
	assert.Zero(t, sess.UserID)
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	db, sessions, users := newEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/yield/full_report", nil)
	rec := run(t, sessions, users, req, RequireLogin(sessions))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	var sess entities.Session
	require.NoError(t, db.First(&sess).Error)
	assert.Equal(t, "Please login to continue.", sess.Flash)
}

func TestRequireLoginAfterUserDeleted(t *testing.T) {
	db, sessions, users := newEnv(t)
	req, _ := loggedInRequest(t, db, sessions, users, 1, http.MethodGet, "/", nil)
	delete(users.byID, 1)

	rec := run(t, sessions, users, req, RequireLogin(sessions))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireRoleOutsideAllowSet(t *testing.T) {
	db, sessions, users := newEnv(t)
	req, sess := loggedInRequest(t, db, sessions, users, 1, http.MethodGet, "/analysis", nil)

	rec := run(t, sessions, users, req, Protect(sessions, entities.RoleOfficer, entities.RoleAdmin)...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	var stored entities.Session
	require.NoError(t, db.First(&stored, "id = ?", sess.ID).Error)
	assert.Equal(t, "You are not authorized to access this page.", stored.Flash)
}

func TestRequireRoleInsideAllowSet(t *testing.T) {
	db, sessions, users := newEnv(t)
	req, _ := loggedInRequest(t, db, sessions, users, 2, http.MethodGet, "/analysis", nil)

	rec := run(t, sessions, users, req, Protect(sessions, entities.RoleOfficer, entities.RoleAdmin)...)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRFSafeMethodIssuesToken(t *testing.T) {
	db, sessions, users := newEnv(t)
	req, sess := loggedInRequest(t, db, sessions, users, 1, http.MethodGet, "/", nil)

	rec := run(t, sessions, users, req, CSRF(sessions))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored entities.Session
	require.NoError(t, db.First(&stored, "id = ?", sess.ID).Error)
	assert.Len(t, stored.CSRFToken, 48)
}

func TestCSRFMissingTokenRejected(t *testing.T) {
	db, sessions, users := newEnv(t)
	req, _ := loggedInRequest(t, db, sessions, users, 1, http.MethodPost, "/yield/add", url.Values{})

	called := false
	marker := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error { called = true; return next(c) }
	}
	rec := run(t, sessions, users, req, CSRF(sessions), marker)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Invalid CSRF token"}`, rec.Body.String())
	assert.False(t, called, "handler must not run on a CSRF failure")
}

func TestCSRFMismatchedTokenRejected(t *testing.T) {
	db, sessions, users := newEnv(t)
	req, sess := loggedInRequest(t, db, sessions, users, 1, http.MethodPost, "/yield/add",
		url.Values{"csrf_token": {"bogus"}})
	_, err := sessions.EnsureCSRF(sess)
	require.NoError(t, err)

	rec := run(t, sessions, users, req, CSRF(sessions))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCSRFHeaderAccepted(t *testing.T) {
	db, sessions, users := newEnv(t)
	req, sess := loggedInRequest(t, db, sessions, users, 1, http.MethodPost, "/yield/add", nil)
	token, err := sessions.EnsureCSRF(sess)
	require.NoError(t, err)
	req.Header.Set(CSRFHeader, token)

	// LoadSession re-reads the row, so the persisted token is compared.
	rec := run(t, sessions, users, req, CSRF(sessions))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRFFormTokenAccepted(t *testing.T) {
	_, sessions, users := newEnv(t)

	// Anonymous sessions carry tokens too, matching pre-login forms.
	scratch := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	sess, err := sessions.StartAnonymous(scratch)
	require.NoError(t, err)
	token, err := sessions.EnsureCSRF(sess)
	require.NoError(t, err)

	form := url.Values{"csrf_token": {token}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: "agriyield_session", Value: sess.ID})

	rec := run(t, sessions, users, req, CSRF(sessions))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExpiredSessionTreatedAsAnonymous(t *testing.T) {
	db, sessions, users := newEnv(t)
	req, sess := loggedInRequest(t, db, sessions, users, 1, http.MethodGet, "/", nil)
	require.NoError(t, db.Model(&entities.Session{}).Where("id = ?", sess.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	rec := run(t, sessions, users, req, RequireLogin(sessions))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	// the expired row is reaped, an anonymous replacement takes its place
	var n int64
	require.NoError(t, db.Model(&entities.Session{}).Where("id = ?", sess.ID).Count(&n).Error)
	assert.Zero(t, n)
}
