package adminapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/remiedy/catering/internal/domain"
	"github.com/remiedy/catering/internal/webserver"
	"github.com/remiedy/catering/pkg/common"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catering.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.SysUser{
		ID:       common.UUIDint64(),
		Username: username,
		Password: string(hash),
		Role:     domain.RoleAdmin,
		Status:   common.ENABLED,
	}).Error)
}

func TestVerifyAdminCredentials(t *testing.T) {
	db := testDB(t)
	seedAdmin(t, db, "admin", "let-me-in")

	user, err := VerifyAdminCredentials(db, "admin", "let-me-in")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	_, err = VerifyAdminCredentials(db, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = VerifyAdminCredentials(db, "nobody", "let-me-in")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyAdminCredentialsIgnoresNonAdminRole(t *testing.T) {
	db := testDB(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("let-me-in"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.SysUser{
		ID:       common.UUIDint64(),
		Username: "maria",
		Password: string(hash),
		Role:     domain.RoleCustomer,
		Status:   common.ENABLED,
	}).Error)

	_, err = VerifyAdminCredentials(db, "maria", "let-me-in")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// loginTestServer wires just enough of the web surface to exercise the login
// handler and the admin gate together.
func loginTestServer(db *gorm.DB) *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(webserver.ContextDBKey, db)
			return next(c)
		}
	})
	e.POST("/admin/login", adminLogin)
	e.GET("/admin/logout", adminLogout)
	e.GET("/admin/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	}, webserver.AdminRequired)
	return e
}

func postLogin(e *echo.Echo, username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminLoginFlow(t *testing.T) {
	db := testDB(t)
	seedAdmin(t, db, "admin", "let-me-in")
	e := loginTestServer(db)

	// wrong password: generic failure, session stays unauthenticated
	rec := postLogin(e, "admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_FAILURE")

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	ping := httptest.NewRecorder()
	e.ServeHTTP(ping, req)
	assert.Equal(t, http.StatusUnauthorized, ping.Code, "failed login must not set the admin flag")

	// correct credentials open the gate
	rec = postLogin(e, "admin", "let-me-in")
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	ping = httptest.NewRecorder()
	e.ServeHTTP(ping, req)
	assert.Equal(t, http.StatusOK, ping.Code)

	// logout closes it again
	req = httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	for _, cookie := range out.Result().Cookies() {
		req.AddCookie(cookie)
	}
	ping = httptest.NewRecorder()
	e.ServeHTTP(ping, req)
	assert.Equal(t, http.StatusUnauthorized, ping.Code)
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	e := loginTestServer(testDB(t))
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "/admin/login")
}
