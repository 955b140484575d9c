package webserver

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/remiedy/catering/internal/cart"
	"github.com/remiedy/catering/pkg/common"
)

const (
	SessionName = "catering_session"

	sessionKeyID    = "session_id"
	sessionKeyAdmin = "admin_logged_in"

	// echo context keys
	ContextDBKey      = "app_db"
	ContextCartKey    = "app_cart"
	ContextSessionKey = "app_session_id"
)

// sessionContext assigns a session id on first visit and stashes the database
// handle plus the visitor's cart on the request context.
func sessionContext(db *gorm.DB, carts *cart.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// a decode failure (e.g. rotated secret) still yields a fresh session
			sess, err := session.Get(SessionName, c)
			if sess == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
			}
			if err != nil {
				sess.Values = make(map[interface{}]interface{})
			}
			sid, ok := sess.Values[sessionKeyID].(string)
			if !ok || sid == "" {
				sid = common.UUID()
				sess.Values[sessionKeyID] = sid
				sess.Options.HttpOnly = true
				sess.Options.Path = "/"
				if err := sess.Save(c.Request(), c.Response()); err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
				}
			}
			c.Set(ContextSessionKey, sid)
			c.Set(ContextDBKey, db)
			c.Set(ContextCartKey, carts.Get(sid))
			return next(c)
		}
	}
}

// GetDB returns the request database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(ContextDBKey).(*gorm.DB)
}

// CurrentCart returns the visitor's session cart.
func CurrentCart(c echo.Context) *cart.Cart {
	return c.Get(ContextCartKey).(*cart.Cart)
}

// SessionID returns the visitor's session identifier.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ContextSessionKey).(string)
	return sid
}

// IsAdmin reports whether the session carries the admin flag.
func IsAdmin(c echo.Context) bool {
	sess, err := session.Get(SessionName, c)
	if err != nil || sess == nil {
		return false
	}
	flag, ok := sess.Values[sessionKeyAdmin].(bool)
	return ok && flag
}

// SetAdmin sets or clears the admin flag on the session cookie.
func SetAdmin(c echo.Context, v bool) error {
	sess, err := session.Get(SessionName, c)
	if sess == nil {
		return err
	}
	if v {
		sess.Values[sessionKeyAdmin] = true
	} else {
		delete(sess.Values, sessionKeyAdmin)
	}
	return sess.Save(c.Request(), c.Response())
}

// AdminRequired rejects requests whose session lacks the admin flag; the
// caller is told where to log in instead of the operation running partially.
func AdminRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"code":     "AUTH_REQUIRED",
				"message":  "Admin login required",
				"redirect": "/admin/login",
			})
		}
		return next(c)
	}
}
