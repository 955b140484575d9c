// Package webserver hosts the Echo web surface: visitor routes at the root,
// admin routes under /admin behind a single authorization middleware, with
// cookie-session state shared by both.
package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/remiedy/catering/config"
	"github.com/remiedy/catering/internal/cart"
	"github.com/remiedy/catering/pkg/imagestore"
)

type WebServer struct {
	root   *echo.Echo
	admin  *echo.Group
	config *config.AppConfig
	images *imagestore.Store
}

var server *WebServer

// Init builds the package server instance. Every request gets the database
// handle and the session cart placed on its context before routing.
func Init(cfg *config.AppConfig, db *gorm.DB, carts *cart.Store) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Web.Secret))))
	e.Use(sessionContext(db, carts))

	e.Static("/food_uploads", cfg.Store.UploadDir)

	server = &WebServer{
		root:   e,
		admin:  e.Group("/admin", AdminRequired),
		config: cfg,
		images: imagestore.New(cfg.Store.UploadDir, cfg.Store.PlaceholderImage),
	}
	return server
}

// Instance returns the package server.
func Instance() *WebServer {
	return server
}

// Images returns the upload image store.
func (ws *WebServer) Images() *imagestore.Store {
	return ws.images
}

func (ws *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", ws.config.Web.Host, ws.config.Web.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	err := ws.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (ws *WebServer) Shutdown(ctx context.Context) error {
	return ws.root.Shutdown(ctx)
}

// Visitor-facing route registration.

func ApiGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

// Admin route registration; everything lands under /admin behind AdminRequired.

func AdminGET(path string, h echo.HandlerFunc) {
	server.admin.GET(path, h)
}

func AdminPOST(path string, h echo.HandlerFunc) {
	server.admin.POST(path, h)
}

func AdminPUT(path string, h echo.HandlerFunc) {
	server.admin.PUT(path, h)
}

func AdminDELETE(path string, h echo.HandlerFunc) {
	server.admin.DELETE(path, h)
}
